package roster

import (
	"fmt"
	"math"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"
)

// assignmentVar indexes one x[e,d,s] decision variable.
type assignmentVar struct {
	Employee Employee
	Day      int
	Shift    ShiftKind
}

// ID satisfies model.Identifier so assignmentVar can key a
// model.MultiMap, following the teacher's indexing idiom
// (nextmv-io-community-apps/shift-scheduling-gosdk).
func (a assignmentVar) ID() string {
	return fmt.Sprintf("%s|%d|%s", a.Employee.ID, a.Day, a.Shift)
}

// weekendVar indexes one free_wk[n,w] auxiliary variable.
type weekendVar struct {
	Employee Employee
	Pair     int
}

func (w weekendVar) ID() string {
	return fmt.Sprintf("%s|w%d", w.Employee.ID, w.Pair)
}

// contractorPair indexes one unordered contractor pair for the Term D
// fairness envelope.
type contractorPair struct {
	A, B Employee
}

func (p contractorPair) ID() string {
	return fmt.Sprintf("%s|%s", p.A.ID, p.B.ID)
}

// builtModel is everything the solver driver and the result assembler need
// after the model is constructed: the mip.Model itself plus every decision
// and auxiliary variable, keyed the same way the constraints keyed them.
type builtModel struct {
	m mip.Model

	n *normalized

	x      model.MultiMap[mip.Bool, assignmentVar]
	ox     model.MultiMap[mip.Bool, assignmentVar]
	freeWk model.MultiMap[mip.Bool, weekendVar]

	reg map[string]mip.Float
	ot  map[string]mip.Float

	fairnessGap model.MultiMap[mip.Float, contractorPair]

	allAssignments      []assignmentVar
	salariedAssignments []assignmentVar
	weekendVars         []weekendVar
	contractorPairs     []contractorPair

	objectiveDescription string
}

// maxWorkDaysInWindow is spec.md §4.2 hard constraint 7:
// min(floor(14*r/(1+r)), 13).
func maxWorkDaysInWindow(ratio float64) int {
	raw := int(math.Floor(14 * ratio / (1 + ratio)))
	if raw > 13 {
		return 13
	}
	return raw
}

// buildModel constructs the decision variables, hard constraints 1-10, and
// the scalarized objective described in spec.md §4.2.
func buildModel(n *normalized) (*builtModel, error) {
	m := mip.NewModel()
	m.Objective().SetMaximize()

	employees := n.employees()
	days := n.horizon.Days

	var allAssignments []assignmentVar
	var salariedAssignments []assignmentVar
	for _, e := range employees {
		for _, d := range days {
			for _, s := range Shifts {
				a := assignmentVar{Employee: e, Day: d.Index, Shift: s}
				allAssignments = append(allAssignments, a)
				if e.Kind == Salaried {
					salariedAssignments = append(salariedAssignments, a)
				}
			}
		}
	}

	x := model.NewMultiMap(
		func(...assignmentVar) mip.Bool { return m.NewBool() },
		allAssignments,
	)

	ox := model.NewMultiMap(
		func(...assignmentVar) mip.Bool { return m.NewBool() },
		salariedAssignments,
	)

	var weekendVars []weekendVar
	for _, e := range n.salaried {
		for _, w := range n.horizon.Weekends {
			weekendVars = append(weekendVars, weekendVar{Employee: e, Pair: w.Index})
		}
	}
	freeWk := model.NewMultiMap(
		func(...weekendVar) mip.Bool { return m.NewBool() },
		weekendVars,
	)

	reg := make(map[string]mip.Float, len(n.salaried))
	ot := make(map[string]mip.Float, len(n.salaried))
	for _, e := range n.salaried {
		maxRegShifts := e.MaxRegularHours / 8
		reg[e.ID] = m.NewFloat(0, float64(maxRegShifts))
		ot[e.ID] = m.NewFloat(0, float64(e.MaxOvertimeShifts))
	}

	bm := &builtModel{
		m:                   m,
		n:                   n,
		x:                   x,
		ox:                  ox,
		freeWk:              freeWk,
		reg:                 reg,
		ot:                  ot,
		allAssignments:      allAssignments,
		salariedAssignments: salariedAssignments,
		weekendVars:         weekendVars,
	}

	bm.addCoverage()
	bm.addOneShiftPerDay(employees)
	bm.addContractorAvailability()
	bm.addHolidayLock()
	bm.addOvertimeDefinition()
	bm.addConsecutiveDayCap(employees)
	bm.addWorkRestRatio(employees)
	bm.addNoPtoMCrossover(employees)
	bm.addWeekendFreeLinearization()
	bm.addMinFreeWeekends()

	bm.addObjective()

	return bm, nil
}

// 1. Coverage: for each (d,s), exactly one employee is assigned.
func (bm *builtModel) addCoverage() {
	for _, d := range bm.n.horizon.Days {
		for _, s := range Shifts {
			c := bm.m.NewConstraint(mip.Equal, 1.0)
			for _, e := range bm.n.employees() {
				c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d.Index, Shift: s}))
			}
		}
	}
}

// 2. At most one shift per day per employee.
func (bm *builtModel) addOneShiftPerDay(employees []Employee) {
	for _, e := range employees {
		for _, d := range bm.n.horizon.Days {
			c := bm.m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, s := range Shifts {
				c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d.Index, Shift: s}))
			}
		}
	}
}

// 3. Contractor availability: x[c,d,s] = 0 when not available.
func (bm *builtModel) addContractorAvailability() {
	for _, e := range bm.n.contract {
		avail := bm.n.availability[e.ID]
		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				if avail[DayShift{Day: d.Index, Shift: s}] {
					continue
				}
				c := bm.m.NewConstraint(mip.Equal, 0.0)
				c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d.Index, Shift: s}))
			}
		}
	}
}

// 4. Holiday lock: x[n,d,s] = 0 when marked Holiday.
func (bm *builtModel) addHolidayLock() {
	for _, e := range bm.n.salaried {
		prefs := bm.n.preferences[e.ID]
		for ds, v := range prefs {
			if v != Holiday {
				continue
			}
			c := bm.m.NewConstraint(mip.Equal, 0.0)
			c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: ds.Day, Shift: ds.Shift}))
		}
	}
}

// 5. Overtime definition: ox <= x; reg+ot == worked shifts; ot == sum(ox).
func (bm *builtModel) addOvertimeDefinition() {
	for _, e := range bm.n.salaried {
		reg := bm.reg[e.ID]
		ot := bm.ot[e.ID]

		totalShiftsConstr := bm.m.NewConstraint(mip.Equal, 0.0)
		totalShiftsConstr.NewTerm(1.0, reg)
		totalShiftsConstr.NewTerm(1.0, ot)

		overtimeSumConstr := bm.m.NewConstraint(mip.Equal, 0.0)
		overtimeSumConstr.NewTerm(-1.0, ot)

		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				a := assignmentVar{Employee: e, Day: d.Index, Shift: s}
				xVar := bm.x.Get(a)
				oxVar := bm.ox.Get(a)

				leq := bm.m.NewConstraint(mip.LessThanOrEqual, 0.0)
				leq.NewTerm(1.0, oxVar)
				leq.NewTerm(-1.0, xVar)

				totalShiftsConstr.NewTerm(-1.0, xVar)
				overtimeSumConstr.NewTerm(1.0, oxVar)
			}
		}
	}
}

// 6. Consecutive-day cap: at most max_consecutive_days worked in any
// window of max_consecutive_days+1 consecutive days.
func (bm *builtModel) addConsecutiveDayCap(employees []Employee) {
	maxConsecutive := bm.n.cfg.MaxConsecutiveDays
	numDays := bm.n.horizon.NumDays()
	for _, e := range employees {
		for d0 := 0; d0 <= numDays-maxConsecutive-1; d0++ {
			c := bm.m.NewConstraint(mip.LessThanOrEqual, float64(maxConsecutive))
			for d := d0; d <= d0+maxConsecutive; d++ {
				for _, s := range Shifts {
					c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d, Shift: s}))
				}
			}
		}
	}
}

// 7. Sliding 14-day work/rest ratio.
func (bm *builtModel) addWorkRestRatio(employees []Employee) {
	numDays := bm.n.horizon.NumDays()
	if numDays < 14 {
		return
	}
	maxWork := maxWorkDaysInWindow(bm.n.cfg.WorkRestRatio)
	for _, e := range employees {
		for d0 := 0; d0 <= numDays-14; d0++ {
			c := bm.m.NewConstraint(mip.LessThanOrEqual, float64(maxWork))
			for d := d0; d < d0+14; d++ {
				for _, s := range Shifts {
					c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d, Shift: s}))
				}
			}
		}
	}
}

// 8. No P->M across midnight.
func (bm *builtModel) addNoPtoMCrossover(employees []Employee) {
	numDays := bm.n.horizon.NumDays()
	for _, e := range employees {
		for d := 0; d < numDays-1; d++ {
			c := bm.m.NewConstraint(mip.LessThanOrEqual, 1.0)
			c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d, Shift: Afternoon}))
			c.NewTerm(1.0, bm.x.Get(assignmentVar{Employee: e, Day: d + 1, Shift: Morning}))
		}
	}
}

// 9. Weekend-free indicator linearization: free_wk == 1 iff neither Sat
// nor Sun is worked. W = sum of both days' shifts in [0,2];
// W <= 2*(1-free_wk) and W >= 1-free_wk forces the exact truth table.
func (bm *builtModel) addWeekendFreeLinearization() {
	for _, e := range bm.n.salaried {
		for _, w := range bm.n.horizon.Weekends {
			fw := bm.freeWk.Get(weekendVar{Employee: e, Pair: w.Index})

			upper := bm.m.NewConstraint(mip.LessThanOrEqual, 2.0)
			upper.NewTerm(2.0, fw)
			lower := bm.m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			lower.NewTerm(1.0, fw)

			for _, s := range Shifts {
				satVar := bm.x.Get(assignmentVar{Employee: e, Day: w.SatDay, Shift: s})
				sunVar := bm.x.Get(assignmentVar{Employee: e, Day: w.SunDay, Shift: s})
				upper.NewTerm(1.0, satVar)
				upper.NewTerm(1.0, sunVar)
				lower.NewTerm(1.0, satVar)
				lower.NewTerm(1.0, sunVar)
			}
		}
	}
}

// 10. Minimum free weekends, skipped when the horizon has no weekend
// pairs (spec.md §8 boundary behavior).
func (bm *builtModel) addMinFreeWeekends() {
	if len(bm.n.horizon.Weekends) == 0 {
		return
	}
	for _, e := range bm.n.salaried {
		c := bm.m.NewConstraint(mip.GreaterThanOrEqual, float64(bm.n.cfg.MinFreeWeekends))
		for _, w := range bm.n.horizon.Weekends {
			c.NewTerm(1.0, bm.freeWk.Get(weekendVar{Employee: e, Pair: w.Index}))
		}
	}
}

// addObjective builds the 30/40/30(+10) scalarized objective from spec.md
// §4.2, normalizing every term by its instance size so magnitudes are
// comparable across horizon sizes.
func (bm *builtModel) addObjective() {
	const (
		weightPreferences = 30.0
		weightCost        = 40.0
		weightWeekends    = 30.0
		weightFairness    = 10.0
	)

	descriptionParts := make([]string, 0, 4)

	// Term A: preferences.
	prefCells := 0
	for _, e := range bm.n.salaried {
		prefCells += len(bm.n.preferences[e.ID])
	}
	if prefCells < 1 {
		prefCells = 1
	}
	prefScale := weightPreferences * 100.0 / float64(prefCells)
	addedPreferenceTerm := false
	for _, e := range bm.n.salaried {
		for ds, v := range bm.n.preferences[e.ID] {
			if v != WorksPref && v != AvoidPref {
				continue
			}
			addedPreferenceTerm = true
			bm.m.Objective().NewTerm(float64(v)*prefScale, bm.x.Get(assignmentVar{Employee: e, Day: ds.Day, Shift: ds.Shift}))
		}
	}
	if addedPreferenceTerm {
		descriptionParts = append(descriptionParts, "preferences(30)")
	}

	// Term B: cost, minimized, so entered negated into the maximized
	// objective.
	for _, e := range bm.n.salaried {
		bm.m.Objective().NewTerm(-weightCost*bm.n.cfg.Costs.Regular, bm.reg[e.ID])
		bm.m.Objective().NewTerm(-weightCost*bm.n.cfg.Costs.Overtime, bm.ot[e.ID])
	}
	for _, e := range bm.n.contract {
		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				bm.m.Objective().NewTerm(-weightCost*bm.n.cfg.Costs.Contractor, bm.x.Get(assignmentVar{Employee: e, Day: d.Index, Shift: s}))
			}
		}
	}
	descriptionParts = append(descriptionParts, "cost(40)")

	// Term C: free weekends.
	weekendPairsCount := len(bm.n.horizon.Weekends) * len(bm.n.salaried)
	if weekendPairsCount < 1 {
		weekendPairsCount = 1
	}
	weekendScale := weightWeekends * 100.0 / float64(weekendPairsCount)
	if len(bm.n.horizon.Weekends) > 0 {
		for _, wv := range bm.weekendVars {
			bm.m.Objective().NewTerm(weekendScale, bm.freeWk.Get(wv))
		}
		descriptionParts = append(descriptionParts, "free_weekends(30)")
	}

	// Term D: optional contractor fairness, only when >= 2 contractors.
	if len(bm.n.contract) >= 2 {
		bm.addFairnessTerm(weightFairness)
		descriptionParts = append(descriptionParts, "contractor_fairness(10)")
	}

	bm.objectiveDescription = "maximize " + joinWithPlus(descriptionParts)
}

// addFairnessTerm implements Term D with a linear absolute-value envelope in
// place of a multiplication-equality constraint: for each contractor pair
// (i,j), an auxiliary Float gap[i,j] bounded below by both
// (shifts[i]-shifts[j]) and (shifts[j]-shifts[i]), i.e.
// gap[i,j] >= |shifts[i]-shifts[j]|. The objective penalizes each gap
// linearly with the constant coefficient scale*numDays, so the penalty grows
// with the gap's magnitude, not with its square.
func (bm *builtModel) addFairnessTerm(weight float64) {
	numDays := bm.n.horizon.NumDays()

	var pairs []contractorPair
	for i := 0; i < len(bm.n.contract); i++ {
		for j := i + 1; j < len(bm.n.contract); j++ {
			pairs = append(pairs, contractorPair{A: bm.n.contract[i], B: bm.n.contract[j]})
		}
	}
	bm.contractorPairs = pairs

	bm.fairnessGap = model.NewMultiMap(
		func(...contractorPair) mip.Float { return bm.m.NewFloat(0, float64(numDays)) },
		pairs,
	)

	numPairs := len(pairs)
	if numPairs < 1 {
		numPairs = 1
	}
	maxSumSq := numPairs * numDays * numDays
	if maxSumSq < 1 {
		maxSumSq = 1
	}
	scale := weight * 1000.0 / float64(maxSumSq)

	for _, p := range pairs {
		gap := bm.fairnessGap.Get(p)

		leqA := bm.m.NewConstraint(mip.LessThanOrEqual, 0.0)
		leqA.NewTerm(-1.0, gap)
		leqB := bm.m.NewConstraint(mip.LessThanOrEqual, 0.0)
		leqB.NewTerm(-1.0, gap)

		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				aVar := bm.x.Get(assignmentVar{Employee: p.A, Day: d.Index, Shift: s})
				bVar := bm.x.Get(assignmentVar{Employee: p.B, Day: d.Index, Shift: s})
				leqA.NewTerm(1.0, aVar)
				leqA.NewTerm(-1.0, bVar)
				leqB.NewTerm(1.0, bVar)
				leqB.NewTerm(-1.0, aVar)
			}
		}

		// Linear penalty on the gap, weighted by the gap's upper bound
		// numDays (documented substitution for a true quadratic term, see
		// SPEC_FULL.md §0).
		bm.m.Objective().NewTerm(-scale*float64(numDays), gap)
	}
}

func joinWithPlus(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " + "
		}
		out += p
	}
	if out == "" {
		return "(no active terms)"
	}
	return out
}
