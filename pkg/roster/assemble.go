package roster

import "github.com/nextmv-io/sdk/mip"

// trueValue is the threshold above which a solver-returned Boolean value
// counts as 1, matching the teacher's own convention
// (nextmv-io-community-apps/shift-scheduling uses 0.9; we use the more
// permissive 0.5 since HiGHS returns exact 0/1 at MIP optimality and this
// also tolerates feasible-but-suboptimal solver noise).
const trueValue = 0.5

// assembleResult converts a raw solver assignment into the day-indexed
// roster, per-employee statistics, and cost breakdown described in
// spec.md §4.4.
func assembleResult(bm *builtModel, sr *solveResult, runID string) Result {
	res := Result{
		Status:                sr.status,
		RunID:                 runID,
		Diagnostics:           sr.diagnostics,
		ObjectiveDescription:  bm.objectiveDescription,
		Reason:                sr.reason,
		HoursWorked:           map[string]Hours{},
		FreeWeekends:          map[string]int{},
		HolidayDays:           map[string]int{},
		PreferenceSatisfaction: map[string]PreferenceStat{},
		ContractorStats:       map[string]ContractorStat{},
	}

	if sr.solution == nil || !sr.solution.HasValues() {
		return res
	}

	sol := sr.solution
	res.ObjectiveValue = sol.ObjectiveValue()

	isWorked := func(e Employee, d, s int) bool {
		return sol.Value(bm.x.Get(assignmentVar{Employee: e, Day: d, Shift: ShiftKind(s)})) > trueValue
	}
	isOvertime := func(e Employee, d, s int) bool {
		return sol.Value(bm.ox.Get(assignmentVar{Employee: e, Day: d, Shift: ShiftKind(s)})) > trueValue
	}

	employees := bm.n.employees()

	res.Roster = make([]RosterRow, len(bm.n.horizon.Days))
	for i, d := range bm.n.horizon.Days {
		row := RosterRow{Day: d.Index, Date: d.Date, Cells: make(map[string]string, len(employees))}
		for _, e := range employees {
			row.Cells[e.ID] = cellLabel(bm, isWorked, isOvertime, e, d.Index)
		}
		res.Roster[i] = row
	}

	for _, e := range bm.n.salaried {
		hoursWorked := 0
		regShifts := 0
		otShifts := 0
		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				if !isWorked(e, d.Index, int(s)) {
					continue
				}
				hoursWorked += 8
				if isOvertime(e, d.Index, int(s)) {
					otShifts++
				} else {
					regShifts++
				}
			}
		}
		res.HoursWorked[e.ID] = Hours{
			Regular:  regShifts * 8,
			Overtime: otShifts * 8,
			Total:    hoursWorked,
		}

		// free_weekends_count is evaluated directly from the assignment,
		// not from free_wk, to guard against a model-builder bug in the
		// linearization (spec.md §4.4).
		freeCount := 0
		for _, w := range bm.n.horizon.Weekends {
			satFree := !isWorked(e, w.SatDay, int(Morning)) && !isWorked(e, w.SatDay, int(Afternoon))
			sunFree := !isWorked(e, w.SunDay, int(Morning)) && !isWorked(e, w.SunDay, int(Afternoon))
			if satFree && sunFree {
				freeCount++
			}
		}
		res.FreeWeekends[e.ID] = freeCount

		holidayDays := 0
		prefs := bm.n.preferences[e.ID]
		for _, d := range bm.n.horizon.Days {
			if prefs[DayShift{Day: d.Index, Shift: Morning}] == Holiday || prefs[DayShift{Day: d.Index, Shift: Afternoon}] == Holiday {
				holidayDays++
			}
		}
		res.HolidayDays[e.ID] = holidayDays

		countTotal, countSatisfied := 0, 0
		for ds, v := range prefs {
			if v != WorksPref && v != AvoidPref {
				continue
			}
			countTotal++
			worked := isWorked(e, ds.Day, int(ds.Shift))
			if (v == WorksPref && worked) || (v == AvoidPref && !worked) {
				countSatisfied++
			}
		}
		percentage := 100.0
		if countTotal > 0 {
			percentage = 100.0 * float64(countSatisfied) / float64(countTotal)
		}
		res.PreferenceSatisfaction[e.ID] = PreferenceStat{
			CountTotal:     countTotal,
			CountSatisfied: countSatisfied,
			Percentage:     percentage,
		}
	}

	minShifts, maxShifts := -1, -1
	for _, e := range bm.n.contract {
		avail := bm.n.availability[e.ID]
		totalShifts, morning, afternoon, slotsAvailable := 0, 0, 0, 0
		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				if avail[DayShift{Day: d.Index, Shift: s}] {
					slotsAvailable++
				}
				if !isWorked(e, d.Index, int(s)) {
					continue
				}
				totalShifts++
				if s == Morning {
					morning++
				} else {
					afternoon++
				}
			}
		}
		utilization := 0.0
		if slotsAvailable > 0 {
			utilization = float64(totalShifts) / float64(slotsAvailable)
		}
		res.ContractorStats[e.ID] = ContractorStat{
			TotalShifts:     totalShifts,
			MorningShifts:   morning,
			AfternoonShifts: afternoon,
			TotalHours:      totalShifts * 8,
			Utilization:     utilization,
		}
		if minShifts == -1 || totalShifts < minShifts {
			minShifts = totalShifts
		}
		if totalShifts > maxShifts {
			maxShifts = totalShifts
		}
	}
	if len(bm.n.contract) >= 2 {
		res.ContractorShiftSpread = maxShifts - minShifts
	}

	res.Cost = computeCostBreakdown(bm, sol)

	return res
}

func computeCostBreakdown(bm *builtModel, sol mip.Solution) CostBreakdown {
	var cb CostBreakdown
	for _, e := range bm.n.salaried {
		regShifts := sol.Value(bm.reg[e.ID])
		otShifts := sol.Value(bm.ot[e.ID])
		cb.RegularCost += regShifts * bm.n.cfg.Costs.Regular
		cb.OvertimeCost += otShifts * bm.n.cfg.Costs.Overtime
	}
	totalContractorShifts := 0.0
	for _, e := range bm.n.contract {
		for _, d := range bm.n.horizon.Days {
			for _, s := range Shifts {
				if sol.Value(bm.x.Get(assignmentVar{Employee: e, Day: d.Index, Shift: s})) > trueValue {
					totalContractorShifts++
				}
			}
		}
	}
	cb.ContractorCost = totalContractorShifts * bm.n.cfg.Costs.Contractor
	cb.TotalCost = cb.RegularCost + cb.OvertimeCost + cb.ContractorCost
	return cb
}

// cellLabel produces one roster cell per spec.md §4.4's alphabet: M, P,
// M(S), P(S), R, F.
func cellLabel(bm *builtModel, isWorked func(Employee, int, int) bool, isOvertime func(Employee, int, int) bool, e Employee, day int) string {
	morningWorked := isWorked(e, day, int(Morning))
	afternoonWorked := isWorked(e, day, int(Afternoon))

	switch {
	case morningWorked:
		if e.Kind == Salaried && isOvertime(e, day, int(Morning)) {
			return "M(S)"
		}
		return "M"
	case afternoonWorked:
		if e.Kind == Salaried && isOvertime(e, day, int(Afternoon)) {
			return "P(S)"
		}
		return "P"
	default:
		if e.Kind == Salaried {
			prefs := bm.n.preferences[e.ID]
			if prefs[DayShift{Day: day, Shift: Morning}] == Holiday || prefs[DayShift{Day: day, Shift: Afternoon}] == Holiday {
				return "F"
			}
		}
		return "R"
	}
}
