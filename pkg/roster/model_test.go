package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxWorkDaysInWindow(t *testing.T) {
	cases := []struct {
		ratio float64
		want  int
	}{
		{ratio: 1.0, want: 7},
		{ratio: 3.0, want: 10},
		{ratio: 5.0, want: 11},
	}
	for _, c := range cases {
		require.Equal(t, c.want, maxWorkDaysInWindow(c.ratio))
	}
}

func TestBuildModelAssignmentVarCount(t *testing.T) {
	cfg := baseConfig()
	n, err := cfg.validate()
	require.NoError(t, err)

	bm, err := buildModel(n)
	require.NoError(t, err)

	numDays := n.horizon.NumDays()
	require.Len(t, bm.allAssignments, (len(n.salaried)+len(n.contract))*numDays*2)
	require.Len(t, bm.salariedAssignments, len(n.salaried)*numDays*2)
}

func TestBuildModelWeekendVarsOnlyForSalaried(t *testing.T) {
	cfg := baseConfig()
	cfg.Horizon = HorizonInput{Year: 2025, Month: 6}
	cfg.NumContractors = 2
	cfg.Availability = fullAvailability(2, 30)
	n, err := cfg.validate()
	require.NoError(t, err)

	bm, err := buildModel(n)
	require.NoError(t, err)

	for _, wv := range bm.weekendVars {
		require.Equal(t, Salaried, wv.Employee.Kind)
	}
	require.Len(t, bm.weekendVars, len(n.salaried)*len(n.horizon.Weekends))
}

func TestAssignmentVarID(t *testing.T) {
	a := assignmentVar{Employee: Employee{ID: "s0"}, Day: 3, Shift: Afternoon}
	require.Equal(t, "s0|3|P", a.ID())
}

func TestContractorPairIDSymmetricInputsDistinctOrder(t *testing.T) {
	p1 := contractorPair{A: Employee{ID: "c0"}, B: Employee{ID: "c1"}}
	p2 := contractorPair{A: Employee{ID: "c1"}, B: Employee{ID: "c0"}}
	require.NotEqual(t, p1.ID(), p2.ID())
}

func TestObjectiveDescriptionIncludesEveryActiveTerm(t *testing.T) {
	cfg := baseConfig()
	// June 2025 has weekend pairs, so the free-weekends term is active.
	cfg.Horizon = HorizonInput{Year: 2025, Month: 6}
	cfg.MinFreeWeekends = 1
	cfg.Preferences = map[string]map[DayShift1Based]int{
		"s0": {{Day: 1, Shift: Morning}: int(WorksPref)},
	}
	n, err := cfg.validate()
	require.NoError(t, err)

	bm, err := buildModel(n)
	require.NoError(t, err)

	require.Contains(t, bm.objectiveDescription, "preferences")
	require.Contains(t, bm.objectiveDescription, "cost(40)")
	require.Contains(t, bm.objectiveDescription, "free_weekends(30)")
}

func TestBuildModelThreeContractorsAddsFairnessPairs(t *testing.T) {
	cfg := baseConfig()
	cfg.NumSalaried = 1
	cfg.MaxRegularHours = map[string]int{"s0": 40}
	cfg.NumContractors = 3
	cfg.Availability = fullAvailability(3, 7)
	n, err := cfg.validate()
	require.NoError(t, err)

	bm, err := buildModel(n)
	require.NoError(t, err)

	require.Len(t, bm.contractorPairs, 3) // C(3,2) = 3
	require.Contains(t, bm.objectiveDescription, "contractor_fairness(10)")
}
