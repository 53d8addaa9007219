package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeBuiltModel(t *testing.T, cfg Config) *builtModel {
	t.Helper()
	n, err := cfg.validate()
	require.NoError(t, err)
	bm, err := buildModel(n)
	require.NoError(t, err)
	return bm
}

func TestCellLabelMorningRegular(t *testing.T) {
	bm := fakeBuiltModel(t, baseConfig())
	e := Employee{ID: "s0", Kind: Salaried}

	isWorked := func(_ Employee, d, s int) bool { return d == 0 && s == int(Morning) }
	isOvertime := func(Employee, int, int) bool { return false }

	require.Equal(t, "M", cellLabel(bm, isWorked, isOvertime, e, 0))
}

func TestCellLabelAfternoonOvertime(t *testing.T) {
	bm := fakeBuiltModel(t, baseConfig())
	e := Employee{ID: "s0", Kind: Salaried}

	isWorked := func(_ Employee, d, s int) bool { return s == int(Afternoon) }
	isOvertime := func(_ Employee, d, s int) bool { return s == int(Afternoon) }

	require.Equal(t, "P(S)", cellLabel(bm, isWorked, isOvertime, e, 0))
}

func TestCellLabelContractorNeverGetsOvertimeSuffix(t *testing.T) {
	bm := fakeBuiltModel(t, baseConfig())
	e := Employee{ID: "c0", Kind: Contractor}

	isWorked := func(_ Employee, d, s int) bool { return s == int(Morning) }
	isOvertime := func(Employee, int, int) bool { return true } // would be wrong if ever consulted

	require.Equal(t, "M", cellLabel(bm, isWorked, isOvertime, e, 0))
}

func TestCellLabelRestVersusHoliday(t *testing.T) {
	cfg := baseConfig()
	cfg.Preferences = map[string]map[DayShift1Based]int{
		"s0": {
			{Day: 1, Shift: Morning}:   int(Holiday),
			{Day: 1, Shift: Afternoon}: int(Holiday),
		},
	}
	bm := fakeBuiltModel(t, cfg)
	e := Employee{ID: "s0", Kind: Salaried}

	neverWorked := func(Employee, int, int) bool { return false }
	neverOvertime := func(Employee, int, int) bool { return false }

	require.Equal(t, "F", cellLabel(bm, neverWorked, neverOvertime, e, 0))
	require.Equal(t, "R", cellLabel(bm, neverWorked, neverOvertime, e, 1))
}

func TestCellLabelContractorRestHasNoHolidayLabel(t *testing.T) {
	bm := fakeBuiltModel(t, baseConfig())
	e := Employee{ID: "c0", Kind: Contractor}

	neverWorked := func(Employee, int, int) bool { return false }
	neverOvertime := func(Employee, int, int) bool { return false }

	require.Equal(t, "R", cellLabel(bm, neverWorked, neverOvertime, e, 0))
}
