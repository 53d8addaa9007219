package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func baseConfig() Config {
	return Config{
		Horizon:            HorizonInput{DateStart: "2025-06-01", DateEnd: "2025-06-07"},
		NumSalaried:        3,
		NumContractors:     0,
		MaxRegularHours:    map[string]int{"s0": 40, "s1": 40, "s2": 40},
		MaxOvertime:        0,
		MinFreeWeekends:    0,
		MaxConsecutiveDays: 5,
		WorkRestRatio:      3.0,
	}
}

func TestValidateRejectsZeroSalaried(t *testing.T) {
	c := baseConfig()
	c.NumSalaried = 0
	_, err := c.validate()
	require.Error(t, err)
	require.Equal(t, CodeConfig, CodeOf(err))
}

func TestValidateRejectsBadConsecutiveDays(t *testing.T) {
	c := baseConfig()
	c.MaxConsecutiveDays = 7
	_, err := c.validate()
	require.Error(t, err)
}

func TestValidateRejectsMissingMaxRegularHours(t *testing.T) {
	c := baseConfig()
	delete(c.MaxRegularHours, "s1")
	_, err := c.validate()
	require.Error(t, err)
}

func TestValidateRejectsDateOrder(t *testing.T) {
	c := baseConfig()
	c.Horizon = HorizonInput{DateStart: "2025-06-10", DateEnd: "2025-06-01"}
	_, err := c.validate()
	require.Error(t, err)
}

func TestValidateRejectsUnknownPreferenceValue(t *testing.T) {
	c := baseConfig()
	c.Preferences = map[string]map[DayShift1Based]int{
		"s0": {{Day: 1, Shift: Morning}: 5},
	}
	_, err := c.validate()
	require.Error(t, err)
}

func TestValidateDefaultsCostsAndTimeLimit(t *testing.T) {
	c := baseConfig()
	n, err := c.validate()
	require.NoError(t, err)
	require.Equal(t, DefaultCosts, n.cfg.Costs)
	require.Equal(t, DefaultTimeLimitSeconds, n.cfg.TimeLimitSeconds)
}

func TestValidateMonthAndRangeAreMutuallyExclusive(t *testing.T) {
	c := baseConfig()
	c.Horizon.Year = 2025
	c.Horizon.Month = 6
	_, err := c.validate()
	require.Error(t, err)
}

func TestValidateAcceptsMonthForm(t *testing.T) {
	c := baseConfig()
	c.Horizon = HorizonInput{Year: 2025, Month: 6}
	n, err := c.validate()
	require.NoError(t, err)
	require.Equal(t, 30, n.horizon.NumDays())
}
