package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromMonthJune2025(t *testing.T) {
	h, err := FromMonth(2025, time.June)
	require.NoError(t, err)
	require.Equal(t, 30, h.NumDays())
	require.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), h.Start)
	require.Equal(t, time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), h.End)

	// June 1 2025 is a Sunday.
	require.Equal(t, Sunday, h.Days[0].Weekday)
	// June 7 2025 is a Saturday.
	require.Equal(t, Saturday, h.Days[6].Weekday)
}

func TestFromRangeTrivialWeek(t *testing.T) {
	h, err := ParseRange("2025-06-01", "2025-06-07")
	require.NoError(t, err)
	require.Equal(t, 7, h.NumDays())
	// 2025-06-07 Saturday has no following Sunday inside the horizon.
	require.Len(t, h.Weekends, 0)
}

func TestFromRangeInvalidOrder(t *testing.T) {
	_, err := ParseRange("2025-06-10", "2025-06-01")
	require.Error(t, err)
}

func TestWeekendPairsFourWeekends(t *testing.T) {
	h, err := FromMonth(2025, time.June)
	require.NoError(t, err)
	// June 2025 has Saturdays on 7,14,21,28 each followed by a Sunday inside
	// the month, giving 4 full weekend pairs.
	require.Len(t, h.Weekends, 4)
	for i, w := range h.Weekends {
		require.Equal(t, i, w.Index)
		require.Equal(t, w.SatDay+1, w.SunDay)
		require.Equal(t, Saturday, h.Days[w.SatDay].Weekday)
		require.Equal(t, Sunday, h.Days[w.SunDay].Weekday)
	}
}

func TestFromMonthInvalid(t *testing.T) {
	_, err := FromMonth(2025, 13)
	require.Error(t, err)
}
