package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/focusplug/focusplug/internal/timeutil"
)

func TestFormatClock(t *testing.T) {
	testCases := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{65, "1:05"},
		{59, "0:59"},
		{0, "0:00"},
		{3600, "60:00"},
		{-4, "0:00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, timeutil.FormatClock(tc.seconds), "seconds=%d", tc.seconds)
	}
}

func TestFormatFocusTime(t *testing.T) {
	assert.Equal(t, "1h 15m", timeutil.FormatFocusTime(4500, false))
	assert.Equal(t, "45m", timeutil.FormatFocusTime(2700, false))
	assert.Equal(t, "0h 45m", timeutil.FormatFocusTime(2700, true))
	assert.Equal(t, "41h 45m", timeutil.FormatFocusTime(150300, true))
}

func TestDaysBetween(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	now := time.Date(2025, time.March, 10, 8, 0, 0, 0, loc)

	testCases := []struct {
		name string
		from time.Time
		want int
	}{
		{"same day", now.Add(-7 * time.Hour), 0},
		{"late yesterday", time.Date(2025, time.March, 9, 23, 30, 0, 0, loc), 1},
		{"three days ago", now.AddDate(0, 0, -3), 3},
		{"tomorrow", now.AddDate(0, 0, 1), -1},
		{"across month", time.Date(2025, time.February, 28, 12, 0, 0, 0, loc), 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, timeutil.DaysBetween(tc.from, now))
		})
	}
}

func TestSameDay(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 5, 0, 0, time.UTC)

	assert.True(t, timeutil.SameDay(now.Add(20*time.Hour), now))
	assert.False(t, timeutil.SameDay(now.Add(-10*time.Minute), now))
}

func TestPeriodRange(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC)

	start, end := timeutil.PeriodRange(timeutil.PeriodYesterday, now)
	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC), end)

	start, end = timeutil.PeriodRange(timeutil.Period7Days, now)
	assert.Equal(t, time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 10, 23, 59, 59, 0, time.UTC), end)

	start, _ = timeutil.PeriodRange(timeutil.PeriodAllTime, now)
	assert.True(t, start.IsZero())
}

func TestToKeySortsChronologically(t *testing.T) {
	loc := time.FixedZone("east", 5*60*60)

	earlier := time.Date(2025, time.March, 10, 9, 0, 0, 500_000_000, time.UTC)
	later := time.Date(2025, time.March, 10, 14, 0, 0, 510_000_000, loc) // 09:00:00.51 UTC

	assert.Less(t, string(timeutil.ToKey(earlier)), string(timeutil.ToKey(later)))
	assert.Equal(t, "2025-03-10T09:00:00.500000000Z", string(timeutil.ToKey(earlier)))
}
