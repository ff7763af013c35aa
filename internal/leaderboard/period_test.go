package leaderboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokatrack/pokatrack/internal/leaderboard"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    leaderboard.Period
		wantErr bool
	}{
		{name: "week", input: "week", want: leaderboard.PeriodWeek},
		{name: "month", input: "month", want: leaderboard.PeriodMonth},
		{name: "year", input: "year", want: leaderboard.PeriodYear},
		{name: "all", input: "all", want: leaderboard.PeriodAll},
		{name: "unknown", input: "decade", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "Week", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := leaderboard.ParsePeriod(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, leaderboard.ErrUnknownPeriod)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodRangeWeek(t *testing.T) {
	t.Parallel()

	// 2024-04-18 is a Thursday; the ISO week starts Monday 2024-04-15.
	now := time.Date(2024, time.April, 18, 13, 45, 12, 0, time.UTC)

	start, end, err := leaderboard.PeriodWeek.Range(now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start.AddDate(0, 0, 7), end)
}

func TestPeriodRangeWeekOnEveryWeekday(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)

	for offset := range 7 {
		now := monday.AddDate(0, 0, offset).Add(10 * time.Hour)

		start, end, err := leaderboard.PeriodWeek.Range(now)
		require.NoError(t, err)

		assert.Equal(t, monday, start, "weekday offset %d", offset)
		assert.Equal(t, monday.AddDate(0, 0, 7), end, "weekday offset %d", offset)
	}
}

func TestPeriodRangeMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		now     time.Time
		lastDay int
	}{
		{
			name:    "february non-leap",
			now:     time.Date(2023, time.February, 10, 8, 0, 0, 0, time.UTC),
			lastDay: 28,
		},
		{
			name:    "february leap",
			now:     time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC),
			lastDay: 29,
		},
		{
			name:    "april",
			now:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			lastDay: 30,
		},
		{
			name:    "january",
			now:     time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC),
			lastDay: 31,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, err := leaderboard.PeriodMonth.Range(tt.now)
			require.NoError(t, err)

			assert.Equal(t, time.Date(tt.now.Year(), tt.now.Month(), 1, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(tt.now.Year(), tt.now.Month(), tt.lastDay, 23, 59, 59, 0, time.UTC), end)
		})
	}
}

func TestPeriodRangeYear(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)

	start, end, err := leaderboard.PeriodYear.Range(now)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2024, end.Year())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
	assert.True(t, end.After(now))
}

func TestPeriodRangeAll(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC)

	start, end, err := leaderboard.PeriodAll.Range(now)
	require.NoError(t, err)

	assert.Equal(t, int64(0), start.Unix())
	assert.True(t, end.Equal(now))
}

func TestPeriodRangeOrdering(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.February, 29, 6, 30, 0, 0, time.UTC)

	for _, period := range leaderboard.Periods() {
		start, end, err := period.Range(now)
		require.NoError(t, err)
		assert.True(t, start.Before(end), "period %s", period)
	}
}

func TestPeriodRangeUnknown(t *testing.T) {
	t.Parallel()

	_, _, err := leaderboard.Period("fortnight").Range(time.Now())
	require.ErrorIs(t, err, leaderboard.ErrUnknownPeriod)
}
