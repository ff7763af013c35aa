package leaderboard_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokatrack/pokatrack/internal/database/types"
	"github.com/pokatrack/pokatrack/internal/leaderboard"
)

func TestReportBuild(t *testing.T) {
	t.Parallel()

	rows := []types.MemberCount{
		{MemberID: 1, UserID: 100, Username: "vasya", Count: 3},
		{MemberID: 2, UserID: 200, Nickname: "Петя", Count: 2},
		{MemberID: 3, UserID: 300, Count: 1},
	}

	report := leaderboard.NewReport(leaderboard.PeriodWeek, rows, 10).Build()

	lines := strings.Split(report, "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, "Топ-10 засранцев текущей недели:", lines[0])
	assert.Empty(t, lines[1])
	assert.Equal(t, "**1**: vasya - *3 раза*", lines[2])
	assert.Equal(t, "**2**: Петя - *2 раза*", lines[3])
	assert.Equal(t, "**3**: участник 300 - *1 раз*", lines[4])
}

func TestReportHeaderPerPeriod(t *testing.T) {
	t.Parallel()

	rows := []types.MemberCount{
		{MemberID: 1, UserID: 100, Username: "vasya", Count: 3},
	}

	seen := make(map[string]leaderboard.Period)

	for _, period := range leaderboard.Periods() {
		report := leaderboard.NewReport(period, rows, 10).Build()
		header := strings.SplitN(report, "\n", 2)[0]

		prev, duplicate := seen[header]
		assert.False(t, duplicate, "periods %s and %s share header %q", prev, period, header)
		seen[header] = period
	}
}

func TestReportTruncatesToLimit(t *testing.T) {
	t.Parallel()

	rows := make([]types.MemberCount, 5)
	for i := range rows {
		rows[i] = types.MemberCount{
			MemberID: int64(i + 1),
			UserID:   uint64(i + 1),
			Username: "user",
			Count:    int64(10 - i),
		}
	}

	report := leaderboard.NewReport(leaderboard.PeriodAll, rows, 3).Build()

	// Header, blank line and exactly three body lines.
	assert.Len(t, strings.Split(report, "\n"), 5)
	assert.Contains(t, report, "Топ-3")
}

func TestReportCounterForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count    int64
		expected string
	}{
		{1, "1 раз"},
		{2, "2 раза"},
		{4, "4 раза"},
		{5, "5 раз"},
		{11, "11 раз"},
		{21, "21 раз"},
		{22, "22 раза"},
	}

	for _, tt := range tests {
		rows := []types.MemberCount{{MemberID: 1, UserID: 1, Username: "vasya", Count: tt.count}}
		report := leaderboard.NewReport(leaderboard.PeriodAll, rows, 10).Build()
		assert.Contains(t, report, tt.expected)
	}
}
