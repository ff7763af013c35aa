package leaderboard

import (
	"fmt"
	"strings"

	"github.com/pokatrack/pokatrack/internal/database/types"
	"github.com/pokatrack/pokatrack/pkg/utils"
)

// eventForms are the grammatical-number forms of the event counter.
var eventForms = utils.PluralForms{"раз", "раза", "раз"}

// Report renders a leaderboard as a single text block: a period-specific
// header line, a blank line, then one line per member.
type Report struct {
	period Period
	rows   []types.MemberCount
	limit  int
}

// NewReport creates a report for the given period and aggregation rows.
func NewReport(period Period, rows []types.MemberCount, limit int) *Report {
	return &Report{
		period: period,
		rows:   rows,
		limit:  limit,
	}
}

// Build renders the report text.
func (r *Report) Build() string {
	return r.header() + "\n\n" + r.body()
}

func (r *Report) header() string {
	header := fmt.Sprintf("Топ-%d засранцев", r.limit)

	switch r.period {
	case PeriodWeek:
		return header + " текущей недели:"
	case PeriodMonth:
		return header + " текущего месяца:"
	case PeriodYear:
		return header + " текущего года:"
	case PeriodAll:
		return header + " за всё время:"
	default:
		return header + ":"
	}
}

func (r *Report) body() string {
	rows := r.rows
	if len(rows) > r.limit {
		rows = rows[:r.limit]
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, formatLine(i+1, row))
	}

	return strings.Join(lines, "\n")
}

func formatLine(rank int, row types.MemberCount) string {
	name := displayName(row)
	ending := utils.Plural(row.Count, eventForms)

	return fmt.Sprintf("**%d**: %s - *%d %s*", rank, name, row.Count, ending)
}

// displayName falls back from username to nickname to a generated
// placeholder so that a line is never blank.
func displayName(row types.MemberCount) string {
	if row.Username != "" {
		return row.Username
	}

	if row.Nickname != "" {
		return row.Nickname
	}

	return fmt.Sprintf("участник %d", row.UserID)
}
