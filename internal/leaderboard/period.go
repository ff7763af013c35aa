package leaderboard

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownPeriod = errors.New("unknown period")

// Period is a symbolic leaderboard window anchored to the current
// instant.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// Periods lists every supported period in reporting order.
func Periods() []Period {
	return []Period{PeriodWeek, PeriodMonth, PeriodYear, PeriodAll}
}

// ParsePeriod converts a raw command name into a Period.
func ParsePeriod(raw string) (Period, error) {
	switch Period(raw) {
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return Period(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, raw)
	}
}

// Range resolves the period into a concrete [start, end] timestamp
// interval anchored to now. Calendar buckets are fixed, not rolling:
// "year" means the current calendar year, "month" the current calendar
// month and "week" the current ISO week starting on Monday.
func (p Period) Range(now time.Time) (time.Time, time.Time, error) {
	loc := now.Location()

	switch p {
	case PeriodAll:
		return time.Unix(0, 0).In(loc), now, nil

	case PeriodYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, int(999999*time.Microsecond), loc)

		return start, end, nil

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		// Day 0 of the next month normalizes to the last calendar day
		// of the current one, handling 28/29/30/31 day months.
		end := time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, loc)

		return start, end, nil

	case PeriodWeek:
		// Monday of the current ISO week.
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		monday := now.AddDate(0, 0, -daysSinceMonday)
		start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 7)

		return start, end, nil

	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, string(p))
	}
}
