// Package duration parses and humanizes the short mute-duration strings
// accepted by the mute command ("30s", "5m", "2h", "7d").
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pokatrack/pokatrack/pkg/utils"
)

var ErrInvalidDuration = errors.New("invalid duration")

var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

var unitForms = map[string]utils.PluralForms{
	"s": {"секунду", "секунды", "секунд"},
	"m": {"минуту", "минуты", "минут"},
	"h": {"час", "часа", "часов"},
	"d": {"день", "дня", "дней"},
}

// Parse converts a raw string of the form "<number><s|m|h|d>" into a
// duration. Returns ErrInvalidDuration for anything else.
func Parse(raw string) (time.Duration, error) {
	match := durationPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(raw)))
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	return time.Duration(value) * units[match[2]], nil
}

// Humanize renders a duration as a Russian phrase in the largest whole
// unit, e.g. "90s" becomes "1 минуту" and "48h" becomes "2 дня".
func Humanize(d time.Duration) string {
	totalSeconds := int64(d / time.Second)

	var (
		value int64
		unit  string
	)

	switch {
	case totalSeconds < 60:
		value, unit = totalSeconds, "s"
	case totalSeconds < 3600:
		value, unit = totalSeconds/60, "m"
	case totalSeconds < 86400:
		value, unit = totalSeconds/3600, "h"
	default:
		value, unit = totalSeconds/86400, "d"
	}

	return fmt.Sprintf("%d %s", value, utils.Plural(value, unitForms[unit]))
}
