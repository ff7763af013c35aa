package duration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokatrack/pokatrack/internal/duration"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "45s", want: 45 * time.Second},
		{name: "minutes", input: "5m", want: 5 * time.Minute},
		{name: "hours", input: "2h", want: 2 * time.Hour},
		{name: "days", input: "7d", want: 7 * 24 * time.Hour},
		{name: "uppercase", input: "10M", want: 10 * time.Minute},
		{name: "surrounding spaces", input: " 30s ", want: 30 * time.Second},
		{name: "missing unit", input: "30", wantErr: true},
		{name: "unknown unit", input: "3w", wantErr: true},
		{name: "negative", input: "-5m", wantErr: true},
		{name: "unit first", input: "m5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := duration.Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, duration.ErrInvalidDuration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHumanize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    time.Duration
		expected string
	}{
		{31 * time.Second, "31 секунду"},
		{45 * time.Second, "45 секунд"},
		{90 * time.Second, "1 минуту"},
		{2 * time.Minute, "2 минуты"},
		{5 * time.Minute, "5 минут"},
		{11 * time.Minute, "11 минут"},
		{21 * time.Minute, "21 минуту"},
		{time.Hour, "1 час"},
		{3 * time.Hour, "3 часа"},
		{12 * time.Hour, "12 часов"},
		{24 * time.Hour, "1 день"},
		{48 * time.Hour, "2 дня"},
		{7 * 24 * time.Hour, "7 дней"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, duration.Humanize(tt.input), "input=%s", tt.input)
	}
}
