package dbretry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokatrack/pokatrack/internal/database/dbretry"
)

func TestIsRetryableError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "connection reset", err: errors.New("read tcp: connection reset by peer"), want: true},
		{name: "broken pipe", err: errors.New("write: broken pipe"), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "io timeout", err: errors.New("read tcp: i/o timeout"), want: true},
		{name: "constraint violation", err: errors.New("duplicate key value violates unique constraint"), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, dbretry.IsRetryableError(tt.err))
		})
	}
}

func TestTransactionRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	calls := 0

	err := dbretry.Transaction(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("write: broken pipe")
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestTransactionStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("group not found")
	calls := 0

	err := dbretry.Transaction(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	})

	// Non-transient errors are not retried and stay matchable through
	// the wrapping.
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestOperationReturnsResult(t *testing.T) {
	t.Parallel()

	got, err := dbretry.Operation(context.Background(), func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}
