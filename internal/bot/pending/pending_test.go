package pending_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/pending"
	"github.com/pokatrack/pokatrack/internal/redis"
	"github.com/pokatrack/pokatrack/internal/setup/config"
)

func setupTest(t *testing.T, window time.Duration) (*pending.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{Host: mr.Host(), Port: port}, zap.NewNop())
	t.Cleanup(manager.Close)

	store, err := pending.NewStore(manager, window, zap.NewNop())
	require.NoError(t, err)

	return store, mr
}

func TestStoreArmAndTake(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Arm(ctx, 100, 7))

	taken, err := store.Take(ctx, 100, 7)
	require.NoError(t, err)
	assert.True(t, taken)

	// Consumed on first take.
	taken, err = store.Take(ctx, 100, 7)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStoreTakeWrongUser(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Arm(ctx, 100, 7))

	// Another user's media does not consume the request.
	taken, err := store.Take(ctx, 100, 8)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = store.Take(ctx, 100, 7)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestStoreTakeNothingPending(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t, time.Minute)

	taken, err := store.Take(context.Background(), 100, 7)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStoreExpires(t *testing.T) {
	t.Parallel()

	store, mr := setupTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Arm(ctx, 100, 7))
	mr.FastForward(2 * time.Minute)

	taken, err := store.Take(ctx, 100, 7)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStoreKeyedPerGuildAndUser(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Arm(ctx, 100, 7))
	require.NoError(t, store.Arm(ctx, 100, 8))
	require.NoError(t, store.Arm(ctx, 200, 7))

	taken, err := store.Take(ctx, 100, 7)
	require.NoError(t, err)
	assert.True(t, taken)

	// The other requests stay armed independently.
	taken, err = store.Take(ctx, 100, 8)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = store.Take(ctx, 200, 7)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestStoreTakeConsumesExactlyOnce(t *testing.T) {
	t.Parallel()

	store, _ := setupTest(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Arm(ctx, 100, 7))

	// Two media messages racing for the same request: exactly one wins.
	results := make(chan bool, 2)

	for range 2 {
		go func() {
			taken, err := store.Take(ctx, 100, 7)
			assert.NoError(t, err)
			results <- taken
		}()
	}

	wins := 0

	for range 2 {
		if <-results {
			wins++
		}
	}

	assert.Equal(t, 1, wins)
}
