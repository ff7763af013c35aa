package admin_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/admin"
	"github.com/pokatrack/pokatrack/internal/redis"
	"github.com/pokatrack/pokatrack/internal/setup/config"
)

func setupTest(t *testing.T, ttl time.Duration) (*admin.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	manager := redis.NewManager(&config.Redis{Host: mr.Host(), Port: port}, zap.NewNop())
	t.Cleanup(manager.Close)

	cache, err := admin.NewCache(manager, ttl, zap.NewNop())
	require.NoError(t, err)

	return cache, mr
}

func countingFetcher(calls *int, admins []uint64) admin.Fetcher {
	return func(context.Context) ([]uint64, error) {
		*calls++
		return admins, nil
	}
}

func TestAdminIDsCachesFetchResult(t *testing.T) {
	cache, _ := setupTest(t, time.Minute)

	ctx := t.Context()
	calls := 0
	fetch := countingFetcher(&calls, []uint64{1, 2, 3})

	admins, err := cache.AdminIDs(ctx, 42, fetch)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, admins)
	assert.Equal(t, 1, calls)

	// Second lookup is served from Redis.
	admins, err = cache.AdminIDs(ctx, 42, fetch)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, admins)
	assert.Equal(t, 1, calls)
}

func TestAdminIDsRefetchesAfterExpiry(t *testing.T) {
	cache, mr := setupTest(t, 30*time.Second)

	ctx := t.Context()
	calls := 0
	fetch := countingFetcher(&calls, []uint64{7})

	_, err := cache.AdminIDs(ctx, 42, fetch)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	mr.FastForward(31 * time.Second)

	_, err = cache.AdminIDs(ctx, 42, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAdminIDsKeyedPerGuild(t *testing.T) {
	cache, _ := setupTest(t, time.Minute)

	ctx := t.Context()

	first, err := cache.AdminIDs(ctx, 1, countingFetcher(new(int), []uint64{10}))
	require.NoError(t, err)

	second, err := cache.AdminIDs(ctx, 2, countingFetcher(new(int), []uint64{20}))
	require.NoError(t, err)

	assert.Equal(t, []uint64{10}, first)
	assert.Equal(t, []uint64{20}, second)
}

func TestIsAdmin(t *testing.T) {
	cache, _ := setupTest(t, time.Minute)

	ctx := t.Context()
	fetch := countingFetcher(new(int), []uint64{1, 2})

	isAdmin, err := cache.IsAdmin(ctx, 42, 2, fetch)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = cache.IsAdmin(ctx, 42, 3, fetch)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAdminIDsFetchError(t *testing.T) {
	cache, _ := setupTest(t, time.Minute)

	wantErr := errors.New("gateway unavailable")
	_, err := cache.AdminIDs(t.Context(), 42, func(context.Context) ([]uint64, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}
