// Package admin caches per-guild administrator ID sets in Redis so that
// permission checks do not hit the chat platform on every event.
package admin

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/redis"
)

// AdminKeyPrefix identifies admin list entries in Redis.
const AdminKeyPrefix = "admins:"

// Fetcher resolves the current administrator IDs of a guild from the
// chat platform. It is only invoked on a cache miss.
type Fetcher func(ctx context.Context) ([]uint64, error)

// Cache memoizes guild administrator lists for a short TTL. The cache is
// an optimization only: any Redis failure degrades to a direct fetch.
type Cache struct {
	client rueidis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCache initializes the admin cache on the shared cache database.
func NewCache(redisManager *redis.Manager, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	client, err := redisManager.GetClient(redis.CacheDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client for admin cache: %w", err)
	}

	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("admin_cache"),
	}, nil
}

// AdminIDs returns the administrator IDs of a guild, preferring the
// cached copy and falling back to fetch on a miss.
func (c *Cache) AdminIDs(ctx context.Context, guildID uint64, fetch Fetcher) ([]uint64, error) {
	key := AdminKeyPrefix + strconv.FormatUint(guildID, 10)

	data, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err == nil {
		var admins []uint64
		if err := sonic.Unmarshal(data, &admins); err == nil {
			return admins, nil
		}

		c.logger.Warn("Invalid admin list entry in Redis",
			zap.Uint64("guildID", guildID))
	} else if !rueidis.IsRedisNil(err) {
		c.logger.Warn("Failed to get admin list from Redis",
			zap.Uint64("guildID", guildID),
			zap.Error(err))
	}

	admins, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admins for guild %d: %w", guildID, err)
	}

	if data, err := sonic.Marshal(admins); err == nil {
		err = c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(data)).Ex(c.ttl).Build()).Error()
		if err != nil {
			c.logger.Warn("Failed to store admin list in Redis",
				zap.Uint64("guildID", guildID),
				zap.Error(err))
		}
	}

	c.logger.Debug("Refreshed admin list",
		zap.Uint64("guildID", guildID),
		zap.Int("count", len(admins)))

	return admins, nil
}

// IsAdmin reports whether userID administers the guild.
func (c *Cache) IsAdmin(ctx context.Context, guildID, userID uint64, fetch Fetcher) (bool, error) {
	admins, err := c.AdminIDs(ctx, guildID, fetch)
	if err != nil {
		return false, err
	}

	return slices.Contains(admins, userID), nil
}
