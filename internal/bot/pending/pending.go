// Package pending tracks set-media requests that are waiting for a
// follow-up media message. The state lives in Redis with a short TTL so
// an abandoned request expires on its own.
package pending

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/redis"
)

// KeyPrefix identifies pending set-media entries in Redis.
const KeyPrefix = "setmedia:"

// Store arms and consumes pending set-media requests. Requests are
// keyed per guild and user; arming again refreshes the expiry.
type Store struct {
	client rueidis.Client
	window time.Duration
	logger *zap.Logger
}

// NewStore initializes the pending store on the state database.
func NewStore(redisManager *redis.Manager, window time.Duration, logger *zap.Logger) (*Store, error) {
	client, err := redisManager.GetClient(redis.StateDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get Redis client for pending store: %w", err)
	}

	return &Store{
		client: client,
		window: window,
		logger: logger.Named("pending"),
	}, nil
}

func key(guildID, userID uint64) string {
	return KeyPrefix + strconv.FormatUint(guildID, 10) + ":" + strconv.FormatUint(userID, 10)
}

// Arm records that userID requested a trigger media change for the
// guild. The request expires after the configured window.
func (s *Store) Arm(ctx context.Context, guildID, userID uint64) error {
	err := s.client.Do(ctx, s.client.B().Set().Key(key(guildID, userID)).Value("1").Ex(s.window).Build()).Error()
	if err != nil {
		return fmt.Errorf("failed to arm pending set-media for guild %d: %w", guildID, err)
	}

	s.logger.Debug("Armed pending set-media",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID))

	return nil
}

// Take consumes the pending request of userID in the guild. The GETDEL
// makes consumption atomic: of two concurrent media messages from the
// same user, exactly one observes the request.
func (s *Store) Take(ctx context.Context, guildID, userID uint64) (bool, error) {
	_, err := s.client.Do(ctx, s.client.B().Getdel().Key(key(guildID, userID)).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to take pending set-media for guild %d: %w", guildID, err)
	}

	return true, nil
}
