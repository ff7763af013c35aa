package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/models"
	"github.com/pokatrack/pokatrack/internal/database/types"
	"github.com/pokatrack/pokatrack/internal/leaderboard"
)

// StatsService computes per-period leaderboards for a guild.
type StatsService struct {
	groups *models.GroupModel
	events *models.EventModel
	logger *zap.Logger
}

// NewStats creates a new stats service.
func NewStats(groups *models.GroupModel, events *models.EventModel, logger *zap.Logger) *StatsService {
	return &StatsService{
		groups: groups,
		events: events,
		logger: logger.Named("stats_service"),
	}
}

// Top returns the event counts of the guild's active members inside the
// period, sorted by count descending, at most limit rows. The query is
// read-only and runs as a single statement, so no explicit transaction
// scope is needed.
// Returns types.ErrGroupNotFound if the guild was never registered.
func (s *StatsService) Top(
	ctx context.Context, guildID uint64, period leaderboard.Period, limit int,
) ([]types.MemberCount, error) {
	start, end, err := period.Range(time.Now())
	if err != nil {
		return nil, err
	}

	group, err := s.groups.GetByGuildID(ctx, guildID)
	if err != nil {
		return nil, err
	}

	rows, err := s.events.Leaderboard(ctx, group.ID, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	s.logger.Debug("Built leaderboard",
		zap.Uint64("guildID", guildID),
		zap.String("period", string(period)),
		zap.Int("rows", len(rows)))

	return rows, nil
}
