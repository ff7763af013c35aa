package models

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/dbretry"
	"github.com/pokatrack/pokatrack/internal/database/types"
)

// EventModel handles database operations for recorded events.
type EventModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewEvent creates a new event model instance.
func NewEvent(db *bun.DB, logger *zap.Logger) *EventModel {
	return &EventModel{
		db:     db,
		logger: logger.Named("db_event"),
	}
}

// Insert appends one event for a member. Events are never updated or
// deleted afterwards.
func (m *EventModel) Insert(ctx context.Context, tx bun.IDB, event *types.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := tx.NewInsert().
		Model(event).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert event for member %d: %w", event.MemberID, err)
	}

	m.logger.Debug("Recorded event", zap.Int64("memberID", event.MemberID))

	return nil
}

// Leaderboard counts events per active member of a group inside the
// given time range with a single grouped query. Rows are ordered by
// count descending with member ID ascending as the tie-break, truncated
// to limit. Members without events in range are not returned.
func (m *EventModel) Leaderboard(
	ctx context.Context, groupID int64, start, end time.Time, limit int,
) ([]types.MemberCount, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]types.MemberCount, error) {
		var rows []types.MemberCount

		err := m.db.NewSelect().
			Model((*types.Event)(nil)).
			ColumnExpr("member.id AS member_id").
			ColumnExpr("member.user_id AS user_id").
			ColumnExpr("member.username AS username").
			ColumnExpr("member.nickname AS nickname").
			ColumnExpr("COUNT(event.id) AS count").
			Join("JOIN members AS member ON member.id = event.member_id").
			Where("member.group_id = ?", groupID).
			Where("member.is_active = TRUE").
			Where("event.created_at BETWEEN ? AND ?", start, end).
			GroupExpr("member.id").
			OrderExpr("count DESC, member.id ASC").
			Limit(limit).
			Scan(ctx, &rows)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate events for group %d: %w", groupID, err)
		}

		return rows, nil
	})
}
