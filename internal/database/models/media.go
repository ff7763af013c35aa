package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/types"
)

// MediaModel handles database operations for trigger media settings.
type MediaModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMedia creates a new trigger media model instance.
func NewMedia(db *bun.DB, logger *zap.Logger) *MediaModel {
	return &MediaModel{
		db:     db,
		logger: logger.Named("db_media"),
	}
}

// GetByGroup retrieves the trigger media configured for a group.
// Returns types.ErrTriggerNotSet if the group has no trigger media.
func (m *MediaModel) GetByGroup(ctx context.Context, tx bun.IDB, groupID int64) (*types.TriggerMedia, error) {
	var media types.TriggerMedia

	err := tx.NewSelect().
		Model(&media).
		Where("group_id = ?", groupID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrTriggerNotSet
		}

		return nil, fmt.Errorf("failed to get trigger media for group %d: %w", groupID, err)
	}

	return &media, nil
}

// Upsert stores the trigger media fingerprint for a group, overwriting
// any previously configured value. At most one row exists per group.
func (m *MediaModel) Upsert(ctx context.Context, tx bun.IDB, media *types.TriggerMedia) error {
	now := time.Now()
	if media.CreatedAt.IsZero() {
		media.CreatedAt = now
	}

	media.UpdatedAt = now

	_, err := tx.NewInsert().
		Model(media).
		On("CONFLICT (group_id) DO UPDATE").
		Set("fingerprint = EXCLUDED.fingerprint").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert trigger media for group %d: %w", media.GroupID, err)
	}

	m.logger.Debug("Set trigger media",
		zap.Int64("groupID", media.GroupID),
		zap.String("fingerprint", media.Fingerprint))

	return nil
}
