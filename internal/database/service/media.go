package service

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/dbretry"
	"github.com/pokatrack/pokatrack/internal/database/models"
	"github.com/pokatrack/pokatrack/internal/database/types"
)

// MediaService handles the trigger media setting of a group.
type MediaService struct {
	db     *bun.DB
	groups *models.GroupModel
	media  *models.MediaModel
	logger *zap.Logger
}

// NewMedia creates a new media service.
func NewMedia(db *bun.DB, groups *models.GroupModel, media *models.MediaModel, logger *zap.Logger) *MediaService {
	return &MediaService{
		db:     db,
		groups: groups,
		media:  media,
		logger: logger.Named("media_service"),
	}
}

// SetTrigger stores fingerprint as the guild's trigger media,
// overwriting any previously configured value.
// Returns types.ErrGroupNotFound if the guild was never registered.
func (s *MediaService) SetTrigger(ctx context.Context, guildID uint64, fingerprint string) error {
	err := dbretry.Transaction(ctx, func(ctx context.Context) error {
		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			group, err := s.groups.Get(ctx, tx, guildID)
			if err != nil {
				return err
			}

			return s.media.Upsert(ctx, tx, &types.TriggerMedia{
				GroupID:     group.ID,
				Fingerprint: fingerprint,
			})
		})
	})
	if err != nil {
		return fmt.Errorf("failed to set trigger media: %w", err)
	}

	s.logger.Info("Trigger media updated",
		zap.Uint64("guildID", guildID),
		zap.String("fingerprint", fingerprint))

	return nil
}
