package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/dbretry"
	"github.com/pokatrack/pokatrack/internal/database/models"
	"github.com/pokatrack/pokatrack/internal/database/types"
)

// EventService records trigger events for active members.
type EventService struct {
	db     *bun.DB
	groups *models.GroupModel
	member *models.MemberModel
	media  *models.MediaModel
	events *models.EventModel
	logger *zap.Logger
}

// NewEvent creates a new event service.
func NewEvent(
	db *bun.DB,
	groups *models.GroupModel,
	member *models.MemberModel,
	media *models.MediaModel,
	events *models.EventModel,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		db:     db,
		groups: groups,
		member: member,
		media:  media,
		events: events,
		logger: logger.Named("event_service"),
	}
}

// Record stores one event for the acting user if every precondition
// holds: the guild is registered, the user is an active member, the
// guild has a trigger media configured and fingerprint matches it.
// A failed precondition is a silent no-op: not every message should
// produce visible feedback, so the caller gets (false, nil) rather
// than an error.
func (s *EventService) Record(ctx context.Context, guildID, userID uint64, fingerprint string) (bool, error) {
	var recorded bool

	err := dbretry.Transaction(ctx, func(ctx context.Context) error {
		// A retry re-runs the whole transaction after a rollback.
		recorded = false

		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			group, err := s.groups.Get(ctx, tx, guildID)
			if err != nil {
				return err
			}

			member, err := s.member.Get(ctx, tx, group.ID, userID)
			if err != nil {
				return err
			}

			if !member.IsActive {
				return nil
			}

			media, err := s.media.GetByGroup(ctx, tx, group.ID)
			if err != nil {
				return err
			}

			if fingerprint == "" || fingerprint != media.Fingerprint {
				return nil
			}

			if err := s.events.Insert(ctx, tx, &types.Event{MemberID: member.ID}); err != nil {
				return err
			}

			recorded = true

			return nil
		})
	})
	if err != nil {
		// Missing group, member or trigger media means the guard simply
		// does not apply to this message.
		if errors.Is(err, types.ErrGroupNotFound) ||
			errors.Is(err, types.ErrMemberNotFound) ||
			errors.Is(err, types.ErrTriggerNotSet) {
			return false, nil
		}

		return false, fmt.Errorf("failed to record event: %w", err)
	}

	if recorded {
		s.logger.Debug("Event recorded",
			zap.Uint64("guildID", guildID),
			zap.Uint64("userID", userID))
	}

	return recorded, nil
}
