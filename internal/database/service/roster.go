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

// RosterService handles group registration and member join/leave logic.
type RosterService struct {
	db     *bun.DB
	groups *models.GroupModel
	member *models.MemberModel
	logger *zap.Logger
}

// NewRoster creates a new roster service.
func NewRoster(db *bun.DB, groups *models.GroupModel, member *models.MemberModel, logger *zap.Logger) *RosterService {
	return &RosterService{
		db:     db,
		groups: groups,
		member: member,
		logger: logger.Named("roster_service"),
	}
}

// RegisterGroup registers a guild for tracking. Registering an already
// known guild is a no-op.
func (s *RosterService) RegisterGroup(ctx context.Context, guildID uint64) error {
	err := dbretry.Transaction(ctx, func(ctx context.Context) error {
		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			_, err := s.groups.Get(ctx, tx, guildID)
			if err == nil {
				return nil
			}

			if !errors.Is(err, types.ErrGroupNotFound) {
				return err
			}

			return s.groups.Create(ctx, tx, &types.Group{GuildID: guildID})
		})
	})
	if err != nil {
		return fmt.Errorf("failed to register group: %w", err)
	}

	s.logger.Info("Registered group", zap.Uint64("guildID", guildID))

	return nil
}

// Join adds a user to the tracked roster of a guild. A first join
// creates the member record; a rejoin reactivates the existing one and
// refreshes the stored names. Concurrent joins for the same user are
// absorbed by the unique (group_id, user_id) constraint.
// Returns types.ErrGroupNotFound if the guild was never registered.
func (s *RosterService) Join(ctx context.Context, guildID, userID uint64, username, nickname string) error {
	err := dbretry.Transaction(ctx, func(ctx context.Context) error {
		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			group, err := s.groups.Get(ctx, tx, guildID)
			if err != nil {
				return err
			}

			return s.member.Upsert(ctx, tx, &types.Member{
				GroupID:  group.ID,
				UserID:   userID,
				Username: username,
				Nickname: nickname,
				IsActive: true,
			})
		})
	})
	if err != nil {
		return fmt.Errorf("failed to join: %w", err)
	}

	s.logger.Info("Member joined",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID))

	return nil
}

// Leave deactivates a member. The record and all recorded events are
// kept so that history survives a later rejoin.
// Returns types.ErrGroupNotFound or types.ErrMemberNotFound when the
// guild or the membership record is missing.
func (s *RosterService) Leave(ctx context.Context, guildID, userID uint64) error {
	err := dbretry.Transaction(ctx, func(ctx context.Context) error {
		return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			group, err := s.groups.Get(ctx, tx, guildID)
			if err != nil {
				return err
			}

			member, err := s.member.Get(ctx, tx, group.ID, userID)
			if err != nil {
				return err
			}

			member.Deactivate()

			return s.member.Update(ctx, tx, member)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to leave: %w", err)
	}

	s.logger.Info("Member left",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID))

	return nil
}
