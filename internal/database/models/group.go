package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/database/dbretry"
	"github.com/pokatrack/pokatrack/internal/database/types"
)

// GroupModel handles database operations for tracked guilds.
type GroupModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGroup creates a new group model instance.
func NewGroup(db *bun.DB, logger *zap.Logger) *GroupModel {
	return &GroupModel{
		db:     db,
		logger: logger.Named("db_group"),
	}
}

// GetByGuildID retrieves a group by its guild ID outside of any transaction.
// Returns types.ErrGroupNotFound if the guild was never registered.
func (m *GroupModel) GetByGuildID(ctx context.Context, guildID uint64) (*types.Group, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Group, error) {
		return m.get(ctx, m.db, guildID)
	})
}

// Get retrieves a group by its guild ID inside an existing transaction.
func (m *GroupModel) Get(ctx context.Context, tx bun.IDB, guildID uint64) (*types.Group, error) {
	return m.get(ctx, tx, guildID)
}

func (m *GroupModel) get(ctx context.Context, db bun.IDB, guildID uint64) (*types.Group, error) {
	var group types.Group

	err := db.NewSelect().
		Model(&group).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrGroupNotFound
		}

		return nil, fmt.Errorf("failed to get group for guild %d: %w", guildID, err)
	}

	return &group, nil
}

// Create inserts a new group record. Duplicate registrations for the
// same guild are absorbed by the unique constraint on guild_id.
func (m *GroupModel) Create(ctx context.Context, tx bun.IDB, group *types.Group) error {
	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	_, err := tx.NewInsert().
		Model(group).
		On("CONFLICT (guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create group for guild %d: %w", group.GuildID, err)
	}

	m.logger.Debug("Created group", zap.Uint64("guildID", group.GuildID))

	return nil
}
