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

// MemberModel handles database operations for group members.
type MemberModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMember creates a new member model instance.
func NewMember(db *bun.DB, logger *zap.Logger) *MemberModel {
	return &MemberModel{
		db:     db,
		logger: logger.Named("db_member"),
	}
}

// Get retrieves a member by group and user ID inside an existing transaction.
// Returns types.ErrMemberNotFound if the user never joined the group.
func (m *MemberModel) Get(ctx context.Context, tx bun.IDB, groupID int64, userID uint64) (*types.Member, error) {
	var member types.Member

	err := tx.NewSelect().
		Model(&member).
		Where("group_id = ?", groupID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrMemberNotFound
		}

		return nil, fmt.Errorf("failed to get member %d in group %d: %w", userID, groupID, err)
	}

	return &member, nil
}

// Upsert inserts a member record or, when the (group_id, user_id) pair
// already exists, refreshes the name fields and active flag. The unique
// constraint is the backstop against concurrent joins for the same user.
func (m *MemberModel) Upsert(ctx context.Context, tx bun.IDB, member *types.Member) error {
	now := time.Now()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}

	member.UpdatedAt = now

	_, err := tx.NewInsert().
		Model(member).
		On("CONFLICT (group_id, user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("nickname = EXCLUDED.nickname").
		Set("is_active = EXCLUDED.is_active").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert member %d in group %d: %w", member.UserID, member.GroupID, err)
	}

	m.logger.Debug("Upserted member",
		zap.Uint64("userID", member.UserID),
		zap.Int64("groupID", member.GroupID),
		zap.Bool("isActive", member.IsActive))

	return nil
}

// Update persists changes to an existing member record.
func (m *MemberModel) Update(ctx context.Context, tx bun.IDB, member *types.Member) error {
	member.UpdatedAt = time.Now()

	_, err := tx.NewUpdate().
		Model(member).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member %d: %w", member.ID, err)
	}

	return nil
}
