package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/pokatrack/pokatrack/internal/database/types"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Group)(nil),
			(*types.Member)(nil),
			(*types.TriggerMedia)(nil),
			(*types.Event)(nil),
		}

		for _, model := range models {
			_, err := db.NewCreateTable().
				Model(model).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %T: %w", model, err)
			}
		}

		_, err := db.NewRaw(`
			ALTER TABLE members
			ADD CONSTRAINT fk_members_group
			FOREIGN KEY (group_id) REFERENCES groups (id);

			ALTER TABLE trigger_medias
			ADD CONSTRAINT fk_trigger_medias_group
			FOREIGN KEY (group_id) REFERENCES groups (id);

			ALTER TABLE events
			ADD CONSTRAINT fk_events_member
			FOREIGN KEY (member_id) REFERENCES members (id);

			-- Covers the leaderboard aggregation: per-member counts
			-- filtered by a created_at range.
			CREATE INDEX IF NOT EXISTS idx_events_member_time
			ON events (member_id, created_at);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create constraints and indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		models := []any{
			(*types.Event)(nil),
			(*types.TriggerMedia)(nil),
			(*types.Member)(nil),
			(*types.Group)(nil),
		}

		for _, model := range models {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop table %T: %w", model, err)
			}
		}

		return nil
	})
}
