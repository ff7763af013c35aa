package handlers

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/pokatrack/pokatrack/internal/bot/admin"
)

// membersPageSize is the maximum page size of the guild members
// endpoint.
const membersPageSize = 1000

// guildAdminFetcher builds the cache-miss fallback that resolves the
// administrator IDs of a guild. An administrator is the guild owner or
// any member holding a role with the administrator permission.
func (h *Handler) guildAdminFetcher(client bot.Client, guildID snowflake.ID) admin.Fetcher {
	return func(ctx context.Context) ([]uint64, error) {
		guild, err := client.Rest().GetGuild(guildID, false, rest.WithCtx(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to get guild %d: %w", guildID, err)
		}

		roles, err := client.Rest().GetRoles(guildID, rest.WithCtx(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to get roles of guild %d: %w", guildID, err)
		}

		adminRoles := make(map[snowflake.ID]struct{})

		for _, role := range roles {
			if role.Permissions.Has(discord.PermissionAdministrator) {
				adminRoles[role.ID] = struct{}{}
			}
		}

		admins := []uint64{uint64(guild.OwnerID)}
		seen := map[uint64]struct{}{uint64(guild.OwnerID): {}}

		var after snowflake.ID

		for {
			members, err := client.Rest().GetMembers(guildID, membersPageSize, after, rest.WithCtx(ctx))
			if err != nil {
				return nil, fmt.Errorf("failed to get members of guild %d: %w", guildID, err)
			}

			if len(members) == 0 {
				break
			}

			for _, member := range members {
				for _, roleID := range member.RoleIDs {
					if _, ok := adminRoles[roleID]; !ok {
						continue
					}

					id := uint64(member.User.ID)
					if _, dup := seen[id]; !dup {
						seen[id] = struct{}{}

						admins = append(admins, id)
					}

					break
				}
			}

			if len(members) < membersPageSize {
				break
			}

			after = members[len(members)-1].User.ID
		}

		return admins, nil
	}
}
