package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"

	"github.com/pokatrack/pokatrack/internal/bot/constants"
	"github.com/pokatrack/pokatrack/internal/duration"
)

// handleMute times a member out for a parsed duration. Admins and bots
// cannot be muted. Admin only.
func (h *Handler) handleMute(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
	guildID := uint64(*event.GuildID())
	data := event.SlashCommandInteractionData()

	fetcher := h.guildAdminFetcher(event.Client(), *event.GuildID())

	isAdmin, err := h.admins.IsAdmin(ctx, guildID, uint64(event.User().ID), fetcher)
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	if !isAdmin {
		return event.CreateMessage(reply(adminOnlyReply))
	}

	target := data.User(constants.MuteUserOptionName)

	targetIsAdmin, err := h.admins.IsAdmin(ctx, guildID, uint64(target.ID), fetcher)
	if err != nil {
		return fmt.Errorf("failed to check target admin: %w", err)
	}

	if target.Bot || targetIsAdmin {
		return event.CreateMessage(reply(muteProtectedReply))
	}

	raw := data.String(constants.MuteDurationOptionName)

	muteFor, err := duration.Parse(raw)
	if err != nil {
		if errors.Is(err, duration.ErrInvalidDuration) {
			return event.CreateMessage(reply(muteUsageReply))
		}

		return err
	}

	minDur, maxDur := h.muteBounds()
	if muteFor <= minDur || muteFor >= maxDur {
		return event.CreateMessage(reply(muteUsageReply))
	}

	until := json.NewNullable(time.Now().Add(muteFor))

	_, err = event.Client().Rest().UpdateMember(*event.GuildID(), target.ID, discord.MemberUpdate{
		CommunicationDisabledUntil: &until,
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to mute member %d: %w", target.ID, err)
	}

	text := fmt.Sprintf("Мут для @%s на %s.", target.Username, duration.Humanize(muteFor))
	if reason, ok := data.OptString(constants.MuteReasonOptionName); ok && reason != "" {
		text += " Причина: " + reason
	}

	return event.CreateMessage(reply(text))
}
