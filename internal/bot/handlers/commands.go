package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/events"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/constants"
	"github.com/pokatrack/pokatrack/internal/database/types"
	"github.com/pokatrack/pokatrack/internal/leaderboard"
)

// OnApplicationCommandInteraction dispatches slash commands. Commands
// only make sense inside a guild, so direct-message interactions are
// ignored.
func (h *Handler) OnApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	if event.GuildID() == nil {
		return
	}

	go func() {
		name := event.SlashCommandInteractionData().CommandName()

		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("Panic in command handler",
					zap.String("command", name),
					zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		var err error

		switch name {
		case constants.StartCommandName:
			err = h.handleStart(ctx, event)
		case constants.JoinCommandName:
			err = h.handleJoin(ctx, event)
		case constants.LeaveCommandName:
			err = h.handleLeave(ctx, event)
		case constants.SetMediaCommandName:
			err = h.handleSetMedia(ctx, event)
		case constants.MuteCommandName:
			err = h.handleMute(ctx, event)
		case constants.WeekCommandName, constants.MonthCommandName,
			constants.YearCommandName, constants.AllCommandName:
			err = h.handleStatistics(ctx, event, name)
		default:
			return
		}

		if err != nil {
			h.logger.Error("Failed to handle command",
				zap.String("command", name),
				zap.Error(err))

			if err := event.CreateMessage(reply(internalErrorReply)); err != nil {
				h.logger.Error("Failed to send error reply", zap.Error(err))
			}
		}
	}()
}

// handleStart registers the guild for tracking. Admin only.
func (h *Handler) handleStart(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
	guildID := uint64(*event.GuildID())

	isAdmin, err := h.admins.IsAdmin(ctx, guildID, uint64(event.User().ID), h.guildAdminFetcher(event.Client(), *event.GuildID()))
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	if !isAdmin {
		return event.CreateMessage(reply(adminOnlyReply))
	}

	if err := h.db.Service().Roster().RegisterGroup(ctx, guildID); err != nil {
		return err
	}

	return event.CreateMessage(reply(startReply))
}

// handleJoin adds the calling user to the roster.
func (h *Handler) handleJoin(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
	guildID := uint64(*event.GuildID())
	user := event.User()

	var nick *string
	if member := event.Member(); member != nil {
		nick = member.Nick
	}

	nickname := ""
	if nick != nil {
		nickname = *nick
	}

	err := h.db.Service().Roster().Join(ctx, guildID, uint64(user.ID), user.Username, nickname)
	if err != nil {
		if errors.Is(err, types.ErrGroupNotFound) {
			return event.CreateMessage(reply(groupNotStartedReply))
		}

		return err
	}

	return event.CreateMessage(reply(fmt.Sprintf("%s присоединяется", memberDisplayName(user, nick))))
}

// handleLeave deactivates the calling user.
func (h *Handler) handleLeave(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
	guildID := uint64(*event.GuildID())
	user := event.User()

	var nick *string
	if member := event.Member(); member != nil {
		nick = member.Nick
	}

	err := h.db.Service().Roster().Leave(ctx, guildID, uint64(user.ID))
	if err != nil {
		switch {
		case errors.Is(err, types.ErrGroupNotFound):
			return event.CreateMessage(reply(groupNotStartedReply))
		case errors.Is(err, types.ErrMemberNotFound):
			return event.CreateMessage(reply(notJoinedReply))
		}

		return err
	}

	return event.CreateMessage(reply(fmt.Sprintf("%s покидает нас", memberDisplayName(user, nick))))
}

// handleSetMedia arms the trigger media selection flow for the calling
// admin. The next sticker or GIF they post becomes the trigger.
func (h *Handler) handleSetMedia(ctx context.Context, event *events.ApplicationCommandInteractionCreate) error {
	guildID := uint64(*event.GuildID())
	userID := uint64(event.User().ID)

	isAdmin, err := h.admins.IsAdmin(ctx, guildID, userID, h.guildAdminFetcher(event.Client(), *event.GuildID()))
	if err != nil {
		return fmt.Errorf("failed to check admin: %w", err)
	}

	if !isAdmin {
		return event.CreateMessage(reply(adminOnlyReply))
	}

	if err := h.pending.Arm(ctx, guildID, userID); err != nil {
		return err
	}

	return event.CreateMessage(reply(setMediaPromptReply))
}

// handleStatistics builds and sends the leaderboard report for the
// period named by the command.
func (h *Handler) handleStatistics(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, command string,
) error {
	period, err := leaderboard.ParsePeriod(command)
	if err != nil {
		return err
	}

	guildID := uint64(*event.GuildID())
	limit := h.leaderboardLimit()

	rows, err := h.db.Service().Stats().Top(ctx, guildID, period, limit)
	if err != nil {
		if errors.Is(err, types.ErrGroupNotFound) {
			return event.CreateMessage(reply(groupNotStartedReply))
		}

		return err
	}

	report := leaderboard.NewReport(period, rows, limit)

	return event.CreateMessage(reply(report.Build()))
}
