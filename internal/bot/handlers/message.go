package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/constants"
)

// OnMessageCreate inspects guild messages for trigger media. A message
// carrying media either completes a pending set-media request or, when
// its fingerprint matches the configured trigger, records one event and
// acknowledges it with a reaction. Anything else is ignored without a
// reply.
func (h *Handler) OnMessageCreate(event *events.MessageCreate) {
	if event.GuildID == nil || event.Message.Author.Bot {
		return
	}

	fingerprint := mediaFingerprint(event.Message)
	if fingerprint == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("Panic in message handler", zap.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		guildID := uint64(*event.GuildID)
		userID := uint64(event.Message.Author.ID)

		taken, err := h.pending.Take(ctx, guildID, userID)
		if err != nil {
			h.logger.Error("Failed to check pending set-media", zap.Error(err))
			return
		}

		if taken {
			h.completeSetMedia(ctx, event, guildID, fingerprint)
			return
		}

		recorded, err := h.db.Service().Event().Record(ctx, guildID, userID, fingerprint)
		if err != nil {
			h.logger.Error("Failed to record event",
				zap.Uint64("guildID", guildID),
				zap.Uint64("userID", userID),
				zap.Error(err))

			return
		}

		if !recorded {
			return
		}

		err = event.Client().Rest().AddReaction(
			event.ChannelID, event.MessageID, constants.EventReaction, rest.WithCtx(ctx))
		if err != nil {
			h.logger.Error("Failed to add reaction", zap.Error(err))
		}
	}()
}

// completeSetMedia stores the posted media as the guild trigger and
// confirms with a reply to the media message.
func (h *Handler) completeSetMedia(
	ctx context.Context, event *events.MessageCreate, guildID uint64, fingerprint string,
) {
	if err := h.db.Service().Media().SetTrigger(ctx, guildID, fingerprint); err != nil {
		h.logger.Error("Failed to set trigger media",
			zap.Uint64("guildID", guildID),
			zap.Error(err))

		return
	}

	_, err := event.Client().Rest().CreateMessage(event.ChannelID,
		discord.NewMessageCreateBuilder().
			SetContent(setMediaDoneReply).
			SetMessageReferenceByID(event.MessageID).
			Build(),
		rest.WithCtx(ctx))
	if err != nil {
		h.logger.Error("Failed to confirm trigger media", zap.Error(err))
	}
}

// mediaFingerprint derives a stable identifier from the media attached
// to a message. Stickers are identified by their sticker ID. GIFs
// arrive as attachments whose IDs change per upload, so the filename
// and byte size stand in as the identity of the file.
func mediaFingerprint(message discord.Message) string {
	if len(message.StickerItems) > 0 {
		return "sticker:" + message.StickerItems[0].ID.String()
	}

	for _, attachment := range message.Attachments {
		if isGIF(attachment) {
			return "gif:" + attachment.Filename + ":" + strconv.Itoa(attachment.Size)
		}
	}

	return ""
}

func isGIF(attachment discord.Attachment) bool {
	if attachment.ContentType != nil && *attachment.ContentType == "image/gif" {
		return true
	}

	return strings.HasSuffix(strings.ToLower(attachment.Filename), ".gif")
}
