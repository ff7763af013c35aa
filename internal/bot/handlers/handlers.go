// Package handlers contains the Discord event handlers of the bot. The
// handlers translate interactions and messages into service calls and
// send the user-facing replies.
package handlers

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/admin"
	"github.com/pokatrack/pokatrack/internal/bot/constants"
	"github.com/pokatrack/pokatrack/internal/bot/pending"
	"github.com/pokatrack/pokatrack/internal/database"
	"github.com/pokatrack/pokatrack/internal/setup/config"
)

// handlerTimeout bounds the work done for a single Discord event.
const handlerTimeout = 10 * time.Second

// Reply texts shared across handlers.
const (
	adminOnlyReply       = "только пользователи с ролью администратора могут использовать эту команду"
	startReply           = "приветствую"
	groupNotStartedReply = "сначала зарегистрируй группу командой /start"
	notJoinedReply       = "ты ещё не присоединялся"
	setMediaPromptReply  = "Отправь мне гифку или стикер, которая будет обозначать успешный покак"
	setMediaDoneReply    = "Успешно: отправляй его, когда покакаешь"
	muteProtectedReply   = "не могу замутить админов и ботов"
	muteUsageReply       = "неверный формат времени\n\n" +
		"пример правильного использования '/mute 1h'\n\n" +
		"мут не может быть меньше 30 секунд или больше 364 дней"
	internalErrorReply = "что-то пошло не так, попробуй ещё раз"
)

// Handler holds the dependencies shared by all Discord event handlers.
type Handler struct {
	db      database.Client
	admins  *admin.Cache
	pending *pending.Store
	config  *config.BotConfig
	logger  *zap.Logger
}

// New creates the handler set.
func New(
	db database.Client,
	admins *admin.Cache,
	pendingStore *pending.Store,
	config *config.BotConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		db:      db,
		admins:  admins,
		pending: pendingStore,
		config:  config,
		logger:  logger.Named("handlers"),
	}
}

// leaderboardLimit returns the configured report row cap.
func (h *Handler) leaderboardLimit() int {
	if h.config.LeaderboardLimit > 0 {
		return h.config.LeaderboardLimit
	}

	return constants.DefaultLeaderboardLimit
}

// muteBounds returns the accepted mute duration range.
func (h *Handler) muteBounds() (time.Duration, time.Duration) {
	minDur := time.Duration(h.config.MuteMinSeconds) * time.Second
	maxDur := time.Duration(h.config.MuteMaxSeconds) * time.Second

	return minDur, maxDur
}

// reply builds a plain text interaction response.
func reply(content string) discord.MessageCreate {
	return discord.NewMessageCreateBuilder().SetContent(content).Build()
}

// memberDisplayName resolves the name shown in replies, preferring the
// guild nickname over the account name.
func memberDisplayName(user discord.User, nick *string) string {
	if nick != nil && *nick != "" {
		return *nick
	}

	if user.Username != "" {
		return user.Username
	}

	return fmt.Sprintf("участник %d", uint64(user.ID))
}
