// Package bot wires the Discord client to the command and message
// handlers.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot/admin"
	"github.com/pokatrack/pokatrack/internal/bot/constants"
	"github.com/pokatrack/pokatrack/internal/bot/handlers"
	"github.com/pokatrack/pokatrack/internal/bot/pending"
	"github.com/pokatrack/pokatrack/internal/database"
	"github.com/pokatrack/pokatrack/internal/redis"
	"github.com/pokatrack/pokatrack/internal/setup/config"
)

// Bot owns the Discord client and the handler set.
type Bot struct {
	client bot.Client
	logger *zap.Logger
}

// New builds the admin cache, the pending set-media store and the
// handlers, then configures the Discord client with the gateway intents
// the message handler needs.
func New(
	cfg *config.BotConfig,
	db database.Client,
	redisManager *redis.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	adminCache, err := admin.NewCache(redisManager, time.Duration(cfg.AdminCacheTTL)*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin cache: %w", err)
	}

	pendingStore, err := pending.NewStore(redisManager, time.Duration(cfg.SetMediaWindow)*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create pending store: %w", err)
	}

	handler := handlers.New(db, adminCache, pendingStore, cfg, logger)

	client, err := disgo.New(cfg.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: handler.OnApplicationCommandInteraction,
			OnMessageCreate:                 handler.OnMessageCreate,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord client: %w", err)
	}

	return &Bot{
		client: client,
		logger: logger.Named("bot"),
	}, nil
}

// Start registers the global slash commands and opens the gateway
// connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands")

	_, err := b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")

	return b.client.OpenGateway(ctx)
}

// Close gracefully shuts down the Discord gateway connection.
func (b *Bot) Close() {
	b.logger.Info("Closing bot")
	b.client.Close(context.Background())
}

// commands describes the global slash commands of the bot.
func commands() []discord.ApplicationCommandCreate {
	return []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        constants.StartCommandName,
			Description: "Зарегистрировать группу для трекинга",
		},
		discord.SlashCommandCreate{
			Name:        constants.JoinCommandName,
			Description: "Присоединиться к трекингу",
		},
		discord.SlashCommandCreate{
			Name:        constants.LeaveCommandName,
			Description: "Покинуть трекинг",
		},
		discord.SlashCommandCreate{
			Name:        constants.SetMediaCommandName,
			Description: "Выбрать медиа, обозначающее успешный покак",
		},
		discord.SlashCommandCreate{
			Name:        constants.WeekCommandName,
			Description: "Топ за текущую неделю",
		},
		discord.SlashCommandCreate{
			Name:        constants.MonthCommandName,
			Description: "Топ за текущий месяц",
		},
		discord.SlashCommandCreate{
			Name:        constants.YearCommandName,
			Description: "Топ за текущий год",
		},
		discord.SlashCommandCreate{
			Name:        constants.AllCommandName,
			Description: "Топ за всё время",
		},
		discord.SlashCommandCreate{
			Name:        constants.MuteCommandName,
			Description: "Замутить участника на заданное время",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        constants.MuteUserOptionName,
					Description: "Кого замутить",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        constants.MuteDurationOptionName,
					Description: "Длительность, например 30s, 5m, 2h или 7d",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        constants.MuteReasonOptionName,
					Description: "Причина мута",
				},
			},
		},
	}
}
