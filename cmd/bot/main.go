package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pokatrack/pokatrack/internal/bot"
	"github.com/pokatrack/pokatrack/internal/setup"
)

// BotLogDir specifies where bot log files are stored.
const BotLogDir = "logs/bot_logs"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	app, err := setup.InitializeApp(ctx, BotLogDir)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.CleanupApp()

	discordBot, err := bot.New(&app.Config.Bot, app.DB, app.RedisManager, app.Logger)
	if err != nil {
		app.Logger.Error("Failed to create bot", zap.Error(err))
		return
	}

	if err := discordBot.Start(ctx); err != nil {
		app.Logger.Error("Failed to start bot", zap.Error(err))
		return
	}

	app.Logger.Info("Bot has been started, waiting for interrupt signal")

	// Periodically verify the database connection so a dead pool shows
	// up in the logs before users notice.
	if interval := app.Config.Bot.LivenessInterval; interval > 0 {
		go runLivenessCheck(ctx, app, time.Duration(interval)*time.Second)
	}

	<-ctx.Done()

	discordBot.Close()
}

func runLivenessCheck(ctx context.Context, app *setup.App, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)

			if err := app.DB.Ping(pingCtx); err != nil {
				app.Logger.Error("Database liveness check failed", zap.Error(err))
			}

			cancel()
		}
	}
}
