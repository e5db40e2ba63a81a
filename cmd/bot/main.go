package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	unionbot "github.com/profkom/unionbot"
	"github.com/profkom/unionbot/internal/config"
	"github.com/profkom/unionbot/internal/handler"
	"github.com/profkom/unionbot/internal/media"
	"github.com/profkom/unionbot/internal/middleware"
	"github.com/profkom/unionbot/internal/repository"
	"github.com/profkom/unionbot/internal/service"
	"github.com/profkom/unionbot/internal/session"
	"github.com/profkom/unionbot/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(unionbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage and services
	store := repository.NewStore(pool)
	files := storage.NewFileStore(cfg.ImagesDir, cfg.DocumentsDir)
	documents := service.NewDocumentService(store, files)
	links := service.NewLinkService(store, service.NewPageTitles())
	anns := service.NewAnnouncementService(store, files)

	sessions := session.NewManager()

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			// Skip commands
			if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
				return
			}
			h.HandleMessage(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("drop pending updates", "error", err)
		}
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Documents: documents,
		Links:     links,
		Anns:      anns,
		Sessions:  sessions,
		Tracker:   session.NewTracker(b),
		Media:     media.NewSender(b, config.MediaGroupSettleDelay),
		Files:     files,
	})
	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID, "admins", len(cfg.AdminIDs))
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
