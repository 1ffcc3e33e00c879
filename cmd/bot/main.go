package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	endoally "github.com/set-night/endoally"
	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/handler"
	"github.com/set-night/endoally/internal/middleware"
	"github.com/set-night/endoally/internal/profile"
	"github.com/set-night/endoally/internal/repository"
	"github.com/set-night/endoally/internal/service"
	"github.com/set-night/endoally/internal/telegram"
)

// rateStore is a RateCounter whose old windows can be dropped.
type rateStore interface {
	service.RateCounter
	Prune(ctx context.Context, before time.Time) error
}

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

	// Rate limit counters live in Postgres when a database is configured
	var counter rateStore = service.NewMemoryCounter()
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(endoally.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		counter = repository.NewRateLimitStore(pool)
	}

	// Assistant profile and remote model
	prof, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		slog.Error("failed to load assistant profile", "error", err, "path", cfg.ProfilePath)
		os.Exit(1)
	}

	remote, err := service.NewGeminiRemote(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.RequestTimeout)
	if err != nil {
		slog.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}

	widgets := service.NewWidgetRegistry(func(chatID int64) *service.Controller {
		return service.NewController(remote, prof, service.WithLogger(logger.With("chat_id", chatID)))
	}, cfg.WidgetIdleTimeout)
	limiter := service.NewRateLimiter(counter, cfg.RateLimitPerMinute, config.RateLimitWindow)

	// Handler pointer for use in middleware closures
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.RateLimit(limiter, func(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64) {
				if h != nil {
					h.OnRateLimited(ctx, b, update, chatID)
				}
			}),
			middleware.WidgetLoader(widgets),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username, "admins", cfg.AdminIDsString())

	// Initialize telegram logger
	tgLogger := telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Widgets:  widgets,
		TgLogger: tgLogger,
	})

	// Register all handlers
	h.Register()

	// Register default text handler for chat messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, h.HandleText)

	// Evict idle widgets and drop old rate limit windows
	go func() {
		ticker := time.NewTicker(config.WidgetSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := widgets.EvictIdle(); n > 0 {
					slog.Info("evicted idle widgets", "count", n, "remaining", widgets.Len())
				}
				if err := counter.Prune(context.Background(), time.Now().Add(-config.RateLimitRetention)); err != nil {
					slog.Error("prune rate limits", "error", err)
				}
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID, "model", prof.Model(false).Name)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
