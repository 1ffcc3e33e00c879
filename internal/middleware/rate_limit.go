package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/telegram"
)

// Limiter decides whether a chat may send another message.
type Limiter interface {
	Allow(ctx context.Context, chatID int64) (bool, error)
}

// LimitedFunc is called instead of the handler when a chat is over its limit.
type LimitedFunc func(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64)

// Commands that send a prompt to the model.
var modelCommands = map[string]bool{
	"/start":    true,
	"/thinking": true,
	"/end":      true,
}

// Callback data that sends a prompt to the model.
var modelCallbacks = []string{
	telegram.CallbackSuggestion,
	telegram.CallbackToggleThinking,
	telegram.CallbackRestart,
}

// StartsModelCall reports whether handling the update costs a model request.
func StartsModelCall(update *models.Update) bool {
	switch {
	case update.Message != nil:
		text := update.Message.Text
		if !strings.HasPrefix(text, "/") {
			return strings.TrimSpace(text) != ""
		}
		return modelCommands[commandName(text)]
	case update.CallbackQuery != nil:
		for _, prefix := range modelCallbacks {
			if strings.HasPrefix(update.CallbackQuery.Data, prefix) {
				return true
			}
		}
	}
	return false
}

// commandName strips arguments and a trailing @botname from a command.
func commandName(text string) string {
	name, _, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	return name
}

// RateLimit returns middleware that enforces per-chat limits on updates that
// reach the model. Everything else passes through uncounted.
func RateLimit(limiter Limiter, onLimited LimitedFunc) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := ChatID(update)
			if chatID == 0 || !StartsModelCall(update) {
				next(ctx, b, update)
				return
			}

			allowed, err := limiter.Allow(ctx, chatID)
			if err != nil {
				// Fail open, the store is an optimisation.
				slog.Error("rate limit check failed", "error", err, "chat_id", chatID)
				next(ctx, b, update)
				return
			}

			if !allowed {
				slog.Debug("rate limited", "chat_id", chatID)
				if onLimited != nil {
					onLimited(ctx, b, update, chatID)
				}
				return
			}

			next(ctx, b, update)
		}
	}
}
