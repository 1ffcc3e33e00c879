package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/service"
)

type ctxKey string

const WidgetKey ctxKey = "widget"

// GetWidget extracts the chat's widget from context.
func GetWidget(ctx context.Context) *service.Controller {
	w, ok := ctx.Value(WidgetKey).(*service.Controller)
	if !ok {
		return nil
	}
	return w
}

// WidgetLoader returns middleware that loads the chat's widget into context.
// Updates without a chat are passed through untouched.
func WidgetLoader(widgets *service.WidgetRegistry) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := ChatID(update)
			if chatID == 0 {
				next(ctx, b, update)
				return
			}

			w, _ := widgets.Get(chatID)
			next(context.WithValue(ctx, WidgetKey, w), b, update)
		}
	}
}
