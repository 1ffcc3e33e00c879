package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	w := middleware.GetWidget(ctx)
	if w == nil {
		return
	}
	h.reset(ctx, b, update.Message.Chat.ID, w, w.State().ThinkingMode)
}
