package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/middleware"
)

const restartText = "🔄 Restarting the chat."

// handleEnd discards the transcript and starts over in the current mode.
func (h *Handler) handleEnd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.restart(ctx, b, update.Message.Chat.ID)
}

func (h *Handler) handleRestart(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	if chatID := middleware.ChatID(update); chatID != 0 {
		h.restart(ctx, b, chatID)
	}
}

func (h *Handler) restart(ctx context.Context, b *bot.Bot, chatID int64) {
	w := middleware.GetWidget(ctx)
	if w == nil {
		return
	}
	if w.State().Loading() {
		h.sendText(ctx, b, chatID, busyText)
		return
	}
	h.sendText(ctx, b, chatID, restartText)
	h.reset(ctx, b, chatID, w, w.State().ThinkingMode)
}
