package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/middleware"
	"github.com/set-night/endoally/internal/service"
	tg "github.com/set-night/endoally/internal/telegram"
)

const (
	thinkingOnText  = "🧠 Thinking mode on. For complex queries; replies take longer. Restarting the chat."
	thinkingOffText = "⚡ Thinking mode off. Restarting the chat."
)

// handleThinking flips thinking mode. Switching modes restarts the chat.
func (h *Handler) handleThinking(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	if w := middleware.GetWidget(ctx); w != nil {
		h.toggleThinking(ctx, b, update.Message.Chat.ID, w)
	}
}

func (h *Handler) handleToggleThinking(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)
	chatID := middleware.ChatID(update)
	if w := middleware.GetWidget(ctx); w != nil && chatID != 0 {
		h.toggleThinking(ctx, b, chatID, w)
	}
}

func (h *Handler) toggleThinking(ctx context.Context, s tg.Sender, chatID int64, w *service.Controller) {
	state := w.State()
	if state.Loading() {
		h.sendText(ctx, s, chatID, busyText)
		return
	}

	thinking := !state.ThinkingMode
	if thinking {
		h.sendText(ctx, s, chatID, thinkingOnText)
	} else {
		h.sendText(ctx, s, chatID, thinkingOffText)
	}
	h.reset(ctx, s, chatID, w, thinking)
}
