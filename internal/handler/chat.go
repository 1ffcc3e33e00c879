package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/middleware"
	tg "github.com/set-night/endoally/internal/telegram"
)

const rateLimitedText = "⏳ Too many messages. Please wait a minute and try again."

// HandleText forwards a plain text message to the chat's widget.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	// Skip commands
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	w := middleware.GetWidget(ctx)
	if w == nil {
		return
	}
	h.submit(ctx, b, update.Message.Chat.ID, w, update.Message.Text)
}

// handleSuggestion submits one of the suggested questions.
func (h *Handler) handleSuggestion(ctx context.Context, b *bot.Bot, update *models.Update) {
	answerCallback(ctx, b, update)

	chatID := middleware.ChatID(update)
	w := middleware.GetWidget(ctx)
	if w == nil || chatID == 0 {
		return
	}

	i, err := tg.ParseSuggestion(update.CallbackQuery.Data, len(h.suggestions))
	if err != nil {
		slog.Warn("bad suggestion callback", "error", err, "chat_id", chatID)
		return
	}

	question := h.suggestions[i]
	h.sendText(ctx, b, chatID, "💬 "+question)
	h.submit(ctx, b, chatID, w, question)
}

// OnRateLimited tells the chat it is sending too fast.
func (h *Handler) OnRateLimited(ctx context.Context, b *bot.Bot, update *models.Update, chatID int64) {
	answerCallback(ctx, b, update)
	h.tgLogger.LogRateLimited(chatID)
	h.sendText(ctx, b, chatID, rateLimitedText)
}
