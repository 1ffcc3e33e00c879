package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/middleware"
	"github.com/set-night/endoally/internal/service"
)

func (h *Handler) handleUsage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	w := middleware.GetWidget(ctx)
	if w == nil {
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, usageText(w.Usage()))
}

func usageText(r service.UsageReport) string {
	return fmt.Sprintf(
		"📊 *Usage*\n\n"+
			"Prompt tokens: %d\n"+
			"Completion tokens: %d\n"+
			"Estimated cost: $%s",
		r.PromptTokens, r.CompletionTokens, r.Cost.StringFixed(4),
	)
}

// handleStat reports the number of live widgets to admins.
func (h *Handler) handleStat(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if !h.cfg.IsAdmin(update.Message.From.ID) {
		return
	}
	h.sendText(ctx, b, update.Message.Chat.ID, fmt.Sprintf("📈 Active widgets: %d", h.widgets.Len()))
}
