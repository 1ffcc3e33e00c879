package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/domain"
	"github.com/set-night/endoally/internal/service"
	tg "github.com/set-night/endoally/internal/telegram"
)

const (
	busyText      = "⏳ Please wait for the current reply."
	noSessionText = "The chat session is not available. Send /start to begin a new one."
	restartHint   = "Send /start to try again."
)

func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.cfg == nil || h.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.cfg.RequestTimeout)
}

// reset restarts the widget in the given mode and delivers the greeting. It
// reports whether the widget is ready for turns.
func (h *Handler) reset(ctx context.Context, s tg.Sender, chatID int64, w *service.Controller, thinking bool) bool {
	reqCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stopTyping := tg.StartTyping(ctx, s, chatID)
	result, err := w.ResetWithMode(reqCtx, thinking)
	stopTyping()

	switch {
	case errors.Is(err, domain.ErrBusy):
		h.sendText(ctx, s, chatID, busyText)
		return false
	case err != nil:
		h.tgLogger.LogError(err, fmt.Sprintf("initialize chat %d", chatID))
		h.sendText(ctx, s, chatID, fmt.Sprintf("❌ %s\n%s", w.State().LastError, restartHint))
		return false
	}

	h.tgLogger.LogSessionStarted(chatID, thinking)
	h.deliver(ctx, s, chatID, thinking, result.Messages, "_"+config.Disclaimer+"_")
	return true
}

// submit runs one chat turn, starting the session first if the widget is new.
func (h *Handler) submit(ctx context.Context, s tg.Sender, chatID int64, w *service.Controller, text string) {
	if state := w.State(); state.Phase == domain.PhaseUninitialized {
		if !h.reset(ctx, s, chatID, w, state.ThinkingMode) {
			return
		}
	}

	reqCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stopTyping := tg.StartTyping(ctx, s, chatID)
	result, err := w.Submit(reqCtx, text)
	stopTyping()

	state := w.State()
	switch {
	case errors.Is(err, domain.ErrBlankInput):
		return
	case errors.Is(err, domain.ErrBusy):
		h.sendText(ctx, s, chatID, busyText)
		return
	case errors.Is(err, domain.ErrNoSession):
		h.sendText(ctx, s, chatID, noSessionText)
		return
	case err != nil:
		h.tgLogger.LogError(err, fmt.Sprintf("chat turn %d", chatID))
		var msgs []domain.ChatMessage
		if result != nil {
			msgs = result.Messages
		}
		h.deliver(ctx, s, chatID, state.ThinkingMode, msgs, "❌ "+state.LastError)
		return
	}

	h.tgLogger.LogToolCalls(chatID, result.ToolCalls)
	h.deliver(ctx, s, chatID, state.ThinkingMode, result.Messages, "")
}

// deliver sends the assistant messages among msgs, then the optional footer.
// The widget keyboard goes on whatever is sent last.
func (h *Handler) deliver(ctx context.Context, s tg.Sender, chatID int64, thinking bool, msgs []domain.ChatMessage, footer string) {
	kb := tg.WidgetKeyboard(h.suggestions, thinking)

	var out []domain.ChatMessage
	for _, m := range msgs {
		if m.Role == domain.RoleAssistant && m.HasContent() {
			out = append(out, m)
		}
	}

	for i, m := range out {
		var markup models.ReplyMarkup
		if footer == "" && i == len(out)-1 {
			markup = kb
		}
		if err := tg.SendChatMessage(ctx, s, chatID, m, markup); err != nil {
			slog.Error("deliver message", "error", err, "chat_id", chatID, "message_id", m.ID)
		}
	}

	if footer != "" {
		if err := tg.SendLongMessage(ctx, s, chatID, footer, kb); err != nil {
			slog.Error("deliver footer", "error", err, "chat_id", chatID)
		}
	}
}

func (h *Handler) sendText(ctx context.Context, s tg.Sender, chatID int64, text string) {
	if err := tg.SendLongMessage(ctx, s, chatID, text, nil); err != nil {
		slog.Error("send message", "error", err, "chat_id", chatID)
	}
}
