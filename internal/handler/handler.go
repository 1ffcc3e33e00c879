package handler

import (
	"github.com/go-telegram/bot"
	"github.com/set-night/endoally/internal/config"
	"github.com/set-night/endoally/internal/service"
	"github.com/set-night/endoally/internal/telegram"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	widgets     *service.WidgetRegistry
	tgLogger    *telegram.TelegramLogger
	suggestions []string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Widgets  *service.WidgetRegistry
	TgLogger *telegram.TelegramLogger
	// Suggestions defaults to config.SuggestedQuestions.
	Suggestions []string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	suggestions := deps.Suggestions
	if suggestions == nil {
		suggestions = config.SuggestedQuestions
	}
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		widgets:     deps.Widgets,
		tgLogger:    deps.TgLogger,
		suggestions: suggestions,
	}
}
