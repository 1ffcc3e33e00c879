package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
)

const (
	CallbackSuggestion     = "q_"
	CallbackToggleThinking = "toggle_thinking"
	CallbackRestart        = "restart"

	WebsiteURL   = "https://www.endoviolence.com/"
	InstagramURL = "https://www.instagram.com/endoviolence.collective/"
)

// InlineButton creates a single inline keyboard button.
func InlineButton(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// URLButton creates a URL inline keyboard button.
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// InlineKeyboard creates an inline keyboard from rows of buttons.
func InlineKeyboard(rows ...[]models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ButtonRow creates a row of inline buttons.
func ButtonRow(buttons ...models.InlineKeyboardButton) []models.InlineKeyboardButton {
	return buttons
}

// WidgetKeyboard lists the suggested questions, the thinking-mode toggle and
// links to the collective.
func WidgetKeyboard(questions []string, thinking bool) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(questions)+2)
	for i, q := range questions {
		rows = append(rows, ButtonRow(InlineButton(q, CallbackSuggestion+strconv.Itoa(i))))
	}

	toggle := "🧠 Thinking Mode: off"
	if thinking {
		toggle = "🧠 Thinking Mode: on"
	}
	rows = append(rows, ButtonRow(
		InlineButton(toggle, CallbackToggleThinking),
		InlineButton("🔄 Restart", CallbackRestart),
	))
	rows = append(rows, ButtonRow(
		URLButton("Website", WebsiteURL),
		URLButton("Instagram", InstagramURL),
	))
	return InlineKeyboard(rows...)
}

// ParseSuggestion returns the question index carried by suggestion callback data.
func ParseSuggestion(data string, count int) (int, error) {
	raw, ok := strings.CutPrefix(data, CallbackSuggestion)
	if !ok {
		return 0, fmt.Errorf("not a suggestion callback: %q", data)
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse suggestion index: %w", err)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("suggestion index %d out of range", i)
	}
	return i, nil
}
