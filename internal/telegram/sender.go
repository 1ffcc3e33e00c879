package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/set-night/endoally/internal/domain"
)

const MaxMessageLen = 4096

// Sender is the part of the bot API used to deliver messages.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// SendLongMessage sends a potentially long message, splitting it into parts if needed.
// Falls back to plain text, markup stripped, if Markdown parsing fails. The reply markup goes
// on the last part.
func SendLongMessage(ctx context.Context, b Sender, chatID int64, text string, markup models.ReplyMarkup) error {
	text = FixMarkdown(text)
	parts := SplitMessage(text, MaxMessageLen)

	for i, part := range parts {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      part,
			ParseMode: models.ParseModeMarkdownV1,
		}
		if markup != nil && i == len(parts)-1 {
			params.ReplyMarkup = markup
		}

		_, err := b.SendMessage(ctx, params)
		if err != nil {
			// Fallback to plain text
			slog.Warn("markdown send failed, falling back to plain text", "error", err)
			params.ParseMode = ""
			params.Text = StripMarkdown(part)
			_, err = b.SendMessage(ctx, params)
			if err != nil {
				return fmt.Errorf("send message: %w", err)
			}
		}
	}

	return nil
}

// SendChatMessage delivers one transcript message: its text, then its audio.
func SendChatMessage(ctx context.Context, b Sender, chatID int64, msg domain.ChatMessage, markup models.ReplyMarkup) error {
	text := FormatMessage(msg)
	if text != "" {
		textMarkup := markup
		if msg.Audio != nil {
			textMarkup = nil
		}
		if err := SendLongMessage(ctx, b, chatID, text, textMarkup); err != nil {
			return err
		}
	}

	if msg.Audio == nil {
		return nil
	}
	params := &bot.SendAudioParams{
		ChatID:  chatID,
		Audio:   &models.InputFileString{Data: msg.Audio.URL},
		Caption: msg.Audio.Caption,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.SendAudio(ctx, params); err != nil {
		return fmt.Errorf("send audio: %w", err)
	}
	return nil
}

// StartTyping sends "typing..." action every 4 seconds until the returned cancel function is called.
func StartTyping(ctx context.Context, b Sender, chatID int64) context.CancelFunc {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(4 * time.Second)
		defer ticker.Stop()
		// Send immediately
		b.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatActionTyping,
		})
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				b.SendChatAction(ctx, &bot.SendChatActionParams{
					ChatID: chatID,
					Action: models.ChatActionTyping,
				})
			}
		}
	}()
	return cancel
}
