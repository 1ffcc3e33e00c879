package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/set-night/endoally/internal/config"
)

// TelegramLogger mirrors operational events into topics of a log chat.
type TelegramLogger struct {
	bot Sender
	cfg *config.Config
}

func NewTelegramLogger(b Sender, cfg *config.Config) *TelegramLogger {
	return &TelegramLogger{bot: b, cfg: cfg}
}

type LogType string

const (
	LogTypeError     LogType = "error"
	LogTypeSession   LogType = "session"
	LogTypeToolCall  LogType = "toolCall"
	LogTypeRateLimit LogType = "rateLimit"
)

func (l *TelegramLogger) Log(logType LogType, message string) {
	if l == nil || l.cfg.LogTelegramChatID == 0 {
		return
	}

	topicID := l.getTopicID(logType)
	if topicID == 0 {
		return
	}

	// Truncate if too long
	if len([]rune(message)) > MaxMessageLen {
		message = string([]rune(message)[:MaxMessageLen-20]) + "\n\n... (truncated)"
	}

	message = FixMarkdown(message)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := l.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          l.cfg.LogTelegramChatID,
		Text:            message,
		ParseMode:       "Markdown",
		MessageThreadID: topicID,
	})
	if err != nil {
		slog.Error("failed to send telegram log", "type", logType, "error", err)
	}
}

func (l *TelegramLogger) LogError(err error, context string) {
	msg := fmt.Sprintf("❌ *Error*\n\n*Context:* %s\n*Error:* `%s`\n*Time:* %s",
		context, err.Error(), time.Now().Format("2006-01-02 15:04:05"))
	l.Log(LogTypeError, msg)
}

func (l *TelegramLogger) LogSessionStarted(chatID int64, thinking bool) {
	mode := "standard"
	if thinking {
		mode = "thinking"
	}
	msg := fmt.Sprintf("💬 *Session Started*\n\n*Chat:* `%d`\n*Mode:* %s", chatID, mode)
	l.Log(LogTypeSession, msg)
}

func (l *TelegramLogger) LogToolCalls(chatID int64, names []string) {
	if len(names) == 0 {
		return
	}
	msg := fmt.Sprintf("🛠 *Tool Call*\n\n*Chat:* `%d`\n*Tools:* %s", chatID, strings.Join(names, ", "))
	l.Log(LogTypeToolCall, msg)
}

func (l *TelegramLogger) LogRateLimited(chatID int64) {
	msg := fmt.Sprintf("⏳ *Rate Limited*\n\n*Chat:* `%d`", chatID)
	l.Log(LogTypeRateLimit, msg)
}

func (l *TelegramLogger) getTopicID(logType LogType) int {
	switch logType {
	case LogTypeError:
		return l.cfg.LogTopicError
	case LogTypeSession:
		return l.cfg.LogTopicSession
	case LogTypeToolCall:
		return l.cfg.LogTopicToolCall
	case LogTypeRateLimit:
		return l.cfg.LogTopicRateLimits
	default:
		return 0
	}
}
