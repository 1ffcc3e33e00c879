package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ModelConfig holds what any front end needs to reach the hosted model.
type ModelConfig struct {
	GeminiAPIKey   string        `env:"GEMINI_API_KEY,required"`
	GeminiBaseURL  string        `env:"GEMINI_BASE_URL"`
	ProfilePath    string        `env:"PROFILE_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`
}

type Config struct {
	ModelConfig

	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Admin
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Widgets
	WidgetIdleTimeout  time.Duration `env:"WIDGET_IDLE_TIMEOUT" envDefault:"30m"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"6"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`

	// Telegram logging
	LogTelegramChatID  int64 `env:"LOG_TELEGRAM_CHAT_ID"`
	LogTopicError      int   `env:"LOG_TOPIC_ERROR"`
	LogTopicSession    int   `env:"LOG_TOPIC_SESSION"`
	LogTopicToolCall   int   `env:"LOG_TOPIC_TOOL_CALL"`
	LogTopicRateLimits int   `env:"LOG_TOPIC_RATE_LIMIT"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadModel parses only the model settings, for front ends without a bot.
func LoadModel() (*ModelConfig, error) {
	cfg := &ModelConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func (c *Config) AdminIDsString() string {
	parts := make([]string, len(c.AdminIDs))
	for i, id := range c.AdminIDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}
