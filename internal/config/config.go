package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Operators allowed to mutate content
	AdminIDs []int64 `env:"ADMIN_IDS" envSeparator:","`

	// Local content directories
	ImagesDir    string `env:"IMAGES_DIR" envDefault:"images"`
	DocumentsDir string `env:"DOCUMENTS_DIR" envDefault:"documents"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsAdmin reports whether the identity is in the operator allow-list.
func (c *Config) IsAdmin(telegramID int64) bool {
	for _, id := range c.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}
