// Package config resolves runtime configuration from the environment
// (optionally seeded by a .env file at the project root).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"

	"storyloom/internal/database"
	"storyloom/internal/utils"
)

const (
	StorageSQLite = "sqlite"
	StorageBolt   = "bolt"
)

type Config struct {
	DBPath          string `env:"STORYLOOM_DB_PATH"`
	Storage         string `env:"STORYLOOM_STORAGE" envDefault:"sqlite"`
	BoltPath        string `env:"STORYLOOM_BOLT_PATH"`
	LogLevel        string `env:"STORYLOOM_LOG_LEVEL" envDefault:"info"`
	LogJSON         bool   `env:"STORYLOOM_LOG_JSON" envDefault:"false"`
	RecentChatLimit int    `env:"STORYLOOM_RECENT_CHAT_LIMIT" envDefault:"5"`
	FontCSSBase     string `env:"STORYLOOM_FONT_CSS_BASE" envDefault:"https://fonts.googleapis.com/css2"`
}

// Load reads .env (when present) and then the STORYLOOM_* variables.
func Load() (*Config, error) {
	if err := utils.LoadEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case "":
		c.Storage = StorageSQLite
	case StorageSQLite, StorageBolt:
	default:
		return fmt.Errorf("unsupported storage %q: want %q or %q", c.Storage, StorageSQLite, StorageBolt)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = database.GetDefaultDBPath()
	}
	if c.Storage == StorageBolt && strings.TrimSpace(c.BoltPath) == "" {
		c.BoltPath = database.GetDefaultBoltPath()
	}
	if c.RecentChatLimit <= 0 {
		c.RecentChatLimit = 5
	}
	return nil
}
