package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment.
type Config struct {
	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8920"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	IconsDir   string `env:"ICONS_DIR" envDefault:"./data/icons"`
	ExportsDir string `env:"EXPORTS_DIR" envDefault:"./data/exports"`
	CardPixels int    `env:"CARD_PIXELS" envDefault:"800"`

	JobStore      string `env:"JOB_STORE" envDefault:"fs"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch c.JobStore {
	case "fs", "redis":
	default:
		return Config{}, fmt.Errorf("invalid JOB_STORE %q: want fs or redis", c.JobStore)
	}
	if c.CardPixels < 100 || c.CardPixels > 4000 {
		return Config{}, fmt.Errorf("CARD_PIXELS %d out of range [100, 4000]", c.CardPixels)
	}
	if _, err := c.SlogLevel(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// SlogLevel parses LogLevel into a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
}
