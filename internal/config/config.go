// Package config loads user settings from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds every tunable of the application.
// File keys use koanf tags, environment overrides use env tags.
type Config struct {
	DatabasePath string `koanf:"database-path" env:"VENUE_DB_PATH"`
	LogPath      string `koanf:"log-path" env:"VENUE_LOG_PATH"`

	ReviewPageSize int `koanf:"review-page-size" env:"VENUE_REVIEW_PAGE_SIZE"`
	ListPageSize   int `koanf:"list-page-size" env:"VENUE_LIST_PAGE_SIZE"`
	SkeletonRows   int `koanf:"skeleton-rows" env:"VENUE_SKELETON_ROWS"`
	CodeLength     int `koanf:"code-length" env:"VENUE_CODE_LENGTH"`

	Price PriceConfig `koanf:"price" envPrefix:"VENUE_PRICE_"`

	SigningKey string `koanf:"signing-key" env:"VENUE_SIGNING_KEY"`
	Remember   bool   `koanf:"remember-login" env:"VENUE_REMEMBER_LOGIN"`

	Telemetry TelemetryConfig `koanf:"telemetry" envPrefix:"VENUE_POSTHOG_"`
}

// TelemetryConfig points usage events at a PostHog project.
// No key means no events are sent.
type TelemetryConfig struct {
	Key      string `koanf:"key" env:"KEY"`
	Endpoint string `koanf:"endpoint" env:"ENDPOINT"`
}

// PriceConfig bounds the price filter and sets its initial handles.
type PriceConfig struct {
	Min  int `koanf:"min" env:"MIN"`
	Max  int `koanf:"max" env:"MAX"`
	Low  int `koanf:"low" env:"LOW"`
	High int `koanf:"high" env:"HIGH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatabasePath:   GetDatabasePath(),
		LogPath:        GetLogPath(),
		ReviewPageSize: 3,
		ListPageSize:   8,
		SkeletonRows:   3,
		CodeLength:     4,
		Price: PriceConfig{
			Min:  0,
			Max:  100000,
			Low:  20000,
			High: 80000,
		},
		Remember: true,
		Telemetry: TelemetryConfig{
			Endpoint: "https://eu.i.posthog.com",
		},
	}
}

// Load reads the file at path (missing file is fine) on top of the
// defaults, then applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := loadFile(path, &cfg); err != nil {
		return nil, err
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, target *Config) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := k.Unmarshal("", target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the UI cannot work with.
func (c Config) Validate() error {
	if c.ReviewPageSize <= 0 {
		return fmt.Errorf("review-page-size must be positive, got %d", c.ReviewPageSize)
	}
	if c.ListPageSize <= 0 {
		return fmt.Errorf("list-page-size must be positive, got %d", c.ListPageSize)
	}
	if c.CodeLength <= 0 {
		return fmt.Errorf("code-length must be positive, got %d", c.CodeLength)
	}
	if c.SkeletonRows < 0 {
		return fmt.Errorf("skeleton-rows must not be negative, got %d", c.SkeletonRows)
	}
	if c.Price.Max <= c.Price.Min {
		return fmt.Errorf("price.max (%d) must be greater than price.min (%d)", c.Price.Max, c.Price.Min)
	}
	return nil
}
