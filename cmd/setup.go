package cmd

import (
	"fmt"

	"github.com/juanibiapina/venue/internal/app"
	"github.com/juanibiapina/venue/internal/config"
	"github.com/juanibiapina/venue/internal/pricerange"
	"github.com/juanibiapina/venue/internal/telemetry"
	"github.com/juanibiapina/venue/internal/tui"
)

// openApp loads the configuration, starts the log file and opens the
// database. Callers must Close the app.
func openApp() (*app.App, error) {
	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := app.InitLogger(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	a, err := app.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return a, nil
}

// initTelemetry starts telemetry from the configured PostHog project.
// A config that fails to load leaves telemetry off; the command reports
// the error itself when it opens the app.
func initTelemetry() {
	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		return
	}
	telemetry.Init(cfg.Telemetry.Key, cfg.Telemetry.Endpoint)
}

// withApp runs fn with an open app and closes it afterwards.
func withApp(fn func(a *app.App) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func tuiOptions(cfg *config.Config, startPath string) tui.Options {
	return tui.Options{
		StartPath:      startPath,
		ReviewPageSize: cfg.ReviewPageSize,
		ListPageSize:   cfg.ListPageSize,
		SkeletonRows:   cfg.SkeletonRows,
		CodeLength:     cfg.CodeLength,
		Price:          pricerange.New(cfg.Price.Min, cfg.Price.Max, cfg.Price.Low, cfg.Price.High),
		Remember:       cfg.Remember,
	}
}
