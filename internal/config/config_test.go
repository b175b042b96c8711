package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.ReviewPageSize)
		assert.Equal(t, 4, cfg.CodeLength)
		assert.Equal(t, PriceConfig{Min: 0, Max: 100000, Low: 20000, High: 80000}, cfg.Price)
		assert.Empty(t, cfg.Telemetry.Key, "telemetry has no project key by default")
	})

	t.Run("telemetry key from env", func(t *testing.T) {
		t.Setenv("VENUE_POSTHOG_KEY", "phc_test")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "phc_test", cfg.Telemetry.Key)
		assert.Equal(t, "https://eu.i.posthog.com", cfg.Telemetry.Endpoint)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
review-page-size: 5
code-length: 6
price:
  min: 500
  max: 9000
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.ReviewPageSize)
		assert.Equal(t, 6, cfg.CodeLength)
		assert.Equal(t, 500, cfg.Price.Min)
		assert.Equal(t, 9000, cfg.Price.Max)
		assert.Equal(t, 8, cfg.ListPageSize, "unset keys keep their default")
	})

	t.Run("env overrides file", func(t *testing.T) {
		path := writeConfig(t, "review-page-size: 5\n")
		t.Setenv("VENUE_REVIEW_PAGE_SIZE", "2")
		t.Setenv("VENUE_PRICE_MAX", "250000")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.ReviewPageSize)
		assert.Equal(t, 250000, cfg.Price.Max)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "review-page-size: [\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("zero page size rejected", func(t *testing.T) {
		path := writeConfig(t, "review-page-size: 0\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "review-page-size")
	})

	t.Run("degenerate price bounds rejected", func(t *testing.T) {
		path := writeConfig(t, "price:\n  min: 10\n  max: 10\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "price.max")
	})
}
