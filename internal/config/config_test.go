package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertrainer/internal/fileutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poker-odds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
seed      = 42

equity {
  opponents            = 3
  overlay_simulations  = 500
  analysis_simulations = 20000
  workers              = 2
  overlay_budget       = "75ms"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 3, cfg.Equity.OpponentCount())
	assert.Equal(t, 500, cfg.Equity.OverlaySimulations)
	assert.Equal(t, 20000, cfg.Equity.AnalysisSimulations)
	assert.Equal(t, 2, cfg.Equity.Workers)

	budget, err := cfg.OverlayBudget()
	require.NoError(t, err)
	assert.Equal(t, 75*time.Millisecond, budget)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Run("no equity block", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `seed = 7`))
		require.NoError(t, err)

		assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
		assert.Equal(t, Default().Equity, cfg.Equity)
	})

	t.Run("partial equity block", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
equity {
  workers = 8
}
`))
		require.NoError(t, err)

		assert.Equal(t, DefaultOpponents, cfg.Equity.OpponentCount())
		assert.Equal(t, DefaultOverlaySimulations, cfg.Equity.OverlaySimulations)
		assert.Equal(t, DefaultAnalysisSimulations, cfg.Equity.AnalysisSimulations)
		assert.Equal(t, 8, cfg.Equity.Workers)
		assert.Equal(t, DefaultOverlayBudget, cfg.Equity.OverlayBudget)
	})

	t.Run("zero opponents kept", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
equity {
  opponents = 0
}
`))
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Equity.OpponentCount())
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadInvalidHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `equity {`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `unknown_field = 1`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `seed = "abc"`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"negative opponents", func(c *Config) { c.Equity.Opponents = intPtr(-1) }},
		{"too many opponents", func(c *Config) { c.Equity.Opponents = intPtr(MaxOpponents + 1) }},
		{"overlay simulations", func(c *Config) { c.Equity.OverlaySimulations = 0 }},
		{"analysis simulations", func(c *Config) { c.Equity.AnalysisSimulations = -10 }},
		{"workers", func(c *Config) { c.Equity.Workers = 0 }},
		{"unparseable budget", func(c *Config) { c.Equity.OverlayBudget = "soon" }},
		{"zero budget", func(c *Config) { c.Equity.OverlayBudget = "0s" }},
		{"missing equity", func(c *Config) { c.Equity = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poker-odds.hcl")

	cfg := Default()
	cfg.Seed = 1234
	cfg.Equity.Opponents = intPtr(0)
	cfg.Equity.OverlayBudget = "250ms"
	require.NoError(t, cfg.Save(path, false))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.ErrorIs(t, Default().Save(path, false), fileutil.ErrExists)
	require.NoError(t, Default().Save(path, true))

	loaded, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}
