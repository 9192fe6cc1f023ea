// Package config loads the poker-odds HCL configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/pokertrainer/internal/fileutil"
)

const (
	DefaultLogLevel            = "info"
	DefaultOpponents           = 1
	DefaultOverlaySimulations  = 2000
	DefaultAnalysisSimulations = 50000
	DefaultWorkers             = 4
	DefaultOverlayBudget       = "150ms"

	// MaxOpponents is the most opponents a preflop deal can seat.
	MaxOpponents = 22
)

// Config represents the complete poker-odds configuration
type Config struct {
	LogLevel string          `hcl:"log_level,optional"`
	Seed     int64           `hcl:"seed,optional"`
	Equity   *EquitySettings `hcl:"equity,block"`
}

// EquitySettings tunes Monte Carlo equity runs
type EquitySettings struct {
	Opponents           *int   `hcl:"opponents,optional"` // nil when omitted; zero opponents is valid
	OverlaySimulations  int    `hcl:"overlay_simulations,optional"`
	AnalysisSimulations int    `hcl:"analysis_simulations,optional"`
	Workers             int    `hcl:"workers,optional"`
	OverlayBudget       string `hcl:"overlay_budget,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Equity: &EquitySettings{
			Opponents:           intPtr(DefaultOpponents),
			OverlaySimulations:  DefaultOverlaySimulations,
			AnalysisSimulations: DefaultAnalysisSimulations,
			Workers:             DefaultWorkers,
			OverlayBudget:       DefaultOverlayBudget,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults; omitted fields are filled with their defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Equity == nil {
		c.Equity = &EquitySettings{}
	}

	if c.Equity.Opponents == nil {
		c.Equity.Opponents = intPtr(DefaultOpponents)
	}
	if c.Equity.OverlaySimulations == 0 {
		c.Equity.OverlaySimulations = DefaultOverlaySimulations
	}
	if c.Equity.AnalysisSimulations == 0 {
		c.Equity.AnalysisSimulations = DefaultAnalysisSimulations
	}
	if c.Equity.Workers == 0 {
		c.Equity.Workers = DefaultWorkers
	}
	if c.Equity.OverlayBudget == "" {
		c.Equity.OverlayBudget = DefaultOverlayBudget
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if c.Equity == nil {
		return fmt.Errorf("equity settings are missing")
	}
	if n := c.Equity.OpponentCount(); n < 0 || n > MaxOpponents {
		return fmt.Errorf("opponents must be between 0 and %d, got %d", MaxOpponents, n)
	}
	if c.Equity.OverlaySimulations <= 0 {
		return fmt.Errorf("overlay simulations must be positive")
	}
	if c.Equity.AnalysisSimulations <= 0 {
		return fmt.Errorf("analysis simulations must be positive")
	}
	if c.Equity.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := c.OverlayBudget(); err != nil {
		return err
	}

	return nil
}

// OverlayBudget returns the parsed time budget for live overlay refreshes
func (c *Config) OverlayBudget() (time.Duration, error) {
	budget, err := time.ParseDuration(c.Equity.OverlayBudget)
	if err != nil {
		return 0, fmt.Errorf("invalid overlay budget %q: %w", c.Equity.OverlayBudget, err)
	}
	if budget <= 0 {
		return 0, fmt.Errorf("overlay budget must be positive, got %s", budget)
	}
	return budget, nil
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

// Save writes the configuration to filename. Unless overwrite is set an
// existing file is left alone and fileutil.ErrExists is returned.
func (c *Config) Save(filename string, overwrite bool) error {
	if overwrite {
		return fileutil.WriteFileAtomic(filename, c.Encode(), 0o644)
	}
	return fileutil.CreateFileAtomic(filename, c.Encode(), 0o644)
}

// OpponentCount returns the configured opponents, or the default when unset
func (e *EquitySettings) OpponentCount() int {
	if e.Opponents == nil {
		return DefaultOpponents
	}
	return *e.Opponents
}

func intPtr(n int) *int {
	return &n
}
