package main

import (
	"fmt"
	"io"
	"os"
	"time"

	rand "math/rand/v2"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pokertrainer/internal/config"
	"github.com/lox/pokertrainer/internal/randutil"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	File    string           `short:"c" name:"config" default:"poker-odds.hcl" type:"path" help:"HCL configuration file"`
	Debug   bool             `help:"Enable debug logging"`
	NoColor bool             `help:"Disable colored output"`

	Hand     HandCmd     `cmd:"" help:"Show the best five-card hand"`
	Outs     OutsCmd     `cmd:"" help:"Count the outs on a flop or turn"`
	Strength StrengthCmd `cmd:"" help:"Quick strength estimate without simulation"`
	Equity   EquityCmd   `cmd:"" help:"Monte Carlo equity against random hands"`
	Config   ConfigCmd   `cmd:"" name:"config" help:"Manage the configuration file"`
}

// env carries the state shared by every command
type env struct {
	cfg     *config.Config
	cfgPath string
	logger  *log.Logger
	out     io.Writer
}

// rng returns a generator seeded from override, the config seed, or the clock.
func (e *env) rng(override *int64) *rand.Rand {
	seed := randutil.Seed(e.cfg.Seed, time.Now())
	if override != nil {
		seed = *override
	}
	e.logger.Debug("seeded generator", "seed", seed)
	return randutil.New(seed)
}

func newEnv(cli *CLI, out io.Writer) (*env, error) {
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(cli.File)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cli.File, err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	logger.Debug("loaded config", "path", cli.File, "workers", cfg.Equity.Workers)

	return &env{cfg: cfg, cfgPath: cli.File, logger: logger, out: out}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("poker-odds"),
		kong.Description("Hand evaluation, outs and equity for Texas Hold'em"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	e, err := newEnv(&cli, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(e)
	ctx.FatalIfErrorf(err)
}
