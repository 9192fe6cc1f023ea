package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lox/pokertrainer/analysis"
	"github.com/lox/pokertrainer/internal/fileutil"
	"github.com/lox/pokertrainer/poker"
)

// HandCmd shows the best hand made from hole and board cards
type HandCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. 'AsKs'"`
	Board string `arg:"" optional:"" help:"Community cards, e.g. 'QsJsTs'"`
	Vs    string `help:"Opponent hole cards to compare against on the same board"`
}

func (c *HandCmd) Run(e *env) error {
	hole, board, err := parseSituation(c.Hole, c.Board)
	if err != nil {
		return err
	}

	hand, err := poker.BestHandFromHole(hole, board)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "%s %s\n", headerStyle.Render("hand"), handStyle.Render(hand.Name))
	fmt.Fprintf(e.out, "%s\n", formatCards(hand.Cards))
	fmt.Fprintf(e.out, "%s\n", mutedStyle.Render(hand.Describe()))

	if c.Vs == "" {
		return nil
	}

	vsHole, err := parseHole(c.Vs)
	if err != nil {
		return fmt.Errorf("vs: %w", err)
	}
	if err := validateNoDuplicates(append(hole, vsHole...), board); err != nil {
		return err
	}
	other, err := poker.BestHandFromHole(vsHole, board)
	if err != nil {
		return err
	}

	_, explanation := poker.CompareWithExplanation(hand, other)
	fmt.Fprintf(e.out, "\n%s %s\n", headerStyle.Render("vs"), handStyle.Render(other.Name))
	fmt.Fprintf(e.out, "%s\n", explanation)
	return nil
}

// OutsCmd counts the cards that improve the current hand category
type OutsCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. '9s8s'"`
	Board string `arg:"" help:"Flop or turn, e.g. 'Tc7d2h'"`
}

func (c *OutsCmd) Run(e *env) error {
	hole, board, err := parseSituation(c.Hole, c.Board)
	if err != nil {
		return err
	}

	outs, err := analysis.CountOuts(hole, board)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "%s %s\n\n", headerStyle.Render("current"), categoryStyle.Render(outs.Current.String()))

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\n",
		headerStyle.Render("makes"),
		headerStyle.Render("outs"),
		headerStyle.Render("cards"))
	for i := len(poker.Categories) - 1; i >= 0; i-- {
		cat := poker.Categories[i]
		cards := outs.ByCategory[cat]
		if len(cards) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", categoryStyle.Render(cat.String()), len(cards), formatCards(cards))
	}
	fmt.Fprintf(w, "%s\t%d\t\n", headerStyle.Render("total"), outs.Count())
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(e.out, "\n%s %s\n", mutedStyle.Render("next card"), winStyle.Render(formatPercent(outs.Probability(1))))
	if len(board) == 3 {
		fmt.Fprintf(e.out, "%s %s\n", mutedStyle.Render("by river "), winStyle.Render(formatPercent(outs.Probability(2))))
	}
	return nil
}

// StrengthCmd prints the quick, simulation-free strength estimate
type StrengthCmd struct {
	Hole  string `arg:"" help:"Hole cards, e.g. 'AhKd'"`
	Board string `arg:"" optional:"" help:"Community cards"`
}

func (c *StrengthCmd) Run(e *env) error {
	hole, board, err := parseSituation(c.Hole, c.Board)
	if err != nil {
		return err
	}

	strength := analysis.QuickHandStrength(hole, board)
	bucket := analysis.Bucket(strength)

	fmt.Fprintf(e.out, "%s %s\n", headerStyle.Render("strength"), bucketStyle(bucket).Render(fmt.Sprintf("%.3f", strength)))
	fmt.Fprintf(e.out, "%s %s\n", headerStyle.Render("bucket"), bucketStyle(bucket).Render(string(bucket)))
	if len(board) == 0 {
		fmt.Fprintf(e.out, "%s %s (%s)\n",
			headerStyle.Render("preflop"),
			categoryStyle.Render(string(poker.CategorizeHoleCards(hole[0], hole[1]))),
			poker.HandKey(hole[0], hole[1]))
	}
	return nil
}

// EquityCmd estimates equity against uniformly random opponent hands
type EquityCmd struct {
	Hole        string        `arg:"" help:"Hole cards, e.g. 'AsAh'"`
	Board       string        `short:"b" help:"Community cards (0, 3, 4 or 5), e.g. 'Td7s8h'"`
	Opponents   *int          `short:"o" help:"Number of opponents (default from config)"`
	Simulations int           `short:"n" help:"Number of trials (default from config)"`
	Workers     int           `short:"w" help:"Parallel workers (default from config)"`
	Seed        *int64        `help:"Random seed for reproducible results"`
	Budget      time.Duration `help:"Stop after this much time instead of a fixed trial count"`
	Overlay     bool          `help:"Use the live overlay budget and trial cap from config"`
}

func (c *EquityCmd) Run(e *env) error {
	hole, board, err := parseSituation(c.Hole, c.Board)
	if err != nil {
		return err
	}

	opponents := e.cfg.Equity.OpponentCount()
	if c.Opponents != nil {
		opponents = *c.Opponents
	}
	workers := e.cfg.Equity.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	simulations := e.cfg.Equity.AnalysisSimulations
	budget := c.Budget
	if c.Overlay {
		simulations = e.cfg.Equity.OverlaySimulations
		if budget == 0 {
			if budget, err = e.cfg.OverlayBudget(); err != nil {
				return err
			}
		}
	}
	if c.Simulations > 0 {
		simulations = c.Simulations
	}

	calc := analysis.NewCalculator(analysis.WithWorkers(workers), analysis.WithLogger(e.logger))
	rng := e.rng(c.Seed)

	start := time.Now()
	var result analysis.EquityResult
	if budget > 0 {
		result, err = calc.SimulateFor(context.Background(), hole, board, opponents, budget, simulations, rng)
	} else {
		result, err = calc.Simulate(context.Background(), hole, board, opponents, simulations, rng)
	}
	if err != nil {
		return err
	}

	displayEquity(e, hole, board, opponents, result, time.Since(start))
	return nil
}

func displayEquity(e *env, hole, board []poker.Card, opponents int, result analysis.EquityResult, duration time.Duration) {
	if len(board) > 0 {
		fmt.Fprintf(e.out, "%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("equity"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		handStyle.Render(formatCards(hole)),
		handStyle.Render(formatPercent(result.Equity())),
		winStyle.Render(formatPercent(result.WinRate())),
		tieStyle.Render(formatPercent(result.TieRate())),
		lossStyle.Render(formatPercent(result.LossRate())))
	_ = w.Flush()

	lower, upper := result.ConfidenceInterval()
	fmt.Fprintf(e.out, "\n%s %s - %s\n", mutedStyle.Render("95% interval"), formatPercent(lower), formatPercent(upper))
	fmt.Fprintf(e.out, "%d iterations against %d %s in %v\n",
		result.Simulations, opponents, pluralize("opponent", opponents), duration.Truncate(time.Millisecond))
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// parseHole parses exactly two hole cards
func parseHole(s string) ([]poker.Card, error) {
	hole, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("hole cards: %w", err)
	}
	if len(hole) != 2 {
		return nil, fmt.Errorf("hole cards: must contain exactly 2 cards, got %d", len(hole))
	}
	return hole, nil
}

// parseSituation parses hole and board cards and rejects duplicates
func parseSituation(holeStr, boardStr string) (hole, board []poker.Card, err error) {
	hole, err = parseHole(holeStr)
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(boardStr) != "" {
		board, err = poker.ParseCards(boardStr)
		if err != nil {
			return nil, nil, fmt.Errorf("board: %w", err)
		}
		if len(board) > 5 {
			return nil, nil, fmt.Errorf("board cannot have more than 5 cards")
		}
	}

	if err := validateNoDuplicates(hole, board); err != nil {
		return nil, nil, err
	}
	return hole, board, nil
}

func validateNoDuplicates(hole, board []poker.Card) error {
	var seen poker.CardSet
	for _, card := range append(append([]poker.Card{}, board...), hole...) {
		if seen.Contains(card) {
			return fmt.Errorf("duplicate card found: %s", card)
		}
		seen.Add(card)
	}
	return nil
}

// ConfigCmd groups configuration file commands
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the effective configuration to the config file"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCmd writes the effective configuration as HCL
type ConfigInitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(e *env) error {
	if err := e.cfg.Save(e.cfgPath, c.Force); err != nil {
		if errors.Is(err, fileutil.ErrExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	e.logger.Info("wrote config", "path", e.cfgPath)
	return nil
}

// ConfigShowCmd prints the effective configuration as HCL
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(e *env) error {
	_, err := e.out.Write(e.cfg.Encode())
	return err
}
