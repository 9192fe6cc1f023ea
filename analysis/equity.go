// Package analysis provides poker analysis tools built on the poker package:
// Monte Carlo equity estimation, outs counting and quick hand strength.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lox/pokertrainer/poker"
)

// ErrInvalidInput is returned when callers pass card sets or counts that no
// simulation can honour.
var ErrInvalidInput = errors.New("invalid input")

// EquityResult represents the result of an equity calculation
type EquityResult struct {
	Wins        int
	Ties        int
	Losses      int
	TieShare    float64 // Sum of 1/k over every k-way tie
	Simulations int
}

// Equity returns the overall equity (0.0 to 1.0).
// Wins count as 1.0 and a k-way tie counts as 1/k.
func (e EquityResult) Equity() float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return (float64(e.Wins) + e.TieShare) / float64(e.Simulations)
}

// WinRate returns the fraction of outright wins (0.0 to 1.0)
func (e EquityResult) WinRate() float64 {
	return e.rate(e.Wins)
}

// TieRate returns the fraction of tied trials (0.0 to 1.0)
func (e EquityResult) TieRate() float64 {
	return e.rate(e.Ties)
}

// LossRate returns the fraction of lost trials (0.0 to 1.0)
func (e EquityResult) LossRate() float64 {
	return e.rate(e.Losses)
}

func (e EquityResult) rate(n int) float64 {
	if e.Simulations == 0 {
		return 0.0
	}
	return float64(n) / float64(e.Simulations)
}

// ConfidenceInterval returns the 95% confidence interval for equity
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	n := float64(e.Simulations)
	if n == 0 {
		return 0.0, 0.0
	}

	equity := e.Equity()
	// Standard error for binomial proportion
	margin := 1.96 * math.Sqrt(equity*(1.0-equity)/n)

	return math.Max(0.0, equity-margin), math.Min(1.0, equity+margin)
}

func (e *EquityResult) merge(other EquityResult) {
	e.Wins += other.Wins
	e.Ties += other.Ties
	e.Losses += other.Losses
	e.TieShare += other.TieShare
	e.Simulations += other.Simulations
}

// EstimateEquity estimates the probability that hole wins against
// numOpponents uniformly random hands, given the known community cards.
func EstimateEquity(hole, community []poker.Card, numOpponents, simulations int, rng *rand.Rand) (float64, error) {
	result, err := Simulate(hole, community, numOpponents, simulations, rng)
	if err != nil {
		return 0, err
	}
	return result.Equity(), nil
}

// Simulate runs simulations Monte Carlo trials on the calling goroutine and
// returns the full win/tie/loss breakdown.
func Simulate(hole, community []poker.Card, numOpponents, simulations int, rng *rand.Rand) (EquityResult, error) {
	if err := validateEquity(hole, community, numOpponents); err != nil {
		return EquityResult{}, err
	}
	if simulations <= 0 {
		return EquityResult{}, fmt.Errorf("simulations must be positive, got %d: %w", simulations, ErrInvalidInput)
	}

	s := newSimulator(hole, community, numOpponents, rng)
	return s.run(simulations), nil
}

// validateEquity checks the hand and opponent count shared by every equity entry point.
func validateEquity(hole, community []poker.Card, numOpponents int) error {
	if len(hole) != 2 {
		return fmt.Errorf("need 2 hole cards, got %d: %w", len(hole), ErrInvalidInput)
	}
	switch len(community) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("community must hold 0, 3, 4 or 5 cards, got %d: %w", len(community), ErrInvalidInput)
	}
	if numOpponents < 0 {
		return fmt.Errorf("negative opponent count %d: %w", numOpponents, ErrInvalidInput)
	}
	if err := validateKnown(hole, community); err != nil {
		return err
	}

	needed := 2*numOpponents + 5 - len(community)
	if available := 52 - len(hole) - len(community); needed > available {
		return fmt.Errorf("%d opponents need %d cards, only %d remain: %w", numOpponents, needed, available, ErrInvalidInput)
	}
	return nil
}

// validateKnown rejects invalid or repeated cards across hole and community.
func validateKnown(hole, community []poker.Card) error {
	var seen poker.CardSet
	for _, cards := range [][]poker.Card{hole, community} {
		for _, card := range cards {
			if !card.Valid() {
				return fmt.Errorf("invalid card %v: %w", card, ErrInvalidInput)
			}
			if seen.Contains(card) {
				return fmt.Errorf("duplicate card %s: %w", card, ErrInvalidInput)
			}
			seen.Add(card)
		}
	}
	return nil
}

// simulator owns the reusable state for one stream of trials. It is not safe
// for concurrent use; parallel callers build one per worker.
type simulator struct {
	hole         []poker.Card
	community    []poker.Card
	known        []poker.Card
	numOpponents int
	deck         *poker.Deck
	board        []poker.Card
	seat         []poker.Card
}

func newSimulator(hole, community []poker.Card, numOpponents int, rng *rand.Rand) *simulator {
	known := make([]poker.Card, 0, len(hole)+len(community))
	known = append(known, hole...)
	known = append(known, community...)

	return &simulator{
		hole:         hole,
		community:    community,
		known:        known,
		numOpponents: numOpponents,
		deck:         poker.NewDeck(rng),
		board:        make([]poker.Card, 0, 5),
		seat:         make([]poker.Card, 0, 7),
	}
}

// run plays n trials and tallies the outcome for the hero.
func (s *simulator) run(n int) EquityResult {
	result := EquityResult{Simulations: n}
	if s.numOpponents == 0 {
		result.Wins = n
		return result
	}

	for i := 0; i < n; i++ {
		switch tied := s.trial(); {
		case tied < 0:
			result.Losses++
		case tied == 0:
			result.Wins++
		default:
			result.Ties++
			result.TieShare += 1.0 / float64(tied+1)
		}
	}
	return result
}

// trial deals one random completion. It returns -1 when an opponent beats the
// hero, otherwise the number of opponents sharing the best hand with the hero.
func (s *simulator) trial() int {
	s.deck.Reset()
	s.deck.RemoveCards(s.known...)
	s.deck.Shuffle()

	// Validation guarantees the deck can seat everyone, so dealing cannot fail.
	opponents, _ := s.deck.DealMultiple(2 * s.numOpponents)
	runout, _ := s.deck.DealMultiple(5 - len(s.community))

	s.board = append(append(s.board[:0], s.community...), runout...)
	hero := s.score(s.hole)

	tied := 0
	for i := 0; i < len(opponents); i += 2 {
		switch opp := s.score(opponents[i : i+2]); {
		case opp > hero:
			return -1
		case opp == hero:
			tied++
		}
	}
	return tied
}

func (s *simulator) score(hole []poker.Card) uint32 {
	s.seat = append(append(s.seat[:0], hole...), s.board...)
	hand, _ := poker.BestHand(s.seat)
	return hand.Score()
}
