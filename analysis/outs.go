package analysis

import (
	"fmt"

	"github.com/lox/pokertrainer/poker"
)

// Outs describes the unseen cards that would lift the current best hand into
// a higher category. Only category improvement counts: a card that merely
// raises a kicker is not an out.
type Outs struct {
	Current    poker.Category
	Cards      []poker.Card                    // Every out, in canonical deck order
	ByCategory map[poker.Category][]poker.Card // Outs keyed by the category they produce
	Unseen     int                             // Cards not among the known cards
}

// Count returns the number of outs
func (o Outs) Count() int {
	return len(o.Cards)
}

// Probability returns the chance of hitting at least one out when
// cardsToCome more cards are drawn from the unseen cards (1 for the next
// street, 2 from flop to river).
func (o Outs) Probability(cardsToCome int) float64 {
	if cardsToCome <= 0 || o.Unseen == 0 {
		return 0
	}
	if cardsToCome > o.Unseen {
		cardsToCome = o.Unseen
	}

	// 1 - C(unseen-outs, k) / C(unseen, k)
	miss := 1.0
	for i := 0; i < cardsToCome; i++ {
		miss *= float64(o.Unseen-o.Count()-i) / float64(o.Unseen-i)
		if miss <= 0 {
			return 1
		}
	}
	return 1 - miss
}

// CountOuts evaluates every unseen card against two hole cards and a flop or
// turn board.
func CountOuts(hole, community []poker.Card) (Outs, error) {
	if len(hole) != 2 {
		return Outs{}, fmt.Errorf("need 2 hole cards, got %d: %w", len(hole), ErrInvalidInput)
	}
	if len(community) != 3 && len(community) != 4 {
		return Outs{}, fmt.Errorf("outs need a flop or turn board, got %d cards: %w", len(community), ErrInvalidInput)
	}
	if err := validateKnown(hole, community); err != nil {
		return Outs{}, err
	}

	known := make([]poker.Card, 0, len(hole)+len(community)+1)
	known = append(known, hole...)
	known = append(known, community...)

	current, err := poker.BestHand(known)
	if err != nil {
		return Outs{}, err
	}

	unseen := poker.RemainingDeck(known...)
	outs := Outs{
		Current:    current.Category,
		ByCategory: make(map[poker.Category][]poker.Card),
		Unseen:     len(unseen),
	}

	candidate := append(known, poker.Card{})
	for _, card := range unseen {
		candidate[len(candidate)-1] = card
		hand, err := poker.BestHand(candidate)
		if err != nil {
			return Outs{}, err
		}
		if hand.Category > current.Category {
			outs.Cards = append(outs.Cards, card)
			outs.ByCategory[hand.Category] = append(outs.ByCategory[hand.Category], card)
		}
	}

	return outs, nil
}
