package poker

import (
	"fmt"
	"strings"
)

// Category enumerates the poker hand classes ordered from weakest (1) to strongest (10).
type Category uint8

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = [...]Category{
	HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the result of evaluating a 5-card hand.
//
// Tiebreak holds the ranks that order hands within the same category:
//
//	Four of a Kind   quad, kicker
//	Full House       trips, pair
//	Flush, High Card five ranks descending
//	Straights        top card of the run (5 for the wheel)
//	Three of a Kind  trips, two kickers descending
//	Two Pair         high pair, low pair, kicker
//	Pair             pair, three kickers descending
type EvaluatedHand struct {
	Category Category
	Name     string
	Tiebreak []Rank
	Cards    []Card // The 5 cards that make up the hand, highest first
}

// String returns a string representation of the hand
func (h EvaluatedHand) String() string {
	if len(h.Cards) == 0 {
		return h.Name
	}
	return fmt.Sprintf("%s [%s]", h.Name, FormatCards(h.Cards))
}

// Compare compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie.
// Categories are compared first, then tie-break ranks lexicographically.
func Compare(a, b EvaluatedHand) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}

	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		}
		if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
	}

	return 0
}

// Beats returns true if this hand beats the other hand
func (h EvaluatedHand) Beats(other EvaluatedHand) bool {
	return Compare(h, other) > 0
}

// Ties returns true if both hands are equal in strength
func (h EvaluatedHand) Ties(other EvaluatedHand) bool {
	return Compare(h, other) == 0
}

// CompareWithExplanation compares two hands and returns the result together
// with a sentence describing why the winner wins.
func CompareWithExplanation(a, b EvaluatedHand) (int, string) {
	result := Compare(a, b)
	if result == 0 {
		return 0, "hands tie"
	}

	winner, loser := a, b
	if result < 0 {
		winner, loser = b, a
	}

	explanation := fmt.Sprintf("%s beats %s", winner, loser)
	if winner.Category != loser.Category {
		return result, explanation + fmt.Sprintf(" (%s beats %s)", winner.Category, loser.Category)
	}

	idx := 0
	for idx < len(winner.Tiebreak) && idx < len(loser.Tiebreak) && winner.Tiebreak[idx] == loser.Tiebreak[idx] {
		idx++
	}
	if idx >= len(winner.Tiebreak) || idx >= len(loser.Tiebreak) {
		return result, explanation
	}

	w, l := winner.Tiebreak[idx], loser.Tiebreak[idx]
	var reason string
	switch winner.Category {
	case Pair:
		reason = pick(idx == 0, "higher pair", "higher kicker")
	case TwoPair:
		reason = [...]string{"higher top pair", "higher bottom pair", "higher kicker"}[idx]
	case ThreeOfAKind:
		reason = pick(idx == 0, "higher trips", "higher kicker")
	case FourOfAKind:
		reason = pick(idx == 0, "higher quads", "higher kicker")
	case FullHouse:
		reason = pick(idx == 0, "higher trips", "higher pair")
	case Straight, StraightFlush:
		return result, explanation + fmt.Sprintf(" with higher straight (%s-high vs %s-high)", w, l)
	case Flush:
		return result, explanation + fmt.Sprintf(" with higher flush card (%s vs %s)", w, l)
	default:
		reason = "higher card"
	}

	return result, explanation + fmt.Sprintf(" with %s (%s vs %s)", reason, w, l)
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// Describe renders the category with its tie-break ranks, e.g. "Four of a Kind (7,2)".
func (h EvaluatedHand) Describe() string {
	parts := make([]string, len(h.Tiebreak))
	for i, r := range h.Tiebreak {
		parts[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", h.Name, strings.Join(parts, ","))
}
