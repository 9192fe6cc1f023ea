package poker

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInsufficientCards is returned when fewer than five cards are evaluated.
var ErrInsufficientCards = errors.New("at least 5 cards are required")

// rankGroup is one bucket of the rank histogram.
type rankGroup struct {
	rank  Rank
	count uint8
}

// classify5 categorises exactly five cards. It returns the category and the
// tie-break ranks in tb[:n]. It does not allocate.
func classify5(cards *[5]Card) (cat Category, tb [5]Rank, n int) {
	var counts [Ace + 1]uint8
	flush := true
	for i, c := range cards {
		counts[c.Rank]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	// Groups ordered by count descending, then rank descending. Ranks are
	// visited high to low, so only a larger count moves a group forward.
	var groups [5]rankGroup
	for r := Ace; r >= Two; r-- {
		if counts[r] == 0 {
			continue
		}
		g := rankGroup{rank: r, count: counts[r]}
		i := n
		for i > 0 && groups[i-1].count < g.count {
			groups[i] = groups[i-1]
			i--
		}
		groups[i] = g
		n++
	}
	for i := 0; i < n; i++ {
		tb[i] = groups[i].rank
	}

	if n == 5 {
		var high Rank
		switch {
		case groups[0].rank-groups[4].rank == 4:
			high = groups[0].rank
		case groups[0].rank == Ace && groups[1].rank == Five: // wheel
			high = Five
		}

		if high != 0 {
			tb = [5]Rank{high}
			switch {
			case flush && high == Ace:
				return RoyalFlush, tb, 1
			case flush:
				return StraightFlush, tb, 1
			default:
				return Straight, tb, 1
			}
		}
		if flush {
			return Flush, tb, 5
		}
		return HighCard, tb, 5
	}

	switch {
	case groups[0].count == 4:
		return FourOfAKind, tb, 2
	case groups[0].count == 3 && groups[1].count == 2:
		return FullHouse, tb, 2
	case groups[0].count == 3:
		return ThreeOfAKind, tb, 3
	case groups[1].count == 2:
		return TwoPair, tb, 3
	default:
		return Pair, tb, 4
	}
}

// score packs a classification into a single comparable value: the category
// in bits 20-23 and up to five tie-break ranks in 4-bit nibbles below it.
// Within a category every hand has the same number of tie-break ranks, so
// integer order equals Compare order.
func score(cat Category, tb *[5]Rank, n int) uint32 {
	s := uint32(cat) << 20
	for i := 0; i < n; i++ {
		s |= uint32(tb[i]) << (16 - 4*i)
	}
	return s
}

// Classify5 evaluates exactly five cards.
func Classify5(cards [5]Card) EvaluatedHand {
	cat, tb, n := classify5(&cards)
	return newEvaluatedHand(cat, tb[:n], cards)
}

func newEvaluatedHand(cat Category, tb []Rank, cards [5]Card) EvaluatedHand {
	hand := EvaluatedHand{
		Category: cat,
		Name:     cat.String(),
		Tiebreak: slices.Clone(tb),
		Cards:    cards[:],
	}
	slices.SortStableFunc(hand.Cards, func(a, b Card) int {
		return int(b.Rank) - int(a.Rank)
	})
	return hand
}

// BestHand returns the best 5-card hand from five or more cards by classifying
// every 5-card combination (21 for seven cards).
func BestHand(cards []Card) (EvaluatedHand, error) {
	n := len(cards)
	if n < 5 {
		return EvaluatedHand{}, fmt.Errorf("evaluate %d cards: %w", n, ErrInsufficientCards)
	}

	var (
		best      [5]Card
		bestCat   Category
		bestTB    [5]Rank
		bestN     int
		bestScore uint32
		combo     [5]Card
	)
	for a := 0; a < n-4; a++ {
		combo[0] = cards[a]
		for b := a + 1; b < n-3; b++ {
			combo[1] = cards[b]
			for c := b + 1; c < n-2; c++ {
				combo[2] = cards[c]
				for d := c + 1; d < n-1; d++ {
					combo[3] = cards[d]
					for e := d + 1; e < n; e++ {
						combo[4] = cards[e]
						cat, tb, tn := classify5(&combo)
						if s := score(cat, &tb, tn); s > bestScore {
							best, bestCat, bestTB, bestN, bestScore = combo, cat, tb, tn, s
						}
					}
				}
			}
		}
	}

	return newEvaluatedHand(bestCat, bestTB[:bestN], best), nil
}

// BestHandFromHole evaluates hole cards together with the community cards.
func BestHandFromHole(hole, community []Card) (EvaluatedHand, error) {
	cards := make([]Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	return BestHand(cards)
}

// Score returns a single integer that orders hands the same way Compare does.
// It is intended for hot loops such as Monte Carlo trials.
func (h EvaluatedHand) Score() uint32 {
	var tb [5]Rank
	n := copy(tb[:], h.Tiebreak)
	return score(h.Category, &tb, n)
}
