package analysis

import "github.com/lox/pokertrainer/poker"

// StrengthBucket is a coarse label for a quick strength value
type StrengthBucket string

const (
	BucketStrong StrengthBucket = "Strong"
	BucketDecent StrengthBucket = "Decent"
	BucketWeak   StrengthBucket = "Weak"
)

// QuickHandStrength returns a cheap strength score in [0,1] without running a
// simulation. With fewer than five known cards it is the preflop percentile of
// the hole cards; otherwise it is the best hand's category with the top
// tie-break rank as a fractional part, scaled by 1/10. The score is ordered
// but not calibrated to equity. Invalid hole cards score 0.
func QuickHandStrength(hole, community []poker.Card) float64 {
	if len(hole) != 2 || !hole[0].Valid() || !hole[1].Valid() {
		return 0
	}

	if len(hole)+len(community) < 5 {
		return poker.HolePercentile(hole[0], hole[1])
	}

	hand, err := poker.BestHandFromHole(hole, community)
	if err != nil {
		return 0
	}

	primary := float64(hand.Tiebreak[0]-poker.Two) / 13
	return (float64(hand.Category-poker.HighCard) + primary) / 10
}

// Bucket maps a quick strength value to a coarse label
func Bucket(strength float64) StrengthBucket {
	switch {
	case strength >= 0.6:
		return BucketStrong
	case strength >= 0.3:
		return BucketDecent
	default:
		return BucketWeak
	}
}
