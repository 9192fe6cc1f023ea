package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokertrainer/poker"
)

func TestQuickHandStrengthPreflop(t *testing.T) {
	assert.Equal(t, 1.0, QuickHandStrength(poker.MustParseCards("AsAh"), nil))
	assert.Equal(t, 0.0, QuickHandStrength(poker.MustParseCards("7c2d"), nil))
	assert.Greater(t,
		QuickHandStrength(poker.MustParseCards("AsKs"), nil),
		QuickHandStrength(poker.MustParseCards("AsKd"), nil))

	// Two community cards are still below five known cards.
	assert.Equal(t,
		QuickHandStrength(poker.MustParseCards("KsKh"), nil),
		QuickHandStrength(poker.MustParseCards("KsKh"), poker.MustParseCards("2c3d")))
}

func TestQuickHandStrengthPostflop(t *testing.T) {
	tests := []struct {
		name     string
		hole     string
		board    string
		expected float64
	}{
		{"royal flush", "AdKd", "QdJdTd", (9 + 12.0/13) / 10},
		{"pair of twos", "2c2d", "9h7s4c", (1 + 0.0/13) / 10},
		{"nine high", "7c2d", "5h4s3c9d", (0 + 7.0/13) / 10},
		{"wheel", "Ac2d", "3h4s5c", (4 + 3.0/13) / 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickHandStrength(poker.MustParseCards(tt.hole), poker.MustParseCards(tt.board))
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 1.0)
		})
	}
}

func TestQuickHandStrengthOrdering(t *testing.T) {
	board := poker.MustParseCards("Kc8h3d")
	weak := QuickHandStrength(poker.MustParseCards("2s4s"), board)
	pair := QuickHandStrength(poker.MustParseCards("Ks9s"), board)
	set := QuickHandStrength(poker.MustParseCards("8s8d"), board)

	assert.Less(t, weak, pair)
	assert.Less(t, pair, set)
}

func TestQuickHandStrengthInvalid(t *testing.T) {
	assert.Zero(t, QuickHandStrength(poker.MustParseCards("As"), nil))
	assert.Zero(t, QuickHandStrength([]poker.Card{{}, {}}, nil))
}

func TestBucket(t *testing.T) {
	tests := []struct {
		strength float64
		expected StrengthBucket
	}{
		{1.0, BucketStrong},
		{0.6, BucketStrong},
		{0.59, BucketDecent},
		{0.3, BucketDecent},
		{0.29, BucketWeak},
		{0, BucketWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Bucket(tt.strength), "strength %v", tt.strength)
	}
}
