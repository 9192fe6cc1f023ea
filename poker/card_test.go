package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()

	aceSpades := NewCard(Ace, Spades)
	assert.Equal(t, Ace, aceSpades.Rank)
	assert.Equal(t, Spades, aceSpades.Suit)
	assert.Equal(t, "As", aceSpades.String())
	assert.Equal(t, "A♠", aceSpades.Pretty())

	twoClubs := NewCard(Two, Clubs)
	assert.Equal(t, "2c", twoClubs.String())
	assert.True(t, twoClubs.Valid())

	assert.False(t, Card{}.Valid())
	assert.False(t, NewCard(Rank(15), Hearts).Valid())
}

func TestCardEquality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NewCard(Ten, Diamonds), MustParseCards("Td")[0])
	assert.NotEqual(t, NewCard(Ten, Diamonds), NewCard(Ten, Hearts))
	assert.NotEqual(t, NewCard(Ten, Diamonds), NewCard(Nine, Diamonds))
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		wantCard Card
		wantErr  bool
	}{
		{name: "ace of spades", input: "As", wantCard: NewCard(Ace, Spades)},
		{name: "two of hearts", input: "2h", wantCard: NewCard(Two, Hearts)},
		{name: "king of diamonds", input: "Kd", wantCard: NewCard(King, Diamonds)},
		{name: "ten of clubs", input: "Tc", wantCard: NewCard(Ten, Clubs)},
		{name: "nine of spades", input: "9s", wantCard: NewCard(Nine, Spades)},
		{name: "lower case", input: "qH", wantCard: NewCard(Queen, Hearts)},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "one as ten", input: "1s", wantErr: true},
		{name: "too long", input: "10s", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCard, card)
		})
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				NewCard(Ace, Spades), NewCard(King, Spades), NewCard(Queen, Spades),
				NewCard(Jack, Spades), NewCard(Ten, Spades),
			},
		},
		{
			name:     "space separated",
			input:    "Ah Kd  Qc",
			expected: []Card{NewCard(Ace, Hearts), NewCard(King, Diamonds), NewCard(Queen, Clubs)},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAll52Cards(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, card := range FullDeck() {
		s := card.String()
		assert.False(t, seen[s], "duplicate card %s", s)
		seen[s] = true

		parsed, err := ParseCard(s)
		require.NoError(t, err)
		assert.Equal(t, card, parsed, "round trip of %s", s)
	}
	assert.Len(t, seen, 52)
}

func TestFormatCards(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Ad Kd Qd", FormatCards(MustParseCards("AdKdQd")))
	assert.Equal(t, "", FormatCards(nil))
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("As")
	}
}
