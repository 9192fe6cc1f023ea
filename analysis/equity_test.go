package analysis

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertrainer/poker"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestEquityResult(t *testing.T) {
	result := EquityResult{
		Wins:        300,
		Ties:        50,
		Losses:      650,
		TieShare:    25,
		Simulations: 1000,
	}

	assert.InDelta(t, 0.3, result.WinRate(), 1e-9)
	assert.InDelta(t, 0.05, result.TieRate(), 1e-9)
	assert.InDelta(t, 0.65, result.LossRate(), 1e-9)
	assert.InDelta(t, 0.325, result.Equity(), 1e-9)

	var empty EquityResult
	assert.Zero(t, empty.Equity())
	assert.Zero(t, empty.WinRate())
}

func TestConfidenceInterval(t *testing.T) {
	result := EquityResult{Wins: 500, Losses: 9500, Simulations: 10000}

	lower, upper := result.ConfidenceInterval()
	margin := 1.96 * math.Sqrt(0.05*0.95/10000)

	assert.InDelta(t, 0.05-margin, lower, 1e-9)
	assert.InDelta(t, 0.05+margin, upper, 1e-9)

	lower, upper = EquityResult{Wins: 10, Simulations: 10}.ConfidenceInterval()
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 1.0, upper)
}

func TestEstimateEquityPocketAces(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long simulation in short mode")
	}

	equity, err := EstimateEquity(poker.MustParseCards("AsAh"), nil, 1, 50000, seeded(1))
	require.NoError(t, err)
	assert.InDelta(t, 0.85, equity, 0.02)
}

func TestEstimateEquityNoOpponents(t *testing.T) {
	equity, err := EstimateEquity(poker.MustParseCards("7c2d"), nil, 0, 100, seeded(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, equity)
}

func TestSimulateTieShare(t *testing.T) {
	// A royal flush on the board plays for everyone.
	hole := poker.MustParseCards("2c3d")
	board := poker.MustParseCards("AhKhQhJhTh")

	for opponents := 1; opponents <= 4; opponents++ {
		result, err := Simulate(hole, board, opponents, 200, seeded(uint64(opponents)))
		require.NoError(t, err)

		assert.Equal(t, 200, result.Ties)
		assert.Zero(t, result.Wins)
		assert.Zero(t, result.Losses)
		assert.InDelta(t, 1/float64(opponents+1), result.Equity(), 1e-9)
	}
}

func TestSimulateNuts(t *testing.T) {
	result, err := Simulate(poker.MustParseCards("AsKs"), poker.MustParseCards("QsJsTs2h3d"), 3, 500, seeded(3))
	require.NoError(t, err)

	assert.Equal(t, 500, result.Wins)
	assert.Equal(t, 1.0, result.Equity())
}

func TestSimulateCannotWin(t *testing.T) {
	// Quads on board with a queen: hero can only tie, and loses to any king.
	result, err := Simulate(poker.MustParseCards("2c3d"), poker.MustParseCards("AhAdAsAcQh"), 1, 500, seeded(4))
	require.NoError(t, err)

	assert.Zero(t, result.Wins)
	assert.Positive(t, result.Losses)
	assert.Positive(t, result.Ties)
	assert.Less(t, result.Equity(), 0.5)
}

func TestSimulateAccountsEveryTrial(t *testing.T) {
	result, err := Simulate(poker.MustParseCards("KdQd"), poker.MustParseCards("Jd7s2d"), 2, 3000, seeded(5))
	require.NoError(t, err)

	assert.Equal(t, 3000, result.Simulations)
	assert.Equal(t, result.Simulations, result.Wins+result.Ties+result.Losses)
	assert.LessOrEqual(t, result.TieShare, float64(result.Ties)/2+1e-9)
	assert.Greater(t, result.Equity(), 0.0)
	assert.Less(t, result.Equity(), 1.0)
}

func TestSimulateDeterministic(t *testing.T) {
	hole := poker.MustParseCards("9s8s")
	board := poker.MustParseCards("Tc7d2h")

	a, err := Simulate(hole, board, 2, 2000, seeded(42))
	require.NoError(t, err)
	b, err := Simulate(hole, board, 2, 2000, seeded(42))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulateDoesNotMutateInputs(t *testing.T) {
	hole := poker.MustParseCards("AsKs")
	board := poker.MustParseCards("2h7d")
	board = append(board, poker.MustParseCards("9c")...)

	_, err := Simulate(hole, board, 2, 100, seeded(6))
	require.NoError(t, err)

	assert.Equal(t, poker.MustParseCards("AsKs"), hole)
	assert.Equal(t, poker.MustParseCards("2h7d9c"), board)
}

func TestEquityInvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		hole        string
		board       string
		opponents   int
		simulations int
	}{
		{"one hole card", "As", "", 1, 100},
		{"three hole cards", "AsKsQs", "", 1, 100},
		{"two card board", "AsKs", "2h3h", 1, 100},
		{"six card board", "AsKs", "2h3h4h5h6h7h", 1, 100},
		{"negative opponents", "AsKs", "", -1, 100},
		{"zero simulations", "AsKs", "", 1, 0},
		{"negative simulations", "AsKs", "", 1, -5},
		{"duplicate hole", "AsAs", "", 1, 100},
		{"hole on board", "AsKs", "As2h3h", 1, 100},
		{"too many opponents", "AsKs", "", 23, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateEquity(poker.MustParseCards(tt.hole), poker.MustParseCards(tt.board), tt.opponents, tt.simulations, seeded(1))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEquityMaxOpponents(t *testing.T) {
	// 50 unseen cards: 22 opponents use 44, the board needs 5.
	result, err := Simulate(poker.MustParseCards("AsKs"), nil, 22, 20, seeded(7))
	require.NoError(t, err)
	assert.Equal(t, 20, result.Simulations)
}

func BenchmarkSimulate(b *testing.B) {
	hole := poker.MustParseCards("AsKs")
	rng := seeded(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Simulate(hole, nil, 1, 100, rng)
	}
}
