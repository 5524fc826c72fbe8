package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromNestedNonBayesian(t *testing.T) {
	g, err := FromNested(MatchingPennies())
	require.NoError(t, err)

	require.Equal(t, 2, g.Players())
	require.Equal(t, []int{1, 1}, g.TypeCounts(), "a non-Bayesian game should gain a single type per player")
	require.Equal(t, []int{2, 2}, g.ChoiceCounts())
	require.Equal(t, []float64{1, -1}, g.Payoff([]int{0, 0}, []int{0, 0}))
	require.Equal(t, []float64{-1, 1}, g.Payoff([]int{0, 0}, []int{0, 1}))
}

func TestFromNestedBayesian(t *testing.T) {
	g, err := FromNested(CHSH())
	require.NoError(t, err)

	require.Equal(t, 2, g.Players())
	require.Equal(t, []int{2, 2}, g.TypeCounts())
	require.Equal(t, []int{2, 2}, g.ChoiceCounts())
	require.Equal(t, []float64{1, 1}, g.Payoff([]int{0, 0}, []int{0, 0}), "matching choices win outside types (1,1)")
	require.Equal(t, []float64{-1, -1}, g.Payoff([]int{1, 1}, []int{0, 0}), "matching choices lose under types (1,1)")
	require.Equal(t, []float64{1, 1}, g.Payoff([]int{1, 1}, []int{0, 1}))
}

func TestFromNestedErrors(t *testing.T) {
	t.Run("wrong nesting depth", func(t *testing.T) {
		// Two players but a single choice dimension.
		_, err := FromNested([]any{[]float64{1, -1}, []float64{-1, 1}})
		require.ErrorIs(t, err, ErrMalformedGame)
	})

	t.Run("ragged dimension", func(t *testing.T) {
		_, err := FromNested([]any{
			[]any{[]float64{1, 1}, []float64{0, 0}},
			[]any{[]float64{1, 1}},
		})
		require.ErrorIs(t, err, ErrMalformedGame)
	})

	t.Run("payoff vector length mismatch", func(t *testing.T) {
		_, err := FromNested([]any{
			[]any{[]float64{1, 1}, []float64{0, 0}},
			[]any{[]float64{1, 1}, []float64{0, 0, 0}},
		})
		require.ErrorIs(t, err, ErrMalformedGame)
	})

	t.Run("scalar leaves", func(t *testing.T) {
		_, err := FromNested(Equal())
		require.ErrorIs(t, err, ErrMalformedGame, "scalar-leaf structures need Coordinated first")
	})

	t.Run("empty dimension", func(t *testing.T) {
		_, err := FromNested([]any{})
		require.ErrorIs(t, err, ErrMalformedGame)
	})
}

func TestCoordinated(t *testing.T) {
	g, err := FromNested(Coordinated(Equal()))
	require.NoError(t, err)

	require.Equal(t, 2, g.Players())
	require.Equal(t, []float64{1, 1}, g.Payoff([]int{0, 0}, []int{0, 0}))
	require.Equal(t, []float64{-1, -1}, g.Payoff([]int{0, 0}, []int{1, 0}), "all players of a coordinated game share the payoff")
}

func TestExpectedPayoffs(t *testing.T) {
	g, err := FromNested(MatchingPennies())
	require.NoError(t, err)
	types := []int{0, 0}

	t.Run("pure strategies select a leaf", func(t *testing.T) {
		got := g.ExpectedPayoffs(types, [][]float64{{1, 0}, {1, 0}})
		require.InDelta(t, 1, got[0], 1e-12)
		require.InDelta(t, -1, got[1], 1e-12)

		got = g.ExpectedPayoffs(types, [][]float64{{1, 0}, {0, 1}})
		require.InDelta(t, -1, got[0], 1e-12)
		require.InDelta(t, 1, got[1], 1e-12)
	})

	t.Run("uniform mixing yields the equilibrium value", func(t *testing.T) {
		got := g.ExpectedPayoffs(types, [][]float64{{0.5, 0.5}, {0.5, 0.5}})
		require.InDelta(t, 0, got[0], 1e-12)
		require.InDelta(t, 0, got[1], 1e-12)
	})

	t.Run("mixed against pure", func(t *testing.T) {
		got := g.ExpectedPayoffs(types, [][]float64{{0.25, 0.75}, {1, 0}})
		// 0.25*(+1) + 0.75*(-1) for player 1.
		require.InDelta(t, -0.5, got[0], 1e-12)
		require.InDelta(t, 0.5, got[1], 1e-12)
	})
}
