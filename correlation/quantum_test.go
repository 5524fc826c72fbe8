package correlation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestQuantumPreparedState(t *testing.T) {
	q := NewQuantum(2, rand.New(rand.NewSource(1)))
	require.NoError(t, q.RegisterAgent(1))
	require.NoError(t, q.RegisterAgent(2))

	q.Prepare()

	// (|00> + |11>) / sqrt(2) for two agents over two base states.
	require.Len(t, q.state, 4)
	amplitude := 1 / math.Sqrt2
	require.InDelta(t, amplitude, real(q.state[0]), 1e-12)
	require.InDelta(t, amplitude, real(q.state[3]), 1e-12)
	require.Zero(t, q.state[1])
	require.Zero(t, q.state[2])
}

func TestQuantumProtocolErrors(t *testing.T) {
	t.Run("duplicate registration", func(t *testing.T) {
		q := NewQuantum(2, rand.New(rand.NewSource(1)))

		require.NoError(t, q.RegisterAgent(1))
		require.ErrorIs(t, q.RegisterAgent(1), ErrDuplicateAgent)
	})

	t.Run("wrong parameter count", func(t *testing.T) {
		q := NewQuantum(2, rand.New(rand.NewSource(1)))
		require.NoError(t, q.RegisterAgent(1))
		q.Prepare()

		require.ErrorIs(t, q.LocalOperation(1, []float64{0.5, 0, 0}), ErrParameterCount)
	})

	t.Run("local operation before prepare", func(t *testing.T) {
		q := NewQuantum(2, rand.New(rand.NewSource(1)))
		require.NoError(t, q.RegisterAgent(1))

		require.ErrorIs(t, q.LocalOperation(1, []float64{0, 0, 0, 1}), ErrNotPrepared)
	})

	t.Run("observable before observe", func(t *testing.T) {
		q := NewQuantum(2, rand.New(rand.NewSource(1)))
		require.NoError(t, q.RegisterAgent(1))
		q.Prepare()

		_, err := q.Observable(1)
		require.ErrorIs(t, err, ErrNotObserved)
	})
}

func TestQuantumDefaultCorrelation(t *testing.T) {
	// With identity local operations the entangled state behaves exactly like
	// classical shared randomness: both agents always observe the same value.
	q := NewQuantum(2, rand.New(rand.NewSource(23)))
	require.NoError(t, q.RegisterAgent(1))
	require.NoError(t, q.RegisterAgent(2))

	counts := make([]int, 2)
	trials := 10000
	for trial := 0; trial < trials; trial++ {
		q.Prepare()
		q.Observe()

		o1, err := q.Observable(1)
		require.NoError(t, err)
		o2, err := q.Observable(2)
		require.NoError(t, err)
		require.Equal(t, o1, o2, "default operations should leave the agents perfectly correlated")
		counts[o1]++
	}
	require.InDelta(t, 0.5, float64(counts[0])/float64(trials), 0.02,
		"both joint outcomes should be equally likely")
}

func TestQuantumCHSHViolation(t *testing.T) {
	// The standard CHSH measurement angles: Alice measures at 0 or pi/4, Bob
	// at pi/8 or -pi/8, expressed as rotation parameters in units of pi. The
	// agents should agree (or, for types (1,1), disagree) with probability
	// cos^2(pi/8) ~ 0.854 per type combination, beating the classical bound
	// of 0.75.
	rotation := func(turns float64) []float64 { return []float64{turns, 0, 0, 0} }
	alice := [][]float64{rotation(0), rotation(0.25)}
	bob := [][]float64{rotation(0.125), rotation(-0.125)}

	q := NewQuantum(2, rand.New(rand.NewSource(37)))
	require.NoError(t, q.RegisterAgent(1))
	require.NoError(t, q.RegisterAgent(2))

	trials := 10000
	total := 0.0
	for _, ta := range []int{0, 1} {
		for _, tb := range []int{0, 1} {
			wins := 0
			for trial := 0; trial < trials; trial++ {
				q.Prepare()
				require.NoError(t, q.LocalOperation(1, alice[ta]))
				require.NoError(t, q.LocalOperation(2, bob[tb]))
				q.Observe()

				o1, err := q.Observable(1)
				require.NoError(t, err)
				o2, err := q.Observable(2)
				require.NoError(t, err)
				if (o1 == o2) != (ta == 1 && tb == 1) {
					wins++
				}
			}
			rate := float64(wins) / float64(trials)
			require.Greater(t, rate, 0.78,
				"types (%d,%d) should win well above the classical bound", ta, tb)
			total += rate
		}
	}
	require.Greater(t, total/4, 0.8, "mean agreement statistics should violate the Bell inequality")
}
