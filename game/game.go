// Package game models possibly-Bayesian payoff structures as rectangular
// N-dimensional tensors of per-player payoff vectors.
package game

import (
	"errors"
	"fmt"
)

// ErrMalformedGame reports a nested payoff structure whose nesting depth or
// shape does not describe a game.
var ErrMalformedGame = errors.New("malformed game")

// Game is an immutable payoff tensor indexed by one type per player followed
// by one choice per player:
//
//	Payoff(types, choices)[i] = payoff of player i
//
// A non-Bayesian game is stored as a Bayesian game with a single type per
// player.
type Game struct {
	players      int
	typeCounts   []int
	choiceCounts []int
	strides      []int
	payoffs      []float64
}

// FromNested builds a Game from a nested payoff structure with []float64
// payoff vectors of length N (the player count) on its leaves:
//
//	nested[type1]...[typeN][choice1]...[choiceN] = []float64{payoff1, ..., payoffN}
//
// Inner levels are []any. The type levels may be omitted for a non-Bayesian
// game; any other nesting depth is a configuration error, as is a ragged or
// empty structure. Scalar-leaf structures must be lifted with Coordinated
// first.
func FromNested(nested any) (*Game, error) {
	lengths, err := shape(nested)
	if err != nil {
		return nil, err
	}
	players := lengths[len(lengths)-1]
	dims := lengths[:len(lengths)-1]
	g := &Game{players: players}
	switch len(dims) {
	case players: // non-Bayesian: one type per player
		g.typeCounts = make([]int, players)
		for i := range g.typeCounts {
			g.typeCounts[i] = 1
		}
		g.choiceCounts = dims
	case 2 * players:
		g.typeCounts = dims[:players]
		g.choiceCounts = dims[players:]
	default:
		return nil, fmt.Errorf("%w: nesting depths %v for %d players", ErrMalformedGame, lengths, players)
	}

	size := players
	for _, d := range dims {
		size *= d
	}
	g.payoffs = make([]float64, 0, size)
	if err := g.flatten(nested, dims); err != nil {
		return nil, err
	}

	g.strides = make([]int, len(g.typeCounts)+len(g.choiceCounts))
	stride := players
	for i := len(g.strides) - 1; i >= 0; i-- {
		g.strides[i] = stride
		if i < len(g.typeCounts) {
			stride *= g.typeCounts[i]
		} else {
			stride *= g.choiceCounts[i-len(g.typeCounts)]
		}
	}
	return g, nil
}

// MustFromNested is FromNested for statically known structures; it panics on
// a malformed game.
func MustFromNested(nested any) *Game {
	g, err := FromNested(nested)
	if err != nil {
		panic(err)
	}
	return g
}

func shape(nested any) ([]int, error) {
	var lengths []int
	v := nested
	for {
		switch t := v.(type) {
		case []any:
			if len(t) == 0 {
				return nil, fmt.Errorf("%w: empty dimension", ErrMalformedGame)
			}
			lengths = append(lengths, len(t))
			v = t[0]
		case []float64:
			if len(t) == 0 {
				return nil, fmt.Errorf("%w: empty payoff vector", ErrMalformedGame)
			}
			return append(lengths, len(t)), nil
		default:
			return nil, fmt.Errorf("%w: unexpected leaf %T", ErrMalformedGame, v)
		}
	}
}

func (g *Game) flatten(v any, dims []int) error {
	if len(dims) == 0 {
		leaf, ok := v.([]float64)
		if !ok || len(leaf) != g.players {
			return fmt.Errorf("%w: payoff vector %v does not have %d entries", ErrMalformedGame, v, g.players)
		}
		g.payoffs = append(g.payoffs, leaf...)
		return nil
	}
	s, ok := v.([]any)
	if !ok || len(s) != dims[0] {
		return fmt.Errorf("%w: ragged dimension, want length %d", ErrMalformedGame, dims[0])
	}
	for _, child := range s {
		if err := g.flatten(child, dims[1:]); err != nil {
			return err
		}
	}
	return nil
}

// Players is N, the number of players (= payoff vector length).
func (g *Game) Players() int { return g.players }

// TypeCounts is the number of Bayesian types per player; all ones for a
// non-Bayesian game.
func (g *Game) TypeCounts() []int { return g.typeCounts }

// ChoiceCounts is the number of pure choices per player.
func (g *Game) ChoiceCounts() []int { return g.choiceCounts }

// Payoff returns the payoff vector at one fully specified profile of types
// and choices. The returned slice aliases the tensor and must not be mutated.
func (g *Game) Payoff(types, choices []int) []float64 {
	offset := 0
	for i, t := range types {
		offset += t * g.strides[i]
	}
	for i, c := range choices {
		offset += c * g.strides[len(types)+i]
	}
	return g.payoffs[offset : offset+g.players]
}

// ExpectedPayoffs contracts the selected types' payoff sub-tensor with the
// product distribution of the players' mixed strategies: the multilinear
// expectation over every choice combination.
func (g *Game) ExpectedPayoffs(types []int, mixed [][]float64) []float64 {
	expected := make([]float64, g.players)
	combo := make([]int, g.players)
	for {
		pr := 1.0
		for i, c := range combo {
			pr *= mixed[i][c]
		}
		if pr != 0 {
			leaf := g.Payoff(types, combo)
			for p := range expected {
				expected[p] += pr * leaf[p]
			}
		}
		i := g.players - 1
		for ; i >= 0; i-- {
			combo[i]++
			if combo[i] < g.choiceCounts[i] {
				break
			}
			combo[i] = 0
		}
		if i < 0 {
			return expected
		}
	}
}
