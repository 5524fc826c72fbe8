package game

// Coordinated lifts a scalar-leaf nested payoff structure to the general
// form: each leaf payoff p becomes the vector (p, ..., p) of length N, where
// N is the scalar's nesting depth. All players of a coordinated game earn the
// same payoff.
func Coordinated(nested any) any {
	n := 0
	for v := nested; ; n++ {
		s, ok := v.([]any)
		if !ok {
			break
		}
		v = s[0]
	}
	var lift func(v any) any
	lift = func(v any) any {
		if p, ok := v.(float64); ok {
			vec := make([]float64, n)
			for i := range vec {
				vec[i] = p
			}
			return vec
		}
		s := v.([]any)
		out := make([]any, len(s))
		for i, child := range s {
			out[i] = lift(child)
		}
		return out
	}
	return lift(nested)
}

// Equal is the 2x2 coordination payoff structure: +1 when both players make
// the same choice, -1 otherwise. Scalar leaves; lift with Coordinated.
func Equal() any {
	return []any{
		[]any{+1.0, -1.0},
		[]any{-1.0, +1.0},
	}
}

// Xor is the 2x2 anti-coordination payoff structure: +1 when the players
// make different choices, -1 otherwise. Scalar leaves; lift with Coordinated.
func Xor() any {
	return []any{
		[]any{-1.0, +1.0},
		[]any{+1.0, -1.0},
	}
}

// CHSH is the canonical Bayesian game behind the CHSH inequality: both
// players earn +1 for matching choices, except when both draw type 1, where
// they earn +1 for opposite choices. No classical shared randomness wins more
// than 3 of the 4 type combinations on average; quantum correlations do
// better.
func CHSH() any {
	eq := Coordinated(Equal())
	return []any{
		[]any{eq, eq},
		[]any{eq, Coordinated(Xor())},
	}
}

// MatchingPennies is the 2x2 zero-sum benchmark: player 1 wins on a match,
// player 2 wins on a mismatch. Its unique equilibrium is uniform mixing with
// value 0 for both players.
func MatchingPennies() any {
	return []any{
		[]any{[]float64{+1, -1}, []float64{-1, +1}},
		[]any{[]float64{-1, +1}, []float64{+1, -1}},
	}
}
