package numeric

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Epsilon guards divisions and coincidence checks across the simulation.
const Epsilon = 1e-5

// NormalizedToOne scales weights by the inverse of the sum of their absolute
// values so the result can serve as a probability distribution over a finite
// set. A near-zero weight vector degenerates to the uniform distribution.
func NormalizedToOne(weights []float64) []float64 {
	out := make([]float64, len(weights))
	sum := 0.0
	for _, w := range weights {
		sum += math.Abs(w)
	}
	if sum < Epsilon {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i, w := range weights {
		out[i] = w / sum
	}
	return out
}

// WeightedChoice draws a random index 0..len(weights)-1 with probability
// proportional to its weight. Weights may be zero but not negative.
func WeightedChoice(rng *rand.Rand, weights []float64) int {
	r := rng.Float64() * floats.Sum(weights)
	upto := 0.0
	for i, w := range weights {
		if upto+w >= r {
			return i
		}
		upto += w
	}
	// Floating point summation drift; the draw overshot the last bucket.
	return len(weights) - 1
}

// RandomBasis returns d mutually orthonormal random vectors in d-dimensional
// real space, built by Gram-Schmidt over uniform -1..1 candidates. A candidate
// whose residual after orthogonalization is near zero is redrawn.
func RandomBasis(rng *rand.Rand, d int) [][]float64 {
	basis := make([][]float64, d)
	norms2 := make([]float64, d)
	for i := 0; i < d; i++ {
		v := make([]float64, d)
		for {
			for j := range v {
				v[j] = rng.Float64()*2 - 1
			}
			for j := 0; j < i; j++ {
				scale := floats.Dot(v, basis[j]) / norms2[j]
				floats.AddScaled(v, -scale, basis[j])
			}
			norms2[i] = floats.Dot(v, v)
			if norms2[i] > Epsilon {
				break
			}
		}
		basis[i] = v
	}
	for i := range basis {
		floats.Scale(1/math.Sqrt(norms2[i]), basis[i])
	}
	return basis
}

// SquaredDistance is the squared Euclidean distance between a and b, comparing
// the first min(len(a), len(b)) components.
func SquaredDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	d2 := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		d2 += d * d
	}
	return d2
}
