package numeric

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Unitary builds a parameterized NxN unitary matrix from N^2 real parameters,
// each a -1..1 value scaled by pi before use:
//
//   - theta: N(N-1)/2 real rotation angles, one per subplane spanned by a pair
//     of standard basis vectors e_i, e_j
//   - phi: N(N-1)/2 complex rotation angles for the same subplanes
//   - gamma: N output phasors, one per column
//
// The (theta, phi) pairs are applied as sequential two-row rotations with a
// complex phase, followed by the per-column gamma phases.
func Unitary(theta, phi, gamma []float64) *mat.CDense {
	n := len(gamma)
	u := make([][]complex128, n)
	for j := range u {
		u[j] = make([]complex128, n)
		u[j][j] = 1
	}
	k := 0
	for j1 := 0; j1 < n-1; j1++ {
		for j2 := j1 + 1; j2 < n; j2++ {
			ep := cmplx.Exp(complex(0, math.Pi*phi[k]))
			st := complex(math.Sin(math.Pi*theta[k]), 0)
			ct := complex(math.Cos(math.Pi*theta[k]), 0)
			r1, r2 := u[j1], u[j2]
			n1 := make([]complex128, n)
			n2 := make([]complex128, n)
			for i := 0; i < n; i++ {
				n1[i] = r1[i]*ct + r2[i]*st*ep
				n2[i] = r1[i]*st/ep - r2[i]*ct
			}
			u[j1], u[j2] = n1, n2
			k++
		}
	}
	out := mat.NewCDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			out.Set(j, i, u[j][i]*cmplx.Exp(complex(0, math.Pi*gamma[i])))
		}
	}
	return out
}

// UnitaryFromFlat builds the same matrix from a single flat vector of N^2
// parameters: the first N(N-1) entries interleave theta and phi pairs, the
// last N entries are gamma.
func UnitaryFromFlat(params []float64) *mat.CDense {
	n := int(math.Sqrt(float64(len(params))) + 0.1)
	pairs := params[:len(params)-n]
	theta := make([]float64, 0, n*(n-1)/2)
	phi := make([]float64, 0, n*(n-1)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		theta = append(theta, pairs[i])
		phi = append(phi, pairs[i+1])
	}
	return Unitary(theta, phi, params[len(params)-n:])
}
