package correlation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"correlata/numeric"
)

// Quantum models quantum shared randomness over a register of RegisterSize
// base states per agent. The prepared state is the maximally correlated
// superposition (|11...1> + |22...2> + ... + |rr...r>) / sqrt(r), so that
// agents performing no local operation are indistinguishable from classical
// shared randomness. A local operation is an RegisterSize x RegisterSize
// unitary matrix, parameterized by RegisterSize^2 real values.
//
// Observation contracts the state vector with the tensor product of all
// agents' unitaries and samples one joint basis state from the squared
// amplitudes. The contraction costs RegisterSize^(2*numAgents) operations;
// that exponential ceiling is intrinsic to simulating entangled registers,
// not a defect of this implementation.
type Quantum struct {
	registry
	registerSize int
	rng          *rand.Rand

	matrices    []*mat.CDense
	state       []complex128
	observables []int
	observed    bool
}

// NewQuantum returns a quantum correlation with the given number of base
// states per agent, sampling measurements from rng.
func NewQuantum(registerSize int, rng *rand.Rand) *Quantum {
	return &Quantum{registerSize: registerSize, rng: rng}
}

func (q *Quantum) RegisterAgent(id AgentID) error {
	return q.registry.register(id)
}

func (q *Quantum) RegisterSize() int { return q.registerSize }

// Prepare resets every agent's unitary to the identity and builds the
// maximally correlated state: equal amplitude on exactly the basis states
// where every agent's base-RegisterSize digit is identical.
func (q *Quantum) Prepare() {
	n := len(q.handles)
	r := q.registerSize
	q.matrices = make([]*mat.CDense, n)
	for a := range q.matrices {
		m := mat.NewCDense(r, r, nil)
		for i := 0; i < r; i++ {
			m.Set(i, i, 1)
		}
		q.matrices[a] = m
	}
	dim := 1
	step := 0
	for a := 0; a < n; a++ {
		step += dim
		dim *= r
	}
	q.state = make([]complex128, dim)
	amplitude := complex(math.Pow(float64(r), -0.5), 0)
	for i := 0; i < r; i++ {
		q.state[i*step] = amplitude
	}
	q.observables = nil
	q.observed = false
}

// LocalOperationParametersCount is RegisterSize^2: an NxN unitary matrix is
// parameterized by N^2 real values.
func (q *Quantum) LocalOperationParametersCount() int {
	return q.registerSize * q.registerSize
}

func (q *Quantum) LocalOperation(id AgentID, params []float64) error {
	s, err := q.slot(id)
	if err != nil {
		return err
	}
	if len(params) != q.LocalOperationParametersCount() {
		return fmt.Errorf("agent %d: got %d parameters, want %d: %w",
			id, len(params), q.LocalOperationParametersCount(), ErrParameterCount)
	}
	if s >= len(q.matrices) {
		return fmt.Errorf("agent %d: %w", id, ErrNotPrepared)
	}
	q.matrices[s] = numeric.UnitaryFromFlat(params)
	return nil
}

// Observe collapses the wave function: it applies the tensor product of all
// local unitaries to the state vector, samples one joint basis state from the
// squared amplitudes, and splits the sampled index into per-agent digits, the
// first-registered agent holding the most significant one.
func (q *Quantum) Observe() {
	n := len(q.handles)
	r := q.registerSize
	dim := len(q.state)
	next := make([]complex128, dim)
	for j := 0; j < dim; j++ {
		if q.state[j] == 0 {
			continue
		}
		for i := 0; i < dim; i++ {
			amplitude := q.state[j]
			tj, ti := j, i
			for a := n - 1; a >= 0; a-- {
				amplitude *= q.matrices[a].At(tj%r, ti%r)
				tj /= r
				ti /= r
			}
			next[i] += amplitude
		}
	}
	probabilities := make([]float64, dim)
	for i, amplitude := range next {
		probabilities[i] = real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
	}
	measurement := numeric.WeightedChoice(q.rng, probabilities)
	q.observables = make([]int, n)
	for a := n - 1; a >= 0; a-- {
		q.observables[a] = measurement % r
		measurement /= r
	}
	q.observed = true
}

func (q *Quantum) Observable(id AgentID) (int, error) {
	s, err := q.slot(id)
	if err != nil {
		return 0, err
	}
	if !q.observed {
		return 0, ErrNotObserved
	}
	return q.observables[s], nil
}
