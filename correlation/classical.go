package correlation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"correlata/utils"
)

// Classical models classical shared randomness: identical copies of a
// register of uniform 0..1 draws broadcast to all agents. A local operation
// is a weight vector over the register values; on observation each agent sees
// the index maximizing register[i] * |weight[i]|.
type Classical struct {
	registry
	registerSize int
	rng          *rand.Rand

	register    []float64
	operations  [][]float64
	observables []int
	observed    bool
}

// NewClassical returns a classical correlation with the given amount of
// shared randomness per play, drawing from rng.
func NewClassical(registerSize int, rng *rand.Rand) *Classical {
	return &Classical{registerSize: registerSize, rng: rng}
}

func (c *Classical) RegisterAgent(id AgentID) error {
	return c.registry.register(id)
}

func (c *Classical) RegisterSize() int { return c.registerSize }

// Prepare draws a fresh register and resets every agent's weights to the
// impartial uniform default.
func (c *Classical) Prepare() {
	c.operations = make([][]float64, len(c.handles))
	for a := range c.operations {
		op := make([]float64, c.registerSize)
		for i := range op {
			op[i] = 1 / float64(c.registerSize)
		}
		c.operations[a] = op
	}
	c.register = make([]float64, c.registerSize)
	for i := range c.register {
		c.register[i] = c.rng.Float64()
	}
	c.observables = nil
	c.observed = false
}

// LocalOperationParametersCount is RegisterSize: an agent's observable may
// depend on each value of the register, so the weight vector has one entry
// per register value.
func (c *Classical) LocalOperationParametersCount() int {
	return c.registerSize
}

func (c *Classical) LocalOperation(id AgentID, params []float64) error {
	s, err := c.slot(id)
	if err != nil {
		return err
	}
	if len(params) != c.LocalOperationParametersCount() {
		return fmt.Errorf("agent %d: got %d parameters, want %d: %w",
			id, len(params), c.LocalOperationParametersCount(), ErrParameterCount)
	}
	if s >= len(c.operations) {
		return fmt.Errorf("agent %d: %w", id, ErrNotPrepared)
	}
	op := make([]float64, len(params))
	copy(op, params)
	c.operations[s] = op
	return nil
}

// Observe collapses the register: each agent's observable is the weighted
// argmax of the register under the absolute values of its weights, ties going
// to the first index.
func (c *Classical) Observe() {
	c.observables = make([]int, len(c.operations))
	weights := make([]float64, c.registerSize)
	for a, op := range c.operations {
		for i := range weights {
			weights[i] = c.register[i] * math.Abs(op[i])
		}
		c.observables[a] = utils.Argmax(weights)
	}
	c.observed = true
}

func (c *Classical) Observable(id AgentID) (int, error) {
	s, err := c.slot(id)
	if err != nil {
		return 0, err
	}
	if !c.observed {
		return 0, ErrNotObserved
	}
	return c.observables[s], nil
}
