package correlation

import (
	"errors"
	"fmt"
)

// A Correlation establishes shared randomness between two or more agents,
// e.g. learning automata. In game theory shared randomness serves as a public
// signal which helps players elaborate a correlated equilibrium; each agent
// stays free to unilaterally regard or disregard the signal through its local
// operation.
//
// Proper use per play, after registering all agents:
//
//	Prepare()
//	LocalOperation(agent1, params1), ...
//	Observe()
//	Observable(agent1), ...
//
// One typical turn of play, repeated by the same agents many times with
// different parameters. A Correlation instance is not safe for concurrent or
// overlapping rounds.
type Correlation interface {
	// RegisterAgent grants access to the shared randomness for an agent,
	// assigning it the next free slot.
	RegisterAgent(id AgentID) error
	// Prepare discards the prior round's state and generates a new public
	// signal, resetting every agent's local operation to the impartial
	// default.
	Prepare()
	// LocalOperationParametersCount is the dimensionality of the parameter
	// space of one agent's local operation for this variant.
	LocalOperationParametersCount() int
	// LocalOperation applies an agent's local operation. All local operations
	// must be applied after Prepare and before Observe.
	LocalOperation(id AgentID, params []float64) error
	// Observe makes all observables explicitly deterministic. In classical
	// physics this corresponds to coin tossing; the quantum analogue is the
	// collapse of the wave function.
	Observe()
	// Observable returns the collapsed value for an agent. Valid only after
	// Observe.
	Observable(id AgentID) (int, error)
	// RegisterSize is the amount of shared randomness per play: the number of
	// values an observable can take.
	RegisterSize() int
}

// AgentID is an opaque stable handle identifying one registered agent.
type AgentID int

var (
	// ErrDuplicateAgent reports a second registration of the same handle.
	ErrDuplicateAgent = errors.New("agent already registered")
	// ErrUnknownAgent reports an operation addressed to an unregistered handle.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrParameterCount reports a local operation parameter vector of the
	// wrong length for the correlation variant.
	ErrParameterCount = errors.New("wrong local operation parameter count")
	// ErrNotObserved reports an Observable read before Observe.
	ErrNotObserved = errors.New("correlation not observed")
	// ErrNotPrepared reports a local operation before Prepare.
	ErrNotPrepared = errors.New("correlation not prepared")
)

// registry keeps the insertion-ordered handle to slot mapping shared by all
// correlation variants.
type registry struct {
	handles []AgentID
	slots   map[AgentID]int
}

func (r *registry) register(id AgentID) error {
	if r.slots == nil {
		r.slots = map[AgentID]int{}
	}
	if _, ok := r.slots[id]; ok {
		return fmt.Errorf("agent %d: %w", id, ErrDuplicateAgent)
	}
	r.slots[id] = len(r.handles)
	r.handles = append(r.handles, id)
	return nil
}

func (r *registry) slot(id AgentID) (int, error) {
	s, ok := r.slots[id]
	if !ok {
		return 0, fmt.Errorf("agent %d: %w", id, ErrUnknownAgent)
	}
	return s, nil
}
