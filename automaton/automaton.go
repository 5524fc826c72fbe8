// Package automaton implements a learning automaton: an adaptive agent that
// plays an arbitrary game and tries to maximize its payoff.
//
// Its strategy has two parts: the local operation allowed by its correlation,
// and a map from correlation observables to probability distributions over
// choices. Strategy development is based on a bounded history of plays; each
// search step moves at most LearningRate away from the current strategy.
package automaton

import (
	"math"

	"golang.org/x/exp/rand"

	"correlata/correlation"
	"correlata/numeric"
)

const (
	DefaultMemorySize   = 100
	DefaultLearningRate = 0.01
)

// LearningAutomaton is one adaptive agent bound to a shared correlation. It
// is mutated every round it plays and is not safe for concurrent use.
type LearningAutomaton struct {
	corr          correlation.Correlation
	id            correlation.AgentID
	choicesCount  int
	memorySize    int
	learningRate  float64
	localOpParams int
	rng           *rand.Rand

	// strategy holds the local operation parameters followed by one block of
	// choicesCount mixed-choice weights per possible observable value.
	strategy   []float64
	memory     *memory
	observable int

	totalPayoff float64
	totalPlayed int
}

type Option func(a *LearningAutomaton)

// WithMemorySize bounds the number of remembered plays. A larger memory gives
// better payoff estimates at the cost of slower adaptation to opponents.
func WithMemorySize(size int) Option {
	return func(a *LearningAutomaton) {
		if size > 0 {
			a.memorySize = size
		}
	}
}

// WithLearningRate sets the strategy-space step size: the tradeoff between
// speed of learning and sustainability of a found strategy.
func WithLearningRate(rate float64) Option {
	return func(a *LearningAutomaton) {
		if rate > 0 {
			a.learningRate = rate
		}
	}
}

// New registers a new automaton with the correlation under the given handle.
// choicesCount is the number of pure choices the automaton announces from;
// rng drives its strategy-space exploration.
func New(corr correlation.Correlation, id correlation.AgentID, choicesCount int, rng *rand.Rand, options ...Option) (*LearningAutomaton, error) {
	if err := corr.RegisterAgent(id); err != nil {
		return nil, err
	}
	a := &LearningAutomaton{
		corr:          corr,
		id:            id,
		choicesCount:  choicesCount,
		memorySize:    DefaultMemorySize,
		learningRate:  DefaultLearningRate,
		localOpParams: corr.LocalOperationParametersCount(),
		rng:           rng,
	}
	for _, option := range options {
		option(a)
	}
	a.strategy = make([]float64, a.localOpParams+corr.RegisterSize()*choicesCount)
	a.memory = newMemory(a.memorySize)
	return a, nil
}

// PredictLocalOperationPayoff estimates the payoff of playing the candidate
// local operation parameters, based on remembered plays. Records within
// squared distance Epsilon of the candidate count as coincident; if any
// exist, the prediction is the plain average of their payoffs. Otherwise all
// records contribute with inverse-squared-distance weights.
func (a *LearningAutomaton) PredictLocalOperationPayoff(candidate []float64) float64 {
	var weighted, weight, coincidentSum float64
	coincidents := 0
	a.memory.each(func(r record) {
		d2 := numeric.SquaredDistance(candidate, r.localOp)
		if d2 < numeric.Epsilon {
			coincidentSum += r.payoff
			coincidents++
		} else if coincidents == 0 {
			w := 1 / d2
			weighted += r.payoff * w
			weight += w
		}
	})
	if coincidents > 0 {
		return coincidentSum / float64(coincidents)
	}
	return weighted / math.Max(weight, numeric.Epsilon)
}

// PredictMixedChoicePayoff estimates the payoff of playing the candidate
// mixed-choice weights for the current observable. Only records sharing the
// current observable participate; the distance combines the candidate versus
// the stored weights with the current local operation versus the stored one.
func (a *LearningAutomaton) PredictMixedChoicePayoff(candidate []float64) float64 {
	localOp := a.strategy[:a.localOpParams]
	var weighted, weight, coincidentSum float64
	coincidents := 0
	a.memory.each(func(r record) {
		if r.observable != a.observable {
			return
		}
		d2 := numeric.SquaredDistance(candidate, r.mixedChoice) +
			numeric.SquaredDistance(localOp, r.localOp)
		if d2 < numeric.Epsilon {
			coincidentSum += r.payoff
			coincidents++
		} else if coincidents == 0 {
			w := 1 / d2
			weighted += r.payoff * w
			weight += w
		}
	})
	if coincidents > 0 {
		return coincidentSum / float64(coincidents)
	}
	return weighted / math.Max(weight, numeric.Epsilon)
}

// Operate searches for a better local operation nearby in the space of
// strategies, commits it, and submits it to the correlation. Must be called
// after the correlation's Prepare and before its Observe.
func (a *LearningAutomaton) Operate() error {
	segment := a.strategy[:a.localOpParams]
	best := a.search(segment, a.localOpParams, a.PredictLocalOperationPayoff)
	copy(segment, best)
	return a.corr.LocalOperation(a.id, segment)
}

// Choose reads the automaton's observable, searches for better mixed-choice
// weights for it, and returns the round's mixed strategy: a probability
// distribution over the automaton's pure choices. Must be called after the
// correlation's Observe.
func (a *LearningAutomaton) Choose() ([]float64, error) {
	observable, err := a.corr.Observable(a.id)
	if err != nil {
		return nil, err
	}
	a.observable = observable
	block := a.block(observable)
	best := a.search(block, a.choicesCount, a.PredictMixedChoicePayoff)
	copy(block, best)
	weights := make([]float64, len(block))
	for i, w := range block {
		weights[i] = math.Abs(w)
	}
	return numeric.NormalizedToOne(weights), nil
}

// search steps the current point along each direction of a random orthonormal
// basis by +/- learningRate and keeps the candidate with the best predicted
// payoff, ties going to the earliest candidate.
func (a *LearningAutomaton) search(current []float64, dims int, predict func([]float64) float64) []float64 {
	var best []float64
	bestScore := math.Inf(-1)
	for _, direction := range numeric.RandomBasis(a.rng, dims) {
		for _, step := range [2]float64{+a.learningRate, -a.learningRate} {
			candidate := make([]float64, dims)
			for i := range candidate {
				candidate[i] = current[i] + direction[i]*step
			}
			if score := predict(candidate); score > bestScore {
				best, bestScore = candidate, score
			}
		}
	}
	return best
}

// Remember records the strategy used this round and the payoff it earned,
// evicting the oldest record once the memory is full.
func (a *LearningAutomaton) Remember(payoff float64) {
	localOp := make([]float64, a.localOpParams)
	copy(localOp, a.strategy[:a.localOpParams])
	mixedChoice := make([]float64, a.choicesCount)
	copy(mixedChoice, a.block(a.observable))
	a.memory.add(record{
		observable:  a.observable,
		localOp:     localOp,
		mixedChoice: mixedChoice,
		payoff:      payoff,
	})
	a.totalPayoff += payoff
	a.totalPlayed++
}

// MeanPayoff is the cumulative average payoff over all plays, 0 before the
// first play.
func (a *LearningAutomaton) MeanPayoff() float64 {
	if a.totalPlayed == 0 {
		return 0
	}
	return a.totalPayoff / float64(a.totalPlayed)
}

// block is the mixed-choice weight segment for one observable value.
func (a *LearningAutomaton) block(observable int) []float64 {
	start := a.localOpParams + a.choicesCount*observable
	return a.strategy[start : start+a.choicesCount]
}
