// Package engine drives iterated rounds of a possibly-Bayesian game between
// learning automata sharing one correlation.
package engine

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"correlata/automaton"
	"correlata/correlation"
	"correlata/game"
	"correlata/utils"
)

// exploreRate is the chance of drawing uniformly random types in adversarial
// mode instead of exploiting the least beneficial known type combination.
const exploreRate = 0.01

// Config carries the scalar knobs of one run.
type Config struct {
	LearningRate float64
	MemorySize   int
	Iterations   int
	// Adversarial plays select the historically least beneficial types for
	// the players instead of uniformly random ones.
	Adversarial bool
}

// Play runs cfg.Iterations rounds of g between correlation-related learning
// automata, one automaton per (player, type) pair, all sharing corr. Every
// random draw of the run flows through rng.
//
// Each round follows the correlation protocol strictly: Prepare, the active
// automata's local operations, Observe, then choices. The active automata's
// mixed strategies are contracted with the round's payoff sub-tensor, and
// each automaton remembers its expected payoff component.
//
// Play returns the population mean payoff over all automata at each
// iteration.
func Play(g *game.Game, corr correlation.Correlation, cfg Config, rng *rand.Rand) ([]float64, error) {
	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = 100
	}
	players := g.Players()
	typeCounts := g.TypeCounts()
	choiceCounts := g.ChoiceCounts()

	automata := make([][]*automaton.LearningAutomaton, players)
	population := 0
	nextID := correlation.AgentID(1)
	for i := 0; i < players; i++ {
		automata[i] = make([]*automaton.LearningAutomaton, typeCounts[i])
		for t := range automata[i] {
			a, err := automaton.New(corr, nextID, choiceCounts[i], rng,
				automaton.WithLearningRate(cfg.LearningRate),
				automaton.WithMemorySize(cfg.MemorySize))
			if err != nil {
				return nil, err
			}
			automata[i][t] = a
			nextID++
			population++
		}
	}

	combos := typeCombinations(typeCounts)
	totals := make([]float64, len(combos))
	plays := make([]int, len(combos))
	means := make([]float64, len(combos))

	log.Info().Msgf("starting play: %d players, %d automata, %d iterations, adversarial=%t",
		players, population, iterations, cfg.Adversarial)

	progress := make([]float64, 0, iterations)
	types := make([]int, players)
	mixed := make([][]float64, players)
	for iteration := 0; iteration < iterations; iteration++ {
		corr.Prepare()

		if cfg.Adversarial && rng.Float64() > exploreRate {
			// Untried combinations rank below every mean, forcing exploration.
			for k := range combos {
				if plays[k] == 0 {
					means[k] = math.Inf(-1)
				} else {
					means[k] = totals[k] / float64(plays[k])
				}
			}
			copy(types, combos[utils.Argmin(means)])
		} else {
			for i, count := range typeCounts {
				types[i] = rng.Intn(count)
			}
		}

		for i, t := range types {
			if err := automata[i][t].Operate(); err != nil {
				return nil, err
			}
		}
		corr.Observe()
		for i, t := range types {
			choice, err := automata[i][t].Choose()
			if err != nil {
				return nil, err
			}
			mixed[i] = choice
		}

		payoffs := g.ExpectedPayoffs(types, mixed)
		for i, t := range types {
			automata[i][t].Remember(payoffs[i])
		}
		k := comboIndex(types, typeCounts)
		totals[k] += floats.Sum(payoffs)
		plays[k]++

		sum := 0.0
		for _, perType := range automata {
			for _, a := range perType {
				sum += a.MeanPayoff()
			}
		}
		progress = append(progress, sum/float64(population))
	}

	log.Info().Msgf("completed play with population mean payoff %.4f", progress[len(progress)-1])
	return progress, nil
}

// typeCombinations enumerates every combination of per-player types in
// lexicographic order.
func typeCombinations(typeCounts []int) [][]int {
	total := 1
	for _, c := range typeCounts {
		total *= c
	}
	combos := make([][]int, 0, total)
	combo := make([]int, len(typeCounts))
	for {
		combos = append(combos, append([]int(nil), combo...))
		i := len(combo) - 1
		for ; i >= 0; i-- {
			combo[i]++
			if combo[i] < typeCounts[i] {
				break
			}
			combo[i] = 0
		}
		if i < 0 {
			return combos
		}
	}
}

// comboIndex is the lexicographic rank of a type combination, matching the
// order of typeCombinations.
func comboIndex(types, typeCounts []int) int {
	k := 0
	for i, t := range types {
		k = k*typeCounts[i] + t
	}
	return k
}
