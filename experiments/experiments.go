// Package experiments runs repeated classical-versus-quantum trials and
// writes CSV reports of the results.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"correlata/correlation"
	"correlata/engine"
	"correlata/experiments/metrics"
	"correlata/game"
)

// CHSHConfig configures the CHSH experiment. Zero values fall back to the
// canonical setup: 2 base states, learning rate 0.01, memory 20, 1000
// iterations per trial, 100 trials.
type CHSHConfig struct {
	Trials       int
	Iterations   int
	LearningRate float64
	MemorySize   int
	RegisterSize int
	Adversarial  bool
	Seed         uint64
	OutputDir    string
}

func (cfg *CHSHConfig) applyDefaults() {
	if cfg.Trials <= 0 {
		cfg.Trials = 100
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1000
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.01
	}
	if cfg.MemorySize <= 0 {
		cfg.MemorySize = 20
	}
	if cfg.RegisterSize <= 0 {
		cfg.RegisterSize = 2
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "experiments"
	}
}

// RunCHSH plays the CHSH game for cfg.Trials independent trials, each with a
// fresh classical and a fresh quantum correlation, and writes the per-trial
// outcomes and the per-step cross-trial averages as CSV reports. It returns
// the report directory.
func RunCHSH(cfg CHSHConfig) (string, error) {
	cfg.applyDefaults()

	chsh, err := game.FromNested(game.CHSH())
	if err != nil {
		return "", fmt.Errorf("failed to build CHSH game: %w", err)
	}
	playCfg := engine.Config{
		LearningRate: cfg.LearningRate,
		MemorySize:   cfg.MemorySize,
		Iterations:   cfg.Iterations,
		Adversarial:  cfg.Adversarial,
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	log.Info().Msgf("starting chsh experiment with %d trials of %d iterations...", cfg.Trials, cfg.Iterations)

	classicalSteps := make([][]float64, cfg.Iterations)
	quantumSteps := make([][]float64, cfg.Iterations)
	trialRecords := make([]metrics.TrialRecord, 0, 2*cfg.Trials)
	for trial := 1; trial <= cfg.Trials; trial++ {
		classical, err := engine.Play(chsh, correlation.NewClassical(cfg.RegisterSize, rng), playCfg, rng)
		if err != nil {
			return "", fmt.Errorf("classical trial %d failed: %w", trial, err)
		}
		quantum, err := engine.Play(chsh, correlation.NewQuantum(cfg.RegisterSize, rng), playCfg, rng)
		if err != nil {
			return "", fmt.Errorf("quantum trial %d failed: %w", trial, err)
		}
		for i := range classicalSteps {
			classicalSteps[i] = append(classicalSteps[i], classical[i])
			quantumSteps[i] = append(quantumSteps[i], quantum[i])
		}
		trialRecords = append(trialRecords,
			metrics.TrialRecord{Trial: trial, Correlation: "classical", FinalMeanPayoff: classical[len(classical)-1]},
			metrics.TrialRecord{Trial: trial, Correlation: "quantum", FinalMeanPayoff: quantum[len(quantum)-1]},
		)

		log.Info().Msgf("completed trial %d of %d: classical=%.4f quantum=%.4f",
			trial, cfg.Trials, classical[len(classical)-1], quantum[len(quantum)-1])
	}

	stepRecords := make([]metrics.StepRecord, cfg.Iterations)
	for i := range stepRecords {
		stepRecords[i] = metrics.StepRecord{
			Step:      i + 1,
			Classical: stat.Mean(classicalSteps[i], nil),
			Quantum:   stat.Mean(quantumSteps[i], nil),
		}
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "chsh")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	configs := []metrics.RunConfig{
		{Correlation: "classical", RegisterSize: cfg.RegisterSize, LearningRate: cfg.LearningRate,
			MemorySize: cfg.MemorySize, Iterations: cfg.Iterations, Trials: cfg.Trials, Seed: cfg.Seed},
		{Correlation: "quantum", RegisterSize: cfg.RegisterSize, LearningRate: cfg.LearningRate,
			MemorySize: cfg.MemorySize, Iterations: cfg.Iterations, Trials: cfg.Trials, Seed: cfg.Seed},
	}
	if err := writer.WriteRunConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteTrialRecords(trialRecords); err != nil {
		return "", err
	}
	if err := writer.WriteStepAverages(stepRecords); err != nil {
		return "", err
	}

	log.Info().Msgf("completed chsh experiment, reports in %s", writer.BaseDir())
	return writer.BaseDir(), nil
}
