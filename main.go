package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"correlata/experiments"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// The canonical CHSH setup: 100 trials of 1000 iterations each, memory 20,
	// learning rate 0.01, two base states of shared randomness.
	dir, err := experiments.RunCHSH(experiments.CHSHConfig{
		Trials:       100,
		Iterations:   1000,
		LearningRate: 0.01,
		MemorySize:   20,
		RegisterSize: 2,
		Seed:         uint64(time.Now().UnixNano()),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("chsh experiment failed")
	}
	log.Info().Msgf("reports written to %s", dir)
}
