package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriterReports(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "chsh")
	require.NoError(t, err)

	t.Run("run configs", func(t *testing.T) {
		err := w.WriteRunConfigs([]RunConfig{
			{Correlation: "classical", RegisterSize: 2, LearningRate: 0.01, MemorySize: 20, Iterations: 1000, Trials: 100, Seed: 42},
			{Correlation: "quantum", RegisterSize: 2, LearningRate: 0.01, MemorySize: 20, Iterations: 1000, Trials: 100, Seed: 42},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "run_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"correlation", "register_size", "learning_rate", "memory_size", "iterations", "trials", "seed"}, rows[0])
		require.Equal(t, []string{"classical", "2", "0.01", "20", "1000", "100", "42"}, rows[1])
	})

	t.Run("trial records", func(t *testing.T) {
		err := w.WriteTrialRecords([]TrialRecord{
			{Trial: 1, Correlation: "classical", FinalMeanPayoff: 0.5},
			{Trial: 1, Correlation: "quantum", FinalMeanPayoff: 0.7},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "trial_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"1", "quantum", "0.7"}, rows[2])
	})

	t.Run("step averages", func(t *testing.T) {
		err := w.WriteStepAverages([]StepRecord{
			{Step: 1, Classical: 0.1, Quantum: 0.2},
			{Step: 2, Classical: 0.3, Quantum: 0.4},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.BaseDir(), "step_averages.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"step", "classical_mean_payoff", "quantum_mean_payoff"}, rows[0])
		require.Equal(t, []string{"2", "0.3", "0.4"}, rows[2])
	})
}
