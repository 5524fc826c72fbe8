// Package metrics persists experiment records as CSV reports.
package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// RunConfig describes one correlation variant's configuration within an
// experiment.
type RunConfig struct {
	Correlation  string // "classical" or "quantum"
	RegisterSize int
	LearningRate float64
	MemorySize   int
	Iterations   int
	Trials       int
	Seed         uint64
}

// TrialRecord is the outcome of one trial: the final population mean payoff
// of one correlation variant.
type TrialRecord struct {
	Trial           int
	Correlation     string // RunConfig.Correlation
	FinalMeanPayoff float64
}

// StepRecord is the cross-trial average population mean payoff at one
// iteration step, for both correlation variants.
type StepRecord struct {
	Step      int
	Classical float64
	Quantum   float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a writer rooted at a timestamped subfolder of
// root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir is the directory all reports of this writer land in.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteRunConfigs(configs []RunConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			config.Correlation,
			strconv.Itoa(config.RegisterSize),
			strconv.FormatFloat(config.LearningRate, 'g', -1, 64),
			strconv.Itoa(config.MemorySize),
			strconv.Itoa(config.Iterations),
			strconv.Itoa(config.Trials),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	header := []string{"correlation", "register_size", "learning_rate", "memory_size", "iterations", "trials", "seed"}
	return w.writeCSV("run_configs.csv", header, rows)
}

func (w *Writer) WriteTrialRecords(records []TrialRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Trial),
			record.Correlation,
			strconv.FormatFloat(record.FinalMeanPayoff, 'g', -1, 64),
		})
	}
	header := []string{"trial", "correlation", "final_mean_payoff"}
	return w.writeCSV("trial_records.csv", header, rows)
}

func (w *Writer) WriteStepAverages(records []StepRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Step),
			strconv.FormatFloat(record.Classical, 'g', -1, 64),
			strconv.FormatFloat(record.Quantum, 'g', -1, 64),
		})
	}
	header := []string{"step", "classical_mean_payoff", "quantum_mean_payoff"}
	return w.writeCSV("step_averages.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	return writer.Error()
}
