package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"biodesigner/internal/model"
)

const (
	configFile = "config.json"
	resultFile = "result.json"
	traceFile  = "trace.csv"
)

type RunConfig struct {
	RunID        string   `json:"run_id"`
	Goal         string   `json:"goal"`
	Iterations   int      `json:"iterations"`
	Runs         int      `json:"runs"`
	Seed         int64    `json:"seed"`
	Workers      int      `json:"workers"`
	Acceptance   string   `json:"acceptance"`
	Temperature  float64  `json:"temperature,omitempty"`
	Cooling      float64  `json:"cooling,omitempty"`
	Operators    []string `json:"operators,omitempty"`
	LockedNodes  []string `json:"locked_nodes,omitempty"`
	MaxEdges     int      `json:"max_edges,omitempty"`
	CreatedAtUTC string   `json:"created_at_utc"`
}

// RunReport is the on-disk summary of one optimization call.
type RunReport struct {
	Config     RunConfig                `json:"config"`
	Result     model.OptimizationResult `json:"result"`
	Operations []string                 `json:"operations,omitempty"`
}

// NewRunConfig fills the run id and creation time.
func NewRunConfig(now time.Time) RunConfig {
	return RunConfig{
		RunID:        uuid.NewString(),
		CreatedAtUTC: now.UTC().Format(time.RFC3339),
	}
}

// WriteRunReport writes config.json, result.json and trace.csv under
// baseDir/<run id> and returns that directory.
func WriteRunReport(baseDir string, report RunReport) (string, error) {
	if report.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, report.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, configFile), report.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, resultFile), report.Result); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), report.Result.Trace, report.Operations); err != nil {
		return "", err
	}
	return runDir, nil
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	var cfg RunConfig
	ok, err := readJSON(filepath.Join(baseDir, runID, configFile), &cfg)
	return cfg, ok, err
}

func ReadRunResult(baseDir, runID string) (model.OptimizationResult, bool, error) {
	var result model.OptimizationResult
	ok, err := readJSON(filepath.Join(baseDir, runID, resultFile), &result)
	return result, ok, err
}

func writeTrace(path string, trace []float64, operations []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"iteration", "best_score", "operation"}); err != nil {
		return err
	}
	for i, best := range trace {
		op := ""
		if i < len(operations) {
			op = operations[i]
		}
		if err := writer.Write([]string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(best, 'f', -1, 64),
			op,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadTrace returns the best-score series recorded in trace.csv.
func ReadTrace(baseDir, runID string) ([]float64, bool, error) {
	file, err := os.Open(filepath.Join(baseDir, runID, traceFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []float64{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 2 {
		return nil, false, fmt.Errorf("trace header must have at least 2 columns")
	}

	series := make([]float64, 0, 64)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		series = append(series, value)
	}
	return series, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, out any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}
