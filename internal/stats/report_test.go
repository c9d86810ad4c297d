package stats

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"biodesigner/internal/model"
)

func TestWriteRunReportRoundTrip(t *testing.T) {
	base := t.TempDir()
	cfg := NewRunConfig(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	cfg.Goal = string(model.GoalMaxExpression)
	cfg.Iterations = 3
	cfg.Runs = 1
	cfg.Seed = 42

	design := model.Design{
		Nodes: []model.Node{
			{ID: "p1", Part: model.Promoter{Strength: model.StrengthHigh}},
			{ID: "g1", Part: model.Gene{Function: model.GeneReporter}},
		},
		Edges: []model.Edge{{ID: "e1", Source: "p1", Target: "g1"}},
	}
	report := RunReport{
		Config: cfg,
		Result: model.OptimizationResult{
			OriginalDesign:  design,
			OptimizedDesign: design,
			OriginalScore:   80,
			OptimizedScore:  100,
			Iterations:      3,
			Goal:            model.GoalMaxExpression,
			Trace:           []float64{80, 100, 100},
		},
		Operations: []string{"add_connection", "adjust_promoter_strength", "remove_connection"},
	}

	runDir, err := WriteRunReport(base, report)
	if err != nil {
		t.Fatalf("write run report: %v", err)
	}
	if runDir != filepath.Join(base, cfg.RunID) {
		t.Fatalf("unexpected run dir: %s", runDir)
	}
	if cfg.CreatedAtUTC != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected created_at: %s", cfg.CreatedAtUTC)
	}

	loadedCfg, ok, err := ReadRunConfig(base, cfg.RunID)
	if err != nil || !ok {
		t.Fatalf("read config: ok=%t err=%v", ok, err)
	}
	if !reflect.DeepEqual(loadedCfg, cfg) {
		t.Fatalf("config mismatch: %+v", loadedCfg)
	}

	result, ok, err := ReadRunResult(base, cfg.RunID)
	if err != nil || !ok {
		t.Fatalf("read result: ok=%t err=%v", ok, err)
	}
	if result.OptimizedScore != 100 || len(result.OptimizedDesign.Nodes) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}

	trace, ok, err := ReadTrace(base, cfg.RunID)
	if err != nil || !ok {
		t.Fatalf("read trace: ok=%t err=%v", ok, err)
	}
	if !reflect.DeepEqual(trace, report.Result.Trace) {
		t.Fatalf("trace mismatch: %v", trace)
	}

	raw, err := os.ReadFile(filepath.Join(runDir, traceFile))
	if err != nil {
		t.Fatalf("read trace file: %v", err)
	}
	if !strings.Contains(string(raw), "2,100,adjust_promoter_strength") {
		t.Fatalf("expected operation column in trace, got:\n%s", raw)
	}
}

func TestWriteRunReportRequiresRunID(t *testing.T) {
	if _, err := WriteRunReport(t.TempDir(), RunReport{}); err == nil {
		t.Fatal("expected run id error")
	}
}

func TestReadMissingRun(t *testing.T) {
	base := t.TempDir()
	if _, ok, err := ReadRunConfig(base, "missing"); ok || err != nil {
		t.Fatalf("expected missing config, ok=%t err=%v", ok, err)
	}
	if _, ok, err := ReadTrace(base, "missing"); ok || err != nil {
		t.Fatalf("expected missing trace, ok=%t err=%v", ok, err)
	}
}

func TestNewRunConfigUniqueIDs(t *testing.T) {
	a := NewRunConfig(time.Now())
	b := NewRunConfig(time.Now())
	if a.RunID == "" || a.RunID == b.RunID {
		t.Fatalf("expected unique run ids, got %q and %q", a.RunID, b.RunID)
	}
}
