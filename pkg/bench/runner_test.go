package bench

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lennartvogt/treedom/pkg/pipeline"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func intPtr(v int) *int { return &v }

func TestRunnerRun(t *testing.T) {
	suite, err := LoadSuite(filepath.Join("testdata", "suite.toml"))
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	r := NewRunner(nil, quietLogger())
	report, err := r.Run(context.Background(), suite, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if report.Suite != "paths and cycles" {
		t.Errorf("Suite = %q, want %q", report.Suite, "paths and cycles")
	}
	if _, err := uuid.Parse(report.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", report.RunID, err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(report.Results))
	}
	if !report.Passed() {
		t.Errorf("Passed() = false, results %+v", report.Results)
	}
	if report.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", report.Duration)
	}

	for _, res := range report.Results {
		if res.Status != StatusOK {
			t.Errorf("%s: status %q, error %q", res.Name, res.Status, res.Error)
		}
		if res.Answer != 2 {
			t.Errorf("%s: answer %d, want 2", res.Name, res.Answer)
		}
		if !res.Feasible {
			t.Errorf("%s: infeasible", res.Name)
		}
		if res.Bags != 9 {
			t.Errorf("%s: bags %d, want 9", res.Name, res.Bags)
		}
		if res.Duration <= 0 {
			t.Errorf("%s: duration %v, want > 0", res.Name, res.Duration)
		}
	}
}

func TestRunnerRunMixedOutcomes(t *testing.T) {
	dir := t.TempDir()
	p4, err := os.ReadFile(filepath.Join("testdata", "p4.ntd"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p4.ntd"), p4, 0o644); err != nil {
		t.Fatalf("write instance: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.ntd"), []byte("not a decomposition"), 0o644); err != nil {
		t.Fatalf("write instance: %v", err)
	}

	suite := &Suite{
		Name: "mixed",
		Instances: []Instance{
			{Name: "match", File: "p4.ntd", Expected: intPtr(2)},
			{Name: "mismatch", File: "p4.ntd", Expected: intPtr(3)},
			{Name: "unchecked", File: "p4.ntd"},
			{Name: "garbage", File: "bad.ntd"},
			{Name: "missing", File: "gone.ntd"},
		},
		dir: dir,
	}

	r := NewRunner(nil, quietLogger())
	report, err := r.Run(context.Background(), suite, pipeline.Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if report.Passed() {
		t.Error("Passed() = true for a suite with failures")
	}

	want := map[string]Status{
		"match":     StatusOK,
		"mismatch":  StatusMismatch,
		"unchecked": StatusOK,
		"garbage":   StatusError,
		"missing":   StatusError,
	}
	if len(report.Results) != len(want) {
		t.Fatalf("len(Results) = %d, want %d", len(report.Results), len(want))
	}
	for _, res := range report.Results {
		if res.Status != want[res.Name] {
			t.Errorf("%s: status %q, want %q", res.Name, res.Status, want[res.Name])
		}
	}

	mismatch := report.Results[1]
	if mismatch.Answer != 2 || mismatch.Expected == nil || *mismatch.Expected != 3 {
		t.Errorf("mismatch recorded answer %d expected %v", mismatch.Answer, mismatch.Expected)
	}
	for _, i := range []int{3, 4} {
		if report.Results[i].Error == "" {
			t.Errorf("%s: error status without message", report.Results[i].Name)
		}
	}
}

func TestRunnerRunCanceled(t *testing.T) {
	suite, err := LoadSuite(filepath.Join("testdata", "suite.toml"))
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, quietLogger())
	if _, err := r.Run(ctx, suite, pipeline.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run on canceled context = %v, want context.Canceled", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil)
	if r.Pipeline == nil {
		t.Error("Pipeline should default to a cacheless runner")
	}
	if r.Logger == nil {
		t.Error("Logger should default to the standard logger")
	}
}
