package bench

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lennartvogt/treedom/pkg/pipeline"
)

// Runner executes benchmark suites through the solve pipeline.
type Runner struct {
	// Pipeline solves the individual instances.
	Pipeline *pipeline.Runner

	// Logger receives per-instance progress. Defaults to the standard
	// logger.
	Logger *log.Logger
}

// NewRunner creates a benchmark runner. A nil pipeline gets a cacheless
// default, a nil logger the standard one.
func NewRunner(p *pipeline.Runner, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if p == nil {
		p = pipeline.NewRunner(nil, nil, logger)
	}
	return &Runner{Pipeline: p, Logger: logger}
}

// Run solves every instance of the suite in order and returns the
// report. Instance failures are recorded as [StatusError] results and
// do not stop the run; only cancellation aborts it.
func (r *Runner) Run(ctx context.Context, suite *Suite, opts pipeline.Options) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Suite:   suite.Name,
		Started: time.Now().UTC(),
		Results: make([]InstanceResult, 0, len(suite.Instances)),
	}
	r.Logger.Info("benchmark started",
		"suite", suite.Name,
		"instances", len(suite.Instances),
		"run_id", report.RunID)

	start := time.Now()
	for _, inst := range suite.Instances {
		res, err := r.runInstance(ctx, suite, inst, opts)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}
	report.Duration = time.Since(start)

	r.Logger.Info("benchmark finished",
		"suite", suite.Name,
		"passed", report.Passed(),
		"duration", report.Duration)
	return report, nil
}

func (r *Runner) runInstance(ctx context.Context, suite *Suite, inst Instance, opts pipeline.Options) (InstanceResult, error) {
	res := InstanceResult{Name: inst.Name, Expected: inst.Expected}

	start := time.Now()
	src, err := os.ReadFile(suite.Resolve(inst))
	if err != nil {
		res.Status = StatusError
		res.Error = err.Error()
		res.Duration = time.Since(start)
		r.Logger.Error("instance unreadable", "name", inst.Name, "err", err)
		return res, nil
	}

	out, err := r.Pipeline.Execute(ctx, src, opts)
	res.Duration = time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, err
		}
		res.Status = StatusError
		res.Error = err.Error()
		r.Logger.Error("instance failed", "name", inst.Name, "err", err)
		return res, nil
	}

	res.Answer = out.Answer
	res.Feasible = out.Feasible
	res.Bags = out.Bags
	res.Width = out.Width
	res.Cached = out.CacheInfo.AnswerHit
	res.Status = StatusOK
	if inst.Expected != nil && *inst.Expected != out.Answer {
		res.Status = StatusMismatch
	}

	r.Logger.Info("instance finished",
		"name", inst.Name,
		"status", res.Status,
		"answer", res.Answer,
		"duration", res.Duration)
	return res, nil
}
