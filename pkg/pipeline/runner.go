package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lennartvogt/treedom/pkg/cache"
	"github.com/lennartvogt/treedom/pkg/domset"
	apperrors "github.com/lennartvogt/treedom/pkg/errors"
	"github.com/lennartvogt/treedom/pkg/nicetree"
	"github.com/lennartvogt/treedom/pkg/observability"
)

// Runner encapsulates pipeline execution with answer caching.
// CLI, server and bench all use it to avoid duplicating cache logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the decode → validate → solve pipeline over the
// decomposition text with answer caching.
func (r *Runner) Execute(ctx context.Context, src []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}

	srcHash := cache.Hash(src)
	cacheKey := r.Keyer.AnswerKey(srcHash, opts.AnswerKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless this run must compute)
	if !opts.Refresh && !opts.KeepTables {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var payload answerPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				hooks.OnCacheHit(ctx, "answer")
				result.Answer = payload.Answer
				result.Feasible = payload.Feasible
				result.Bags = payload.Bags
				result.Width = payload.Width
				result.Edges = payload.Edges
				result.CacheInfo.AnswerHit = true

				r.Logger.Info("answer served from cache",
					"run_id", result.RunID,
					"answer", result.Answer,
					"feasible", result.Feasible)
				return result, nil
			}
			// Unreadable payloads fall through to a fresh solve
		}
		hooks.OnCacheMiss(ctx, "answer")
	}

	// Stage 1+2: decode and validate
	decodeStart := time.Now()
	tree, err := r.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = time.Since(decodeStart)

	stats := tree.Stats()
	result.Bags = stats.Bags
	result.Width = stats.Width
	result.Edges = stats.Edges

	r.Logger.Info("decoded decomposition",
		"run_id", result.RunID,
		"bags", result.Bags,
		"width", result.Width,
		"duration", result.Stats.DecodeTime)

	// Stage 3: solve
	solveStart := time.Now()
	solver := domset.NewSolver(tree, domset.Options{
		MaxWidth:   opts.solverMaxWidth(),
		KeepTables: opts.KeepTables,
		Logger:     opts.Logger,
	})
	res, err := solver.Run(ctx)
	if err != nil {
		return nil, mapSolveErr(err)
	}
	result.Answer = res.Answer
	result.Feasible = res.Feasible
	result.Stats.SolveTime = time.Since(solveStart)
	if opts.KeepTables {
		result.Solver = solver
	}

	r.Logger.Info("solved",
		"run_id", result.RunID,
		"answer", result.Answer,
		"feasible", result.Feasible,
		"duration", result.Stats.SolveTime)

	// Cache the result core
	payload := answerPayload{
		Answer:   result.Answer,
		Feasible: result.Feasible,
		Bags:     result.Bags,
		Width:    result.Width,
		Edges:    result.Edges,
	}
	if data, err := json.Marshal(payload); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLAnswer); err != nil {
			r.Logger.Warn("answer cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "answer", len(data))
		}
	}

	return result, nil
}

// Load decodes and validates a decomposition without solving it or
// touching the cache. The inspect path builds on it.
func (r *Runner) Load(ctx context.Context, src []byte) (*nicetree.Tree, error) {
	tree, err := nicetree.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode decomposition")
	}
	if err := tree.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTree, err, "validate decomposition")
	}
	return tree, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// mapSolveErr attaches error codes to solver failures. Context
// cancellation passes through untouched so callers can match it.
func mapSolveErr(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, domset.ErrWidthLimit):
		return apperrors.Wrap(apperrors.ErrCodeWidthLimit, err, "decomposition too wide")
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "solve failed")
	}
}
