// Package pipeline ties decoding, validation and solving into one cached
// execution path shared by the CLI, the HTTP server and the bench runner.
// Centralizing this logic keeps behavior consistent across entry points.
//
// # Stages
//
// A run passes through three stages:
//
//  1. Decode: parse the textual decomposition into a linked bag tree
//  2. Validate: check the nice decomposition shape rules
//  3. Solve: run the dominating set dynamic program over the tree
//
// Only the final answer is cached. The decomposition text is its own
// serialization, so caching decoded trees would buy nothing, and solve
// results are tiny. The cache key binds the source hash, the options
// that change the outcome, and the payload schema version.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(answerCache, nil, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Answer)
//
// Decode without solving (used by inspect):
//
//	tree, err := runner.Load(ctx, src)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lennartvogt/treedom/pkg/cache"
	"github.com/lennartvogt/treedom/pkg/domset"
)

// DefaultMaxWidth bounds the decomposition width accepted without an
// explicit override. Bag tables grow as 3^(width+1), so width 12
// already means about 1.6 million entries per bag.
const DefaultMaxWidth = 12

// Options configures a pipeline run. The zero value is valid and maps
// to the defaults. The struct serializes for API requests.
type Options struct {
	// MaxWidth rejects decompositions wider than this before any table
	// is allocated. Zero means DefaultMaxWidth; a negative value
	// disables the guard.
	MaxWidth int `json:"max_width,omitempty"`

	// Refresh bypasses the answer-cache read and repopulates the entry.
	Refresh bool `json:"refresh,omitempty"`

	// KeepTables retains every bag table on the result's Solver for
	// inspection. It implies a cache bypass, since a cache hit would
	// skip the computation that produces the tables.
	KeepTables bool `json:"keep_tables,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults applies defaults to unset fields.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// AnswerKeyOpts returns the cache key options for this run.
func (o *Options) AnswerKeyOpts() cache.AnswerKeyOpts {
	return cache.AnswerKeyOpts{
		MaxWidth: o.MaxWidth,
	}
}

// solverMaxWidth maps the option onto the solver's convention, where
// zero and below disable the guard.
func (o *Options) solverMaxWidth() int {
	if o.MaxWidth < 0 {
		return 0
	}
	return o.MaxWidth
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string `json:"run_id"`

	// Answer is the minimum dominating set size. Meaningful only when
	// Feasible is true.
	Answer int `json:"answer"`

	// Feasible is false when no dominating set exists for the encoded
	// instance.
	Feasible bool `json:"feasible"`

	// Bags, Width and Edges describe the decoded decomposition.
	Bags  int `json:"bags"`
	Width int `json:"width"`
	Edges int `json:"edges"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the answer came from cache.
	CacheInfo CacheInfo `json:"cache_info"`

	// Solver exposes the per-bag tables after a run with KeepTables
	// set. Nil otherwise.
	Solver *domset.Solver `json:"-"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	DecodeTime time.Duration `json:"decode_time"`
	SolveTime  time.Duration `json:"solve_time"`
}

// CacheInfo tracks cache hits for the run.
type CacheInfo struct {
	// AnswerHit reports whether the answer came from cache.
	AnswerHit bool `json:"answer_hit"`
}

// answerPayload is the cached form of a result core.
type answerPayload struct {
	Answer   int  `json:"answer"`
	Feasible bool `json:"feasible"`
	Bags     int  `json:"bags"`
	Width    int  `json:"width"`
	Edges    int  `json:"edges"`
}
