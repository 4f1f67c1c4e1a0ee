package domset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lennartvogt/treedom/pkg/nicetree"
	"github.com/lennartvogt/treedom/pkg/observability"
)

var (
	// ErrWidthLimit is returned by [Solver.Run] when the decomposition is
	// wider than Options.MaxWidth allows.
	ErrWidthLimit = errors.New("decomposition width exceeds limit")

	// ErrInconsistent reports a broken solver invariant, such as a child
	// table missing an entry a transition depends on. It indicates a bug
	// or a tree mutated after validation.
	ErrInconsistent = errors.New("solver state inconsistent")
)

// Options configure a Solver.
type Options struct {
	// MaxWidth rejects decompositions wider than this before any table is
	// allocated. Zero or negative disables the guard. Table sizes grow as
	// 3^(width+1), so even moderate widths are expensive.
	MaxWidth int

	// KeepTables retains every bag table after the run for inspection
	// through [Solver.Table]. Without it, child tables are released as
	// soon as their parent has consumed them.
	KeepTables bool

	// Logger receives per-bag debug output. Defaults to log.Default().
	Logger *log.Logger
}

// Result is the outcome of one solve.
type Result struct {
	// Answer is the minimum dominating set size. It is meaningful only
	// when Feasible is true.
	Answer int
	// Feasible is false when the root entry stayed infeasible. A valid
	// decomposition of a real graph always yields a feasible answer,
	// since taking every vertex dominates the graph.
	Feasible bool
	// Bags is the number of bags evaluated.
	Bags int
	// Width is the decomposition width, the largest bag size minus one.
	Width int
	// Duration is the wall-clock solve time, validation included.
	Duration time.Duration
}

// Solver evaluates the dominating-set dynamic program over one
// decomposition. It owns the atom interner and the per-bag tables.
//
// A Solver is not safe for concurrent use. The zero value is not usable -
// use NewSolver.
type Solver struct {
	tree   *nicetree.Tree
	opts   Options
	logger *log.Logger
	in     *Interner
	states map[int]*bagState
}

// bagState holds the evaluation state of one bag: its table and, for
// joins, the precomputed consistent triples.
type bagState struct {
	bag     *nicetree.Bag
	table   *Table
	triples []joinTriple
}

// NewSolver creates a solver for the tree. The tree is validated by Run,
// not here.
func NewSolver(t *nicetree.Tree, opts Options) *Solver {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Solver{
		tree:   t,
		opts:   opts,
		logger: logger,
		in:     NewInterner(),
		states: make(map[int]*bagState),
	}
}

// Solve validates the tree and runs the dynamic program. It is shorthand
// for NewSolver(t, opts).Run(ctx).
func Solve(ctx context.Context, t *nicetree.Tree, opts Options) (*Result, error) {
	return NewSolver(t, opts).Run(ctx)
}

// Run evaluates every bag in postorder and returns the answer read from
// the root table. The context is checked between bags; cancellation aborts
// with the context error. Run reports tree validation failures unchanged,
// ErrWidthLimit when the width guard trips, and ErrInconsistent when a
// transition meets an impossible state.
func (s *Solver) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	if err := s.tree.Validate(); err != nil {
		return nil, err
	}
	width := s.tree.Width()
	if s.opts.MaxWidth > 0 && width > s.opts.MaxWidth {
		return nil, fmt.Errorf("%w: width %d with limit %d", ErrWidthLimit, width, s.opts.MaxWidth)
	}

	hooks := observability.Solver()
	hooks.OnSolveStart(ctx, s.tree.Len(), width)
	s.logger.Debug("solve started", "bags", s.tree.Len(), "width", width)

	fail := func(err error) (*Result, error) {
		hooks.OnSolveComplete(ctx, 0, false, time.Since(start), err)
		return nil, err
	}

	var root *bagState
	for _, id := range s.tree.Postorder() {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		bag, ok := s.tree.Bag(id)
		if !ok {
			return fail(fmt.Errorf("%w: postorder names unknown bag %d", ErrInconsistent, id))
		}
		st := s.newBagState(bag)
		s.states[id] = st

		bagStart := time.Now()
		if err := s.solveBag(st); err != nil {
			return fail(err)
		}
		elapsed := time.Since(bagStart)
		hooks.OnBagSolved(ctx, id, bag.Type.String(), st.table.Len(), elapsed)
		s.logger.Debug("bag solved",
			"bag", id,
			"type", bag.Type,
			"entries", st.table.Len(),
			"duration", elapsed)

		if !s.opts.KeepTables {
			for _, child := range bag.Children() {
				delete(s.states, child)
			}
		}
		if !bag.HasParent() {
			root = st
		}
	}
	if root == nil {
		return fail(fmt.Errorf("%w: traversal finished without a root bag", ErrInconsistent))
	}

	// The root is an empty forget bag, so its table holds exactly one
	// entry: the answer.
	value := root.table.Min()
	if !s.opts.KeepTables {
		clear(s.states)
	}

	res := &Result{
		Feasible: value != Infinity,
		Bags:     s.tree.Len(),
		Width:    width,
		Duration: time.Since(start),
	}
	if res.Feasible {
		res.Answer = value
	}
	hooks.OnSolveComplete(ctx, res.Answer, res.Feasible, res.Duration, nil)
	s.logger.Debug("solve complete",
		"answer", res.Answer,
		"feasible", res.Feasible,
		"duration", res.Duration)
	return res, nil
}

// Table returns the table computed for a bag. It reports false unless the
// run kept tables (Options.KeepTables) and the bag exists.
func (s *Solver) Table(bagID int) (*Table, bool) {
	st, ok := s.states[bagID]
	if !ok {
		return nil, false
	}
	return st.table, true
}

// Interner exposes the solver's atom interner, needed to render colourings
// taken from kept tables.
func (s *Solver) Interner() *Interner { return s.in }

// newBagState enumerates the bag's colouring domain and, for joins, its
// consistent triples.
func (s *Solver) newBagState(b *nicetree.Bag) *bagState {
	st := &bagState{
		bag:   b,
		table: newTable(enumerateColorings(s.in, b.Vertices)),
	}
	if b.Type == nicetree.Join {
		st.triples = enumerateTriples(s.in, b.Vertices)
	}
	return st
}
