// Package pkg provides the core libraries for Treedom dominating set solving.
//
// # Overview
//
// Treedom computes the size of a minimum dominating set from a nice tree
// decomposition of a graph, using dynamic programming over the decomposition's
// bags. The pkg directory is organized into five main areas:
//
//  1. [nicetree] - Decomposition model (text decoding, validation, rendering)
//  2. [domset] - Dynamic programming solver (colourings, tables, transitions)
//  3. [pipeline] - Orchestration (decode → validate → solve → cache)
//  4. [cache] - Answer cache backends (file, Redis, null)
//  5. [bench] - Regression suites with persistent reports
//
// # Architecture
//
// The typical data flow through Treedom:
//
//	.ntd decomposition text
//	         ↓
//	    [nicetree] package (decode + validate the decomposition)
//	         ↓
//	    [domset] package (per-bag tables + transitions)
//	         ↓
//	    [pipeline] package (caching + orchestration)
//	         ↓
//	    minimum dominating set size
//
// # Quick Start
//
// Solve a decomposition through the pipeline:
//
//	import (
//	    "context"
//	    "fmt"
//	    "os"
//
//	    "github.com/lennartvogt/treedom/pkg/cache"
//	    "github.com/lennartvogt/treedom/pkg/pipeline"
//	)
//
//	// 1. Open an answer cache
//	c, _ := cache.NewFileCache("/tmp/treedom")
//
//	// 2. Build the runner
//	runner := pipeline.NewRunner(c, nil, nil)
//	defer runner.Close()
//
//	// 3. Solve an instance
//	src, _ := os.ReadFile("examples/instances/p4.ntd")
//	result, _ := runner.Execute(context.Background(), src, pipeline.Options{})
//	fmt.Println(result.Answer)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [nicetree] - Nice tree decompositions. Decodes the line-oriented text
// format, validates that every bag is a well-formed leaf, introduce, forget,
// or join bag, and provides post-order traversal, per-type statistics, and
// Graphviz rendering (DOT, SVG, PNG).
//
// [domset] - Minimum dominating set solver. Each bag vertex takes one of
// three colours (Black in the set, White outside and requiring domination,
// Grey outside and unconstrained); the solver carries a table of colouring →
// cost entries up the decomposition, applying one transition per bag type.
//
// ## Infrastructure
//
// [pipeline] - Complete solve pipeline (decode → validate → solve) used by
// the CLI and the HTTP server. Ensures consistent behavior across all entry
// points and consults the answer cache before solving.
//
// [cache] - Answer cache backends: FileCache for the CLI (sharded
// filesystem), RedisCache for the server, NullCache for tests and cache
// bypass. Key generation is pluggable via [cache.Keyer]; ScopedKeyer
// namespaces keys on shared backends.
//
// [bench] - Regression suites. A TOML suite names instances with expected
// answers; the runner solves each and produces a [bench.Report] that can be
// appended to a JSONL file or inserted into MongoDB.
//
// ## Supporting
//
// [errors] - Coded errors shared across packages. Codes classify failures
// (invalid format, invalid tree, width limit, cache, store) and map to user
// messages and HTTP statuses.
//
// [observability] - Process-wide solver and cache hooks. The CLI feeds them
// into a live progress view; the server feeds them into Prometheus metrics.
//
// [buildinfo] - Version, commit, and build date injected at link time.
//
// # Common Workflows
//
// Decode and solve without the pipeline:
//
//	tree, _ := nicetree.Decode(f)
//	result, _ := domset.Solve(ctx, tree, domset.Options{})
//	fmt.Println(result.Answer, result.Feasible)
//
// Inspect per-bag tables:
//
//	solver := domset.NewSolver(tree, domset.Options{KeepTables: true})
//	result, _ := solver.Run(ctx)
//	root, _ := tree.Root()
//	table, _ := solver.Table(root.ID)
//
// Run a benchmark suite:
//
//	suite, _ := bench.LoadSuite("examples/suite.toml")
//	report, _ := bench.NewRunner(runner, nil).Run(ctx, suite, pipeline.Options{})
//	fmt.Println(report.Passed())
//
// Observe the solver:
//
//	observability.SetSolverHooks(myHooks)
//	defer observability.Reset()
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/domset/...         # Specific package
//	go test -run Example             # Examples only
//
// [nicetree]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/nicetree
// [domset]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/domset
// [pipeline]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/cache
// [bench]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/bench
// [errors]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/errors
// [observability]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/buildinfo
// [cache.Keyer]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/cache#Keyer
// [bench.Report]: https://pkg.go.dev/github.com/lennartvogt/treedom/pkg/bench#Report
package pkg
