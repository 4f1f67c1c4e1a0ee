package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lennartvogt/treedom/pkg/domset"
	"github.com/lennartvogt/treedom/pkg/nicetree"
	"github.com/lennartvogt/treedom/pkg/pipeline"
)

// solveOptions collects the solve command's flag values.
type solveOptions struct {
	noCache  bool
	refresh  bool
	progress bool
	tables   bool
	maxWidth int
	jsonPath string
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var o solveOptions

	cmd := &cobra.Command{
		Use:   "solve [decomposition.ntd]",
		Short: "Compute the minimum dominating set size",
		Long: `Compute the minimum dominating set size for a graph given as a nice tree
decomposition.

The solve command decodes the decomposition, validates its shape, and runs
the dominating set dynamic program bag by bag. Pass "-" to read the
decomposition from stdin.

Answers are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], o)
		},
	}

	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the answer cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even when a cached answer exists")
	cmd.Flags().IntVar(&o.maxWidth, "max-width", pipeline.DefaultMaxWidth, "reject decompositions wider than this (negative disables the guard)")
	cmd.Flags().BoolVar(&o.progress, "progress", false, "show live per-bag progress")
	cmd.Flags().BoolVar(&o.tables, "tables", false, "print every bag table after solving")
	cmd.Flags().StringVar(&o.jsonPath, "json", "", "write the full result as JSON to this file")

	return cmd
}

// runSolve executes the pipeline and prints the answer.
func (c *CLI) runSolve(ctx context.Context, input string, o solveOptions) error {
	src, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		MaxWidth:   o.maxWidth,
		Refresh:    o.refresh,
		KeepTables: o.tables,
		Logger:     c.Logger,
	}

	var result *pipeline.Result
	if o.progress {
		result, err = c.solveWithProgress(ctx, runner, src, opts)
	} else {
		result, err = c.solveWithSpinner(ctx, runner, src, opts)
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if result.Feasible {
		printSuccess("Minimum dominating set size: %s", StyleNumber.Render(strconv.Itoa(result.Answer)))
	} else {
		printWarning("No dominating set exists for this instance")
	}
	printStats(result.Bags, result.Width, result.CacheInfo.AnswerHit)
	printDetail("%d introduced edges · decode %s · solve %s",
		result.Edges,
		result.Stats.DecodeTime.Round(time.Microsecond),
		result.Stats.SolveTime.Round(time.Microsecond))

	if o.tables && result.Solver != nil {
		// The result does not carry the tree, but decoding is cheap next to
		// the solve itself.
		tree, err := runner.Load(ctx, src)
		if err != nil {
			return err
		}
		printNewline()
		printBagTables(tree, result.Solver)
	}

	if o.jsonPath != "" {
		if err := writeResultFile(result, o.jsonPath); err != nil {
			return fmt.Errorf("write result %s: %w", o.jsonPath, err)
		}
		printFile(o.jsonPath)
	}

	if input != "-" {
		printNewline()
		printNextStep("Inspect the decomposition", "treedom inspect "+input)
	}

	return nil
}

// solveWithSpinner runs the pipeline behind a terminal spinner.
func (c *CLI) solveWithSpinner(ctx context.Context, runner *pipeline.Runner, src []byte, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Solving...")
	spinner.Start()

	result, err := runner.Execute(ctx, src, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return nil, err
	}
	spinner.Stop()

	return result, nil
}

// printBagTables dumps every bag table in postorder.
func printBagTables(tree *nicetree.Tree, solver *domset.Solver) {
	in := solver.Interner()
	for _, id := range tree.Postorder() {
		tbl, ok := solver.Table(id)
		if !ok {
			continue
		}
		bag, ok := tree.Bag(id)
		if !ok {
			continue
		}
		fmt.Println(StyleTitle.Render(fmt.Sprintf("bag %d", id)) + " " + StyleDim.Render(bag.String()))
		for _, f := range tbl.Domain() {
			v, _ := tbl.Get(f)
			value := "inf"
			if v != domset.Infinity {
				value = strconv.Itoa(v)
			}
			fmt.Printf("  %s = %s\n", StyleValue.Render(f.Format(in)), StyleNumber.Render(value))
		}
	}
}

// writeResultFile writes the result as indented JSON.
func writeResultFile(result *pipeline.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
