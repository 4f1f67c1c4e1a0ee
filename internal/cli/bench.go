package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lennartvogt/treedom/pkg/bench"
	"github.com/lennartvogt/treedom/pkg/pipeline"
)

// benchOptions collects the bench command's flag values.
type benchOptions struct {
	noCache   bool
	maxWidth  int
	storePath string
	mongoURI  string
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var o benchOptions

	cmd := &cobra.Command{
		Use:   "bench [suite.toml]",
		Short: "Run a benchmark suite of decomposition instances",
		Long: `Run every instance of a TOML benchmark suite through the solver and
compare the answers against the expected values.

Reports can be appended to a JSONL file with --store or inserted into
MongoDB with --mongo. The command exits non-zero when any instance
mismatches or fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd.Context(), args[0], o)
		},
	}

	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the answer cache")
	cmd.Flags().IntVar(&o.maxWidth, "max-width", pipeline.DefaultMaxWidth, "reject decompositions wider than this (negative disables the guard)")
	cmd.Flags().StringVar(&o.storePath, "store", "", "append the report to this JSONL file")
	cmd.Flags().StringVar(&o.mongoURI, "mongo", "", "insert the report into MongoDB at this URI")

	return cmd
}

// runBench loads the suite, runs every instance, renders the results and
// stores the report.
func (c *CLI) runBench(ctx context.Context, suitePath string, o benchOptions) error {
	suite, err := bench.LoadSuite(suitePath)
	if err != nil {
		return err
	}

	stores, err := c.openStores(ctx, o)
	if err != nil {
		return err
	}
	defer func() {
		for _, s := range stores {
			if err := s.Close(context.Background()); err != nil {
				c.Logger.Warn("close result store", "error", err)
			}
		}
	}()

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	br := bench.NewRunner(runner, c.Logger)

	prog := newProgress(c.Logger)
	report, err := br.Run(ctx, suite, pipeline.Options{MaxWidth: o.maxWidth, Logger: c.Logger})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Suite %q finished", suite.Name))

	fmt.Println(benchResultTable(report))
	for _, r := range report.Results {
		if r.Error != "" {
			printDetail("%s: %s", r.Name, r.Error)
		}
	}
	printNewline()

	for _, s := range stores {
		if err := s.Store(ctx, report); err != nil {
			return fmt.Errorf("store report: %w", err)
		}
	}
	if o.storePath != "" {
		printFile(o.storePath)
	}

	if !report.Passed() {
		failed := 0
		for _, r := range report.Results {
			if r.Status != bench.StatusOK {
				failed++
			}
		}
		return fmt.Errorf("suite %q: %d of %d instances failed", suite.Name, failed, len(report.Results))
	}

	printSuccess("All %d instances passed", len(report.Results))
	return nil
}

// openStores builds the configured result stores.
func (c *CLI) openStores(ctx context.Context, o benchOptions) ([]bench.ResultStore, error) {
	var stores []bench.ResultStore
	if o.storePath != "" {
		stores = append(stores, bench.NewJSONLStore(o.storePath))
	}
	if o.mongoURI != "" {
		ms, err := bench.NewMongoStore(ctx, o.mongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		stores = append(stores, ms)
	}
	return stores, nil
}

// benchResultTable renders one row per suite instance.
func benchResultTable(report *bench.Report) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, r := range report.Results {
		answer := strconv.Itoa(r.Answer)
		if r.Status == bench.StatusError {
			answer = "—"
		}
		expected := "—"
		if r.Expected != nil {
			expected = strconv.Itoa(*r.Expected)
		}
		rows = append(rows, []string{
			r.Name,
			answer,
			expected,
			string(r.Status),
			r.Duration.Round(time.Millisecond).String(),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Instance", "Answer", "Expected", "Status", "Duration").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 && row < len(report.Results) {
				switch report.Results[row].Status {
				case bench.StatusOK:
					return StyleSuccess
				case bench.StatusMismatch:
					return StyleWarning
				default:
					return StyleError
				}
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
