package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/lennartvogt/treedom/pkg/nicetree"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		dotPath string
		svgPath string
		pngPath string
	)

	cmd := &cobra.Command{
		Use:   "inspect [decomposition.ntd]",
		Short: "Report decomposition statistics without solving",
		Long: `Report statistics about a nice tree decomposition without running the
solver: bag counts by type, width, depth, and vertex and edge totals.

The tree can also be exported for visual inspection as Graphviz DOT, SVG,
or PNG. Pass "-" to read the decomposition from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], dotPath, svgPath, pngPath)
		},
	}

	cmd.Flags().StringVar(&dotPath, "dot", "", "write the tree as Graphviz DOT to this file")
	cmd.Flags().StringVar(&svgPath, "svg", "", "render the tree as SVG to this file")
	cmd.Flags().StringVar(&pngPath, "png", "", "render the tree as PNG to this file")

	return cmd
}

// runInspect decodes and validates the tree, then prints its statistics.
func (c *CLI) runInspect(ctx context.Context, input string, dotPath, svgPath, pngPath string) error {
	src, err := readInput(input)
	if err != nil {
		return err
	}

	// Inspection never solves, so the answer cache stays out of the way.
	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	tree, err := runner.Load(ctx, src)
	if err != nil {
		return err
	}

	stats := tree.Stats()
	printKeyValue("bags", strconv.Itoa(stats.Bags))
	printKeyValue("width", strconv.Itoa(stats.Width))
	printKeyValue("depth", strconv.Itoa(stats.Depth))
	printKeyValue("vertices", strconv.Itoa(stats.Vertices))
	printKeyValue("edges", strconv.Itoa(stats.Edges))
	printNewline()
	fmt.Println(bagTypeTable(stats))

	wrote := false
	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(nicetree.ToDOT(tree)), 0o644); err != nil {
			return fmt.Errorf("write DOT %s: %w", dotPath, err)
		}
		printFile(dotPath)
		wrote = true
	}
	if svgPath != "" {
		if err := renderTreeFile(ctx, tree, svgPath, nicetree.RenderSVG); err != nil {
			return err
		}
		printFile(svgPath)
		wrote = true
	}
	if pngPath != "" {
		if err := renderTreeFile(ctx, tree, pngPath, nicetree.RenderPNG); err != nil {
			return err
		}
		printFile(pngPath)
		wrote = true
	}

	if input != "-" {
		if wrote {
			printNewline()
		}
		printNextStep("Solve the instance", "treedom solve "+input)
	}

	return nil
}

// renderTreeFile renders the tree with the given renderer and writes the
// bytes to path.
func renderTreeFile(ctx context.Context, tree *nicetree.Tree, path string, render func(context.Context, *nicetree.Tree) ([]byte, error)) error {
	data, err := render(ctx, tree)
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// bagTypeTable renders the per-type bag counts.
func bagTypeTable(stats nicetree.Stats) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, bt := range []nicetree.BagType{nicetree.Leaf, nicetree.IntroduceVertex, nicetree.Forget, nicetree.Join} {
		rows = append(rows, []string{bt.String(), strconv.Itoa(stats.ByType[bt])})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Bags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return StyleNumber
			}
			return StyleValue
		}).
		Render()
}
