package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lennartvogt/treedom/pkg/observability"
	"github.com/lennartvogt/treedom/pkg/pipeline"
)

// progressBarWidth is the character width of the solve progress bar.
const progressBarWidth = 30

// Messages sent into the progress model while the solver runs.
type (
	solveStartedMsg struct {
		bags  int
		width int
	}
	bagSolvedMsg struct {
		bagID   int
		bagType string
		entries int
	}
	solveFinishedMsg struct{}
)

// =============================================================================
// solveProgressModel - Live per-bag progress view
// =============================================================================

// solveProgressModel renders a progress bar that advances as the solver
// finishes bags. Pressing q cancels the solve; the model quits only when
// the finished message arrives, so the solver goroutine is never orphaned.
type solveProgressModel struct {
	cancel context.CancelFunc

	total    int
	width    int
	solved   int
	lastBag  string
	finished bool
}

func (m solveProgressModel) Init() tea.Cmd {
	return nil
}

func (m solveProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
		}
	case solveStartedMsg:
		m.total = msg.bags
		m.width = msg.width
	case bagSolvedMsg:
		m.solved++
		m.lastBag = fmt.Sprintf("bag %d (%s, %d entries)", msg.bagID, msg.bagType, msg.entries)
	case solveFinishedMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m solveProgressModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Solving decomposition"))
	if m.width > 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("  width %d", m.width)))
	}
	b.WriteString("\n")

	filled := 0
	if m.total > 0 {
		filled = m.solved * progressBarWidth / m.total
		if filled > progressBarWidth {
			filled = progressBarWidth
		}
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	b.WriteString("  " + StyleHighlight.Render(bar))
	b.WriteString(" " + StyleDim.Render(fmt.Sprintf("%d/%d bags", m.solved, m.total)))
	b.WriteString("\n")

	if m.lastBag != "" {
		b.WriteString("  " + StyleDim.Render(m.lastBag) + "\n")
	}
	b.WriteString(StyleDim.Render("q to cancel"))
	b.WriteString("\n")

	return b.String()
}

// =============================================================================
// Hook Wiring
// =============================================================================

// progressHooks forwards solver events into the bubbletea program.
type progressHooks struct {
	program *tea.Program
}

var _ observability.SolverHooks = progressHooks{}

func (h progressHooks) OnSolveStart(_ context.Context, bags, width int) {
	h.program.Send(solveStartedMsg{bags: bags, width: width})
}

func (h progressHooks) OnBagSolved(_ context.Context, bagID int, bagType string, entries int, _ time.Duration) {
	h.program.Send(bagSolvedMsg{bagID: bagID, bagType: bagType, entries: entries})
}

func (h progressHooks) OnSolveComplete(context.Context, int, bool, time.Duration, error) {}

// solveWithProgress runs the pipeline behind a live bag-by-bag view.
func (c *CLI) solveWithProgress(ctx context.Context, runner *pipeline.Runner, src []byte, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(solveProgressModel{cancel: cancel}, tea.WithOutput(os.Stderr))

	observability.SetSolverHooks(progressHooks{program: program})
	defer observability.Reset()

	type outcome struct {
		result *pipeline.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := runner.Execute(ctx, src, opts)
		done <- outcome{result: result, err: err}
		program.Send(solveFinishedMsg{})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("progress view: %w", err)
	}

	out := <-done
	return out.result, out.err
}
