package cli

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui"
)

type program interface {
	Run() (tea.Model, error)
}

// newProgram builds the bubbletea program. Tests replace it to run headless.
var newProgram = func(m tea.Model, opts ...tea.ProgramOption) program {
	return tea.NewProgram(m, opts...)
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [ingredients...]",
	Short: "Launch the interactive analyzer",
	Long: `Launch the interactive terminal analyzer.

Paste an ingredient list and press ctrl+s to see recognized ingredients,
fungal acne triggers, allergens and other warnings.

Controls:
  ctrl+s     - Analyze
  tab        - Switch between input and results
  ↑/k, ↓/j   - Scroll results
  ctrl+r     - Reset
  esc        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Report panics with a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := tui.NewApp(&tui.Ports{Analyzer: analyzerService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithInput(strings.Join(args, " "))

	p := newProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
