package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skintelect/skintelect/internal/core/domain"
)

var (
	analyzeFile string
	analyzeJSON bool
)

// stdinIsTerminal reports whether stdin is interactive. Piped input is
// read as the ingredient list.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var errNoInput = errors.New("no ingredient list given: pass it as arguments, with --file, or on stdin")

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ingredients...]",
	Short: "Analyze an ingredient list",
	Long: `Analyze a cosmetic ingredient list against the catalog.

The list is taken from the arguments, from --file, or from stdin when it
is piped.

Examples:
  skintelect analyze "Aqua, Glycerin, Niacinamide"
  pbpaste | skintelect analyze --json`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read the ingredient list from a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the analysis as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzerService == nil {
		return fmt.Errorf("analyzer: %w", errNotConfigured)
	}

	input, err := readAnalyzeInput(cmd, args)
	if err != nil {
		return err
	}

	result, err := analyzerService.Analyze(cmd.Context(), input)
	if err != nil {
		if msg, ok := domain.ValidationMessage(err); ok {
			return errors.New(msg)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	writeAnalysis(cmd.OutOrStdout(), result)
	return nil
}

func readAnalyzeInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("reading ingredient file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case !stdinIsTerminal():
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", errNoInput
	}
}
