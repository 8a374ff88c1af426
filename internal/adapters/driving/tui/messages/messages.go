// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/skintelect/skintelect/internal/core/domain"
)

// Focus identifies which pane receives key input.
type Focus int

const (
	// FocusInput is the ingredient textarea.
	FocusInput Focus = iota
	// FocusResults is the scrollable results pane.
	FocusResults
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusResults:
		return "results"
	default:
		return "unknown"
	}
}

// AnalysisCompleted carries an analysis back to the model. Revision is the
// input revision the analysis was started from.
type AnalysisCompleted struct {
	Revision int
	Result   *domain.AnalysisResult
	Err      error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}

// Quit is sent to request application exit.
type Quit struct{}
