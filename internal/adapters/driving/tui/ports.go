// Package tui provides an interactive terminal user interface for skintelect.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Analyzer analyzes pasted ingredient lists.
	Analyzer driving.AnalyzerService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Analyzer == nil {
		return ErrMissingAnalyzer
	}
	return nil
}
