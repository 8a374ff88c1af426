package driving

import (
	"context"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// AnalyzerService analyzes pasted ingredient lists.
type AnalyzerService interface {
	// Analyze validates input, parses it and matches every token against
	// the ingredient catalog. Validation failures are domain.ErrEmptyInput,
	// domain.ErrInputTooLong or domain.ErrNoIngredients.
	Analyze(ctx context.Context, input string) (*domain.AnalysisResult, error)
}
