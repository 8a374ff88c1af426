package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
	"github.com/skintelect/skintelect/internal/inci"
	"github.com/skintelect/skintelect/internal/logger"
)

// Ensure AnalyzerService implements the interface.
var _ driving.AnalyzerService = (*AnalyzerService)(nil)

// AnalyzerService matches pasted ingredient lists against the catalog.
type AnalyzerService struct {
	ingredients driven.IngredientStore
	parser      *inci.Parser
	metrics     driven.MetricsRecorder
}

// NewAnalyzerService creates a new analyzer.
// The metrics parameter is optional (can be nil).
func NewAnalyzerService(ingredients driven.IngredientStore, metrics driven.MetricsRecorder) *AnalyzerService {
	return &AnalyzerService{
		ingredients: ingredients,
		parser:      inci.NewParser(nil),
		metrics:     metrics,
	}
}

// Analyze validates input, parses it and looks every token up.
func (s *AnalyzerService) Analyze(ctx context.Context, input string) (*domain.AnalysisResult, error) {
	logger.Section("Analysis")

	tokens, err := s.tokenize(input)
	if err != nil {
		s.recordRejection(err)
		logger.Debug("Rejected input: %v", err)
		return nil, err
	}
	logger.Debug("Parsed %d tokens", len(tokens))

	keys := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok.Key]; !ok {
			seen[tok.Key] = struct{}{}
			keys = append(keys, tok.Key)
		}
	}

	matches, err := s.ingredients.LookupAliases(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("lookup aliases: %w", err)
	}

	items := make([]domain.AnalyzedIngredient, len(tokens))
	for i, tok := range tokens {
		ing := matches[tok.Key]
		items[i] = domain.AnalyzedIngredient{
			OriginalText: tok.Original,
			Position:     tok.Position,
			IsRecognized: ing != nil,
			Ingredient:   ing,
		}
	}

	result := &domain.AnalysisResult{
		Ingredients: items,
		Summary:     summarize(items),
	}
	logger.Debug("Recognized %d of %d", result.Summary.Recognized, result.Summary.Total)

	if s.metrics != nil {
		s.metrics.AnalysisCompleted(len(tokens))
	}
	return result, nil
}

// tokenize applies the validation gate around parsing.
func (s *AnalyzerService) tokenize(input string) ([]domain.Token, error) {
	if strings.TrimSpace(input) == "" {
		return nil, domain.ErrEmptyInput
	}
	if utf8.RuneCountInString(input) > domain.MaxInputLength {
		return nil, domain.ErrInputTooLong
	}
	tokens := s.parser.Parse(input)
	if len(tokens) == 0 {
		return nil, domain.ErrNoIngredients
	}
	return tokens, nil
}

func (s *AnalyzerService) recordRejection(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		s.metrics.AnalysisRejected("empty")
	case errors.Is(err, domain.ErrInputTooLong):
		s.metrics.AnalysisRejected("too_long")
	case errors.Is(err, domain.ErrNoIngredients):
		s.metrics.AnalysisRejected("no_ingredients")
	}
}
