package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ensure IngredientService implements the interface.
var _ driving.IngredientService = (*IngredientService)(nil)

// Paging and suggestion bounds shared by the catalog services.
const (
	defaultPageLimit     = 20
	maxPageLimit         = 100
	defaultFunctionLimit = 50
	suggestionLimit      = 10
	minSuggestQueryLen   = 2
	maxSuggestQueryLen   = 100
)

// IngredientService provides read access to the ingredient catalog.
type IngredientService struct {
	store driven.IngredientStore
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(store driven.IngredientStore) *IngredientService {
	return &IngredientService{store: store}
}

// Get retrieves an ingredient by slug.
func (s *IngredientService) Get(ctx context.Context, slug string) (*domain.Ingredient, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("slug is required: %w", domain.ErrInvalidInput)
	}
	return s.store.GetBySlug(ctx, slug)
}

// Search returns one page of matching ingredients ordered by name.
func (s *IngredientService) Search(ctx context.Context, q domain.IngredientQuery) (*domain.IngredientPage, error) {
	for _, fn := range q.Functions {
		if !fn.IsValid() {
			return nil, fmt.Errorf("unknown function %q: %w", fn, domain.ErrInvalidInput)
		}
	}
	q.Query = strings.TrimSpace(q.Query)
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)

	items, total, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	return &domain.IngredientPage{
		Ingredients: items,
		Total:       total,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, nil
}

// ListByFunction returns ingredients having fn.
func (s *IngredientService) ListByFunction(ctx context.Context, fn domain.IngredientFunction, limit int) ([]domain.Ingredient, error) {
	if !fn.IsValid() {
		return nil, fmt.Errorf("unknown function %q: %w", fn, domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultFunctionLimit
	}
	items, _, err := s.store.Search(ctx, domain.IngredientQuery{
		Functions: []domain.IngredientFunction{fn},
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list by function: %w", err)
	}
	return items, nil
}

// FungalAcneTriggers returns every fungal-acne trigger.
func (s *IngredientService) FungalAcneTriggers(ctx context.Context) ([]domain.Ingredient, error) {
	return s.filter(ctx, func(ing *domain.Ingredient) bool { return ing.IsFungalAcneTrigger })
}

// Allergens returns every flagged allergen.
func (s *IngredientService) Allergens(ctx context.Context) ([]domain.Ingredient, error) {
	return s.filter(ctx, func(ing *domain.Ingredient) bool { return ing.IsAllergen })
}

func (s *IngredientService) filter(ctx context.Context, keep func(*domain.Ingredient) bool) ([]domain.Ingredient, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	out := make([]domain.Ingredient, 0)
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Suggest returns search-as-you-type matches for q.
func (s *IngredientService) Suggest(ctx context.Context, q string) ([]domain.Suggestion, error) {
	q, ok := suggestQuery(q)
	if !ok {
		return []domain.Suggestion{}, nil
	}
	items, err := s.store.Suggest(ctx, q, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest ingredients: %w", err)
	}
	out := make([]domain.Suggestion, len(items))
	for i, ing := range items {
		out[i] = domain.Suggestion{Slug: ing.Slug, Name: ing.Name}
		if ing.INCIName != "" && ing.INCIName != ing.Name {
			out[i].Subtitle = ing.INCIName
		}
	}
	return out, nil
}

// suggestQuery trims q and caps it at maxSuggestQueryLen runes.
// Queries shorter than minSuggestQueryLen are rejected.
func suggestQuery(q string) (string, bool) {
	q = strings.TrimSpace(q)
	runes := []rune(q)
	if len(runes) < minSuggestQueryLen {
		return "", false
	}
	if len(runes) > maxSuggestQueryLen {
		q = strings.TrimSpace(string(runes[:maxSuggestQueryLen]))
	}
	return q, true
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
