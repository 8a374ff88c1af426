package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ensure ProductService implements the interface.
var _ driving.ProductService = (*ProductService)(nil)

const relatedLimit = 6

// ProductService provides read access to the product catalog.
type ProductService struct {
	store driven.ProductStore
}

// NewProductService creates a new product service.
func NewProductService(store driven.ProductStore) *ProductService {
	return &ProductService{store: store}
}

// Get retrieves a product by slug.
func (s *ProductService) Get(ctx context.Context, slug string) (*domain.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, fmt.Errorf("slug is required: %w", domain.ErrInvalidInput)
	}
	return s.store.GetBySlug(ctx, slug)
}

// Search returns one page of matching products.
func (s *ProductService) Search(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	if q.Category != "" && !q.Category.IsValid() {
		return nil, fmt.Errorf("unknown category %q: %w", q.Category, domain.ErrInvalidInput)
	}
	if q.Sort == "" {
		q.Sort = domain.SortByName
	}
	if !q.Sort.IsValid() {
		return nil, fmt.Errorf("unknown sort %q: %w", q.Sort, domain.ErrInvalidInput)
	}
	q.Query = strings.TrimSpace(q.Query)
	q.Limit, q.Offset = clampPage(q.Limit, q.Offset)

	items, total, err := s.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return &domain.ProductPage{
		Products: items,
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

// Related returns products in the same category with the same
// fungal-acne safety, excluding the product itself.
func (s *ProductService) Related(ctx context.Context, slug string) ([]domain.Product, error) {
	p, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	related, err := s.store.Related(ctx, p, relatedLimit)
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return related, nil
}

// Suggest returns search-as-you-type matches for q.
func (s *ProductService) Suggest(ctx context.Context, q string) ([]domain.Suggestion, error) {
	q, ok := suggestQuery(q)
	if !ok {
		return []domain.Suggestion{}, nil
	}
	items, err := s.store.Suggest(ctx, q, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggest products: %w", err)
	}
	out := make([]domain.Suggestion, len(items))
	for i, p := range items {
		out[i] = domain.Suggestion{Slug: p.Slug, Name: p.Name}
		if p.Brand != nil {
			out[i].Subtitle = p.Brand.Name
		}
	}
	return out, nil
}

// Safety summarises the product's declared ingredients.
func (s *ProductService) Safety(ctx context.Context, slug string) (*domain.AnalysisSummary, error) {
	p, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	items := make([]domain.AnalyzedIngredient, len(p.Ingredients))
	for i := range p.Ingredients {
		pi := &p.Ingredients[i]
		items[i] = domain.AnalyzedIngredient{
			OriginalText: pi.Ingredient.Name,
			Position:     pi.Position,
			IsRecognized: true,
			Ingredient:   &pi.Ingredient,
		}
	}
	sum := summarize(items)
	return &sum, nil
}
