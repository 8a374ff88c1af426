package services

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
	"github.com/skintelect/skintelect/internal/logger"
)

// Ensure SuggestionService implements the interface.
var _ driving.SuggestionService = (*SuggestionService)(nil)

// SuggestionService caches catalog suggestions for search-as-you-type.
type SuggestionService struct {
	ingredients driving.IngredientService
	products    driving.ProductService
	cache       *cache.Cache
}

// NewSuggestionService creates a suggestion service caching results for ttl.
// A ttl <= 0 disables caching.
func NewSuggestionService(ingredients driving.IngredientService, products driving.ProductService, ttl time.Duration) *SuggestionService {
	s := &SuggestionService{ingredients: ingredients, products: products}
	if ttl > 0 {
		s.cache = cache.New(ttl, ttl*2)
	}
	return s
}

// Ingredients returns ingredient suggestions for q.
func (s *SuggestionService) Ingredients(ctx context.Context, q string) []domain.Suggestion {
	return s.lookup(ctx, "ingredient", q, s.ingredients.Suggest)
}

// Products returns product suggestions for q.
func (s *SuggestionService) Products(ctx context.Context, q string) []domain.Suggestion {
	return s.lookup(ctx, "product", q, s.products.Suggest)
}

// Flush drops every cached suggestion, e.g. after the catalog is reseeded.
func (s *SuggestionService) Flush() {
	if s.cache != nil {
		s.cache.Flush()
	}
}

type suggestFunc func(ctx context.Context, q string) ([]domain.Suggestion, error)

func (s *SuggestionService) lookup(ctx context.Context, kind, q string, fetch suggestFunc) []domain.Suggestion {
	key := kind + ":" + strings.ToLower(strings.TrimSpace(q))
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if items, ok := cached.([]domain.Suggestion); ok {
				return items
			}
		}
	}

	items, err := fetch(ctx, q)
	if err != nil {
		logger.Warn("%s suggestions for %q: %v", kind, q, err)
		return []domain.Suggestion{}
	}
	if items == nil {
		items = []domain.Suggestion{}
	}
	if s.cache != nil {
		s.cache.SetDefault(key, items)
	}
	return items
}
