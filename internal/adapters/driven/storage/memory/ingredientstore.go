package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/inci"
)

// Ensure IngredientStore implements the interfaces.
var (
	_ driven.IngredientStore = (*IngredientStore)(nil)
	_ driven.Pinger          = (*IngredientStore)(nil)
)

// IngredientStore is an in-memory implementation of driven.IngredientStore.
// The alias table maps canonical keys to ingredient IDs explicitly, so
// several spellings can resolve to one record.
type IngredientStore struct {
	mu          sync.RWMutex
	ingredients map[string]domain.Ingredient
	slugs       map[string]string // slug -> id
	aliases     map[string]string // key -> id
}

// NewIngredientStore creates a new in-memory ingredient store.
func NewIngredientStore() *IngredientStore {
	return &IngredientStore{
		ingredients: make(map[string]domain.Ingredient),
		slugs:       make(map[string]string),
		aliases:     make(map[string]string),
	}
}

// aliasKeys derives the lookup keys for an ingredient.
func aliasKeys(ing *domain.Ingredient) []string {
	values := make([]string, 0, len(ing.Aliases)+2)
	values = append(values, ing.Name, ing.INCIName)
	values = append(values, ing.Aliases...)
	return inci.Keys(values...)
}

// Save stores or updates an ingredient and replaces its alias keys.
func (s *IngredientStore) Save(_ context.Context, ing *domain.Ingredient) error {
	if ing.ID == "" || ing.Slug == "" || ing.Name == "" {
		return fmt.Errorf("ingredient id, slug and name are required: %w", domain.ErrInvalidInput)
	}
	keys := aliasKeys(ing)

	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.slugs[ing.Slug]; ok && owner != ing.ID {
		return fmt.Errorf("ingredient slug %q: %w", ing.Slug, domain.ErrAlreadyExists)
	}
	for _, k := range keys {
		if owner, ok := s.aliases[k]; ok && owner != ing.ID {
			return fmt.Errorf("alias %q of %s: %w", k, ing.Slug, domain.ErrAliasConflict)
		}
	}

	if old, ok := s.ingredients[ing.ID]; ok {
		delete(s.slugs, old.Slug)
	}
	for k, owner := range s.aliases {
		if owner == ing.ID {
			delete(s.aliases, k)
		}
	}

	s.ingredients[ing.ID] = cloneIngredient(ing)
	s.slugs[ing.Slug] = ing.ID
	for _, k := range keys {
		s.aliases[k] = ing.ID
	}
	return nil
}

// Get retrieves an ingredient by ID.
func (s *IngredientStore) Get(_ context.Context, id string) (*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneIngredient(&ing)
	return &out, nil
}

// GetBySlug retrieves an ingredient by slug.
func (s *IngredientStore) GetBySlug(ctx context.Context, slug string) (*domain.Ingredient, error) {
	s.mu.RLock()
	id, ok := s.slugs[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// GetBySlugs retrieves ingredients for slugs, skipping unknown ones.
func (s *IngredientStore) GetBySlugs(_ context.Context, slugs []string) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ingredient, 0, len(slugs))
	for _, slug := range slugs {
		if id, ok := s.slugs[slug]; ok {
			ing := s.ingredients[id]
			out = append(out, cloneIngredient(&ing))
		}
	}
	return out, nil
}

// List returns every ingredient ordered by name.
func (s *IngredientStore) List(_ context.Context) ([]domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(func(*domain.Ingredient) bool { return true }), nil
}

// Search returns one page of matching ingredients ordered by name.
func (s *IngredientStore) Search(_ context.Context, q domain.IngredientQuery) ([]domain.Ingredient, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Query))

	s.mu.RLock()
	matches := s.sorted(func(ing *domain.Ingredient) bool {
		return q.Matches(ing) && (needle == "" || ingredientContains(ing, needle))
	})
	s.mu.RUnlock()

	return page(matches, q.Limit, q.Offset), len(matches), nil
}

// LookupAliases resolves canonical keys to ingredients.
func (s *IngredientStore) LookupAliases(_ context.Context, keys []string) (map[string]*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]*domain.Ingredient)
	out := make(map[string]*domain.Ingredient, len(keys))
	for _, k := range keys {
		id, ok := s.aliases[k]
		if !ok {
			continue
		}
		ing, ok := byID[id]
		if !ok {
			c := cloneIngredient(ptr(s.ingredients[id]))
			ing = &c
			byID[id] = ing
		}
		out[k] = ing
	}
	return out, nil
}

// Suggest returns up to limit ingredients whose name or alias contains q.
func (s *IngredientStore) Suggest(_ context.Context, q string, limit int) ([]domain.Ingredient, error) {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return []domain.Ingredient{}, nil
	}

	s.mu.RLock()
	matches := s.sorted(func(ing *domain.Ingredient) bool { return ingredientContains(ing, needle) })
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Name), needle)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Name), needle)
		return pi && !pj
	})
	return page(matches, limit, 0), nil
}

// Delete removes an ingredient and its alias keys.
func (s *IngredientStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ing, ok := s.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.ingredients, id)
	delete(s.slugs, ing.Slug)
	for k, owner := range s.aliases {
		if owner == id {
			delete(s.aliases, k)
		}
	}
	return nil
}

// Ping reports the store as reachable unless ctx is done.
func (s *IngredientStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// sorted returns copies of the ingredients accepted by keep, ordered by name.
// Callers must hold s.mu.
func (s *IngredientStore) sorted(keep func(*domain.Ingredient) bool) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(s.ingredients))
	for _, ing := range s.ingredients {
		if keep(&ing) {
			out = append(out, cloneIngredient(&ing))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

func ingredientContains(ing *domain.Ingredient, needle string) bool {
	if strings.Contains(strings.ToLower(ing.Name), needle) ||
		strings.Contains(strings.ToLower(ing.INCIName), needle) {
		return true
	}
	for _, a := range ing.Aliases {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}

func cloneIngredient(ing *domain.Ingredient) domain.Ingredient {
	c := *ing
	c.Aliases = append([]string(nil), ing.Aliases...)
	c.Functions = append([]domain.IngredientFunction(nil), ing.Functions...)
	c.Benefits = append([]string(nil), ing.Benefits...)
	c.Concerns = append([]string(nil), ing.Concerns...)
	c.GoodFor = append([]string(nil), ing.GoodFor...)
	if ing.ComedogenicRating != nil {
		c.ComedogenicRating = domain.Rating(*ing.ComedogenicRating)
	}
	if ing.IrritationLevel != nil {
		c.IrritationLevel = domain.Rating(*ing.IrritationLevel)
	}
	return c
}

func ptr[T any](v T) *T {
	return &v
}

// page returns items[offset:offset+limit], clamped. A limit <= 0 means no limit.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
