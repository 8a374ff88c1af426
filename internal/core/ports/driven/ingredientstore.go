package driven

import (
	"context"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// IngredientStore persists ingredient records and their alias table.
type IngredientStore interface {
	// Save stores or updates an ingredient and replaces its alias keys.
	// The name, INCI name and every alias are registered as lookup keys.
	// Returns domain.ErrAliasConflict if a key belongs to another ingredient.
	Save(ctx context.Context, ing *domain.Ingredient) error

	// Get retrieves an ingredient by ID.
	Get(ctx context.Context, id string) (*domain.Ingredient, error)

	// GetBySlug retrieves an ingredient by slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Ingredient, error)

	// GetBySlugs retrieves the ingredients for slugs, skipping unknown ones.
	GetBySlugs(ctx context.Context, slugs []string) ([]domain.Ingredient, error)

	// List returns every ingredient ordered by name.
	List(ctx context.Context) ([]domain.Ingredient, error)

	// Search returns one page of matching ingredients ordered by name,
	// plus the total match count.
	Search(ctx context.Context, q domain.IngredientQuery) ([]domain.Ingredient, int, error)

	// LookupAliases resolves canonical keys to ingredients.
	// Keys without a match are absent from the result.
	LookupAliases(ctx context.Context, keys []string) (map[string]*domain.Ingredient, error)

	// Suggest returns up to limit ingredients whose name or alias contains q.
	// Name prefix matches come first.
	Suggest(ctx context.Context, q string, limit int) ([]domain.Ingredient, error)

	// Delete removes an ingredient and its alias keys.
	Delete(ctx context.Context, id string) error
}
