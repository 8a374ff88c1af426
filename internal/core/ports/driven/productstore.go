package driven

import (
	"context"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// BrandStore persists brands.
type BrandStore interface {
	// Save stores or updates a brand.
	Save(ctx context.Context, brand *domain.Brand) error

	// GetBySlug retrieves a brand by slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)

	// List returns every brand ordered by name.
	List(ctx context.Context) ([]domain.Brand, error)
}

// ProductStore persists products with their ordered ingredient lists.
type ProductStore interface {
	// Save stores or updates a product and replaces its ingredient list.
	// Only the ingredient ID, position, highlight flag and note are stored.
	Save(ctx context.Context, p *domain.Product) error

	// Get retrieves a product by ID, with brand and ingredients.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by slug, with brand and ingredients
	// ordered by position.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// Search returns one page of matching products and the total count.
	// Discontinued products are never returned.
	Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error)

	// Related returns products in the same category sharing the fungal-acne
	// safety flag, excluding p itself.
	Related(ctx context.Context, p *domain.Product, limit int) ([]domain.Product, error)

	// Suggest returns up to limit products whose name or brand contains q.
	Suggest(ctx context.Context, q string, limit int) ([]domain.Product, error)

	// Slugs maps the slug of every stored product, discontinued ones
	// included, to its ID.
	Slugs(ctx context.Context) (map[string]string, error)

	// Delete removes a product and its ingredient list.
	// Returns domain.ErrNotFound if no product has that ID.
	Delete(ctx context.Context, id string) error
}
