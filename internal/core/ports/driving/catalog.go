package driving

import (
	"context"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// IngredientService provides read access to the ingredient catalog.
type IngredientService interface {
	// Get retrieves an ingredient by slug.
	Get(ctx context.Context, slug string) (*domain.Ingredient, error)

	// Search returns one page of ingredients matching q.
	Search(ctx context.Context, q domain.IngredientQuery) (*domain.IngredientPage, error)

	// ListByFunction returns ingredients having fn. A limit <= 0 uses the default.
	ListByFunction(ctx context.Context, fn domain.IngredientFunction, limit int) ([]domain.Ingredient, error)

	// FungalAcneTriggers returns every fungal-acne trigger.
	FungalAcneTriggers(ctx context.Context) ([]domain.Ingredient, error)

	// Allergens returns every flagged allergen.
	Allergens(ctx context.Context) ([]domain.Ingredient, error)

	// Suggest returns search-as-you-type matches for q.
	Suggest(ctx context.Context, q string) ([]domain.Suggestion, error)
}

// ProductService provides read access to the product catalog.
type ProductService interface {
	// Get retrieves a product by slug with brand and ordered ingredients.
	Get(ctx context.Context, slug string) (*domain.Product, error)

	// Search returns one page of products matching q.
	Search(ctx context.Context, q domain.ProductQuery) (*domain.ProductPage, error)

	// Related returns similar products for the product with slug.
	Related(ctx context.Context, slug string) ([]domain.Product, error)

	// Suggest returns search-as-you-type matches for q.
	Suggest(ctx context.Context, q string) ([]domain.Suggestion, error)

	// Safety summarises the product's ingredient list the same way an
	// analysis summarises a pasted list.
	Safety(ctx context.Context, slug string) (*domain.AnalysisSummary, error)
}

// AffiliateService ranks offers and resolves affiliate redirects.
type AffiliateService interface {
	// Offers returns the offer comparison for a product. An empty country
	// uses the configured default.
	Offers(ctx context.Context, productSlug, country string) (*domain.OfferComparison, error)

	// Click records a click and returns the redirect URL.
	// Returns domain.ErrInvalidInput for a malformed ID, domain.ErrNotFound
	// for an unknown offer and domain.ErrInvalidOfferURL for a non-http(s) URL.
	Click(ctx context.Context, offerID string) (string, error)

	// RecordConversion increments the offer's conversion counter.
	RecordConversion(ctx context.Context, offerID string) error
}

// SuggestionService serves cached search suggestions.
// It never fails; errors degrade to empty results.
type SuggestionService interface {
	Ingredients(ctx context.Context, q string) []domain.Suggestion
	Products(ctx context.Context, q string) []domain.Suggestion
	// Flush drops cached suggestions.
	Flush()
}

// HealthService reports service health.
type HealthService interface {
	Check(ctx context.Context) domain.Health
}
