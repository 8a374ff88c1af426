package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driven/storage/memory"
	"github.com/skintelect/skintelect/internal/core/domain"
)

// testCatalog bundles memory stores seeded with a small catalog.
type testCatalog struct {
	ingredients *memory.IngredientStore
	brands      *memory.BrandStore
	products    *memory.ProductStore
	offers      *memory.OfferStore
}

func newTestCatalog(t *testing.T) *testCatalog {
	t.Helper()
	ctx := context.Background()

	c := &testCatalog{
		ingredients: memory.NewIngredientStore(),
		brands:      memory.NewBrandStore(),
		offers:      memory.NewOfferStore(),
	}
	c.products = memory.NewProductStore(c.brands, c.ingredients)

	for _, ing := range []domain.Ingredient{
		{ID: "i-water", Slug: "water", Name: "Water", INCIName: "Aqua", Functions: []domain.IngredientFunction{domain.FunctionSolvent}, ComedogenicRating: domain.Rating(0), IrritationLevel: domain.Rating(0)},
		{ID: "i-glycerin", Slug: "glycerin", Name: "Glycerin", Aliases: []string{"Glycerol"}, Functions: []domain.IngredientFunction{domain.FunctionHumectant}, ComedogenicRating: domain.Rating(0)},
		{ID: "i-niacinamide", Slug: "niacinamide", Name: "Niacinamide", Aliases: []string{"Vitamin B3"}, Functions: []domain.IngredientFunction{domain.FunctionBrightening}, IsActive: true},
		{ID: "i-fragrance", Slug: "fragrance", Name: "Fragrance", Aliases: []string{"Parfum"}, Functions: []domain.IngredientFunction{domain.FunctionFragrance}, IrritationLevel: domain.Rating(3), IsAllergen: true},
		{ID: "i-ipp", Slug: "isopropyl-palmitate", Name: "Isopropyl Palmitate", Functions: []domain.IngredientFunction{domain.FunctionEmollient}, ComedogenicRating: domain.Rating(4), IsFungalAcneTrigger: true},
		{ID: "i-coconut", Slug: "coconut-oil", Name: "Coconut Oil", INCIName: "Cocos Nucifera Oil", Functions: []domain.IngredientFunction{domain.FunctionEmollient}, ComedogenicRating: domain.Rating(4), IsFungalAcneTrigger: true},
		{ID: "i-retinol", Slug: "retinol", Name: "Retinol", Functions: []domain.IngredientFunction{domain.FunctionAntiAging}, IrritationLevel: domain.Rating(3), IsActive: true},
		{ID: "i-oxybenzone", Slug: "oxybenzone", Name: "Oxybenzone", Functions: []domain.IngredientFunction{domain.FunctionOther}, IsReefUnsafe: true},
	} {
		ing := ing
		require.NoError(t, c.ingredients.Save(ctx, &ing))
	}

	require.NoError(t, c.brands.Save(ctx, &domain.Brand{ID: "b-cosrx", Slug: "cosrx", Name: "COSRX"}))
	require.NoError(t, c.brands.Save(ctx, &domain.Brand{ID: "b-ordinary", Slug: "the-ordinary", Name: "The Ordinary"}))

	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range []domain.Product{
		{
			ID: "p-niacinamide", Slug: "niacinamide-serum", Name: "Niacinamide Serum", BrandID: "b-ordinary",
			Category: domain.CategorySerum, IsFungalAcneSafe: true, AverageRating: 4.3, CreatedAt: created,
			Ingredients: []domain.ProductIngredient{
				{Position: 1, Ingredient: domain.Ingredient{ID: "i-water"}},
				{Position: 2, Ingredient: domain.Ingredient{ID: "i-niacinamide"}, IsHighlighted: true},
				{Position: 3, Ingredient: domain.Ingredient{ID: "i-glycerin"}},
			},
		},
		{
			ID: "p-retinol", Slug: "retinol-serum", Name: "Retinol Serum", BrandID: "b-ordinary",
			Category: domain.CategorySerum, IsFungalAcneSafe: true, AverageRating: 4.0, CreatedAt: created,
			Ingredients: []domain.ProductIngredient{
				{Position: 1, Ingredient: domain.Ingredient{ID: "i-water"}},
				{Position: 2, Ingredient: domain.Ingredient{ID: "i-retinol"}},
			},
		},
		{
			ID: "p-balm", Slug: "coconut-balm", Name: "Coconut Balm", BrandID: "b-cosrx",
			Category: domain.CategoryMoisturizer, AverageRating: 4.6, CreatedAt: created,
			Ingredients: []domain.ProductIngredient{
				{Position: 1, Ingredient: domain.Ingredient{ID: "i-coconut"}},
				{Position: 2, Ingredient: domain.Ingredient{ID: "i-fragrance"}},
				{Position: 3, Ingredient: domain.Ingredient{ID: "i-ipp"}},
			},
		},
	} {
		p := p
		require.NoError(t, c.products.Save(ctx, &p))
	}
	return c
}

func (c *testCatalog) saveOffers(t *testing.T, offers ...domain.AffiliateOffer) {
	t.Helper()
	for _, o := range offers {
		o := o
		require.NoError(t, c.offers.Save(context.Background(), &o))
	}
}

// recordingMetrics captures metric events.
type recordingMetrics struct {
	mu        sync.Mutex
	completed []int
	rejected  []string
	clicks    []string
}

func (m *recordingMetrics) AnalysisCompleted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, n)
}

func (m *recordingMetrics) AnalysisRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, reason)
}

func (m *recordingMetrics) AffiliateClick(retailer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks = append(m.clicks, retailer)
}
