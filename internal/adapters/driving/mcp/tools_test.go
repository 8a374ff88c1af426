package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens result", func(t *testing.T) {
		ings := testIngredients()
		analyzer := &mockAnalyzerService{result: &domain.AnalysisResult{
			Ingredients: []domain.AnalyzedIngredient{
				{OriginalText: "Cocos Nucifera Oil", Position: 1, IsRecognized: true, Ingredient: &ings[1]},
				{OriginalText: "Unobtainium", Position: 2},
			},
			Summary: domain.AnalysisSummary{
				Total:                  2,
				Recognized:             1,
				Unrecognized:           1,
				FungalAcneTriggers:     []string{"Coconut Oil"},
				PotentialAllergens:     []string{},
				PotentialIrritants:     []string{},
				ComedogenicIngredients: []string{"Coconut Oil"},
				ReefUnsafe:             []string{},
			},
		}}
		ports := testPorts()
		ports.Analyzer = analyzer
		server := newTestServer(t, ports)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Cocos Nucifera Oil, Unobtainium"})
		require.NoError(t, err)

		assert.Equal(t, "Cocos Nucifera Oil, Unobtainium", analyzer.input)
		assert.Equal(t, 2, output.Total)
		assert.False(t, output.FungalAcneSafe)
		assert.Equal(t, []string{"Coconut Oil"}, output.FungalAcneTriggers)
		assert.Equal(t, []string{"Coconut Oil"}, output.Comedogenic)
		require.Len(t, output.Ingredients, 2)
		assert.Equal(t, AnalyzedItemOutput{Position: 1, Text: "Cocos Nucifera Oil", Recognized: true, Slug: "coconut-oil", Name: "Coconut Oil"}, output.Ingredients[0])
		assert.Equal(t, AnalyzedItemOutput{Position: 2, Text: "Unobtainium"}, output.Ingredients[1])
	})

	t.Run("validation errors use the user message", func(t *testing.T) {
		ports := testPorts()
		ports.Analyzer = &mockAnalyzerService{err: domain.ErrEmptyInput}
		server := newTestServer(t, ports)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{})
		require.Error(t, err)
		assert.Equal(t, domain.MessageEmptyInput, err.Error())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		ports := testPorts()
		ports.Analyzer = &mockAnalyzerService{err: boom}
		server := newTestServer(t, ports)

		_, _, err := server.handleAnalyze(ctx, nil, AnalyzeInput{Text: "Water"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestServer_handleSearchIngredients(t *testing.T) {
	ctx := context.Background()

	t.Run("maps filters to query", func(t *testing.T) {
		ingredients := &mockIngredientService{ingredients: testIngredients()}
		ports := testPorts()
		ports.Ingredients = ingredients
		server := newTestServer(t, ports)

		_, output, err := server.handleSearchIngredients(ctx, nil, SearchIngredientsInput{
			Query:          "oil",
			Function:       "emollient",
			FungalAcneSafe: true,
			AllergenFree:   true,
			MaxComedogenic: domain.Rating(2),
			Limit:          5,
		})
		require.NoError(t, err)

		require.Len(t, ingredients.queries, 1)
		q := ingredients.queries[0]
		assert.Equal(t, "oil", q.Query)
		assert.Equal(t, []domain.IngredientFunction{domain.FunctionEmollient}, q.Functions)
		assert.True(t, q.FungalAcneSafe)
		assert.True(t, q.AllergenFree)
		assert.Equal(t, 2, *q.MaxComedogenic)
		assert.Equal(t, 5, q.Limit)

		assert.Equal(t, 3, output.Count)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, "Niacinamide", output.Ingredients[0].Name)
		assert.Equal(t, []string{"brightening"}, output.Ingredients[0].Functions)
	})

	t.Run("no function leaves functions empty", func(t *testing.T) {
		ingredients := &mockIngredientService{}
		ports := testPorts()
		ports.Ingredients = ingredients
		server := newTestServer(t, ports)

		_, output, err := server.handleSearchIngredients(ctx, nil, SearchIngredientsInput{})
		require.NoError(t, err)
		assert.Empty(t, ingredients.queries[0].Functions)
		assert.NotNil(t, output.Ingredients)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		ports := testPorts()
		ports.Ingredients = &mockIngredientService{err: domain.ErrInvalidInput}
		server := newTestServer(t, ports)

		_, _, err := server.handleSearchIngredients(ctx, nil, SearchIngredientsInput{Function: "magic"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleGetIngredient(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, testPorts())

	_, output, err := server.handleGetIngredient(ctx, nil, SlugInput{Slug: "fragrance"})
	require.NoError(t, err)
	assert.Equal(t, "Parfum", output.INCIName)
	assert.True(t, output.Allergen)
	assert.Nil(t, output.ComedogenicRating)

	_, _, err = server.handleGetIngredient(ctx, nil, SlugInput{Slug: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleSearchProducts(t *testing.T) {
	ctx := context.Background()
	products := &mockProductService{products: testProducts()}
	ports := testPorts()
	ports.Products = products
	server := newTestServer(t, ports)

	_, output, err := server.handleSearchProducts(ctx, nil, SearchProductsInput{
		Query:    "cream",
		Category: "moisturizer",
		Brand:    "acme",
		Sort:     "rating",
		Limit:    3,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryMoisturizer, products.query.Category)
	assert.Equal(t, "acme", products.query.BrandSlug)
	assert.Equal(t, domain.SortByRating, products.query.Sort)
	assert.Equal(t, 3, products.query.Limit)

	require.Len(t, output.Products, 1)
	p := output.Products[0]
	assert.Equal(t, "Acme", p.Brand)
	assert.Equal(t, 4.2, p.Rating)
	assert.Equal(t, []string{"Coconut Oil", "Niacinamide"}, p.Ingredients)
}

func TestServer_handleGetProduct(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, testPorts())

	_, output, err := server.handleGetProduct(ctx, nil, SlugInput{Slug: "night-cream"})
	require.NoError(t, err)
	assert.Equal(t, "Night Cream", output.Name)
	assert.Equal(t, "moisturizer", output.Category)

	_, _, err = server.handleGetProduct(ctx, nil, SlugInput{Slug: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleProductOffers(t *testing.T) {
	ctx := context.Background()

	t.Run("exposes click path not retailer url", func(t *testing.T) {
		offer := domain.AffiliateOffer{
			ID:           "offer-1",
			RetailerName: "Amazon",
			URL:          "https://retailer.example/p/1",
			Price:        domain.Price(12.5),
			Currency:     "USD",
			Availability: domain.AvailabilityInStock,
		}
		affiliate := &mockAffiliateService{comparison: &domain.OfferComparison{
			Offers:  []domain.AffiliateOffer{offer},
			Primary: &offer,
		}}
		ports := testPorts()
		ports.Affiliate = affiliate
		server := newTestServer(t, ports)

		_, output, err := server.handleProductOffers(ctx, nil, OffersInput{Slug: "night-cream", Country: "gb"})
		require.NoError(t, err)

		assert.Equal(t, "gb", affiliate.country)
		require.Len(t, output.Offers, 1)
		assert.Equal(t, "/api/affiliate/click?offerId=offer-1", output.Offers[0].ClickPath)
		assert.Equal(t, "in_stock", output.Offers[0].Availability)
		require.NotNil(t, output.Primary)
		assert.Equal(t, "Amazon", output.Primary.Retailer)
	})

	t.Run("no offers", func(t *testing.T) {
		ports := testPorts()
		ports.Affiliate = &mockAffiliateService{comparison: &domain.OfferComparison{}}
		server := newTestServer(t, ports)

		_, output, err := server.handleProductOffers(ctx, nil, OffersInput{Slug: "night-cream"})
		require.NoError(t, err)
		assert.Empty(t, output.Offers)
		assert.Nil(t, output.Primary)
	})
}
