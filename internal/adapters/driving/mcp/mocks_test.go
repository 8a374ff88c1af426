package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// mockAnalyzerService is a mock implementation of driving.AnalyzerService.
type mockAnalyzerService struct {
	result *domain.AnalysisResult
	err    error
	input  string
}

func (m *mockAnalyzerService) Analyze(_ context.Context, input string) (*domain.AnalysisResult, error) {
	m.input = input
	return m.result, m.err
}

// mockIngredientService is a mock implementation of driving.IngredientService.
type mockIngredientService struct {
	ingredients []domain.Ingredient
	err         error
	queries     []domain.IngredientQuery
}

func (m *mockIngredientService) Get(_ context.Context, slug string) (*domain.Ingredient, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.ingredients {
		if m.ingredients[i].Slug == slug {
			ing := m.ingredients[i]
			return &ing, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Search pages over ingredients, ignoring filters.
func (m *mockIngredientService) Search(_ context.Context, q domain.IngredientQuery) (*domain.IngredientPage, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	start := min(q.Offset, len(m.ingredients))
	end := min(start+limit, len(m.ingredients))
	return &domain.IngredientPage{
		Ingredients: m.ingredients[start:end],
		Total:       len(m.ingredients),
		Limit:       limit,
		Offset:      q.Offset,
	}, nil
}

func (m *mockIngredientService) ListByFunction(context.Context, domain.IngredientFunction, int) ([]domain.Ingredient, error) {
	return m.ingredients, m.err
}

func (m *mockIngredientService) FungalAcneTriggers(context.Context) ([]domain.Ingredient, error) {
	return nil, m.err
}

func (m *mockIngredientService) Allergens(context.Context) ([]domain.Ingredient, error) {
	return nil, m.err
}

func (m *mockIngredientService) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return nil, m.err
}

// mockProductService is a mock implementation of driving.ProductService.
type mockProductService struct {
	products []domain.Product
	err      error
	query    domain.ProductQuery
}

func (m *mockProductService) Get(_ context.Context, slug string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].Slug == slug {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockProductService) Search(_ context.Context, q domain.ProductQuery) (*domain.ProductPage, error) {
	m.query = q
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ProductPage{Products: m.products, Total: len(m.products)}, nil
}

func (m *mockProductService) Related(context.Context, string) ([]domain.Product, error) {
	return nil, m.err
}

func (m *mockProductService) Suggest(context.Context, string) ([]domain.Suggestion, error) {
	return nil, m.err
}

func (m *mockProductService) Safety(context.Context, string) (*domain.AnalysisSummary, error) {
	return nil, m.err
}

// mockAffiliateService is a mock implementation of driving.AffiliateService.
type mockAffiliateService struct {
	comparison *domain.OfferComparison
	err        error
	country    string
}

func (m *mockAffiliateService) Offers(_ context.Context, _, country string) (*domain.OfferComparison, error) {
	m.country = country
	return m.comparison, m.err
}

func (m *mockAffiliateService) Click(context.Context, string) (string, error) {
	return "", m.err
}

func (m *mockAffiliateService) RecordConversion(context.Context, string) error {
	return m.err
}

func testIngredients() []domain.Ingredient {
	return []domain.Ingredient{
		{
			Slug:              "niacinamide",
			Name:              "Niacinamide",
			INCIName:          "Niacinamide",
			Aliases:           []string{"Vitamin B3"},
			Functions:         []domain.IngredientFunction{domain.FunctionBrightening},
			ComedogenicRating: domain.Rating(0),
		},
		{
			Slug:                "coconut-oil",
			Name:                "Coconut Oil",
			INCIName:            "Cocos Nucifera Oil",
			Functions:           []domain.IngredientFunction{domain.FunctionEmollient},
			ComedogenicRating:   domain.Rating(4),
			IsFungalAcneTrigger: true,
		},
		{
			Slug:       "fragrance",
			Name:       "Fragrance",
			INCIName:   "Parfum",
			Functions:  []domain.IngredientFunction{domain.FunctionFragrance},
			IsAllergen: true,
		},
	}
}

func testProducts() []domain.Product {
	ings := testIngredients()
	return []domain.Product{
		{
			Slug:             "night-cream",
			Name:             "Night Cream",
			Brand:            &domain.Brand{Slug: "acme", Name: "Acme"},
			Category:         domain.CategoryMoisturizer,
			AverageRating:    4.2,
			IsFungalAcneSafe: false,
			Ingredients: []domain.ProductIngredient{
				{Position: 1, Ingredient: ings[1]},
				{Position: 2, Ingredient: ings[0]},
			},
		},
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	s, err := NewServer(ports)
	require.NoError(t, err)
	return s
}

func testPorts() *Ports {
	return &Ports{
		Analyzer:    &mockAnalyzerService{},
		Ingredients: &mockIngredientService{ingredients: testIngredients()},
		Products:    &mockProductService{products: testProducts()},
	}
}
