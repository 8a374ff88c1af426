package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// AnalyzeInput is the input schema for the analyze_ingredients tool.
type AnalyzeInput struct {
	Text string `json:"text" jsonschema:"the ingredient list as printed on the label, comma separated"`
}

// AnalyzeOutput is the output schema for the analyze_ingredients tool.
type AnalyzeOutput struct {
	Total              int                  `json:"total"`
	Recognized         int                  `json:"recognized"`
	Unrecognized       int                  `json:"unrecognized"`
	FungalAcneSafe     bool                 `json:"fungal_acne_safe"`
	FungalAcneTriggers []string             `json:"fungal_acne_triggers"`
	Allergens          []string             `json:"allergens"`
	Irritants          []string             `json:"irritants"`
	Comedogenic        []string             `json:"comedogenic"`
	ReefUnsafe         []string             `json:"reef_unsafe"`
	Ingredients        []AnalyzedItemOutput `json:"ingredients"`
}

// AnalyzedItemOutput is one token of an analyzed list.
type AnalyzedItemOutput struct {
	Position   int    `json:"position"`
	Text       string `json:"text"`
	Recognized bool   `json:"recognized"`
	Slug       string `json:"slug,omitempty"`
	Name       string `json:"name,omitempty"`
}

// SearchIngredientsInput is the input schema for the search_ingredients tool.
type SearchIngredientsInput struct {
	Query          string `json:"query,omitempty" jsonschema:"text matched against name, INCI name and aliases"`
	Function       string `json:"function,omitempty" jsonschema:"only ingredients with this function, e.g. humectant or emollient"`
	FungalAcneSafe bool   `json:"fungal_acne_safe,omitempty" jsonschema:"exclude fungal acne triggers"`
	AllergenFree   bool   `json:"allergen_free,omitempty" jsonschema:"exclude known allergens"`
	MaxComedogenic *int   `json:"max_comedogenic,omitempty" jsonschema:"exclude comedogenic ratings above this value (0-5)"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// IngredientListOutput is the output schema for the search_ingredients tool.
type IngredientListOutput struct {
	Ingredients []IngredientOutput `json:"ingredients"`
	Count       int                `json:"count"`
	Total       int                `json:"total"`
}

// IngredientOutput describes a single ingredient.
type IngredientOutput struct {
	Slug              string   `json:"slug"`
	Name              string   `json:"name"`
	INCIName          string   `json:"inci_name,omitempty"`
	Aliases           []string `json:"aliases,omitempty"`
	Description       string   `json:"description,omitempty"`
	Functions         []string `json:"functions,omitempty"`
	ComedogenicRating *int     `json:"comedogenic_rating,omitempty"`
	IrritationLevel   *int     `json:"irritation_level,omitempty"`
	FungalAcneTrigger bool     `json:"fungal_acne_trigger"`
	Allergen          bool     `json:"allergen"`
	ReefUnsafe        bool     `json:"reef_unsafe"`
	Benefits          []string `json:"benefits,omitempty"`
	Concerns          []string `json:"concerns,omitempty"`
}

// SlugInput is the input schema for lookups by slug.
type SlugInput struct {
	Slug string `json:"slug" jsonschema:"the catalog slug, e.g. niacinamide"`
}

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	Query          string `json:"query,omitempty" jsonschema:"text matched against product and brand names"`
	Category       string `json:"category,omitempty" jsonschema:"product category, e.g. moisturizer or sunscreen"`
	Brand          string `json:"brand,omitempty" jsonschema:"brand slug"`
	FungalAcneSafe bool   `json:"fungal_acne_safe,omitempty" jsonschema:"only fungal acne safe products"`
	Sort           string `json:"sort,omitempty" jsonschema:"name, rating or newest (default name)"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// ProductListOutput is the output schema for the search_products tool.
type ProductListOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
	Total    int             `json:"total"`
}

// ProductOutput describes a single product.
type ProductOutput struct {
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand,omitempty"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	Rating         float64  `json:"rating"`
	FungalAcneSafe bool     `json:"fungal_acne_safe"`
	FragranceFree  bool     `json:"fragrance_free"`
	Ingredients    []string `json:"ingredients,omitempty"`
}

// OffersInput is the input schema for the product_offers tool.
type OffersInput struct {
	Slug    string `json:"slug" jsonschema:"the product slug"`
	Country string `json:"country,omitempty" jsonschema:"ISO country code (default US)"`
}

// OffersOutput is the output schema for the product_offers tool.
type OffersOutput struct {
	Offers  []OfferOutput `json:"offers"`
	Primary *OfferOutput  `json:"primary,omitempty"`
}

// OfferOutput describes a retailer listing. ClickPath is the tracked
// redirect; the retailer URL itself is never exposed.
type OfferOutput struct {
	ID           string   `json:"id"`
	Retailer     string   `json:"retailer"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Availability string   `json:"availability"`
	ClickPath    string   `json:"click_path"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_ingredients",
		Description: "Analyze a skincare ingredient list for fungal acne triggers, allergens, irritants and comedogenic ingredients",
	}, s.handleAnalyze)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_ingredients",
		Description: "Search the ingredient catalog",
	}, s.handleSearchIngredients)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_ingredient",
		Description: "Get an ingredient by slug",
	}, s.handleGetIngredient)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search the product catalog",
	}, s.handleSearchProducts)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a product with its ingredient list",
	}, s.handleGetProduct)

	if s.ports.Affiliate != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "product_offers",
			Description: "List retailer offers for a product",
		}, s.handleProductOffers)
	}
}

// toolError replaces validation errors with their user-facing message.
func toolError(err error) error {
	if msg, ok := domain.ValidationMessage(err); ok {
		return errors.New(msg)
	}
	return err
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	result, err := s.ports.Analyzer.Analyze(ctx, input.Text)
	if err != nil {
		return nil, AnalyzeOutput{}, toolError(err)
	}

	sum := result.Summary
	output := AnalyzeOutput{
		Total:              sum.Total,
		Recognized:         sum.Recognized,
		Unrecognized:       sum.Unrecognized,
		FungalAcneSafe:     sum.IsFungalAcneSafe,
		FungalAcneTriggers: sum.FungalAcneTriggers,
		Allergens:          sum.PotentialAllergens,
		Irritants:          sum.PotentialIrritants,
		Comedogenic:        sum.ComedogenicIngredients,
		ReefUnsafe:         sum.ReefUnsafe,
		Ingredients:        make([]AnalyzedItemOutput, len(result.Ingredients)),
	}
	for i, item := range result.Ingredients {
		out := AnalyzedItemOutput{
			Position:   item.Position,
			Text:       item.OriginalText,
			Recognized: item.IsRecognized,
		}
		if item.Ingredient != nil {
			out.Slug = item.Ingredient.Slug
			out.Name = item.Ingredient.Name
		}
		output.Ingredients[i] = out
	}
	return nil, output, nil
}

func (s *Server) handleSearchIngredients(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchIngredientsInput,
) (*mcp.CallToolResult, IngredientListOutput, error) {
	q := domain.IngredientQuery{
		Query:          input.Query,
		FungalAcneSafe: input.FungalAcneSafe,
		AllergenFree:   input.AllergenFree,
		MaxComedogenic: input.MaxComedogenic,
		Limit:          input.Limit,
	}
	if input.Function != "" {
		q.Functions = []domain.IngredientFunction{domain.IngredientFunction(input.Function)}
	}

	page, err := s.ports.Ingredients.Search(ctx, q)
	if err != nil {
		return nil, IngredientListOutput{}, err
	}

	output := IngredientListOutput{
		Ingredients: make([]IngredientOutput, len(page.Ingredients)),
		Count:       len(page.Ingredients),
		Total:       page.Total,
	}
	for i := range page.Ingredients {
		output.Ingredients[i] = ingredientOutput(&page.Ingredients[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetIngredient(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlugInput,
) (*mcp.CallToolResult, IngredientOutput, error) {
	ing, err := s.ports.Ingredients.Get(ctx, input.Slug)
	if err != nil {
		return nil, IngredientOutput{}, err
	}
	return nil, ingredientOutput(ing), nil
}

func (s *Server) handleSearchProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, ProductListOutput, error) {
	page, err := s.ports.Products.Search(ctx, domain.ProductQuery{
		Query:          input.Query,
		Category:       domain.ProductCategory(input.Category),
		BrandSlug:      input.Brand,
		FungalAcneSafe: input.FungalAcneSafe,
		Sort:           domain.ProductSort(input.Sort),
		Limit:          input.Limit,
	})
	if err != nil {
		return nil, ProductListOutput{}, err
	}

	output := ProductListOutput{
		Products: make([]ProductOutput, len(page.Products)),
		Count:    len(page.Products),
		Total:    page.Total,
	}
	for i := range page.Products {
		output.Products[i] = productOutput(&page.Products[i])
	}
	return nil, output, nil
}

func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SlugInput,
) (*mcp.CallToolResult, ProductOutput, error) {
	p, err := s.ports.Products.Get(ctx, input.Slug)
	if err != nil {
		return nil, ProductOutput{}, err
	}
	return nil, productOutput(p), nil
}

func (s *Server) handleProductOffers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OffersInput,
) (*mcp.CallToolResult, OffersOutput, error) {
	cmp, err := s.ports.Affiliate.Offers(ctx, input.Slug, input.Country)
	if err != nil {
		return nil, OffersOutput{}, err
	}

	output := OffersOutput{Offers: make([]OfferOutput, len(cmp.Offers))}
	for i := range cmp.Offers {
		output.Offers[i] = offerOutput(&cmp.Offers[i])
	}
	if cmp.Primary != nil {
		primary := offerOutput(cmp.Primary)
		output.Primary = &primary
	}
	return nil, output, nil
}

func ingredientOutput(ing *domain.Ingredient) IngredientOutput {
	fns := make([]string, len(ing.Functions))
	for i, fn := range ing.Functions {
		fns[i] = string(fn)
	}
	return IngredientOutput{
		Slug:              ing.Slug,
		Name:              ing.Name,
		INCIName:          ing.INCIName,
		Aliases:           ing.Aliases,
		Description:       ing.Description,
		Functions:         fns,
		ComedogenicRating: ing.ComedogenicRating,
		IrritationLevel:   ing.IrritationLevel,
		FungalAcneTrigger: ing.IsFungalAcneTrigger,
		Allergen:          ing.IsAllergen,
		ReefUnsafe:        ing.IsReefUnsafe,
		Benefits:          ing.Benefits,
		Concerns:          ing.Concerns,
	}
}

func productOutput(p *domain.Product) ProductOutput {
	out := ProductOutput{
		Slug:           p.Slug,
		Name:           p.Name,
		Category:       string(p.Category),
		Description:    p.Description,
		Rating:         p.AverageRating,
		FungalAcneSafe: p.IsFungalAcneSafe,
		FragranceFree:  p.IsFragranceFree,
	}
	if p.Brand != nil {
		out.Brand = p.Brand.Name
	}
	for _, pi := range p.Ingredients {
		out.Ingredients = append(out.Ingredients, pi.Ingredient.Name)
	}
	return out
}

func offerOutput(o *domain.AffiliateOffer) OfferOutput {
	return OfferOutput{
		ID:           o.ID,
		Retailer:     o.RetailerName,
		Price:        o.Price,
		Currency:     o.Currency,
		Availability: string(o.Availability),
		ClickPath:    "/api/affiliate/click?offerId=" + o.ID,
	}
}
