package mcp

import (
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analyzer analyzes pasted ingredient lists.
	Analyzer driving.AnalyzerService

	// Ingredients provides read access to the ingredient catalog.
	Ingredients driving.IngredientService

	// Products provides read access to the product catalog.
	Products driving.ProductService

	// Affiliate ranks retailer offers. Optional: without it the
	// product_offers tool is not registered.
	Affiliate driving.AffiliateService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analyzer == nil {
		return ErrMissingAnalyzer
	}
	if p.Ingredients == nil {
		return ErrMissingIngredients
	}
	if p.Products == nil {
		return ErrMissingProducts
	}
	return nil
}
