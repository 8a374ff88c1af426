package httpapi

import (
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Analyzer    driving.AnalyzerService
	Ingredients driving.IngredientService
	Products    driving.ProductService
	Affiliate   driving.AffiliateService
	Suggestions driving.SuggestionService
	Health      driving.HealthService
}

// Validate ensures all ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Analyzer == nil:
		return ErrMissingAnalyzer
	case p.Ingredients == nil:
		return ErrMissingIngredients
	case p.Products == nil:
		return ErrMissingProducts
	case p.Affiliate == nil:
		return ErrMissingAffiliate
	case p.Suggestions == nil:
		return ErrMissingSuggestions
	case p.Health == nil:
		return ErrMissingHealth
	}
	return nil
}
