// Package httpapi serves the Skintelect JSON API over HTTP using gin.
//
// Every route except /api/health and /metrics is rate limited per client
// address. Errors use a single envelope:
//
//	{"error": {"message": "...", "code": "..."}}
package httpapi

import "errors"

// Port validation errors.
var (
	ErrMissingAnalyzer    = errors.New("httpapi: analyzer service is required")
	ErrMissingIngredients = errors.New("httpapi: ingredient service is required")
	ErrMissingProducts    = errors.New("httpapi: product service is required")
	ErrMissingAffiliate   = errors.New("httpapi: affiliate service is required")
	ErrMissingSuggestions = errors.New("httpapi: suggestion service is required")
	ErrMissingHealth      = errors.New("httpapi: health service is required")
)
