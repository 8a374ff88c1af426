// Package domain holds Skintelect's core types:
//
//   - Ingredient: a catalog record with its aliases and safety flags
//   - Token: one entry cut from a pasted ingredient list
//   - AnalysisResult: per-token matches plus the aggregated summary
//   - Product, Brand, AffiliateOffer: the product catalog
//   - AppSettings: configuration with defaults
//
// It imports the standard library only. Every other package may depend on
// domain; domain depends on none of them.
package domain
