// Package mcp provides an MCP (Model Context Protocol) server adapter for Skintelect.
// It lets AI assistants analyze ingredient lists and browse the catalog.
package mcp

import "errors"

var (
	// ErrMissingAnalyzer is returned when the analyzer service is not provided.
	ErrMissingAnalyzer = errors.New("mcp: analyzer service is required")

	// ErrMissingIngredients is returned when the ingredient service is not provided.
	ErrMissingIngredients = errors.New("mcp: ingredient service is required")

	// ErrMissingProducts is returned when the product service is not provided.
	ErrMissingProducts = errors.New("mcp: product service is required")
)
