package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skintelect/skintelect/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Skintelect resources.
	uriScheme = "skintelect://"

	// listPageSize is the page size used when listing the whole catalog.
	listPageSize = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "ingredients",
		Name:        "ingredients",
		Description: "Every ingredient in the catalog",
		MIMEType:    "application/json",
	}, s.handleIngredientsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "ingredients/{slug}",
		Name:        "ingredient",
		Description: "A single ingredient with ratings and flags",
		MIMEType:    "application/json",
	}, s.handleIngredientResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{slug}",
		Name:        "product",
		Description: "A single product with its ingredient list",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleIngredientsResource lists every ingredient as slug and name.
func (s *Server) handleIngredientsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type ingredientInfo struct {
		Slug      string   `json:"slug"`
		Name      string   `json:"name"`
		Functions []string `json:"functions,omitempty"`
	}

	infos := []ingredientInfo{}
	for offset := 0; ; offset += listPageSize {
		page, err := s.ports.Ingredients.Search(ctx, domain.IngredientQuery{Limit: listPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("listing ingredients: %w", err)
		}
		for i := range page.Ingredients {
			ing := &page.Ingredients[i]
			info := ingredientInfo{Slug: ing.Slug, Name: ing.Name}
			for _, fn := range ing.Functions {
				info.Functions = append(info.Functions, string(fn))
			}
			infos = append(infos, info)
		}
		if len(page.Ingredients) == 0 || offset+len(page.Ingredients) >= page.Total {
			break
		}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleIngredientResource returns one ingredient.
func (s *Server) handleIngredientResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractSlug(req.Params.URI, "ingredients/")
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ing, err := s.ports.Ingredients.Get(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting ingredient: %w", err)
	}
	return jsonResource(req.Params.URI, ingredientOutput(ing))
}

// handleProductResource returns one product.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slug := extractSlug(req.Params.URI, "products/")
	if slug == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Products.Get(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return jsonResource(req.Params.URI, productOutput(p))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSlug returns the slug from a URI like skintelect://{kind}{slug}.
// Nested paths are rejected.
func extractSlug(uri, kind string) string {
	prefix := uriScheme + kind
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	slug := strings.TrimPrefix(uri, prefix)
	if strings.Contains(slug, "/") {
		return ""
	}
	return slug
}
