package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/inci"
	"github.com/skintelect/skintelect/internal/logger"
)

// offerNamespace derives stable IDs for offers written without one.
var offerNamespace = uuid.MustParse("6f1c5c1e-8d1a-4a43-9f4e-2b7d1e0c5a10")

// Seeder writes a dataset into the catalog stores.
type Seeder struct {
	brands      driven.BrandStore
	ingredients driven.IngredientStore
	products    driven.ProductStore
	offers      driven.OfferStore
}

// NewSeeder creates a seeder over the given stores.
func NewSeeder(
	brands driven.BrandStore,
	ingredients driven.IngredientStore,
	products driven.ProductStore,
	offers driven.OfferStore,
) *Seeder {
	return &Seeder{
		brands:      brands,
		ingredients: ingredients,
		products:    products,
		offers:      offers,
	}
}

// Seed validates ds and makes the catalog match it. Ingredients and
// products whose slug is not in ds are removed first, and lookup keys that
// ds moves to another ingredient are released before anything is written.
// Brands, ingredients, products and offers are then written in that order.
// Records already present (by slug) keep their IDs, so seeding the same
// dataset twice leaves the catalog unchanged. Records without an ID in
// either place get a fresh uuid.
func (s *Seeder) Seed(ctx context.Context, ds *Dataset) (Counts, error) {
	var counts Counts
	if err := ds.Validate(); err != nil {
		return counts, err
	}
	// A file caught mid-write can parse as an empty dataset.
	if len(ds.Ingredients) == 0 {
		return counts, fmt.Errorf("%w: no ingredients", ErrInvalidDataset)
	}

	removed, err := s.pruneProducts(ctx, ds)
	counts.Removed += removed
	if err != nil {
		return counts, err
	}
	releasedIDs, removed, err := s.releaseIngredients(ctx, ds)
	counts.Removed += removed
	if err != nil {
		return counts, err
	}

	brandIDs := make(map[string]string, len(ds.Brands))
	for _, rec := range ds.Brands {
		id, err := s.brandID(ctx, rec)
		if err != nil {
			return counts, err
		}
		if err := s.brands.Save(ctx, rec.toDomain(id)); err != nil {
			return counts, fmt.Errorf("seeding brand %s: %w", rec.Slug, err)
		}
		brandIDs[rec.Slug] = id
		counts.Brands++
	}

	ingredientIDs := make(map[string]string, len(ds.Ingredients))
	for _, rec := range ds.Ingredients {
		id := releasedIDs[rec.Slug]
		if id == "" || rec.ID != "" {
			if id, err = s.ingredientID(ctx, rec); err != nil {
				return counts, err
			}
		}
		if err := s.ingredients.Save(ctx, rec.toDomain(id)); err != nil {
			return counts, fmt.Errorf("seeding ingredient %s: %w", rec.Slug, err)
		}
		ingredientIDs[rec.Slug] = id
		counts.Ingredients++
	}

	productIDs := make(map[string]string, len(ds.Products))
	for _, rec := range ds.Products {
		id, err := s.productID(ctx, rec)
		if err != nil {
			return counts, err
		}
		p := &domain.Product{
			ID:               id,
			Slug:             rec.Slug,
			Name:             rec.Name,
			BrandID:          brandIDs[rec.Brand],
			Category:         domain.ProductCategory(rec.Category),
			Description:      rec.Description,
			Size:             rec.Size,
			SafetyScore:      rec.SafetyScore,
			IsFungalAcneSafe: rec.FungalAcneSafe,
			IsFragranceFree:  rec.FragranceFree,
			IsVegan:          rec.Vegan,
			IsCrueltyFree:    rec.CrueltyFree,
			IsReefSafe:       rec.ReefSafe,
			IsDiscontinued:   rec.Discontinued,
			AverageRating:    rec.AverageRating,
			ReviewCount:      rec.ReviewCount,
		}
		if p.Category == "" {
			p.Category = domain.CategoryOther
		}
		for i, pi := range rec.Ingredients {
			p.Ingredients = append(p.Ingredients, domain.ProductIngredient{
				Position:      i + 1,
				IsHighlighted: pi.Highlighted,
				Note:          pi.Note,
				Ingredient:    domain.Ingredient{ID: ingredientIDs[pi.Slug], Slug: pi.Slug},
			})
		}
		if err := s.products.Save(ctx, p); err != nil {
			return counts, fmt.Errorf("seeding product %s: %w", rec.Slug, err)
		}
		productIDs[rec.Slug] = id
		counts.Products++
	}

	for _, rec := range ds.Offers {
		id := rec.ID
		if id == "" {
			id = uuid.NewSHA1(offerNamespace, []byte(rec.Product+"/"+rec.RetailerSlug+"/"+rec.Country)).String()
		}
		if err := s.offers.Save(ctx, rec.toDomain(id, productIDs[rec.Product])); err != nil {
			return counts, fmt.Errorf("seeding offer %s: %w", id, err)
		}
		counts.Offers++
	}

	logger.Debug("seeded catalog: %d brands, %d ingredients, %d products, %d offers, %d removed",
		counts.Brands, counts.Ingredients, counts.Products, counts.Offers, counts.Removed)
	return counts, nil
}

// pruneProducts deletes stored products whose slug is not in ds.
func (s *Seeder) pruneProducts(ctx context.Context, ds *Dataset) (int, error) {
	stored, err := s.products.Slugs(ctx)
	if err != nil {
		return 0, err
	}
	keep := make(map[string]struct{}, len(ds.Products))
	for _, rec := range ds.Products {
		keep[rec.Slug] = struct{}{}
	}

	removed := 0
	for slug, id := range stored {
		if _, ok := keep[slug]; ok {
			continue
		}
		if err := s.products.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return removed, fmt.Errorf("removing product %s: %w", slug, err)
		}
		logger.Debug("removed product %s", slug)
		removed++
	}
	return removed, nil
}

// releaseIngredients deletes stored ingredients whose slug is not in ds and
// strips the keys ds assigns to a different slug from the rest. An
// ingredient whose name key moves is deleted as well; its ID is returned,
// keyed by slug, so the rewrite keeps it.
func (s *Seeder) releaseIngredients(ctx context.Context, ds *Dataset) (map[string]string, int, error) {
	slugs := make(map[string]struct{}, len(ds.Ingredients))
	owners := make(map[string]string)
	for _, rec := range ds.Ingredients {
		slugs[rec.Slug] = struct{}{}
		for _, k := range ingredientKeys(rec) {
			owners[k] = rec.Slug
		}
	}

	existing, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("listing ingredients: %w", err)
	}

	ids := make(map[string]string)
	removed := 0
	for i := range existing {
		ing := &existing[i]
		movesAway := func(value string) bool {
			for _, k := range inci.Keys(value) {
				if owner, ok := owners[k]; ok && owner != ing.Slug {
					return true
				}
			}
			return false
		}

		_, keep := slugs[ing.Slug]
		switch {
		case !keep:
			if err := s.ingredients.Delete(ctx, ing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return ids, removed, fmt.Errorf("removing ingredient %s: %w", ing.Slug, err)
			}
			logger.Debug("removed ingredient %s", ing.Slug)
			removed++
		case movesAway(ing.Name):
			if err := s.ingredients.Delete(ctx, ing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
				return ids, removed, fmt.Errorf("releasing ingredient %s: %w", ing.Slug, err)
			}
			ids[ing.Slug] = ing.ID
		default:
			stripped := *ing
			stripped.Aliases = slices.DeleteFunc(slices.Clone(ing.Aliases), movesAway)
			if movesAway(ing.INCIName) {
				stripped.INCIName = ""
			}
			if len(stripped.Aliases) == len(ing.Aliases) && stripped.INCIName == ing.INCIName {
				continue
			}
			if err := s.ingredients.Save(ctx, &stripped); err != nil {
				return ids, removed, fmt.Errorf("releasing keys of %s: %w", ing.Slug, err)
			}
		}
	}
	return ids, removed, nil
}

func (s *Seeder) brandID(ctx context.Context, rec BrandRecord) (string, error) {
	if rec.ID != "" {
		return rec.ID, nil
	}
	existing, err := s.brands.GetBySlug(ctx, rec.Slug)
	return resolveID(existing, err, func(b *domain.Brand) string { return b.ID })
}

func (s *Seeder) ingredientID(ctx context.Context, rec IngredientRecord) (string, error) {
	if rec.ID != "" {
		return rec.ID, nil
	}
	existing, err := s.ingredients.GetBySlug(ctx, rec.Slug)
	return resolveID(existing, err, func(i *domain.Ingredient) string { return i.ID })
}

func (s *Seeder) productID(ctx context.Context, rec ProductRecord) (string, error) {
	if rec.ID != "" {
		return rec.ID, nil
	}
	existing, err := s.products.GetBySlug(ctx, rec.Slug)
	return resolveID(existing, err, func(p *domain.Product) string { return p.ID })
}

// resolveID reuses the stored record's ID, or mints one when none exists.
func resolveID[T any](existing *T, err error, id func(*T) string) (string, error) {
	switch {
	case err == nil:
		return id(existing), nil
	case errors.Is(err, domain.ErrNotFound):
		return uuid.New().String(), nil
	default:
		return "", fmt.Errorf("looking up existing record: %w", err)
	}
}

// IsEmpty reports whether the ingredient catalog has no records.
func IsEmpty(ctx context.Context, ingredients driven.IngredientStore) (bool, error) {
	page, _, err := ingredients.Search(ctx, domain.IngredientQuery{Limit: 1})
	if err != nil {
		return false, fmt.Errorf("checking catalog: %w", err)
	}
	return len(page) == 0, nil
}
