package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
)

// Ensure the stores implement the interfaces.
var (
	_ driven.BrandStore   = (*BrandStore)(nil)
	_ driven.ProductStore = (*ProductStore)(nil)
)

// BrandStore is an in-memory implementation of driven.BrandStore.
type BrandStore struct {
	mu     sync.RWMutex
	brands map[string]domain.Brand
	slugs  map[string]string
}

// NewBrandStore creates a new in-memory brand store.
func NewBrandStore() *BrandStore {
	return &BrandStore{
		brands: make(map[string]domain.Brand),
		slugs:  make(map[string]string),
	}
}

// Save stores or updates a brand.
func (s *BrandStore) Save(_ context.Context, brand *domain.Brand) error {
	if brand.ID == "" || brand.Slug == "" {
		return fmt.Errorf("brand id and slug are required: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.slugs[brand.Slug]; ok && owner != brand.ID {
		return fmt.Errorf("brand slug %q: %w", brand.Slug, domain.ErrAlreadyExists)
	}
	if old, ok := s.brands[brand.ID]; ok {
		delete(s.slugs, old.Slug)
	}
	s.brands[brand.ID] = *brand
	s.slugs[brand.Slug] = brand.ID
	return nil
}

// GetBySlug retrieves a brand by slug.
func (s *BrandStore) GetBySlug(_ context.Context, slug string) (*domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.slugs[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := s.brands[id]
	return &b, nil
}

// List returns every brand ordered by name.
func (s *BrandStore) List(_ context.Context) ([]domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *BrandStore) byID(id string) (domain.Brand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.brands[id]
	return b, ok
}

// ingredientRef is a stored product label entry.
type ingredientRef struct {
	ingredientID string
	position     int
	highlighted  bool
	note         string
}

type storedProduct struct {
	product domain.Product
	refs    []ingredientRef
}

// ProductStore is an in-memory implementation of driven.ProductStore.
// Brands and ingredients are resolved from their stores on every read.
type ProductStore struct {
	mu          sync.RWMutex
	products    map[string]storedProduct
	slugs       map[string]string
	brands      *BrandStore
	ingredients *IngredientStore
	now         func() time.Time
}

// NewProductStore creates a product store resolving references through
// brands and ingredients.
func NewProductStore(brands *BrandStore, ingredients *IngredientStore) *ProductStore {
	return &ProductStore{
		products:    make(map[string]storedProduct),
		slugs:       make(map[string]string),
		brands:      brands,
		ingredients: ingredients,
		now:         time.Now,
	}
}

// Save stores or updates a product and replaces its ingredient list.
func (s *ProductStore) Save(_ context.Context, p *domain.Product) error {
	if p.ID == "" || p.Slug == "" || p.Name == "" {
		return fmt.Errorf("product id, slug and name are required: %w", domain.ErrInvalidInput)
	}

	refs := make([]ingredientRef, len(p.Ingredients))
	for i, pi := range p.Ingredients {
		refs[i] = ingredientRef{
			ingredientID: pi.Ingredient.ID,
			position:     pi.Position,
			highlighted:  pi.IsHighlighted,
			note:         pi.Note,
		}
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].position < refs[j].position })

	stored := *p
	stored.Brand = nil
	stored.Ingredients = nil

	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.slugs[p.Slug]; ok && owner != p.ID {
		return fmt.Errorf("product slug %q: %w", p.Slug, domain.ErrAlreadyExists)
	}
	if old, ok := s.products[p.ID]; ok {
		delete(s.slugs, old.product.Slug)
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = old.product.CreatedAt
		}
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}
	s.products[p.ID] = storedProduct{product: stored, refs: refs}
	s.slugs[p.Slug] = p.ID
	return nil
}

// Get retrieves a product by ID.
func (s *ProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	sp, ok := s.products[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := s.hydrate(ctx, sp)
	return &p, nil
}

// GetBySlug retrieves a product by slug.
func (s *ProductStore) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	s.mu.RLock()
	id, ok := s.slugs[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Slugs maps every product slug to its ID.
func (s *ProductStore) Slugs(_ context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.slugs), nil
}

// Delete removes a product. Offers stay in their own store.
func (s *ProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	delete(s.slugs, sp.product.Slug)
	return nil
}

// Search returns one page of matching products and the total count.
func (s *ProductStore) Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Query))
	matches := s.filter(ctx, func(p *domain.Product) bool {
		switch {
		case needle != "" && !productContains(p, needle):
			return false
		case q.BrandSlug != "" && (p.Brand == nil || p.Brand.Slug != q.BrandSlug):
			return false
		case q.Category != "" && p.Category != q.Category:
			return false
		case q.FungalAcneSafe && !p.IsFungalAcneSafe:
			return false
		case q.MinRating > 0 && p.AverageRating < q.MinRating:
			return false
		case q.IngredientSlug != "" && !p.HasIngredient(q.IngredientSlug):
			return false
		case q.ExcludeIngredientSlug != "" && p.HasIngredient(q.ExcludeIngredientSlug):
			return false
		}
		return true
	})
	sortProducts(matches, q.Sort)
	return page(matches, q.Limit, q.Offset), len(matches), nil
}

// Related returns products in the same category sharing the fungal-acne
// safety flag, highest rated first.
func (s *ProductStore) Related(ctx context.Context, p *domain.Product, limit int) ([]domain.Product, error) {
	matches := s.filter(ctx, func(c *domain.Product) bool {
		return c.ID != p.ID && c.Category == p.Category && c.IsFungalAcneSafe == p.IsFungalAcneSafe
	})
	sortProducts(matches, domain.SortByRating)
	return page(matches, limit, 0), nil
}

// Suggest returns up to limit products whose name or brand contains q.
func (s *ProductStore) Suggest(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return []domain.Product{}, nil
	}
	matches := s.filter(ctx, func(p *domain.Product) bool { return productContains(p, needle) })
	sortProducts(matches, domain.SortByName)
	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Name), needle)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Name), needle)
		return pi && !pj
	})
	return page(matches, limit, 0), nil
}

// filter hydrates every live product and keeps those accepted by keep.
func (s *ProductStore) filter(ctx context.Context, keep func(*domain.Product) bool) []domain.Product {
	s.mu.RLock()
	stored := make([]storedProduct, 0, len(s.products))
	for _, sp := range s.products {
		if !sp.product.IsDiscontinued {
			stored = append(stored, sp)
		}
	}
	s.mu.RUnlock()

	out := make([]domain.Product, 0, len(stored))
	for _, sp := range stored {
		p := s.hydrate(ctx, sp)
		if keep(&p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *ProductStore) hydrate(ctx context.Context, sp storedProduct) domain.Product {
	p := sp.product
	if b, ok := s.brands.byID(p.BrandID); ok {
		p.Brand = &b
	}
	p.Ingredients = make([]domain.ProductIngredient, 0, len(sp.refs))
	for _, ref := range sp.refs {
		ing, err := s.ingredients.Get(ctx, ref.ingredientID)
		if err != nil {
			continue
		}
		p.Ingredients = append(p.Ingredients, domain.ProductIngredient{
			Position:      ref.position,
			IsHighlighted: ref.highlighted,
			Note:          ref.note,
			Ingredient:    *ing,
		})
	}
	return p
}

func productContains(p *domain.Product, needle string) bool {
	if strings.Contains(strings.ToLower(p.Name), needle) {
		return true
	}
	return p.Brand != nil && strings.Contains(strings.ToLower(p.Brand.Name), needle)
}

func sortProducts(items []domain.Product, by domain.ProductSort) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch by {
		case domain.SortByRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		case domain.SortByNewest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Slug < b.Slug
	})
}
