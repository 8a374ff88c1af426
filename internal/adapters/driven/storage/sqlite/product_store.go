package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
)

// ==================== Brand Store ====================

// brandStore implements driven.BrandStore.
type brandStore struct {
	store *Store
}

var _ driven.BrandStore = (*brandStore)(nil)

// Save stores or updates a brand.
func (s *brandStore) Save(ctx context.Context, brand *domain.Brand) error {
	if brand.ID == "" || brand.Slug == "" {
		return fmt.Errorf("brand id and slug are required: %w", domain.ErrInvalidInput)
	}

	var owner string
	err := s.store.db.QueryRowContext(ctx, "SELECT id FROM brands WHERE slug = ? AND id != ?", brand.Slug, brand.ID).Scan(&owner)
	switch {
	case err == nil:
		return fmt.Errorf("brand slug %q: %w", brand.Slug, domain.ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking slug: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO brands (id, slug, name, description, country, website)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			description = excluded.description,
			country = excluded.country,
			website = excluded.website
	`, brand.ID, brand.Slug, brand.Name, brand.Description, brand.Country, brand.Website)
	if err != nil {
		return fmt.Errorf("saving brand: %w", err)
	}
	return nil
}

// GetBySlug retrieves a brand by slug.
func (s *brandStore) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	var b domain.Brand
	err := s.store.db.QueryRowContext(ctx, `
		SELECT id, slug, name, description, country, website FROM brands WHERE slug = ?
	`, slug).Scan(&b.ID, &b.Slug, &b.Name, &b.Description, &b.Country, &b.Website)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning brand: %w", err)
	}
	return &b, nil
}

// List returns every brand ordered by name.
func (s *brandStore) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT id, slug, name, description, country, website FROM brands ORDER BY name, slug")
	if err != nil {
		return nil, fmt.Errorf("querying brands: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Slug, &b.Name, &b.Description, &b.Country, &b.Website); err != nil {
			return nil, fmt.Errorf("scanning brand: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating brands: %w", err)
	}
	return out, nil
}

// ==================== Product Store ====================

// productStore implements driven.ProductStore.
type productStore struct {
	store *Store
}

var _ driven.ProductStore = (*productStore)(nil)

const productColumns = `p.id, p.slug, p.name, COALESCE(p.brand_id, ''), p.category, p.description, p.size,
	p.safety_score, p.is_fungal_acne_safe, p.is_fragrance_free, p.is_vegan, p.is_cruelty_free,
	p.is_reef_safe, p.is_discontinued, p.average_rating, p.review_count, p.created_at,
	b.id, b.slug, b.name, b.description, b.country, b.website`

const productFrom = " FROM products p LEFT JOIN brands b ON b.id = p.brand_id"

// Save stores or updates a product and replaces its ingredient list.
// CreatedAt is kept from the stored row when p.CreatedAt is zero.
func (s *productStore) Save(ctx context.Context, p *domain.Product) error {
	if p.ID == "" || p.Slug == "" || p.Name == "" {
		return fmt.Errorf("product id, slug and name are required: %w", domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT id FROM products WHERE slug = ? AND id != ?", p.Slug, p.ID).Scan(&owner)
	switch {
	case err == nil:
		return fmt.Errorf("product slug %q: %w", p.Slug, domain.ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking slug: %w", err)
	}

	createdAt := p.CreatedAt.UTC()
	if p.CreatedAt.IsZero() {
		var existing time.Time
		err := tx.QueryRowContext(ctx, "SELECT created_at FROM products WHERE id = ?", p.ID).Scan(&existing)
		switch {
		case err == nil:
			createdAt = existing
		case errors.Is(err, sql.ErrNoRows):
			createdAt = time.Now().UTC()
		default:
			return fmt.Errorf("reading created_at: %w", err)
		}
	}

	category := p.Category
	if category == "" {
		category = domain.CategoryOther
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, slug, name, brand_id, category, description, size, safety_score,
			is_fungal_acne_safe, is_fragrance_free, is_vegan, is_cruelty_free, is_reef_safe,
			is_discontinued, average_rating, review_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			brand_id = excluded.brand_id,
			category = excluded.category,
			description = excluded.description,
			size = excluded.size,
			safety_score = excluded.safety_score,
			is_fungal_acne_safe = excluded.is_fungal_acne_safe,
			is_fragrance_free = excluded.is_fragrance_free,
			is_vegan = excluded.is_vegan,
			is_cruelty_free = excluded.is_cruelty_free,
			is_reef_safe = excluded.is_reef_safe,
			is_discontinued = excluded.is_discontinued,
			average_rating = excluded.average_rating,
			review_count = excluded.review_count,
			created_at = excluded.created_at
	`, p.ID, p.Slug, p.Name, nullString(p.BrandID), string(category), p.Description, p.Size,
		p.SafetyScore, p.IsFungalAcneSafe, p.IsFragranceFree, p.IsVegan, p.IsCrueltyFree,
		p.IsReefSafe, p.IsDiscontinued, p.AverageRating, p.ReviewCount, createdAt)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM product_ingredients WHERE product_id = ?", p.ID); err != nil {
		return fmt.Errorf("clearing product ingredients: %w", err)
	}
	for _, pi := range p.Ingredients {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_ingredients (product_id, ingredient_id, position, is_highlighted, note)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID, pi.Ingredient.ID, pi.Position, pi.IsHighlighted, pi.Note); err != nil {
			return fmt.Errorf("saving product ingredient %s: %w", pi.Ingredient.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a product by ID.
func (s *productStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getWhere(ctx, "p.id = ?", id)
}

// GetBySlug retrieves a product by slug.
func (s *productStore) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.getWhere(ctx, "p.slug = ?", slug)
}

func (s *productStore) getWhere(ctx context.Context, clause string, arg any) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+productColumns+productFrom+" WHERE "+clause, arg)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	if err := s.loadIngredients(ctx, []*domain.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Slugs maps every product slug to its ID.
func (s *productStore) Slugs(ctx context.Context) (map[string]string, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT slug, id FROM products")
	if err != nil {
		return nil, fmt.Errorf("listing product slugs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var slug, id string
		if err := rows.Scan(&slug, &id); err != nil {
			return nil, fmt.Errorf("scanning product slug: %w", err)
		}
		out[slug] = id
	}
	return out, rows.Err()
}

// Delete removes a product. Its ingredient rows and offers cascade.
func (s *productStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search returns one page of matching products and the total count.
// Discontinued products are never returned.
func (s *productStore) Search(ctx context.Context, q domain.ProductQuery) ([]domain.Product, int, error) {
	var w where
	w.add("p.is_discontinued = 0")
	if needle := strings.TrimSpace(q.Query); needle != "" {
		pattern := likePattern(needle)
		w.add(`(lower(p.name) LIKE ? ESCAPE '\' OR lower(COALESCE(b.name, '')) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	if q.BrandSlug != "" {
		w.add("b.slug = ?", q.BrandSlug)
	}
	if q.Category != "" {
		w.add("p.category = ?", string(q.Category))
	}
	if q.FungalAcneSafe {
		w.add("p.is_fungal_acne_safe = 1")
	}
	if q.MinRating > 0 {
		w.add("p.average_rating >= ?", q.MinRating)
	}
	const hasIngredient = `EXISTS (SELECT 1 FROM product_ingredients pi JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.product_id = p.id AND i.slug = ?)`
	if q.IngredientSlug != "" {
		w.add(hasIngredient, q.IngredientSlug)
	}
	if q.ExcludeIngredientSlug != "" {
		w.add("NOT "+hasIngredient, q.ExcludeIngredientSlug)
	}

	var total int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*)"+productFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	limit, offset := limitArgs(q.Limit, q.Offset)
	args := append(append([]any{}, w.args...), limit, offset)
	items, err := s.query(ctx, "SELECT "+productColumns+productFrom+w.String()+
		" ORDER BY "+productOrder(q.Sort)+" LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Related returns products in the same category sharing the fungal-acne
// safety flag, highest rated first.
func (s *productStore) Related(ctx context.Context, p *domain.Product, limit int) ([]domain.Product, error) {
	limit, _ = limitArgs(limit, 0)
	return s.query(ctx, "SELECT "+productColumns+productFrom+`
		WHERE p.is_discontinued = 0 AND p.id != ? AND p.category = ? AND p.is_fungal_acne_safe = ?
		ORDER BY `+productOrder(domain.SortByRating)+" LIMIT ?",
		p.ID, string(p.Category), p.IsFungalAcneSafe, limit)
}

// Suggest returns up to limit products whose name or brand contains q.
// Name prefix matches come first.
func (s *productStore) Suggest(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	needle := strings.TrimSpace(q)
	if needle == "" {
		return []domain.Product{}, nil
	}
	pattern := likePattern(needle)
	limit, _ = limitArgs(limit, 0)
	return s.query(ctx, "SELECT "+productColumns+productFrom+`
		WHERE p.is_discontinued = 0
			AND (lower(p.name) LIKE ? ESCAPE '\' OR lower(COALESCE(b.name, '')) LIKE ? ESCAPE '\')
		ORDER BY CASE WHEN lower(p.name) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, p.name, p.slug
		LIMIT ?`, pattern, pattern, prefixPattern(needle), limit)
}

func (s *productStore) query(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	ptrs := make([]*domain.Product, len(out))
	for i := range out {
		ptrs[i] = &out[i]
	}
	if err := s.loadIngredients(ctx, ptrs); err != nil {
		return nil, err
	}
	return out, nil
}

// loadIngredients fills the ordered ingredient list of each product.
func (s *productStore) loadIngredients(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Product, len(products))
	args := make([]any, len(products))
	for i, p := range products {
		p.Ingredients = []domain.ProductIngredient{}
		byID[p.ID] = p
		args[i] = p.ID
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT pi.product_id, pi.position, pi.is_highlighted, pi.note, `+ingredientColumns+`
		FROM product_ingredients pi
		JOIN ingredients i ON i.id = pi.ingredient_id
		WHERE pi.product_id IN (`+placeholders(len(args))+`)
		ORDER BY pi.product_id, pi.position
	`, args...)
	if err != nil {
		return fmt.Errorf("querying product ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, note string
		var position int
		var highlighted bool
		ing, err := scanIngredientFrom(rows, &productID, &position, &highlighted, &note)
		if err != nil {
			return err
		}
		p := byID[productID]
		p.Ingredients = append(p.Ingredients, domain.ProductIngredient{
			Position:      position,
			IsHighlighted: highlighted,
			Note:          note,
			Ingredient:    *ing,
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating product ingredients: %w", err)
	}
	return nil
}

func productOrder(by domain.ProductSort) string {
	switch by {
	case domain.SortByRating:
		return "p.average_rating DESC, p.name, p.slug"
	case domain.SortByNewest:
		return "p.created_at DESC, p.name, p.slug"
	default:
		return "p.name, p.slug"
	}
}

func scanProduct(sc rowScanner) (*domain.Product, error) {
	var p domain.Product
	var category string
	var brandID, brandSlug, brandName, brandDesc, brandCountry, brandSite sql.NullString

	if err := sc.Scan(&p.ID, &p.Slug, &p.Name, &p.BrandID, &category, &p.Description, &p.Size,
		&p.SafetyScore, &p.IsFungalAcneSafe, &p.IsFragranceFree, &p.IsVegan, &p.IsCrueltyFree,
		&p.IsReefSafe, &p.IsDiscontinued, &p.AverageRating, &p.ReviewCount, &p.CreatedAt,
		&brandID, &brandSlug, &brandName, &brandDesc, &brandCountry, &brandSite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}

	p.Category = domain.ProductCategory(category)
	if brandID.Valid {
		p.Brand = &domain.Brand{
			ID:          brandID.String,
			Slug:        brandSlug.String,
			Name:        brandName.String,
			Description: brandDesc.String,
			Country:     brandCountry.String,
			Website:     brandSite.String,
		}
	}
	return &p, nil
}
