package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/inci"
)

// ==================== Ingredient Store ====================

// ingredientStore implements driven.IngredientStore.
type ingredientStore struct {
	store *Store
}

var _ driven.IngredientStore = (*ingredientStore)(nil)

const ingredientColumns = `i.id, i.slug, i.name, i.inci_name, i.aliases, i.description, i.functions,
	i.comedogenic_rating, i.irritation_level, i.is_fungal_acne_trigger, i.is_allergen,
	i.is_reef_unsafe, i.is_active, i.benefits, i.concerns, i.good_for`

// aliasKeys derives the lookup keys for an ingredient.
func aliasKeys(ing *domain.Ingredient) []string {
	values := make([]string, 0, len(ing.Aliases)+2)
	values = append(values, ing.Name, ing.INCIName)
	values = append(values, ing.Aliases...)
	return inci.Keys(values...)
}

// Save stores or updates an ingredient and replaces its alias keys.
func (s *ingredientStore) Save(ctx context.Context, ing *domain.Ingredient) error {
	if ing.ID == "" || ing.Slug == "" || ing.Name == "" {
		return fmt.Errorf("ingredient id, slug and name are required: %w", domain.ErrInvalidInput)
	}

	cols, err := ingredientJSON(ing)
	if err != nil {
		return err
	}
	keys := aliasKeys(ing)

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT id FROM ingredients WHERE slug = ? AND id != ?", ing.Slug, ing.ID).Scan(&owner)
	switch {
	case err == nil:
		return fmt.Errorf("ingredient slug %q: %w", ing.Slug, domain.ErrAlreadyExists)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking slug: %w", err)
	}

	if len(keys) > 0 {
		args := make([]any, 0, len(keys)+1)
		for _, k := range keys {
			args = append(args, k)
		}
		args = append(args, ing.ID)
		var taken string
		err = tx.QueryRowContext(ctx,
			"SELECT key FROM ingredient_aliases WHERE key IN ("+placeholders(len(keys))+") AND ingredient_id != ? LIMIT 1",
			args...).Scan(&taken)
		switch {
		case err == nil:
			return fmt.Errorf("alias %q of %s: %w", taken, ing.Slug, domain.ErrAliasConflict)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("checking aliases: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingredients (id, slug, name, inci_name, aliases, description, functions,
			comedogenic_rating, irritation_level, is_fungal_acne_trigger, is_allergen,
			is_reef_unsafe, is_active, benefits, concerns, good_for)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			slug = excluded.slug,
			name = excluded.name,
			inci_name = excluded.inci_name,
			aliases = excluded.aliases,
			description = excluded.description,
			functions = excluded.functions,
			comedogenic_rating = excluded.comedogenic_rating,
			irritation_level = excluded.irritation_level,
			is_fungal_acne_trigger = excluded.is_fungal_acne_trigger,
			is_allergen = excluded.is_allergen,
			is_reef_unsafe = excluded.is_reef_unsafe,
			is_active = excluded.is_active,
			benefits = excluded.benefits,
			concerns = excluded.concerns,
			good_for = excluded.good_for
	`, ing.ID, ing.Slug, ing.Name, ing.INCIName, cols.aliases, ing.Description, cols.functions,
		nullInt(ing.ComedogenicRating), nullInt(ing.IrritationLevel), ing.IsFungalAcneTrigger,
		ing.IsAllergen, ing.IsReefUnsafe, ing.IsActive, cols.benefits, cols.concerns, cols.goodFor)
	if err != nil {
		return fmt.Errorf("saving ingredient: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM ingredient_aliases WHERE ingredient_id = ?", ing.ID); err != nil {
		return fmt.Errorf("clearing aliases: %w", err)
	}
	for _, k := range keys {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ingredient_aliases (key, ingredient_id) VALUES (?, ?)", k, ing.ID); err != nil {
			return fmt.Errorf("saving alias %q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves an ingredient by ID.
func (s *ingredientStore) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+ingredientColumns+" FROM ingredients i WHERE i.id = ?", id)
	return scanIngredient(row)
}

// GetBySlug retrieves an ingredient by slug.
func (s *ingredientStore) GetBySlug(ctx context.Context, slug string) (*domain.Ingredient, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+ingredientColumns+" FROM ingredients i WHERE i.slug = ?", slug)
	return scanIngredient(row)
}

// GetBySlugs retrieves ingredients for slugs in the given order, skipping unknown ones.
func (s *ingredientStore) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Ingredient, error) {
	if len(slugs) == 0 {
		return []domain.Ingredient{}, nil
	}
	args := make([]any, len(slugs))
	for i, slug := range slugs {
		args[i] = slug
	}
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients i WHERE i.slug IN ("+placeholders(len(slugs))+")", args...)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	found, err := scanIngredientRows(rows)
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]domain.Ingredient, len(found))
	for _, ing := range found {
		bySlug[ing.Slug] = ing
	}
	out := make([]domain.Ingredient, 0, len(found))
	for _, slug := range slugs {
		if ing, ok := bySlug[slug]; ok {
			out = append(out, ing)
		}
	}
	return out, nil
}

// List returns every ingredient ordered by name.
func (s *ingredientStore) List(ctx context.Context) ([]domain.Ingredient, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT "+ingredientColumns+" FROM ingredients i ORDER BY i.name, i.slug")
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	return scanIngredientRows(rows)
}

// Search returns one page of matching ingredients ordered by name and the total match count.
func (s *ingredientStore) Search(ctx context.Context, q domain.IngredientQuery) ([]domain.Ingredient, int, error) {
	var w where
	if needle := strings.TrimSpace(q.Query); needle != "" {
		pattern := likePattern(needle)
		w.add(`(lower(i.name) LIKE ? ESCAPE '\' OR lower(i.inci_name) LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM json_each(i.aliases) a WHERE lower(a.value) LIKE ? ESCAPE '\'))`,
			pattern, pattern, pattern)
	}
	if len(q.Functions) > 0 {
		args := make([]any, len(q.Functions))
		for i, fn := range q.Functions {
			args[i] = string(fn)
		}
		w.add("EXISTS (SELECT 1 FROM json_each(i.functions) f WHERE f.value IN ("+placeholders(len(args))+"))", args...)
	}
	if q.FungalAcneSafe {
		w.add("i.is_fungal_acne_trigger = 0")
	}
	if q.AllergenFree {
		w.add("i.is_allergen = 0")
	}
	if q.MaxComedogenic != nil {
		w.add("(i.comedogenic_rating IS NULL OR i.comedogenic_rating <= ?)", *q.MaxComedogenic)
	}

	var total int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients i"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting ingredients: %w", err)
	}

	limit, offset := limitArgs(q.Limit, q.Offset)
	args := append(append([]any{}, w.args...), limit, offset)
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+ingredientColumns+" FROM ingredients i"+w.String()+" ORDER BY i.name, i.slug LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, 0, fmt.Errorf("searching ingredients: %w", err)
	}
	items, err := scanIngredientRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// LookupAliases resolves canonical keys to ingredients. Keys that resolve to
// the same ingredient share one value.
func (s *ingredientStore) LookupAliases(ctx context.Context, keys []string) (map[string]*domain.Ingredient, error) {
	out := make(map[string]*domain.Ingredient, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT a.key, `+ingredientColumns+`
		FROM ingredient_aliases a
		JOIN ingredients i ON i.id = a.ingredient_id
		WHERE a.key IN (`+placeholders(len(keys))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("looking up aliases: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Ingredient)
	for rows.Next() {
		var key string
		ing, err := scanIngredientFrom(rows, &key)
		if err != nil {
			return nil, err
		}
		if shared, ok := byID[ing.ID]; ok {
			ing = shared
		} else {
			byID[ing.ID] = ing
		}
		out[key] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}
	return out, nil
}

// Suggest returns up to limit ingredients whose name, INCI name or alias
// contains q. Name prefix matches come first.
func (s *ingredientStore) Suggest(ctx context.Context, q string, limit int) ([]domain.Ingredient, error) {
	needle := strings.TrimSpace(q)
	if needle == "" {
		return []domain.Ingredient{}, nil
	}
	pattern := likePattern(needle)
	limit, _ = limitArgs(limit, 0)
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+ingredientColumns+` FROM ingredients i
		WHERE lower(i.name) LIKE ? ESCAPE '\' OR lower(i.inci_name) LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM json_each(i.aliases) a WHERE lower(a.value) LIKE ? ESCAPE '\')
		ORDER BY CASE WHEN lower(i.name) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, i.name, i.slug
		LIMIT ?
	`, pattern, pattern, pattern, prefixPattern(needle), limit)
	if err != nil {
		return nil, fmt.Errorf("suggesting ingredients: %w", err)
	}
	return scanIngredientRows(rows)
}

// Delete removes an ingredient. Alias keys and product references cascade.
func (s *ingredientStore) Delete(ctx context.Context, id string) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM ingredients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting ingredient: %w", err)
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

// ingredientJSONColumns holds the JSON-encoded list columns of an ingredient.
type ingredientJSONColumns struct {
	aliases, functions, benefits, concerns, goodFor string
}

func ingredientJSON(ing *domain.Ingredient) (ingredientJSONColumns, error) {
	var cols ingredientJSONColumns
	fields := []struct {
		dst *string
		v   any
	}{
		{&cols.aliases, ing.Aliases},
		{&cols.functions, ing.Functions},
		{&cols.benefits, ing.Benefits},
		{&cols.concerns, ing.Concerns},
		{&cols.goodFor, ing.GoodFor},
	}
	for _, f := range fields {
		s, err := toJSON(f.v)
		if err != nil {
			return cols, fmt.Errorf("marshalling ingredient lists: %w", err)
		}
		*f.dst = s
	}
	return cols, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIngredientFrom scans ingredientColumns, preceded by any extra destinations.
func scanIngredientFrom(sc rowScanner, extra ...any) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	var aliases, functions, benefits, concerns, goodFor string
	var comedogenic, irritation sql.NullInt64

	dest := append(extra, &ing.ID, &ing.Slug, &ing.Name, &ing.INCIName, &aliases, &ing.Description,
		&functions, &comedogenic, &irritation, &ing.IsFungalAcneTrigger, &ing.IsAllergen,
		&ing.IsReefUnsafe, &ing.IsActive, &benefits, &concerns, &goodFor)
	if err := sc.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning ingredient: %w", err)
	}

	ing.ComedogenicRating = intPtr(comedogenic)
	ing.IrritationLevel = intPtr(irritation)
	if err := fromJSON(aliases, &ing.Aliases); err != nil {
		return nil, fmt.Errorf("unmarshalling aliases: %w", err)
	}
	if err := fromJSON(functions, &ing.Functions); err != nil {
		return nil, fmt.Errorf("unmarshalling functions: %w", err)
	}
	if err := fromJSON(benefits, &ing.Benefits); err != nil {
		return nil, fmt.Errorf("unmarshalling benefits: %w", err)
	}
	if err := fromJSON(concerns, &ing.Concerns); err != nil {
		return nil, fmt.Errorf("unmarshalling concerns: %w", err)
	}
	if err := fromJSON(goodFor, &ing.GoodFor); err != nil {
		return nil, fmt.Errorf("unmarshalling good_for: %w", err)
	}
	return &ing, nil
}

func scanIngredient(row *sql.Row) (*domain.Ingredient, error) {
	return scanIngredientFrom(row)
}

func scanIngredientRows(rows *sql.Rows) ([]domain.Ingredient, error) {
	defer rows.Close()
	out := make([]domain.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredientFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	return out, nil
}
