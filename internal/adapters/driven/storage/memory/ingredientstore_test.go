package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func seedIngredients(t *testing.T, s *IngredientStore) {
	t.Helper()
	ctx := context.Background()
	for _, ing := range []domain.Ingredient{
		{ID: "ing-water", Slug: "water", Name: "Water", INCIName: "Aqua", Functions: []domain.IngredientFunction{domain.FunctionSolvent}},
		{ID: "ing-glycerin", Slug: "glycerin", Name: "Glycerin", Aliases: []string{"Glycerol"}, Functions: []domain.IngredientFunction{domain.FunctionHumectant}, ComedogenicRating: domain.Rating(0)},
		{ID: "ing-coconut", Slug: "coconut-oil", Name: "Coconut Oil", Functions: []domain.IngredientFunction{domain.FunctionMoisturizing}, ComedogenicRating: domain.Rating(4), IsFungalAcneTrigger: true},
		{ID: "ing-fragrance", Slug: "fragrance", Name: "Fragrance", Aliases: []string{"Parfum"}, Functions: []domain.IngredientFunction{domain.FunctionFragrance}, IsAllergen: true},
	} {
		ing := ing
		require.NoError(t, s.Save(ctx, &ing))
	}
}

func TestIngredientStore_SaveAndGet(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	got, err := s.GetBySlug(ctx, "glycerin")
	require.NoError(t, err)
	assert.Equal(t, "ing-glycerin", got.ID)
	assert.Equal(t, 0, *got.ComedogenicRating)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngredientStore_ReturnsCopies(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	got, err := s.GetBySlug(ctx, "glycerin")
	require.NoError(t, err)
	got.Aliases[0] = "mutated"
	*got.ComedogenicRating = 5

	again, err := s.GetBySlug(ctx, "glycerin")
	require.NoError(t, err)
	assert.Equal(t, "Glycerol", again.Aliases[0])
	assert.Equal(t, 0, *again.ComedogenicRating)
}

func TestIngredientStore_Save_Validation(t *testing.T) {
	s := NewIngredientStore()
	err := s.Save(context.Background(), &domain.Ingredient{Slug: "x", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngredientStore_Save_SlugConflict(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)

	err := s.Save(context.Background(), &domain.Ingredient{ID: "other", Slug: "water", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestIngredientStore_Save_AliasConflict(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	err := s.Save(ctx, &domain.Ingredient{ID: "eau", Slug: "eau", Name: "Eau", Aliases: []string{"AQUA"}})
	require.ErrorIs(t, err, domain.ErrAliasConflict)

	_, err = s.GetBySlug(ctx, "eau")
	assert.ErrorIs(t, err, domain.ErrNotFound, "rejected record must not be stored")
}

func TestIngredientStore_LookupAliases_ManyToOne(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)

	got, err := s.LookupAliases(context.Background(), []string{"water", "aqua", "parfum", "glycerol", "unknown"})
	require.NoError(t, err)

	require.Len(t, got, 4)
	assert.Equal(t, "Water", got["water"].Name)
	assert.Same(t, got["water"], got["aqua"])
	assert.Equal(t, "Fragrance", got["parfum"].Name)
	assert.Equal(t, "Glycerin", got["glycerol"].Name)
	assert.NotContains(t, got, "unknown")
}

func TestIngredientStore_Save_ReplacesAliases(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &domain.Ingredient{ID: "ing-glycerin", Slug: "glycerin", Name: "Glycerin", Aliases: []string{"Glycerine"}}))

	got, err := s.LookupAliases(ctx, []string{"glycerol", "glycerine"})
	require.NoError(t, err)
	assert.NotContains(t, got, "glycerol")
	assert.Contains(t, got, "glycerine")
}

func TestIngredientStore_Search(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	tests := []struct {
		name  string
		query domain.IngredientQuery
		want  []string
		total int
	}{
		{"all ordered by name", domain.IngredientQuery{}, []string{"Coconut Oil", "Fragrance", "Glycerin", "Water"}, 4},
		{"text matches alias", domain.IngredientQuery{Query: "parf"}, []string{"Fragrance"}, 1},
		{"text matches inci", domain.IngredientQuery{Query: "AQUA"}, []string{"Water"}, 1},
		{"fa safe", domain.IngredientQuery{FungalAcneSafe: true}, []string{"Fragrance", "Glycerin", "Water"}, 3},
		{"allergen free", domain.IngredientQuery{AllergenFree: true, FungalAcneSafe: true}, []string{"Glycerin", "Water"}, 2},
		{"max comedogenic", domain.IngredientQuery{MaxComedogenic: domain.Rating(2)}, []string{"Fragrance", "Glycerin", "Water"}, 3},
		{"function", domain.IngredientQuery{Functions: []domain.IngredientFunction{domain.FunctionHumectant}}, []string{"Glycerin"}, 1},
		{"paged", domain.IngredientQuery{Limit: 2, Offset: 1}, []string{"Fragrance", "Glycerin"}, 4},
		{"offset past end", domain.IngredientQuery{Offset: 10}, []string{}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := s.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			names := make([]string, len(items))
			for i, ing := range items {
				names[i] = ing.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestIngredientStore_Suggest_PrefixFirst(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &domain.Ingredient{ID: "ing-ogly", Slug: "polyglyceryl", Name: "Polyglyceryl-3"}))

	items, err := s.Suggest(ctx, "gly", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Glycerin", items[0].Name)
	assert.Equal(t, "Polyglyceryl-3", items[1].Name)

	items, err = s.Suggest(ctx, "gly", 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestIngredientStore_GetBySlugs(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)

	items, err := s.GetBySlugs(context.Background(), []string{"water", "missing", "fragrance"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Water", items[0].Name)
	assert.Equal(t, "Fragrance", items[1].Name)
}

func TestIngredientStore_Delete(t *testing.T) {
	s := NewIngredientStore()
	seedIngredients(t, s)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "ing-water"))
	assert.ErrorIs(t, s.Delete(ctx, "ing-water"), domain.ErrNotFound)

	got, err := s.LookupAliases(ctx, []string{"aqua"})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Save(ctx, &domain.Ingredient{ID: "eau", Slug: "eau", Name: "Eau", Aliases: []string{"Aqua"}}))
}

func TestIngredientStore_Ping(t *testing.T) {
	s := NewIngredientStore()
	assert.NoError(t, s.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}
