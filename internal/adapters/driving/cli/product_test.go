package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func TestProductGet(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "get", "cosrx-advanced-snail-92-cream")

	require.NoError(t, err)
	assert.Contains(t, out, "COSRX Advanced Snail 92 All in One Cream")
	assert.Contains(t, out, "Category:      moisturizer")
	assert.Contains(t, out, "Rating:        4.5 (128 reviews)")
	assert.Contains(t, out, "1. Snail Secretion Filtrate")
}

func TestProductGet_NotFound(t *testing.T) {
	setupServices(t)

	_, err := execute(t, "", "product", "get", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductSearch(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "search", "--category", "moisturizer", "--fa-safe", "--json")
	require.NoError(t, err)

	var page domain.ProductPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Products, 1)
	assert.Equal(t, "cosrx-advanced-snail-92-cream", page.Products[0].Slug)
}

func TestProductSearch_SortByRating(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "search", "--sort", "rating", "--json")
	require.NoError(t, err)

	var page domain.ProductPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.NotEmpty(t, page.Products)
	assert.Equal(t, "paulas-choice-bha-liquid-exfoliant", page.Products[0].Slug)
}

func TestProductSearch_Table(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "search", "snail")

	require.NoError(t, err)
	assert.Contains(t, out, "cosrx-advanced-snail-92-cream")
	assert.Contains(t, out, "Showing 1 of 1")
}

func TestProductSearch_BadFlags(t *testing.T) {
	setupServices(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--sort", "price"}, `unknown sort "price"`},
		{[]string{"--category", "perfume"}, `unknown category "perfume"`},
		{[]string{"--min-rating", "7"}, "--min-rating"},
	}
	for _, tt := range tests {
		args := append([]string{"product", "search"}, tt.args...)

		_, err := execute(t, "", args...)

		assert.ErrorContains(t, err, tt.want)
	}
}

func TestProductOffers(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "offers", "cosrx-advanced-snail-92-cream")

	require.NoError(t, err)
	assert.Contains(t, out, "* Amazon")
	assert.Contains(t, out, "18.99 USD")
	assert.Contains(t, out, "  YesStyle")
}

func TestProductOffers_OtherCountry(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "offers", "cosrx-advanced-snail-92-cream", "--country", "GB")

	require.NoError(t, err)
	assert.Contains(t, out, "No offers found.")
}

func TestProductOffers_JSON(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "offers", "cosrx-advanced-snail-92-cream", "--json")
	require.NoError(t, err)

	var cmp domain.OfferComparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	require.NotNil(t, cmp.Primary)
	assert.Equal(t, "offer-snail-amazon", cmp.Primary.ID)
}

func TestProductSafety(t *testing.T) {
	setupServices(t)

	out, err := execute(t, "", "product", "safety", "la-roche-posay-anthelios-sunscreen")

	require.NoError(t, err)
	assert.Contains(t, out, "Reef unsafe: Oxybenzone")
	assert.Contains(t, out, "Potential allergens: Oxybenzone, Fragrance")
}
