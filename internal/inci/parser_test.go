package inci

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func TestParse(t *testing.T) {
	tokens := Parse("INGREDIENTS: Water, Glycerin, Niacinamide, Fragrance")

	require.Len(t, tokens, 4)
	assert.Equal(t, domain.Token{Original: "Water", Key: "water", Position: 1}, tokens[0])
	assert.Equal(t, domain.Token{Original: "Fragrance", Key: "fragrance", Position: 4}, tokens[3])
}

func TestParse_KeepsOriginalText(t *testing.T) {
	tokens := Parse("Retinol* (Vitamin A) 0.5%, Water")

	require.Len(t, tokens, 2)
	assert.Equal(t, "Retinol* (Vitamin A) 0.5%", tokens[0].Original)
	assert.Equal(t, "retinol", tokens[0].Key)
	assert.Equal(t, "water", tokens[1].Key)
}

func TestParse_DropsEmptyKeysWithoutGaps(t *testing.T) {
	tokens := Parse("Water, (and), ***, Glycerin")

	require.Len(t, tokens, 2)
	assert.Equal(t, 1, tokens[0].Position)
	assert.Equal(t, "Glycerin", tokens[1].Original)
	assert.Equal(t, 2, tokens[1].Position)
}

func TestParse_TruncatesAtMaxIngredients(t *testing.T) {
	parts := make([]string, 150)
	for i := range parts {
		parts[i] = fmt.Sprintf("Ingredient %d", i+1)
	}

	tokens := Parse(strings.Join(parts, ", "))

	require.Len(t, tokens, domain.MaxIngredients)
	assert.Equal(t, "Ingredient 100", tokens[99].Original)
	assert.Equal(t, 100, tokens[99].Position)
}

func TestParse_PreservesDuplicates(t *testing.T) {
	tokens := Parse("Water, Glycerin, Water")

	require.Len(t, tokens, 3)
	assert.Equal(t, tokens[0].Key, tokens[2].Key)
	assert.Equal(t, 3, tokens[2].Position)
}

func TestParse_AdversarialInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		strings.Repeat(",", 10000),
		strings.Repeat("(x)", 3000),
		"\x00\x01\x02,\x7f",
		"\xff\xfe, \xc3",
		strings.Repeat("a", 10000),
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			tokens := Parse(in)
			assert.LessOrEqual(t, len(tokens), domain.MaxIngredients)
			for i, tok := range tokens {
				assert.NotEmpty(t, tok.Key)
				assert.Equal(t, i+1, tok.Position)
			}
		})
	}
}

func TestNewParser_CustomNormalizer(t *testing.T) {
	p := NewParser(NewNormalizer(WhitespaceRule))

	tokens := p.Parse("Water (Aqua), GLYCERIN")

	require.Len(t, tokens, 2)
	assert.Equal(t, "Water (Aqua)", tokens[0].Key)
	assert.Equal(t, "GLYCERIN", tokens[1].Key)
}
