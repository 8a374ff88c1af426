package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func sampleResult() *domain.AnalysisResult {
	coconut := &domain.Ingredient{
		Slug:                "coconut-oil",
		Name:                "Coconut Oil",
		ComedogenicRating:   domain.Rating(4),
		IsFungalAcneTrigger: true,
	}
	fragrance := &domain.Ingredient{
		Slug:            "fragrance",
		Name:            "Fragrance",
		IrritationLevel: domain.Rating(3),
		IsAllergen:      true,
	}
	return &domain.AnalysisResult{
		Ingredients: []domain.AnalyzedIngredient{
			{OriginalText: "Cocos Nucifera Oil", Position: 1, IsRecognized: true, Ingredient: coconut},
			{OriginalText: "Fragrance", Position: 2, IsRecognized: true, Ingredient: fragrance},
			{OriginalText: "Unobtainium", Position: 3},
		},
		Summary: domain.AnalysisSummary{
			Total:                  3,
			Recognized:             2,
			Unrecognized:           1,
			FungalAcneTriggers:     []string{"Coconut Oil"},
			PotentialAllergens:     []string{"Fragrance"},
			PotentialIrritants:     []string{"Fragrance"},
			ComedogenicIngredients: []string{"Coconut Oil"},
			ReefUnsafe:             []string{},
		},
	}
}

func TestRender_NilResult(t *testing.T) {
	out := Render(nil, nil, 80)

	assert.Contains(t, out, "ctrl+s")
}

func TestRender_Summary(t *testing.T) {
	out := Render(nil, sampleResult(), 0)

	assert.Contains(t, out, "FA TRIGGERS")
	assert.Contains(t, out, "1 ALLERGEN")
	assert.NotContains(t, out, "REEF UNSAFE")
	assert.Contains(t, out, "Total 3   Recognized 2   Unrecognized 1")
	assert.Contains(t, out, "Fungal acne triggers: Coconut Oil")
	assert.Contains(t, out, "Potential irritants: Fragrance")
	assert.NotContains(t, out, "Reef unsafe:")
}

func TestRender_IngredientLines(t *testing.T) {
	out := Render(nil, sampleResult(), 0)

	assert.Contains(t, out, "1. Cocos Nucifera Oil")
	assert.Contains(t, out, "→ Coconut Oil")
	assert.Contains(t, out, "COMEDOGENIC 4")
	assert.Contains(t, out, "IRRITANT")
	assert.Contains(t, out, "3. Unobtainium  (not in catalog)")
	// Names matching the label are not repeated.
	assert.NotContains(t, out, "→ Fragrance")
}

func TestRender_CleanList(t *testing.T) {
	water := &domain.Ingredient{Slug: "water", Name: "Water", ComedogenicRating: domain.Rating(0)}
	result := &domain.AnalysisResult{
		Ingredients: []domain.AnalyzedIngredient{
			{OriginalText: "Aqua", Position: 1, IsRecognized: true, Ingredient: water},
		},
		Summary: domain.AnalysisSummary{Total: 1, Recognized: 1, IsFungalAcneSafe: true},
	}

	out := Render(nil, result, 0)

	assert.Contains(t, out, "FA SAFE")
	assert.Contains(t, out, "NO WARNINGS")
	assert.NotContains(t, out, "COMEDOGENIC")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 ALLERGEN", plural(1, "ALLERGEN"))
	assert.Equal(t, "2 ALLERGENS", plural(2, "ALLERGEN"))
}
