package services

import "github.com/skintelect/skintelect/internal/core/domain"

// summarize aggregates flags over items in order. A matched ingredient that
// appears at several positions is listed once per position.
func summarize(items []domain.AnalyzedIngredient) domain.AnalysisSummary {
	sum := domain.AnalysisSummary{
		Total:                  len(items),
		FungalAcneTriggers:     []string{},
		PotentialAllergens:     []string{},
		PotentialIrritants:     []string{},
		ComedogenicIngredients: []string{},
		ReefUnsafe:             []string{},
	}

	for i := range items {
		ing := items[i].Ingredient
		if !items[i].IsRecognized || ing == nil {
			sum.Unrecognized++
			continue
		}
		sum.Recognized++

		if ing.IsFungalAcneTrigger {
			sum.FungalAcneTriggers = append(sum.FungalAcneTriggers, ing.Name)
		}
		if ing.IsAllergen {
			sum.PotentialAllergens = append(sum.PotentialAllergens, ing.Name)
		}
		if ing.IsIrritant() {
			sum.PotentialIrritants = append(sum.PotentialIrritants, ing.Name)
		}
		if ing.IsComedogenic() {
			sum.ComedogenicIngredients = append(sum.ComedogenicIngredients, ing.Name)
		}
		if ing.IsReefUnsafe {
			sum.ReefUnsafe = append(sum.ReefUnsafe, ing.Name)
		}
	}

	sum.IsFungalAcneSafe = len(sum.FungalAcneTriggers) == 0
	return sum
}
