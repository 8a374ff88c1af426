package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/skintelect/skintelect/internal/core/domain"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeSummary(w io.Writer, s *domain.AnalysisSummary) {
	fmt.Fprintf(w, "Ingredients: %d (%d recognized, %d unrecognized)\n", s.Total, s.Recognized, s.Unrecognized)
	if s.IsFungalAcneSafe {
		fmt.Fprintln(w, "Fungal acne: safe")
	} else {
		fmt.Fprintln(w, "Fungal acne: contains triggers")
	}
	for _, l := range []struct {
		label string
		names []string
	}{
		{"Fungal acne triggers", s.FungalAcneTriggers},
		{"Potential allergens", s.PotentialAllergens},
		{"Potential irritants", s.PotentialIrritants},
		{"Comedogenic", s.ComedogenicIngredients},
		{"Reef unsafe", s.ReefUnsafe},
	} {
		if len(l.names) > 0 {
			fmt.Fprintf(w, "%s: %s\n", l.label, strings.Join(l.names, ", "))
		}
	}
	if !s.HasWarnings() {
		fmt.Fprintln(w, "No warnings.")
	}
}

func writeAnalysis(w io.Writer, r *domain.AnalysisResult) {
	writeSummary(w, &r.Summary)
	fmt.Fprintln(w)
	for i := range r.Ingredients {
		item := &r.Ingredients[i]
		if !item.IsRecognized || item.Ingredient == nil {
			fmt.Fprintf(w, "  %3d. %s (unrecognized)\n", item.Position, item.OriginalText)
			continue
		}
		fmt.Fprintf(w, "  %3d. %s -> %s%s\n", item.Position, item.OriginalText, item.Ingredient.Name, flags(item.Ingredient))
	}
}

// flags renders an ingredient's warning flags as " [a, b]", or "".
func flags(ing *domain.Ingredient) string {
	var f []string
	if ing.IsFungalAcneTrigger {
		f = append(f, "fungal acne")
	}
	if ing.IsAllergen {
		f = append(f, "allergen")
	}
	if ing.IsIrritant() {
		f = append(f, "irritant")
	}
	if ing.IsComedogenic() {
		f = append(f, fmt.Sprintf("comedogenic %d", *ing.ComedogenicRating))
	}
	if ing.IsReefUnsafe {
		f = append(f, "reef unsafe")
	}
	if len(f) == 0 {
		return ""
	}
	return " [" + strings.Join(f, ", ") + "]"
}

func ratingString(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d/5", *v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func writeIngredient(w io.Writer, ing *domain.Ingredient) {
	fmt.Fprintf(w, "%s (%s)\n", ing.Name, ing.Slug)
	if ing.INCIName != "" {
		fmt.Fprintf(w, "  INCI:          %s\n", ing.INCIName)
	}
	if len(ing.Aliases) > 0 {
		fmt.Fprintf(w, "  Aliases:       %s\n", strings.Join(ing.Aliases, ", "))
	}
	if len(ing.Functions) > 0 {
		fns := make([]string, len(ing.Functions))
		for i, fn := range ing.Functions {
			fns[i] = fn.String()
		}
		fmt.Fprintf(w, "  Functions:     %s\n", strings.Join(fns, ", "))
	}
	fmt.Fprintf(w, "  Comedogenic:   %s\n", ratingString(ing.ComedogenicRating))
	fmt.Fprintf(w, "  Irritation:    %s\n", ratingString(ing.IrritationLevel))
	fmt.Fprintf(w, "  Fungal acne:   %s\n", map[bool]string{true: "trigger", false: "safe"}[ing.IsFungalAcneTrigger])
	fmt.Fprintf(w, "  Allergen:      %s\n", yesNo(ing.IsAllergen))
	fmt.Fprintf(w, "  Reef unsafe:   %s\n", yesNo(ing.IsReefUnsafe))
	if ing.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", ing.Description)
	}
}

func writeProduct(w io.Writer, p *domain.Product) {
	brand := ""
	if p.Brand != nil {
		brand = p.Brand.Name + " "
	}
	fmt.Fprintf(w, "%s%s (%s)\n", brand, p.Name, p.Slug)
	fmt.Fprintf(w, "  Category:      %s\n", p.Category)
	if p.Size != "" {
		fmt.Fprintf(w, "  Size:          %s\n", p.Size)
	}
	fmt.Fprintf(w, "  Rating:        %.1f (%d reviews)\n", p.AverageRating, p.ReviewCount)
	fmt.Fprintf(w, "  Fungal acne:   %s\n", map[bool]string{true: "safe", false: "not safe"}[p.IsFungalAcneSafe])
	fmt.Fprintf(w, "  Fragrance free: %s\n", yesNo(p.IsFragranceFree))
	if len(p.Ingredients) > 0 {
		fmt.Fprintln(w, "  Ingredients:")
		for i := range p.Ingredients {
			pi := &p.Ingredients[i]
			name := pi.Ingredient.Name
			if name == "" {
				name = pi.Ingredient.Slug
			}
			fmt.Fprintf(w, "    %3d. %s%s\n", pi.Position, name, flags(&pi.Ingredient))
		}
	}
}
