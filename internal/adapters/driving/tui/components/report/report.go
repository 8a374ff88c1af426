// Package report renders an analysis result for the TUI.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui/styles"
	"github.com/skintelect/skintelect/internal/core/domain"
)

// Render formats result as a block of text no wider than width.
// A nil result renders a short hint.
func Render(s *styles.Styles, result *domain.AnalysisResult, width int) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if result == nil {
		return s.Muted.Render("Paste an ingredient list and press ctrl+s to analyze.")
	}

	sum := result.Summary
	var b strings.Builder

	b.WriteString(s.Title.Render("Analysis"))
	b.WriteString("  ")
	b.WriteString(summaryBadges(s, &sum))
	b.WriteString("\n\n")

	b.WriteString(s.Normal.Render(fmt.Sprintf(
		"Total %d   Recognized %d   Unrecognized %d",
		sum.Total, sum.Recognized, sum.Unrecognized,
	)))
	b.WriteString("\n")

	for _, w := range []struct {
		label string
		names []string
	}{
		{"Fungal acne triggers", sum.FungalAcneTriggers},
		{"Potential allergens", sum.PotentialAllergens},
		{"Potential irritants", sum.PotentialIrritants},
		{"Comedogenic", sum.ComedogenicIngredients},
		{"Reef unsafe", sum.ReefUnsafe},
	} {
		if len(w.names) == 0 {
			continue
		}
		b.WriteString(s.Warning.Render(w.label + ": "))
		b.WriteString(s.Normal.Render(strings.Join(w.names, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Subtitle.Render("Ingredients"))
	b.WriteString("\n")
	for i := range result.Ingredients {
		b.WriteString(ingredientLine(s, &result.Ingredients[i]))
		b.WriteString("\n")
	}

	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func summaryBadges(s *styles.Styles, sum *domain.AnalysisSummary) string {
	var badges []string
	if sum.IsFungalAcneSafe {
		badges = append(badges, s.Badge(styles.BadgeSafe, "FA SAFE"))
	} else {
		badges = append(badges, s.Badge(styles.BadgeDanger, "FA TRIGGERS"))
	}
	if !sum.HasWarnings() {
		badges = append(badges, s.Badge(styles.BadgeSafe, "NO WARNINGS"))
	}
	if n := len(sum.PotentialAllergens); n > 0 {
		badges = append(badges, s.Badge(styles.BadgeCaution, plural(n, "ALLERGEN")))
	}
	if n := len(sum.ReefUnsafe); n > 0 {
		badges = append(badges, s.Badge(styles.BadgeDanger, "REEF UNSAFE"))
	}
	return strings.Join(badges, " ")
}

func ingredientLine(s *styles.Styles, item *domain.AnalyzedIngredient) string {
	line := fmt.Sprintf("%3d. %s", item.Position, item.OriginalText)
	ing := item.Ingredient
	if !item.IsRecognized || ing == nil {
		return s.Muted.Render(line + "  (not in catalog)")
	}

	out := s.Normal.Render(line)
	if !strings.EqualFold(ing.Name, item.OriginalText) {
		out += s.Muted.Render(" → " + ing.Name)
	}

	var badges []string
	if ing.IsFungalAcneTrigger {
		badges = append(badges, s.Badge(styles.BadgeDanger, "FA"))
	}
	if ing.IsAllergen {
		badges = append(badges, s.Badge(styles.BadgeCaution, "ALLERGEN"))
	}
	if ing.IsIrritant() {
		badges = append(badges, s.Badge(styles.BadgeCaution, "IRRITANT"))
	}
	if ing.IsComedogenic() {
		badges = append(badges, s.Badge(styles.BadgeCaution, fmt.Sprintf("COMEDOGENIC %d", *ing.ComedogenicRating)))
	}
	if ing.IsReefUnsafe {
		badges = append(badges, s.Badge(styles.BadgeDanger, "REEF"))
	}
	if len(badges) > 0 {
		out += " " + strings.Join(badges, " ")
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %sS", n, word)
}
