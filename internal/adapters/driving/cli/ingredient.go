package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/core/domain"
)

var ingredientSearchOpts struct {
	functions      string
	fungalAcneSafe bool
	allergenFree   bool
	maxComedogenic int
	limit          int
	offset         int
	json           bool
}

var ingredientGetJSON bool

var ingredientCmd = &cobra.Command{
	Use:     "ingredient",
	Aliases: []string{"ingredients", "ing"},
	Short:   "Browse the ingredient catalog",
}

var ingredientGetCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show one ingredient",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngredientGet,
}

var ingredientSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingredients",
	Long: `Search ingredients by name, INCI name or alias.

Examples:
  skintelect ingredient search oil --fa-safe
  skintelect ingredient search --function humectant,emollient --max-comedogenic 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngredientSearch,
}

func init() {
	ingredientGetCmd.Flags().BoolVar(&ingredientGetJSON, "json", false, "output as JSON")

	f := ingredientSearchCmd.Flags()
	f.StringVar(&ingredientSearchOpts.functions, "function", "", "comma-separated functions to match (any of)")
	f.BoolVar(&ingredientSearchOpts.fungalAcneSafe, "fa-safe", false, "exclude fungal acne triggers")
	f.BoolVar(&ingredientSearchOpts.allergenFree, "allergen-free", false, "exclude allergens")
	f.IntVar(&ingredientSearchOpts.maxComedogenic, "max-comedogenic", -1, "maximum comedogenic rating (0-5)")
	f.IntVarP(&ingredientSearchOpts.limit, "limit", "n", 20, "maximum number of results")
	f.IntVar(&ingredientSearchOpts.offset, "offset", 0, "number of results to skip")
	f.BoolVar(&ingredientSearchOpts.json, "json", false, "output as JSON")

	ingredientCmd.AddCommand(ingredientGetCmd)
	ingredientCmd.AddCommand(ingredientSearchCmd)
	rootCmd.AddCommand(ingredientCmd)
}

func runIngredientGet(cmd *cobra.Command, args []string) error {
	if ingredientService == nil {
		return fmt.Errorf("ingredients: %w", errNotConfigured)
	}

	ing, err := ingredientService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ingredient %q: %w", args[0], err)
	}

	if ingredientGetJSON {
		return writeJSON(cmd.OutOrStdout(), ing)
	}
	writeIngredient(cmd.OutOrStdout(), ing)
	return nil
}

func runIngredientSearch(cmd *cobra.Command, args []string) error {
	if ingredientService == nil {
		return fmt.Errorf("ingredients: %w", errNotConfigured)
	}

	q, err := ingredientQueryFromFlags(args)
	if err != nil {
		return err
	}

	page, err := ingredientService.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if ingredientSearchOpts.json {
		return writeJSON(cmd.OutOrStdout(), page)
	}

	out := cmd.OutOrStdout()
	if len(page.Ingredients) == 0 {
		fmt.Fprintln(out, "No ingredients found.")
		return nil
	}
	for i := range page.Ingredients {
		ing := &page.Ingredients[i]
		fmt.Fprintf(out, "  %-28s %s%s\n", ing.Slug, ing.Name, flags(ing))
	}
	fmt.Fprintf(out, "\nShowing %d of %d\n", len(page.Ingredients), page.Total)
	return nil
}

func ingredientQueryFromFlags(args []string) (domain.IngredientQuery, error) {
	o := ingredientSearchOpts
	q := domain.IngredientQuery{
		FungalAcneSafe: o.fungalAcneSafe,
		AllergenFree:   o.allergenFree,
		Limit:          o.limit,
		Offset:         o.offset,
	}
	if len(args) > 0 {
		q.Query = args[0]
	}

	fns, err := parseFunctions(o.functions)
	if err != nil {
		return q, err
	}
	q.Functions = fns

	if o.maxComedogenic >= 0 {
		if o.maxComedogenic > 5 {
			return q, fmt.Errorf("--max-comedogenic must be between 0 and 5, got %d", o.maxComedogenic)
		}
		q.MaxComedogenic = domain.Rating(o.maxComedogenic)
	}
	return q, nil
}

func parseFunctions(s string) ([]domain.IngredientFunction, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var fns []domain.IngredientFunction
	for _, part := range strings.Split(s, ",") {
		fn := domain.IngredientFunction(strings.ToLower(strings.TrimSpace(part)))
		if fn == "" {
			continue
		}
		if !fn.IsValid() {
			return nil, fmt.Errorf("unknown function %q", fn)
		}
		fns = append(fns, fn)
	}
	return fns, nil
}
