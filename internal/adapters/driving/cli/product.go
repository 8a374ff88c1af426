package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/core/domain"
)

var productSearchOpts struct {
	brand          string
	category       string
	fungalAcneSafe bool
	minRating      float64
	ingredient     string
	without        string
	sort           string
	limit          int
	offset         int
	json           bool
}

var (
	productJSON    bool
	productCountry string
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products"},
	Short:   "Browse the product catalog",
}

var productGetCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show one product with its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductGet,
}

var productSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products",
	Long: `Search products by name or brand.

Examples:
  skintelect product search --category moisturizer --fa-safe
  skintelect product search serum --sort rating --without fragrance`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProductSearch,
}

var productOffersCmd = &cobra.Command{
	Use:   "offers <slug>",
	Short: "List retailer offers for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductOffers,
}

var productSafetyCmd = &cobra.Command{
	Use:   "safety <slug>",
	Short: "Summarize ingredient warnings for a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductSafety,
}

func init() {
	f := productSearchCmd.Flags()
	f.StringVar(&productSearchOpts.brand, "brand", "", "brand slug")
	f.StringVar(&productSearchOpts.category, "category", "", "product category")
	f.BoolVar(&productSearchOpts.fungalAcneSafe, "fa-safe", false, "only fungal-acne-safe products")
	f.Float64Var(&productSearchOpts.minRating, "min-rating", 0, "minimum average rating (0-5)")
	f.StringVar(&productSearchOpts.ingredient, "with", "", "only products containing this ingredient slug")
	f.StringVar(&productSearchOpts.without, "without", "", "exclude products containing this ingredient slug")
	f.StringVar(&productSearchOpts.sort, "sort", string(domain.SortByName), "sort order: name, rating or newest")
	f.IntVarP(&productSearchOpts.limit, "limit", "n", 20, "maximum number of results")
	f.IntVar(&productSearchOpts.offset, "offset", 0, "number of results to skip")
	f.BoolVar(&productSearchOpts.json, "json", false, "output as JSON")

	for _, c := range []*cobra.Command{productGetCmd, productOffersCmd, productSafetyCmd} {
		c.Flags().BoolVar(&productJSON, "json", false, "output as JSON")
	}
	productOffersCmd.Flags().StringVar(&productCountry, "country", "", "ISO country code (default from settings)")

	productCmd.AddCommand(productGetCmd, productSearchCmd, productOffersCmd, productSafetyCmd)
	rootCmd.AddCommand(productCmd)
}

func runProductGet(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return fmt.Errorf("products: %w", errNotConfigured)
	}

	p, err := productService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("product %q: %w", args[0], err)
	}

	if productJSON {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	writeProduct(cmd.OutOrStdout(), p)
	return nil
}

func runProductSearch(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return fmt.Errorf("products: %w", errNotConfigured)
	}

	q, err := productQueryFromFlags(args)
	if err != nil {
		return err
	}

	page, err := productService.Search(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if productSearchOpts.json {
		return writeJSON(cmd.OutOrStdout(), page)
	}

	out := cmd.OutOrStdout()
	if len(page.Products) == 0 {
		fmt.Fprintln(out, "No products found.")
		return nil
	}
	for i := range page.Products {
		p := &page.Products[i]
		brand := ""
		if p.Brand != nil {
			brand = p.Brand.Name
		}
		fmt.Fprintf(out, "  %-40s %-20s %-12s %.1f\n", p.Slug, brand, p.Category, p.AverageRating)
	}
	fmt.Fprintf(out, "\nShowing %d of %d\n", len(page.Products), page.Total)
	return nil
}

func productQueryFromFlags(args []string) (domain.ProductQuery, error) {
	o := productSearchOpts
	q := domain.ProductQuery{
		BrandSlug:             o.brand,
		Category:              domain.ProductCategory(o.category),
		FungalAcneSafe:        o.fungalAcneSafe,
		MinRating:             o.minRating,
		IngredientSlug:        o.ingredient,
		ExcludeIngredientSlug: o.without,
		Sort:                  domain.ProductSort(o.sort),
		Limit:                 o.limit,
		Offset:                o.offset,
	}
	if len(args) > 0 {
		q.Query = args[0]
	}
	if q.Category != "" && !q.Category.IsValid() {
		return q, fmt.Errorf("unknown category %q", o.category)
	}
	if !q.Sort.IsValid() {
		return q, fmt.Errorf("unknown sort %q", o.sort)
	}
	if q.MinRating < 0 || q.MinRating > 5 {
		return q, fmt.Errorf("--min-rating must be between 0 and 5, got %g", q.MinRating)
	}
	return q, nil
}

func runProductOffers(cmd *cobra.Command, args []string) error {
	if affiliateService == nil {
		return fmt.Errorf("affiliate: %w", errNotConfigured)
	}

	cmp, err := affiliateService.Offers(cmd.Context(), args[0], productCountry)
	if err != nil {
		return fmt.Errorf("offers for %q: %w", args[0], err)
	}

	if productJSON {
		return writeJSON(cmd.OutOrStdout(), cmp)
	}

	out := cmd.OutOrStdout()
	if len(cmp.Offers) == 0 {
		fmt.Fprintln(out, "No offers found.")
		return nil
	}
	for i := range cmp.Offers {
		o := &cmp.Offers[i]
		marker := " "
		if cmp.Primary != nil && cmp.Primary.ID == o.ID {
			marker = "*"
		}
		price := "-"
		if o.Price != nil {
			price = fmt.Sprintf("%.2f %s", *o.Price, o.Currency)
		}
		fmt.Fprintf(out, "%s %-20s %-14s %-12s %s\n", marker, o.RetailerName, price, o.Availability, o.ID)
	}
	return nil
}

func runProductSafety(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return fmt.Errorf("products: %w", errNotConfigured)
	}

	summary, err := productService.Safety(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("safety for %q: %w", args[0], err)
	}

	if productJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	writeSummary(cmd.OutOrStdout(), summary)
	return nil
}
