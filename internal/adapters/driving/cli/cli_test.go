package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
	"github.com/skintelect/skintelect/internal/adapters/driven/storage/memory"
	"github.com/skintelect/skintelect/internal/core/services"
)

// testEnv holds the stores behind the services injected for a test.
type testEnv struct {
	ingredients *memory.IngredientStore
	products    *memory.ProductStore
	offers      *memory.OfferStore
	config      *memory.ConfigStore
}

// setupServices wires services over memory stores seeded with the built-in
// dataset, and clears them when the test ends.
func setupServices(t *testing.T) *testEnv {
	t.Helper()
	brands := memory.NewBrandStore()
	ingredients := memory.NewIngredientStore()
	products := memory.NewProductStore(brands, ingredients)
	offers := memory.NewOfferStore()
	seeder := catalog.NewSeeder(brands, ingredients, products, offers)

	ds, err := catalog.Embedded()
	require.NoError(t, err)
	_, err = seeder.Seed(context.Background(), ds)
	require.NoError(t, err)

	ingSvc := services.NewIngredientService(ingredients)
	prodSvc := services.NewProductService(products)
	config := memory.NewConfigStore()

	SetAnalyzerService(services.NewAnalyzerService(ingredients, nil))
	SetCatalogServices(ingSvc, prodSvc, services.NewAffiliateService(products, offers, nil, "US"))
	SetSuggestionService(services.NewSuggestionService(ingSvc, prodSvc, time.Minute))
	SetHealthService(services.NewHealthService(ingredients, "test"))
	SetSettingsService(services.NewSettingsService(config, t.TempDir()))
	SetSeeder(seeder)

	t.Cleanup(func() {
		analyzerService = nil
		ingredientService = nil
		productService = nil
		affiliateService = nil
		suggestionService = nil
		healthService = nil
		settingsService = nil
		catalogSeeder = nil
		serveConfig = nil
	})

	return &testEnv{ingredients: ingredients, products: products, offers: offers, config: config}
}

// resetFlags restores every flag to its default so package-level flag
// variables do not leak between tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and stdin, returning everything
// written to stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
