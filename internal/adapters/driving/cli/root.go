// Package cli implements the skintelect command line.
//
// Commands read their dependencies from package state populated by the
// Set* functions before Execute is called.
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
	"github.com/skintelect/skintelect/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	configDir string
)

var (
	analyzerService   driving.AnalyzerService
	ingredientService driving.IngredientService
	productService    driving.ProductService
	affiliateService  driving.AffiliateService
	suggestionService driving.SuggestionService
	healthService     driving.HealthService
	settingsService   driving.SettingsService
	catalogSeeder     *catalog.Seeder
)

var errNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "skintelect",
	Short: "Skincare ingredient analysis",
	Long: `Skintelect analyzes cosmetic ingredient lists against a reference catalog.

It flags fungal acne triggers, allergens, irritants, comedogenic and
reef-unsafe ingredients, and serves the catalog over HTTP, MCP and a
terminal UI.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.skintelect)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version reported by the version command and health checks.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetAnalyzerService sets the analyzer used by analyze, tui, mcp and serve.
func SetAnalyzerService(s driving.AnalyzerService) {
	analyzerService = s
}

// SetCatalogServices sets the ingredient, product and affiliate services.
func SetCatalogServices(ingredients driving.IngredientService, products driving.ProductService, affiliate driving.AffiliateService) {
	ingredientService = ingredients
	productService = products
	affiliateService = affiliate
}

// SetSuggestionService sets the cached suggestion service used by serve.
func SetSuggestionService(s driving.SuggestionService) {
	suggestionService = s
}

// SetHealthService sets the health service used by serve.
func SetHealthService(s driving.HealthService) {
	healthService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetSeeder sets the seeder used by seed and the catalog watcher.
func SetSeeder(s *catalog.Seeder) {
	catalogSeeder = s
}

// ConfigDirFromArgs returns the value of --config in args, or "" when absent.
// main needs it before flags are parsed to open the config store.
func ConfigDirFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
