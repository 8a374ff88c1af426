// Command skintelect analyses cosmetic ingredient lists and serves the
// ingredient and product catalog over a CLI, an HTTP API, MCP and a TUI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
	"github.com/skintelect/skintelect/internal/adapters/driven/config/file"
	"github.com/skintelect/skintelect/internal/adapters/driven/storage/memory"
	"github.com/skintelect/skintelect/internal/adapters/driven/storage/sqlite"
	"github.com/skintelect/skintelect/internal/adapters/driving/cli"
	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driven"
	"github.com/skintelect/skintelect/internal/core/services"
	"github.com/skintelect/skintelect/internal/logger"
	"github.com/skintelect/skintelect/internal/metrics"
	"github.com/skintelect/skintelect/internal/ratelimit"
)

// Set by -ldflags "-X main.version=...".
var version = "dev"

func main() {
	code := run()
	logger.Sync()
	os.Exit(code)
}

func run() int {
	cli.SetVersion(version)

	closer, err := wire(context.Background(), configDir(os.Args[1:], os.Getenv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closer.Close()

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}

// configDir picks --config, then $SKINTELECT_HOME. Empty means ~/.skintelect.
func configDir(args []string, getenv func(string) string) string {
	if dir := cli.ConfigDirFromArgs(args); dir != "" {
		return dir
	}
	return getenv("SKINTELECT_HOME")
}

// catalogStores groups the four catalog stores of one backend.
type catalogStores struct {
	brands      driven.BrandStore
	ingredients driven.IngredientStore
	products    driven.ProductStore
	offers      driven.OfferStore
	pinger      driven.Pinger
	closer      io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// wire builds every service and hands it to the CLI.
func wire(ctx context.Context, configDir string) (io.Closer, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	dataDir := filepath.Join(filepath.Dir(configStore.Path()), "data")
	settingsService := services.NewSettingsService(configStore, dataDir)
	cli.SetSettingsService(settingsService)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	stores, err := openStores(settings.Storage)
	if err != nil {
		return nil, err
	}

	seeder := catalog.NewSeeder(stores.brands, stores.ingredients, stores.products, stores.offers)
	if err := seedIfEmpty(ctx, seeder, stores.ingredients, settings.Catalog.Path); err != nil {
		stores.closer.Close()
		return nil, err
	}
	cli.SetSeeder(seeder)

	registry, err := metrics.New()
	if err != nil {
		stores.closer.Close()
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	ingredientService := services.NewIngredientService(stores.ingredients)
	productService := services.NewProductService(stores.products)
	affiliateService := services.NewAffiliateService(stores.products, stores.offers, registry, settings.DefaultCountry)
	ttl := time.Duration(settings.SuggestionTTLSeconds) * time.Second

	cli.SetAnalyzerService(services.NewAnalyzerService(stores.ingredients, registry))
	cli.SetCatalogServices(ingredientService, productService, affiliateService)
	cli.SetSuggestionService(services.NewSuggestionService(ingredientService, productService, ttl))
	cli.SetHealthService(services.NewHealthService(stores.pinger, version))

	serveConfig := &cli.ServeConfig{}
	serveConfig.Options.Addr = settings.Server.Addr
	serveConfig.Options.CORSOrigins = settings.Server.CORSOrigins
	serveConfig.Options.ReadHeaderTimeout = time.Duration(settings.Server.ReadHeaderTimeoutSeconds) * time.Second
	serveConfig.Options.Limiter = ratelimit.New(ratelimit.FromSettings(settings.RateLimit))
	serveConfig.Options.Metrics = registry
	if settings.Catalog.Watch && settings.Catalog.Path != "" {
		serveConfig.WatchPath = settings.Catalog.Path
	}
	cli.SetServeConfig(serveConfig)

	return stores.closer, nil
}

func openStores(cfg domain.StorageSettings) (*catalogStores, error) {
	switch cfg.Driver {
	case domain.StorageDriverMemory:
		logger.Debug("using in-memory catalog")
		brands := memory.NewBrandStore()
		ingredients := memory.NewIngredientStore()
		return &catalogStores{
			brands:      brands,
			ingredients: ingredients,
			products:    memory.NewProductStore(brands, ingredients),
			offers:      memory.NewOfferStore(),
			pinger:      ingredients,
			closer:      nopCloser{},
		}, nil
	default:
		logger.Debug("using sqlite catalog at %s", cfg.Path)
		store, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening catalog database: %w", err)
		}
		return &catalogStores{
			brands:      store.BrandStore(),
			ingredients: store.IngredientStore(),
			products:    store.ProductStore(),
			offers:      store.OfferStore(),
			pinger:      store,
			closer:      store,
		}, nil
	}
}

// seedIfEmpty loads the configured dataset, or the embedded one, into an
// empty catalog.
func seedIfEmpty(ctx context.Context, seeder *catalog.Seeder, ingredients driven.IngredientStore, path string) error {
	empty, err := catalog.IsEmpty(ctx, ingredients)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	var ds *catalog.Dataset
	if path != "" {
		ds, err = catalog.LoadFile(path)
	} else {
		ds, err = catalog.Embedded()
	}
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	counts, err := seeder.Seed(ctx, ds)
	if err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}
	logger.Debug("seeded empty catalog with %d ingredients", counts.Ingredients)
	return nil
}
