package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
	"github.com/skintelect/skintelect/internal/adapters/driving/httpapi"
	"github.com/skintelect/skintelect/internal/logger"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	// Options configures the HTTP server. --addr overrides Options.Addr.
	Options httpapi.Options

	// WatchPath, when set, is an external dataset reloaded on change.
	WatchPath string
}

var (
	serveConfig *ServeConfig
	serveAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API server.

The server exposes analysis, ingredient, product and affiliate endpoints
under /api, plus /metrics. When the catalog is loaded from a file and
catalog.watch is enabled, the file is reloaded whenever it changes.

Stop with ctrl+c; in-flight requests are given time to finish.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// SetServeConfig sets the configuration for the serve command.
func SetServeConfig(config *ServeConfig) {
	serveConfig = config
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg ServeConfig
	if serveConfig != nil {
		cfg = *serveConfig
	}
	if serveAddr != "" {
		cfg.Options.Addr = serveAddr
	}

	ports := &httpapi.Ports{
		Analyzer:    analyzerService,
		Ingredients: ingredientService,
		Products:    productService,
		Affiliate:   affiliateService,
		Suggestions: suggestionService,
		Health:      healthService,
	}
	server, err := httpapi.NewServer(ports, cfg.Options)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, server, cfg.WatchPath)
}

func serve(ctx context.Context, server *httpapi.Server, watchPath string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	if watchPath != "" && catalogSeeder != nil {
		w := catalog.NewWatcher(watchPath, catalogSeeder)
		w.OnReload(flushSuggestions)
		g.Go(func() error {
			return w.Run(ctx)
		})
	} else if watchPath != "" {
		logger.Warn("catalog watch requested but no seeder configured")
	}

	return g.Wait()
}

// flushSuggestions runs after every reload. A failed seed may still have
// written part of the dataset, so it flushes then too.
func flushSuggestions(catalog.Counts, error) {
	if suggestionService != nil {
		suggestionService.Flush()
	}
}
