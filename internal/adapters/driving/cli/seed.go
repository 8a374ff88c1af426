package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/adapters/driven/catalog"
)

var (
	seedFile string
	seedJSON bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data into the catalog",
	Long: `Load brands, ingredients, products and offers into the configured store.

Without --file the dataset built into the binary is used. Seeding is
idempotent: records are matched by slug and keep their IDs. Ingredients
and products whose slug is not in the dataset are removed.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML dataset to load instead of the built-in one")
	seedCmd.Flags().BoolVar(&seedJSON, "json", false, "output counts as JSON")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if catalogSeeder == nil {
		return fmt.Errorf("seeder: %w", errNotConfigured)
	}

	ds, source, err := loadDataset(seedFile)
	if err != nil {
		return err
	}

	counts, err := catalogSeeder.Seed(cmd.Context(), ds)
	if err != nil {
		return fmt.Errorf("seeding from %s: %w", source, err)
	}

	if seedJSON {
		return writeJSON(cmd.OutOrStdout(), counts)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded from %s: %d brands, %d ingredients, %d products, %d offers",
		source, counts.Brands, counts.Ingredients, counts.Products, counts.Offers)
	if counts.Removed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d removed)", counts.Removed)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func loadDataset(path string) (*catalog.Dataset, string, error) {
	if path == "" {
		ds, err := catalog.Embedded()
		if err != nil {
			return nil, "", fmt.Errorf("loading built-in dataset: %w", err)
		}
		return ds, "built-in dataset", nil
	}
	ds, err := catalog.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return ds, path, nil
}
