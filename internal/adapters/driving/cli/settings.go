package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Every key can also be overridden with an environment variable, e.g.
server.addr with SKINTELECT_SERVER_ADDR.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting. Lists such as server.cors_origins are comma-separated.

Examples:
  skintelect settings set storage.driver memory
  skintelect settings set server.cors_origins https://a.example,https://b.example`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure storage, the server and offers step by step.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	out := cmd.OutOrStdout()
	for _, key := range settingsService.Keys() {
		value, err := settingsService.GetValue(key)
		if err != nil {
			return err
		}
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(out, "%-36s %s\n", key, value)
	}

	if err := settingsService.Validate(); err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		fmt.Fprintln(out, "Run 'skintelect settings wizard' to fix configuration issues.")
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return err
	}
	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "Skintelect Settings Wizard")
	fmt.Fprintln(out, "==========================")
	fmt.Fprintln(out)

	// Step 1: storage
	fmt.Fprintln(out, "Step 1: Select Storage")
	fmt.Fprintln(out, "----------------------")
	drivers := domain.AllStorageDrivers()
	current := 1
	for i, d := range drivers {
		if d == settings.Storage.Driver {
			current = i + 1
		}
		fmt.Fprintf(out, "  %d. %s\n", i+1, d.Description())
	}
	fmt.Fprintf(out, "\nEnter choice [%d]: ", current)
	settings.Storage.Driver = drivers[parseChoice(readLine(reader), len(drivers), current)-1]

	if settings.Storage.Driver == domain.StorageDriverSQLite {
		fmt.Fprintf(out, "Database path [%s]: ", settings.Storage.Path)
		if path := readLine(reader); path != "" {
			settings.Storage.Path = path
		}
	}
	fmt.Fprintln(out)

	// Step 2: server
	fmt.Fprintln(out, "Step 2: HTTP Server")
	fmt.Fprintln(out, "-------------------")
	fmt.Fprintf(out, "Listen address [%s]: ", settings.Server.Addr)
	if addr := readLine(reader); addr != "" {
		settings.Server.Addr = addr
	}
	fmt.Fprintf(out, "Allowed CORS origins [%s]: ", strings.Join(settings.Server.CORSOrigins, ","))
	if origins := readLine(reader); origins != "" {
		settings.Server.CORSOrigins = splitList(origins)
	}
	fmt.Fprintln(out)

	// Step 3: offers
	fmt.Fprintln(out, "Step 3: Affiliate Offers")
	fmt.Fprintln(out, "------------------------")
	fmt.Fprintf(out, "Default country [%s]: ", settings.DefaultCountry)
	if country := readLine(reader); country != "" {
		settings.DefaultCountry = strings.ToUpper(country)
	}
	fmt.Fprintln(out)

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Fprintln(out, "Configuration Complete!")
	fmt.Fprintln(out, "=======================")
	if err := settingsService.Validate(); err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
	} else {
		fmt.Fprintln(out, "All settings are valid and saved.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func splitList(s string) []string {
	var items []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}
