// Package root contains the root command for the application
package root

import (
	"presyohan/pricelist/internal/config"
	"presyohan/pricelist/internal/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Store   string
	Input   string
	Output  string
	Catalog string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "pricelist",
		Short: "A CLI tool to import pasted price lists into a store catalog.",
		Long: `pricelist parses freeform pasted price-list text into structured
category/item records, classifies each item against the store's existing
catalog, previews the resulting creates and updates, and applies them with
per-item failure isolation.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to pricelist!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
		},
	}

	// SharedFlags holds common flag values accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Store, "store", "s", "", "Store id the import targets")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input text file (\"-\" for stdin)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output CSV file for the preview")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Catalog, "catalog", "", "Catalog YAML file (overrides configuration)")
}

// BuildContainer loads the configuration, applies flag overrides and wires
// the application container.
func BuildContainer() (*container.Container, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	if SharedFlags.Store != "" {
		cfg.Store.ID = SharedFlags.Store
	}
	if SharedFlags.Catalog != "" {
		cfg.Catalog.Backend = "file"
		cfg.Catalog.File = SharedFlags.Catalog
	}
	return container.NewContainer(cfg)
}
