// Package cli defines the kharcha command tree: serve runs the web UI,
// export/import move backups, clear wipes the ledger. Every command
// goes through the same bootstrap of env file, configuration and
// logger.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"kharcha/internal/config"
	"kharcha/internal/log"
	"kharcha/internal/storage"
)

var configPath string

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kharcha",
		Short:         "Personal expense tracker",
		Long:          "Kharcha tracks personal expenses with budgets, category breakdowns and charts, served as a local web app.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML or JSON config file")
	root.AddCommand(newServeCmd(), newExportCmd(), newImportCmd(), newClearCmd())
	return root
}

// setup loads the optional .env file, the configuration and the root
// logger shared by all commands.
func setup() (*config.Config, *log.Logger, error) {
	_ = godotenv.Load() // a missing .env file is fine

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(log.ParseLevel(cfg.LogLevel), "kharcha")
	log.SetDefault(logger)
	return cfg, logger, nil
}

// openStore selects the persistence backend from the configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.NewSQLiteStore(cfg.SQLiteDBPath)
	default:
		return storage.NewFileStore(cfg.DataDir)
	}
}
