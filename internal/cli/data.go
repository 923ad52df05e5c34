package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kharcha/internal/backup"
	"kharcha/internal/ledger"
)

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the expense backup as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			led, err := ledger.Open(store)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return backup.Export(w, led.All())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all expenses with a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			led, err := ledger.Open(store)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			records, err := backup.Import(f)
			if err != nil {
				return err
			}
			if err := led.ReplaceAll(records); err != nil {
				return err
			}
			logger.Info("Backup restored", "records", len(records))
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			led, err := ledger.Open(store)
			if err != nil {
				return err
			}

			if err := led.Clear(); err != nil {
				return err
			}
			logger.Info("Ledger cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
