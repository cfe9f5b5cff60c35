package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/store"
)

var dbStatusOnly bool

func init() {
	rootCmd.AddCommand(dbMigrateCmd)

	dbMigrateCmd.Flags().BoolVar(&dbStatusOnly, "status", false, "print the applied schema version without migrating")
}

var dbMigrateCmd = &cobra.Command{
	Use:   "db-migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply the embedded schema migrations to the SQL store selected by
STORAGE_DB_DATABASE_URI (or the config file). The in-memory backend has no
schema and is rejected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := store.Open(ctx, cfg.Storage.DB.DSN, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if !dbStatusOnly {
			if err = db.Migrate(); err != nil {
				return fmt.Errorf("error migrating database: %w", err)
			}
		}

		version, err := db.SchemaVersion()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s schema version: %d\n", db.Dialect(), version)
		return nil
	},
}
