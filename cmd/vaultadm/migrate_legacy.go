package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

var migrateUserID string

func init() {
	rootCmd.AddCommand(migrateLegacyCmd)

	migrateLegacyCmd.Flags().StringVarP(&migrateUserID, "user", "u", "", "migrate a single user (default: every user with legacy records)")
}

var migrateLegacyCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Move legacy flat-layout entries into default vaults",
	Long: `Copy every legacy credential into its owner's default vault and delete
the legacy record. Safe to run repeatedly: already migrated records are gone
from the legacy table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
		if err != nil {
			return err
		}
		defer storages.Close()

		services, err := service.NewServices(storages, nil, nil, *cfg, log)
		if err != nil {
			return err
		}

		var migrated int
		if migrateUserID != "" {
			migrated, err = services.MigrationService.MigrateLegacyEntries(ctx, migrateUserID)
		} else {
			migrated, err = services.MigrationService.MigrateAll(ctx)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d legacy entries\n", migrated)
		return err
	},
}
