package main

import (
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

var (
	configPath string
	logLevel   string

	cfg *config.StructuredConfig
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:          "vaultadm",
	Short:        "vaultadm administers a go-pass-vault store",
	Version:      version,
	SilenceUsage: true,

	// PersistentPreRunE loads the storage configuration for every command
	// that touches the store.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.NewLogger("vaultadm", logLevel)
		if cmd.Annotations[annotationOffline] == "true" {
			return nil
		}

		var err error
		cfg, err = config.GetStorageConfig(configPath)
		if err != nil {
			return err
		}
		if cfg.App.Version == "" {
			cfg.App.Version = version
		}

		return nil
	},
}

// annotationOffline marks commands that never open the store.
const annotationOffline = "offline"

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}
