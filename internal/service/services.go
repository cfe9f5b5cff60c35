package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type Services struct {
	AppInfoService    AppInfoService
	AuthService       AuthService
	VaultService      VaultService
	MigrationService  MigrationService
	PasswordGenerator generator.PasswordGenerator
}

// NewServices wires every service. identity and guard may be nil for tools
// that never authenticate users (vaultadm); AuthService is then left nil.
func NewServices(storages *store.Storages, identity adapter.IdentityProvider, guard LoginGuard, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages, logger)
	if err != nil {
		return nil, err
	}

	cipher := crypto.NewCipherService(crypto.NewKeyDeriver(), logger)
	vaults := NewVaultService(storages.VaultRepository, storages.EntryRepository, cipher, cfg.App, logger)
	migrations := NewMigrationService(storages.LegacyEntryRepository, storages.EntryRepository, vaults, logger)

	services := &Services{
		AppInfoService:    appInfo,
		VaultService:      vaults,
		MigrationService:  migrations,
		PasswordGenerator: generator.NewPasswordGenerator(),
	}
	if identity != nil && guard != nil {
		services.AuthService = NewAuthService(identity, guard, migrations, cfg.App, logger)
	}

	return services, nil
}
