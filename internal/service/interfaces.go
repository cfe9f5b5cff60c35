package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// VaultService owns the vault and entry lifecycle. It is the boundary that
// turns storage and crypto failures into the error taxonomy of this package.
type VaultService interface {
	// ResolveOrCreateDefaultVault makes sure the user's default vault exists
	// and returns its id. Safe to call any number of times.
	ResolveOrCreateDefaultVault(ctx context.Context, userID string) (string, error)

	SaveEntry(ctx context.Context, req models.SaveEntryRequest) (models.VaultEntry, error)
	// FetchEntries never fails because of a single undecryptable entry: such
	// entries carry a nil Password and a non-nil Error.
	FetchEntries(ctx context.Context, userID, vaultID, masterPassword string) ([]models.FetchedEntry, error)
	DeleteEntry(ctx context.Context, userID, vaultID, platform string) error

	CreateVault(ctx context.Context, userID, name, description string) (models.Vault, error)
	ListVaults(ctx context.Context, userID string) ([]models.Vault, error)
	DeleteVault(ctx context.Context, userID, vaultID string) error
}

// MigrationService moves records of the pre-vault flat layout into the
// default vault.
type MigrationService interface {
	// MigrateLegacyEntries returns how many entries were moved for userID.
	MigrateLegacyEntries(ctx context.Context, userID string) (int, error)
	// MigrateAll migrates every user that still owns legacy records.
	MigrateAll(ctx context.Context) (int, error)
}

type AuthService interface {
	Signup(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	Login(ctx context.Context, credentials models.Credentials) (models.Identity, error)
	ResendVerification(ctx context.Context, credentials models.Credentials) error
	CreateToken(ctx context.Context, identity models.Identity) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// Health reports whether the storage backend answers.
	Health(ctx context.Context) error
}

// LoginGuard tracks failed logins per email.
type LoginGuard interface {
	Check(ctx context.Context, email string) error
	Fail(ctx context.Context, email string) error
	Succeed(ctx context.Context, email string) error
}
