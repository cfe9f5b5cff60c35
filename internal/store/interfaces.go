package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultRepository persists vault records. Every method is scoped to one
// user; a vault of another user is indistinguishable from a missing one.
type VaultRepository interface {
	// GetVault returns [ErrNotFound] when the vault does not exist.
	GetVault(ctx context.Context, userID, vaultID string) (models.Vault, error)
	// CreateVault inserts a new vault. A name key collision yields
	// [ErrVaultNameTaken].
	CreateVault(ctx context.Context, vault models.Vault) error
	// EnsureVault inserts the vault unless one with the same id already
	// exists. It is safe to call concurrently.
	EnsureVault(ctx context.Context, vault models.Vault) error
	// ListVaults returns the user's vaults with entry counts, ordered by
	// creation time and then id.
	ListVaults(ctx context.Context, userID string) ([]models.Vault, error)
	// DeleteVault removes the vault and all of its entries atomically.
	DeleteVault(ctx context.Context, userID, vaultID string) error
}

// EntryRepository persists vault entries.
type EntryRepository interface {
	// UpsertEntry writes the entry, keeping the stored CreatedAt when the
	// entry already exists, and refreshes the parent vault's UpdatedAt.
	UpsertEntry(ctx context.Context, entry models.VaultEntry) error
	// ListEntries returns the entries of one vault ordered by id.
	ListEntries(ctx context.Context, userID, vaultID string) ([]models.VaultEntry, error)
	// DeleteEntry returns [ErrNotFound] when nothing was deleted. On success
	// the parent vault's UpdatedAt is refreshed.
	DeleteEntry(ctx context.Context, userID, vaultID, entryID string) error
}

// LegacyEntryRepository reads and removes records of the pre-vault layout.
type LegacyEntryRepository interface {
	ListLegacyEntries(ctx context.Context, userID string) ([]models.LegacyEntry, error)
	DeleteLegacyEntry(ctx context.Context, userID, entryID string) error
	// ListLegacyUsers returns the distinct owners of legacy records.
	ListLegacyUsers(ctx context.Context) ([]string, error)
}

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
