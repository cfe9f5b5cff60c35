package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type migrationService struct {
	legacy  store.LegacyEntryRepository
	entries store.EntryRepository
	vaults  VaultService

	now func() time.Time

	logger *logger.Logger
}

// NewMigrationService constructs a MigrationService. vaults is only used to
// resolve the default vault.
func NewMigrationService(legacy store.LegacyEntryRepository, entries store.EntryRepository, vaults VaultService, logger *logger.Logger) MigrationService {
	return &migrationService{
		legacy:  legacy,
		entries: entries,
		vaults:  vaults,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

// MigrateLegacyEntries copies each legacy entry into the default vault under
// the same id and only then deletes the legacy record. An interruption leaves
// a duplicate, never a loss; a later run picks up whatever is left.
func (m *migrationService) MigrateLegacyEntries(ctx context.Context, userID string) (int, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return 0, ErrInvalidDataProvided
	}

	legacy, err := m.legacy.ListLegacyEntries(ctx, userID)
	if err != nil {
		log.Err(err).Msg("legacy entries listing failed")
		return 0, storageError("list legacy entries", err)
	}
	if len(legacy) == 0 {
		return 0, nil
	}

	vaultID, err := m.vaults.ResolveOrCreateDefaultVault(ctx, userID)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, old := range legacy {
		entry := old.ToVaultEntry(vaultID, m.now())
		entry.UserID = userID

		if err = m.entries.UpsertEntry(ctx, entry); err != nil {
			log.Err(err).Str("entry_id", old.ID).Int("migrated", migrated).Msg("legacy entry copy failed")
			return migrated, storageError("copy legacy entry", err)
		}
		if err = m.legacy.DeleteLegacyEntry(ctx, userID, old.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Err(err).Str("entry_id", old.ID).Int("migrated", migrated).Msg("legacy entry removal failed")
			return migrated, storageError("delete legacy entry", err)
		}
		migrated++
	}

	log.Info().Int("migrated", migrated).Msg("legacy entries migrated")
	return migrated, nil
}

func (m *migrationService) MigrateAll(ctx context.Context) (int, error) {
	users, err := m.legacy.ListLegacyUsers(ctx)
	if err != nil {
		m.logger.Err(err).Msg("legacy users listing failed")
		return 0, storageError("list legacy users", err)
	}

	total := 0
	for _, userID := range users {
		migrated, err := m.MigrateLegacyEntries(m.logger.WithUser(userID).WithContext(ctx), userID)
		total += migrated
		if err != nil {
			return total, fmt.Errorf("migrate user %s: %w", userID, err)
		}
	}

	m.logger.Info().Int("users", len(users)).Int("migrated", total).Msg("legacy migration finished")
	return total, nil
}
