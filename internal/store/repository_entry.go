package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type entryRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewEntryRepository constructs an [EntryRepository] backed by db.
func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	return &entryRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// UpsertEntry inserts or updates the entry and bumps the vault's updated_at
// in one transaction. The ON CONFLICT clause never touches created_at.
func (r *entryRepository) UpsertEntry(ctx context.Context, entry models.VaultEntry) error {
	log := logger.FromContext(ctx)

	upsertQuery, upsertArgs, err := r.upsertEntryQuery(entry).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	touchQuery, touchArgs, err := r.touchVaultQuery(entry.UserID, entry.VaultID, entry.UpdatedAt).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
			log.Err(err).
				Str("func", "entryRepository.UpsertEntry").
				Str("vault_id", entry.VaultID).
				Str("entry_id", entry.ID).
				Msg("failed to upsert entry")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
			log.Err(err).Str("func", "entryRepository.UpsertEntry").Msg("failed to touch vault")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return nil
	})
}

func (r *entryRepository) ListEntries(ctx context.Context, userID, vaultID string) ([]models.VaultEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.listEntriesQuery(userID, vaultID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entryRepository.ListEntries").
			Str("vault_id", vaultID).
			Msg("failed to list entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.VaultEntry, 0, 16)
	for rows.Next() {
		var e models.VaultEntry
		scanErr := rows.Scan(
			&e.UserID,
			&e.VaultID,
			&e.ID,
			&e.Username,
			&e.EncryptedPassword,
			&e.URL,
			&e.Notes,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "entryRepository.ListEntries").Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *entryRepository) DeleteEntry(ctx context.Context, userID, vaultID, entryID string) error {
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := r.deleteEntryQuery(userID, vaultID, entryID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	touchQuery, touchArgs, err := r.touchVaultQuery(userID, vaultID, r.now()).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			log.Err(err).
				Str("func", "entryRepository.DeleteEntry").
				Str("entry_id", entryID).
				Msg("failed to delete entry")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
}
