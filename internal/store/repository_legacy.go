package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type legacyEntryRepository struct {
	*DB
	logger *logger.Logger
}

// NewLegacyEntryRepository constructs a [LegacyEntryRepository] over the
// "legacy_passwords" table.
func NewLegacyEntryRepository(db *DB, logger *logger.Logger) LegacyEntryRepository {
	return &legacyEntryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *legacyEntryRepository) ListLegacyEntries(ctx context.Context, userID string) ([]models.LegacyEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.listLegacyQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "legacyEntryRepository.ListLegacyEntries").Msg("failed to list legacy entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.LegacyEntry
	for rows.Next() {
		var (
			e         models.LegacyEntry
			url       sql.NullString
			notes     sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&e.UserID, &e.ID, &e.Username, &e.EncryptedPassword, &url, &notes, &createdAt, &e.UpdatedAt); err != nil {
			log.Err(err).Str("func", "legacyEntryRepository.ListLegacyEntries").Msg("failed to scan legacy row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if url.Valid {
			e.URL = &url.String
		}
		if notes.Valid {
			e.Notes = &notes.String
		}
		if createdAt.Valid {
			e.CreatedAt = &createdAt.Time
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *legacyEntryRepository) DeleteLegacyEntry(ctx context.Context, userID, entryID string) error {
	query, args, err := r.deleteLegacyQuery(userID, entryID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "legacyEntryRepository.DeleteLegacyEntry").
			Str("entry_id", entryID).
			Msg("failed to delete legacy entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res)
}

func (r *legacyEntryRepository) ListLegacyUsers(ctx context.Context) ([]string, error) {
	query, args, err := r.listLegacyUsersQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}
