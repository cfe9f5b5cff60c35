package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultRepository is the SQL implementation of [VaultRepository] over the
// "vaults" table.
type vaultRepository struct {
	*DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	return &vaultRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *vaultRepository) GetVault(ctx context.Context, userID, vaultID string) (models.Vault, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.getVaultQuery(userID, vaultID).ToSql()
	if err != nil {
		return models.Vault{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var v models.Vault
	err = r.QueryRowContext(ctx, query, args...).
		Scan(&v.UserID, &v.ID, &v.Name, &v.NameKey, &v.Description, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vault{}, ErrNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.GetVault").
			Str("vault_id", vaultID).
			Msg("failed to select vault")
		return models.Vault{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return v, nil
}

func (r *vaultRepository) CreateVault(ctx context.Context, vault models.Vault) error {
	log := logger.FromContext(ctx)

	query, args, err := r.insertVaultQuery(vault).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			return ErrVaultNameTaken
		}
		log.Err(err).
			Str("func", "vaultRepository.CreateVault").
			Str("vault_id", vault.ID).
			Msg("failed to insert vault")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *vaultRepository) EnsureVault(ctx context.Context, vault models.Vault) error {
	log := logger.FromContext(ctx)

	query, args, err := r.insertVaultQuery(vault).Suffix(ensureVaultSuffix).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		if r.errorClassificator.IsUniqueViolation(err) {
			return ErrVaultNameTaken
		}
		log.Err(err).
			Str("func", "vaultRepository.EnsureVault").
			Str("vault_id", vault.ID).
			Msg("failed to ensure vault")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *vaultRepository) ListVaults(ctx context.Context, userID string) ([]models.Vault, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.listVaultsQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "vaultRepository.ListVaults").Msg("failed to list vaults")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	vaults := make([]models.Vault, 0, 4)
	for rows.Next() {
		var v models.Vault
		if err := rows.Scan(&v.UserID, &v.ID, &v.Name, &v.NameKey, &v.Description, &v.CreatedAt, &v.UpdatedAt, &v.EntryCount); err != nil {
			log.Err(err).Str("func", "vaultRepository.ListVaults").Msg("failed to scan vault row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		vaults = append(vaults, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return vaults, nil
}

// DeleteVault removes entries first and then the vault row within a single
// transaction.
func (r *vaultRepository) DeleteVault(ctx context.Context, userID, vaultID string) error {
	log := logger.FromContext(ctx)

	entriesQuery, entriesArgs, err := r.deleteVaultEntriesQuery(userID, vaultID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	vaultQuery, vaultArgs, err := r.deleteVaultQuery(userID, vaultID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, entriesQuery, entriesArgs...); err != nil {
			log.Err(err).Str("func", "vaultRepository.DeleteVault").Str("vault_id", vaultID).Msg("failed to delete vault entries")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		res, err := tx.ExecContext(ctx, vaultQuery, vaultArgs...)
		if err != nil {
			log.Err(err).Str("func", "vaultRepository.DeleteVault").Str("vault_id", vaultID).Msg("failed to delete vault")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		return requireAffected(res)
	})
}

// requireAffected turns a statement that touched no rows into [ErrNotFound].
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
