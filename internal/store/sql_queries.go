package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	upsertEntrySuffix = `ON CONFLICT (user_id, vault_id, id) DO UPDATE SET
		username = excluded.username,
		encrypted_password = excluded.encrypted_password,
		url = excluded.url,
		notes = excluded.notes,
		updated_at = excluded.updated_at`

	ensureVaultSuffix = `ON CONFLICT (user_id, id) DO NOTHING`

	entryCountColumn = `(SELECT COUNT(*) FROM vault_entries e WHERE e.user_id = v.user_id AND e.vault_id = v.id) AS entry_count`
)

var (
	vaultColumns  = []string{"user_id", "id", "name", "name_key", "description", "created_at", "updated_at"}
	entryColumns  = []string{"user_id", "vault_id", "id", "username", "encrypted_password", "url", "notes", "created_at", "updated_at"}
	legacyColumns = []string{"user_id", "id", "username", "encrypted_password", "url", "notes", "created_at", "updated_at"}
)

func (db *DB) getVaultQuery(userID, vaultID string) sq.SelectBuilder {
	return db.builder.
		Select(vaultColumns...).
		From(models.Vault{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": vaultID})
}

func (db *DB) insertVaultQuery(v models.Vault) sq.InsertBuilder {
	return db.builder.
		Insert(v.TableName()).
		Columns(vaultColumns...).
		Values(v.UserID, v.ID, v.Name, v.NameKey, v.Description, utc(v.CreatedAt), utc(v.UpdatedAt))
}

func (db *DB) listVaultsQuery(userID string) sq.SelectBuilder {
	return db.builder.
		Select("v.user_id", "v.id", "v.name", "v.name_key", "v.description", "v.created_at", "v.updated_at", entryCountColumn).
		From("vaults v").
		Where(sq.Eq{"v.user_id": userID}).
		OrderBy("v.created_at", "v.id")
}

func (db *DB) deleteVaultEntriesQuery(userID, vaultID string) sq.DeleteBuilder {
	return db.builder.
		Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"vault_id": vaultID})
}

func (db *DB) deleteVaultQuery(userID, vaultID string) sq.DeleteBuilder {
	return db.builder.
		Delete(models.Vault{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": vaultID})
}

func (db *DB) touchVaultQuery(userID, vaultID string, at time.Time) sq.UpdateBuilder {
	return db.builder.
		Update(models.Vault{}.TableName()).
		Set("updated_at", utc(at)).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": vaultID})
}

func (db *DB) upsertEntryQuery(e models.VaultEntry) sq.InsertBuilder {
	return db.builder.
		Insert(e.TableName()).
		Columns(entryColumns...).
		Values(e.UserID, e.VaultID, e.ID, e.Username, e.EncryptedPassword, e.URL, e.Notes, utc(e.CreatedAt), utc(e.UpdatedAt)).
		Suffix(upsertEntrySuffix)
}

func (db *DB) listEntriesQuery(userID, vaultID string) sq.SelectBuilder {
	return db.builder.
		Select(entryColumns...).
		From(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"vault_id": vaultID}).
		OrderBy("id")
}

func (db *DB) deleteEntryQuery(userID, vaultID, entryID string) sq.DeleteBuilder {
	return db.builder.
		Delete(models.VaultEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"vault_id": vaultID}).
		Where(sq.Eq{"id": entryID})
}

func (db *DB) listLegacyQuery(userID string) sq.SelectBuilder {
	return db.builder.
		Select(legacyColumns...).
		From(models.LegacyEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")
}

func (db *DB) deleteLegacyQuery(userID, entryID string) sq.DeleteBuilder {
	return db.builder.
		Delete(models.LegacyEntry{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"id": entryID})
}

func (db *DB) listLegacyUsersQuery() sq.SelectBuilder {
	return db.builder.
		Select("user_id").
		Distinct().
		From(models.LegacyEntry{}.TableName()).
		OrderBy("user_id")
}
