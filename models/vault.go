// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	// DefaultVaultID is the reserved identifier of the implicit vault every
	// user owns. It is created lazily on first access and cannot be deleted.
	DefaultVaultID = "default"

	// DefaultVaultName is the display name given to the default vault.
	DefaultVaultName = "Default"
)

// Vault is a named collection of credential entries owned by one user.
//
// Names are unique per user under Unicode case folding; NameKey holds the
// folded form and is what the storage layer enforces uniqueness on.
type Vault struct {
	// ID is an opaque random token, or DefaultVaultID for the implicit vault.
	ID string `json:"id"`

	// UserID is the externally issued identifier of the owner.
	UserID string `json:"-"`

	Name        string `json:"name"`
	NameKey     string `json:"-"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// EntryCount is populated by listings only.
	EntryCount int `json:"entry_count"`
}

// TableName returns the name of the database table
// associated with the Vault model.
func (v Vault) TableName() string {
	return "vaults"
}

// VaultEntry is a single stored credential. EncryptedPassword is always a
// CipherBlob; plaintext never reaches this struct.
type VaultEntry struct {
	// ID is the platform slug, unique within the parent vault.
	ID      string `json:"id"`
	VaultID string `json:"vault_id"`
	UserID  string `json:"-"`

	Username          string `json:"username"`
	EncryptedPassword string `json:"-"`
	URL               string `json:"url"`
	Notes             string `json:"notes"`

	// CreatedAt is set on first write and never changed afterwards.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is refreshed on every write.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultEntry model.
func (e VaultEntry) TableName() string {
	return "vault_entries"
}

// LegacyEntry is a credential stored in the pre-vault flat layout, directly
// under the user. Optional columns are pointers because older records may
// not carry them.
type LegacyEntry struct {
	UserID            string
	ID                string
	Username          string
	EncryptedPassword string
	URL               *string
	Notes             *string
	CreatedAt         *time.Time
	UpdatedAt         time.Time
}

// TableName returns the name of the database table
// associated with the LegacyEntry model.
func (e LegacyEntry) TableName() string {
	return "legacy_passwords"
}

// ToVaultEntry converts a legacy record into an entry of vaultID, filling
// missing optional fields with defaults. now is used when CreatedAt is absent.
func (e LegacyEntry) ToVaultEntry(vaultID string, now time.Time) VaultEntry {
	entry := VaultEntry{
		ID:                e.ID,
		VaultID:           vaultID,
		UserID:            e.UserID,
		Username:          e.Username,
		EncryptedPassword: e.EncryptedPassword,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if e.URL != nil {
		entry.URL = *e.URL
	}
	if e.Notes != nil {
		entry.Notes = *e.Notes
	}
	if e.CreatedAt != nil && !e.CreatedAt.IsZero() {
		entry.CreatedAt = *e.CreatedAt
	}

	return entry
}
