// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IncorrectMasterPasswordMsg is reported per entry when its blob cannot be
// decrypted with the supplied master password.
const IncorrectMasterPasswordMsg = "Incorrect master password"

// SaveEntryRequest carries everything needed to create or update one entry.
// An empty VaultID targets the default vault.
type SaveEntryRequest struct {
	UserID         string `json:"-"`
	VaultID        string `json:"vault_id,omitempty"`
	Platform       string `json:"platform"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	MasterPassword string `json:"master_password"`
	URL            string `json:"url,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// FetchEntriesRequest is the body of an entries fetch call.
type FetchEntriesRequest struct {
	MasterPassword string `json:"master_password"`
}

// FetchedEntry is the decrypted view of a VaultEntry returned to callers.
// Exactly one of Password and Error is non-nil.
type FetchedEntry struct {
	ID        string    `json:"id"`
	Platform  string    `json:"platform"`
	Username  string    `json:"username"`
	Password  *string   `json:"password"`
	URL       string    `json:"url"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Error     *string   `json:"error"`
}

// CreateVaultRequest is the body of a vault creation call.
type CreateVaultRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MigrationResult reports how many legacy entries were moved.
type MigrationResult struct {
	Status   string `json:"status"`
	Migrated int    `json:"migrated"`
}
