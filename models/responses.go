// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse is the JSON body written for every failed API call.
// Kind is stable and enumerable so clients can branch on it.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Status  string `json:"status"`
	UID     string `json:"uid"`
	Message string `json:"message,omitempty"`
}

// EntriesResponse wraps a fetch result.
type EntriesResponse struct {
	Status  string         `json:"status"`
	Entries []FetchedEntry `json:"entries"`
}

// EntryResponse wraps a saved entry. The password is never echoed back.
type EntryResponse struct {
	Status string     `json:"status"`
	Entry  VaultEntry `json:"entry"`
}

// VaultResponse wraps a created vault.
type VaultResponse struct {
	Status string `json:"status"`
	Vault  Vault  `json:"vault"`
}

// VaultsResponse wraps a vault listing.
type VaultsResponse struct {
	Status string  `json:"status"`
	Vaults []Vault `json:"vaults"`
}

// GeneratedPasswordResponse wraps a generated password.
type GeneratedPasswordResponse struct {
	Status   string `json:"status"`
	Password string `json:"password"`
}

// HealthResponse is returned by the health and ping endpoints.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}
