// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Credentials is the signup/login request body. Password is the account
// password handled by the identity provider, not the vault master password.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is what the external identity provider tells us about an account.
// UserID is opaque: the core only relies on its uniqueness.
type Identity struct {
	UserID        string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}
