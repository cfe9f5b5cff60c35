// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the boundary to the external identity provider.
//
// The primary abstraction is [IdentityProvider], which decouples the auth
// service from the provider's protocol. The package ships a REST
// implementation speaking the Identity Toolkit API ([NewIdentityToolkit]).
//
// Provider error codes are mapped by mapIdentityError to the sentinel values
// in errors.go so callers can use [errors.Is] (e.g. [ErrAccountExists],
// [ErrInvalidCredentials], [ErrIdentityUnavailable]).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_mock.go -package=mock

// IdentityProvider owns account credentials. The vault core never sees the
// account password beyond passing it through.
type IdentityProvider interface {
	// CreateAccount registers a new account and asks the provider to send a
	// verification email. The returned identity is unverified.
	CreateAccount(ctx context.Context, email, password string) (models.Identity, error)

	// Authenticate checks the credentials and reports whether the email has
	// been verified. An unverified identity is not an error here.
	Authenticate(ctx context.Context, email, password string) (models.Identity, error)

	// SendVerification signs in with the credentials and re-sends the
	// verification email unless the address is already verified.
	SendVerification(ctx context.Context, email, password string) error
}
