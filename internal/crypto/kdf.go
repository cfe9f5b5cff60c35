// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of the random salt stored in every blob.
	SaltSize = 16

	// KeySize is the derived key length: AES-256.
	KeySize = 32

	// DefaultIterations is the published PBKDF2 iteration count. Changing it
	// makes existing blobs undecryptable, since blobs do not record it.
	DefaultIterations = 100_000
)

// pbkdf2Deriver is the PBKDF2-HMAC-SHA256 implementation of [KeyDeriver].
type pbkdf2Deriver struct {
	iterations int
}

// NewKeyDeriver returns the production [KeyDeriver]:
// PBKDF2-HMAC-SHA256 with [DefaultIterations] rounds and a 32-byte output.
func NewKeyDeriver() KeyDeriver {
	return &pbkdf2Deriver{iterations: DefaultIterations}
}

// DeriveKey implements [KeyDeriver].
func (d *pbkdf2Deriver) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, d.iterations, KeySize, sha256.New)
}
