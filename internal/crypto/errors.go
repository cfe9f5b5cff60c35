// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// ErrDecryption is the only error Decrypt returns to callers. A wrong master
// password and a corrupted blob are deliberately indistinguishable.
var ErrDecryption = errors.New("decryption failed")

// Diagnostic reasons. They are logged, never returned.
var (
	errBlobEncoding  = errors.New("blob is not valid base64")
	errBlobTooShort  = errors.New("blob is too short")
	errBlobAlignment = errors.New("ciphertext is not block aligned")
	errBadPadding    = errors.New("invalid padding")
	errNotUTF8       = errors.New("plaintext is not valid utf-8")
)
