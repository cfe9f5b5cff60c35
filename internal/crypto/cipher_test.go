// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCipher uses a cheap iteration count so the suite stays fast; the
// blob format does not depend on it.
func newTestCipher() *cipherEngine {
	return NewCipherService(&pbkdf2Deriver{iterations: 1000}, logger.Nop()).(*cipherEngine)
}

func TestCipher_RoundTrip(t *testing.T) {
	c := newTestCipher()

	plaintexts := []string{
		"",
		"a",
		"Secr3t!",
		"exactly16bytes!!",
		"пароль with ünïcödé and emoji 🔐",
		string(bytes.Repeat([]byte("long "), 200)),
	}

	for _, p := range plaintexts {
		blob, err := c.Encrypt(p, "Hunter2")
		require.NoError(t, err)

		got, err := c.Decrypt(blob, "Hunter2")
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestCipher_BlobLayout(t *testing.T) {
	c := newTestCipher()
	header := append(bytes.Repeat([]byte{0x11}, SaltSize), bytes.Repeat([]byte{0x22}, IVSize)...)
	c.random = bytes.NewReader(header)

	blob, err := c.Encrypt("Secr3t!", "Hunter2")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	assert.Equal(t, header, raw[:SaltSize+IVSize])
	assert.Len(t, raw, SaltSize+IVSize+16)
}

func TestCipher_EncryptIsNonDeterministic(t *testing.T) {
	c := newTestCipher()

	b1, err := c.Encrypt("same plaintext", "same password")
	require.NoError(t, err)
	b2, err := c.Encrypt("same plaintext", "same password")
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2)

	r1, _ := base64.StdEncoding.DecodeString(b1)
	r2, _ := base64.StdEncoding.DecodeString(b2)
	assert.NotEqual(t, r1[:SaltSize], r2[:SaltSize], "salt must be fresh")
	assert.NotEqual(t, r1[SaltSize:SaltSize+IVSize], r2[SaltSize:SaltSize+IVSize], "iv must be fresh")
}

func TestCipher_WrongPasswordFails(t *testing.T) {
	c := newTestCipher()

	for i := 0; i < 20; i++ {
		blob, err := c.Encrypt("Secr3t!", "Hunter2")
		require.NoError(t, err)

		_, err = c.Decrypt(blob, "Wrong")
		require.ErrorIs(t, err, ErrDecryption)
	}
}

func TestCipher_MalformedBlobs(t *testing.T) {
	c := newTestCipher()

	valid, err := c.Encrypt("Secr3t!", "Hunter2")
	require.NoError(t, err)
	raw, _ := base64.StdEncoding.DecodeString(valid)

	tampered := append([]byte(nil), raw...)
	tampered[len(tampered)-1] ^= 0xFF

	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"empty", ""},
		{"salt and iv only", base64.StdEncoding.EncodeToString(raw[:SaltSize+IVSize])},
		{"too short", base64.StdEncoding.EncodeToString(raw[:10])},
		{"unaligned ciphertext", base64.StdEncoding.EncodeToString(raw[:len(raw)-1])},
		{"tampered last block", base64.StdEncoding.EncodeToString(tampered)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.blob, "Hunter2")
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestCipher_EncryptRandomFailure(t *testing.T) {
	c := newTestCipher()
	c.random = failingReader{}

	_, err := c.Encrypt("Secr3t!", "Hunter2")
	assert.Error(t, err)
}
