// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyDeriver_UsesPublishedIterationCount(t *testing.T) {
	d, ok := NewKeyDeriver().(*pbkdf2Deriver)
	require.True(t, ok)

	assert.Equal(t, DefaultIterations, d.iterations)
	assert.GreaterOrEqual(t, d.iterations, 100_000)
}

func TestDeriveKey_KnownVector(t *testing.T) {
	// PBKDF2-HMAC-SHA256("password", "salt", 1, 32)
	want, _ := hex.DecodeString("120fb6cffcf8b32c43e7225256c4f837a86548c92ccc35480805987cb70be17b")

	got := (&pbkdf2Deriver{iterations: 1}).DeriveKey("password", []byte("salt"))

	assert.Equal(t, want, got)
}

func TestDeriveKey_DeterministicForSameInputs(t *testing.T) {
	d := NewKeyDeriver()
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1 := d.DeriveKey("correct horse battery staple", salt)
	k2 := d.DeriveKey("correct horse battery staple", salt)

	require.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_DifferentInputsProduceDifferentKeys(t *testing.T) {
	d := &pbkdf2Deriver{iterations: 1000}
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	assert.NotEqual(t, d.DeriveKey("same", salt1), d.DeriveKey("same", salt2))
	assert.NotEqual(t, d.DeriveKey("one", salt1), d.DeriveKey("two", salt1))
}
