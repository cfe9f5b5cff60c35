// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// IVSize is the CBC initialization vector length (one AES block).
const IVSize = aes.BlockSize

// cipherEngine is the AES-256-CBC implementation of [CipherService].
type cipherEngine struct {
	deriver KeyDeriver
	random  io.Reader
	logger  *logger.Logger
}

// NewCipherService returns a [CipherService] that derives keys with deriver.
// Salt and IV are read from crypto/rand.
func NewCipherService(deriver KeyDeriver, logger *logger.Logger) CipherService {
	return &cipherEngine{
		deriver: deriver,
		random:  rand.Reader,
		logger:  logger,
	}
}

// Encrypt implements [CipherService].
//
// Layout of the decoded blob:
//
//	salt (16) ‖ iv (16) ‖ AES-CBC(pkcs7(plaintext))
func (c *cipherEngine) Encrypt(plaintext, password string) (string, error) {
	header := make([]byte, SaltSize+IVSize)
	if _, err := io.ReadFull(c.random, header); err != nil {
		return "", fmt.Errorf("generate salt and iv: %w", err)
	}
	salt, iv := header[:SaltSize], header[SaltSize:]

	block, err := aes.NewCipher(c.deriver.DeriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(padded, padded)

	return base64.StdEncoding.EncodeToString(append(header, padded...)), nil
}

// Decrypt implements [CipherService]. The reason of a failure is logged at
// debug level; the caller only ever sees [ErrDecryption].
func (c *cipherEngine) Decrypt(blob, password string) (string, error) {
	plaintext, err := c.decrypt(blob, password)
	if err != nil {
		c.logger.Debug().Err(err).Msg("blob decryption failed")
		return "", ErrDecryption
	}

	return plaintext, nil
}

func (c *cipherEngine) decrypt(blob, password string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", errBlobEncoding
	}

	if len(data) < SaltSize+IVSize+aes.BlockSize {
		return "", errBlobTooShort
	}

	salt, iv, ciphertext := data[:SaltSize], data[SaltSize:SaltSize+IVSize], data[SaltSize+IVSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", errBlobAlignment
	}

	block, err := aes.NewCipher(c.deriver.DeriveKey(password, salt))
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := pkcs7Unpad(padded, aes.BlockSize)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(plaintext) {
		return "", errNotUTF8
	}

	return string(plaintext), nil
}
