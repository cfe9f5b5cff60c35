// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package generator produces random candidate credentials.
//
// Every random choice is drawn from crypto/rand: generated passwords may be
// used as live credentials.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Character classes.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Symbols   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// ErrConfiguration is returned for options that cannot produce a password.
var ErrConfiguration = errors.New("invalid generator configuration")

// PasswordGenerator produces passwords satisfying [models.GeneratorOptions].
type PasswordGenerator interface {
	Generate(opts models.GeneratorOptions) (string, error)
}

type passwordGenerator struct {
	random io.Reader
}

// NewPasswordGenerator returns a [PasswordGenerator] backed by crypto/rand.
func NewPasswordGenerator() PasswordGenerator {
	return &passwordGenerator{random: rand.Reader}
}

// Generate returns a password of exactly opts.Length characters.
//
// The result holds at least one lowercase letter and at least one character
// of every enabled class; the remaining positions are uniform over the union
// of enabled classes, and the whole sequence is shuffled afterwards.
func (g *passwordGenerator) Generate(opts models.GeneratorOptions) (string, error) {
	if opts.Length < models.MinGeneratedLength || opts.Length > models.MaxGeneratedLength {
		return "", fmt.Errorf("%w: length must be between %d and %d",
			ErrConfiguration, models.MinGeneratedLength, models.MaxGeneratedLength)
	}

	classes := []string{Lowercase}
	if opts.UseUpper {
		classes = append(classes, Uppercase)
	}
	if opts.UseDigits {
		classes = append(classes, Digits)
	}
	if opts.UseSymbols {
		classes = append(classes, Symbols)
	}

	var pool string
	for _, class := range classes {
		pool += class
	}
	if pool == "" || len(classes) > opts.Length {
		return "", ErrConfiguration
	}

	password := make([]byte, 0, opts.Length)
	for _, class := range classes {
		c, err := g.pick(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	for len(password) < opts.Length {
		c, err := g.pick(pool)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := g.shuffle(password); err != nil {
		return "", err
	}

	return string(password), nil
}

func (g *passwordGenerator) pick(charset string) (byte, error) {
	i, err := g.intn(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// shuffle is a Fisher–Yates shuffle driven by the secure source.
func (g *passwordGenerator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func (g *passwordGenerator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}
