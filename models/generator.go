// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// MinGeneratedLength and MaxGeneratedLength bound the generator length.
	MinGeneratedLength = 4
	MaxGeneratedLength = 128

	// DefaultGeneratedLength is used when a request omits the length.
	DefaultGeneratedLength = 16
)

// GeneratorOptions configures a single password generation.
type GeneratorOptions struct {
	Length     int  `json:"length"`
	UseUpper   bool `json:"use_upper"`
	UseDigits  bool `json:"use_digits"`
	UseSymbols bool `json:"use_symbols"`
}

// GenerateRequest is the HTTP body of a generation call. Pointer fields let
// absent values fall back to the defaults (length 16, every class enabled).
type GenerateRequest struct {
	Length     *int  `json:"length"`
	UseUpper   *bool `json:"use_upper"`
	UseDigits  *bool `json:"use_digits"`
	UseSymbols *bool `json:"use_symbols"`
}

// Options resolves the request into GeneratorOptions applying defaults.
func (r GenerateRequest) Options() GeneratorOptions {
	opts := GeneratorOptions{
		Length:     DefaultGeneratedLength,
		UseUpper:   true,
		UseDigits:  true,
		UseSymbols: true,
	}
	if r.Length != nil {
		opts.Length = *r.Length
	}
	if r.UseUpper != nil {
		opts.UseUpper = *r.UseUpper
	}
	if r.UseDigits != nil {
		opts.UseDigits = *r.UseDigits
	}
	if r.UseSymbols != nil {
		opts.UseSymbols = *r.UseSymbols
	}

	return opts
}
