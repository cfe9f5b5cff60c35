package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered UUIDv7 strings, used for trace ids.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewRandomID returns a random UUIDv4. Vault ids use it so that they carry
// no ordering or timing information.
func NewRandomID() string {
	return uuid.NewString()
}
