package service

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
)

var (
	ErrDecryption          = crypto.ErrDecryption
	ErrConfiguration       = generator.ErrConfiguration
	ErrDuplicateName       = errors.New("vault name already in use")
	ErrProtectedResource   = errors.New("resource is protected")
	ErrNotFound            = errors.New("not found")
	ErrStorage             = errors.New("storage failure")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailNotVerified    = errors.New("please verify your email before logging in")
	ErrWeakPassword        = errors.New("password must be at least 8 characters with uppercase, lowercase, digit and special character")
	ErrAccountExists       = errors.New("account already exists")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
	ErrAccountLocked       = limiter.ErrAccountLocked
	ErrRateLimited         = limiter.ErrRateLimited

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// ErrorKind is the stable, enumerable name of an error class that API
// clients can branch on.
type ErrorKind string

const (
	KindDecryption        ErrorKind = "decryption"
	KindDuplicateName     ErrorKind = "duplicate_name"
	KindProtectedResource ErrorKind = "protected_resource"
	KindNotFound          ErrorKind = "not_found"
	KindConfiguration     ErrorKind = "configuration"
	KindStorage           ErrorKind = "storage"
	KindInvalidData       ErrorKind = "invalid_data"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindUnverified        ErrorKind = "unverified"
	KindWeakPassword      ErrorKind = "weak_password"
	KindAccountExists     ErrorKind = "account_exists"
	KindLocked            ErrorKind = "locked"
	KindRateLimited       ErrorKind = "rate_limited"
	KindUnavailable       ErrorKind = "unavailable"
	KindInternal          ErrorKind = "internal"
)

// errorKinds is checked in order; the first sentinel found in the chain wins.
var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrDecryption, KindDecryption},
	{ErrDuplicateName, KindDuplicateName},
	{ErrProtectedResource, KindProtectedResource},
	{ErrNotFound, KindNotFound},
	{ErrConfiguration, KindConfiguration},
	{ErrInvalidDataProvided, KindInvalidData},
	{ErrInvalidCredentials, KindUnauthorized},
	{ErrTokenIsExpiredOrInvalid, KindUnauthorized},
	{ErrEmailNotVerified, KindUnverified},
	{ErrWeakPassword, KindWeakPassword},
	{ErrAccountExists, KindAccountExists},
	{ErrAccountLocked, KindLocked},
	{ErrRateLimited, KindRateLimited},
	{ErrIdentityUnavailable, KindUnavailable},
	{ErrStorage, KindStorage},
}

// KindOf classifies err. Errors outside the taxonomy are [KindInternal].
func KindOf(err error) ErrorKind {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}
