package adapter

import "errors"

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrWeakPassword        = errors.New("password rejected by identity provider")
	ErrTooManyAttempts     = errors.New("too many attempts, try later")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrIdentityRejected    = errors.New("identity provider rejected request")
	ErrIdentityUnavailable = errors.New("identity provider unavailable")
)
