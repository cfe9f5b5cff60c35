package limiter

import "errors"

var (
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrCounterUnavailable = errors.New("attempt counter unavailable")
)
