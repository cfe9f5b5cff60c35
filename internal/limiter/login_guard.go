package limiter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

const (
	failuresKeyPrefix = "login:fail:"
	lockKeyPrefix     = "login:lock:"
)

// LoginGuard locks an email for Lockout after MaxLoginAttempts consecutive
// failed logins. A successful login clears the failure count.
type LoginGuard struct {
	counter Counter
	hasher  *utils.Hasher

	maxAttempts int64
	lockout     time.Duration
}

// NewLoginGuard binds the policy in cfg to counter. Emails are keyed by their
// HMAC under hasher.
func NewLoginGuard(counter Counter, hasher *utils.Hasher, cfg config.Limiter) *LoginGuard {
	return &LoginGuard{
		counter:     counter,
		hasher:      hasher,
		maxAttempts: int64(cfg.MaxLoginAttempts),
		lockout:     cfg.Lockout,
	}
}

// Check returns [ErrAccountLocked] while email is locked.
func (g *LoginGuard) Check(ctx context.Context, email string) error {
	locked, err := g.counter.Get(ctx, lockKeyPrefix+g.hasher.HashString(email))
	if err != nil {
		return err
	}
	if locked > 0 {
		return ErrAccountLocked
	}

	return nil
}

// Fail records a failed login. It returns [ErrAccountLocked] when this
// failure locked the email.
func (g *LoginGuard) Fail(ctx context.Context, email string) error {
	digest := g.hasher.HashString(email)

	failures, err := g.counter.Incr(ctx, failuresKeyPrefix+digest, g.lockout)
	if err != nil {
		return err
	}
	if failures < g.maxAttempts {
		return nil
	}

	if _, err = g.counter.Incr(ctx, lockKeyPrefix+digest, g.lockout); err != nil {
		return err
	}
	if err = g.counter.Reset(ctx, failuresKeyPrefix+digest); err != nil {
		return err
	}

	return ErrAccountLocked
}

// Succeed clears the failure count of email.
func (g *LoginGuard) Succeed(ctx context.Context, email string) error {
	return g.counter.Reset(ctx, failuresKeyPrefix+g.hasher.HashString(email))
}
