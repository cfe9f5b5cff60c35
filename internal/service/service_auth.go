package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// authService is the concrete implementation of AuthService.
// Credentials are checked by the external identity provider; this service
// adds input normalisation, the signup password policy, login lockout,
// session tokens, and the post-login legacy migration.
type authService struct {
	identity   adapter.IdentityProvider
	guard      LoginGuard
	migrations MigrationService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. migrations may be nil, in
// which case logins do not trigger the legacy migration.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(identity adapter.IdentityProvider, guard LoginGuard, migrations MigrationService, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		identity:      identity,
		guard:         guard,
		migrations:    migrations,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// normalizeEmail trims and lower-cases an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account with the identity provider, which sends the
// verification email.
//
// Returns the new identity or:
//   - ErrInvalidDataProvided if the email or password is empty.
//   - ErrWeakPassword if the password fails the strength policy.
//   - ErrAccountExists if the email is already registered.
//   - ErrIdentityUnavailable if the provider cannot be reached.
func (a *authService) Signup(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(credentials.Email)
	if email == "" || credentials.Password == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}
	if !isStrongPassword(credentials.Password) {
		log.Warn().Str("email", email).Msg("signup rejected: weak password")
		return models.Identity{}, ErrWeakPassword
	}

	identity, err := a.identity.CreateAccount(ctx, email, credentials.Password)
	if err != nil {
		log.Err(err).Str("email", email).Msg("signup failed")
		return models.Identity{}, identityError(err)
	}

	log.Info().Str("uid", identity.UserID).Msg("signup succeeded")
	return identity, nil
}

// Login authenticates the credentials with the identity provider.
//
// A locked email is rejected before the provider is contacted. Every wrong
// password counts towards the lockout; an unverified email does not. After a
// successful login the user's legacy entries are migrated; a migration
// failure is logged and does not fail the login.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Identity, error) {
	log := logger.FromContext(ctx)

	email := normalizeEmail(credentials.Email)
	if email == "" || credentials.Password == "" {
		return models.Identity{}, ErrInvalidDataProvided
	}

	if err := a.guard.Check(ctx, email); err != nil {
		if errors.Is(err, ErrAccountLocked) {
			log.Warn().Str("email", email).Msg("login blocked: account locked")
			return models.Identity{}, ErrAccountLocked
		}
		log.Err(err).Msg("lockout check failed")
	}

	identity, err := a.identity.Authenticate(ctx, email, credentials.Password)
	if err != nil {
		err = identityError(err)
		if errors.Is(err, ErrInvalidCredentials) {
			a.recordFailure(ctx, email)
		}
		log.Err(err).Str("email", email).Msg("login failed")
		return models.Identity{}, err
	}
	if !identity.EmailVerified {
		log.Warn().Str("uid", identity.UserID).Msg("login rejected: email not verified")
		return models.Identity{}, ErrEmailNotVerified
	}

	if err = a.guard.Succeed(ctx, email); err != nil {
		log.Err(err).Msg("lockout reset failed")
	}

	if a.migrations != nil {
		userCtx := log.WithUser(identity.UserID).WithContext(ctx)
		if migrated, err := a.migrations.MigrateLegacyEntries(userCtx, identity.UserID); err != nil {
			log.Err(err).Str("uid", identity.UserID).Msg("post-login legacy migration failed")
		} else if migrated > 0 {
			log.Info().Str("uid", identity.UserID).Int("migrated", migrated).Msg("legacy entries migrated on login")
		}
	}

	log.Info().Str("uid", identity.UserID).Msg("login succeeded")
	return identity, nil
}

func (a *authService) recordFailure(ctx context.Context, email string) {
	log := logger.FromContext(ctx)

	err := a.guard.Fail(ctx, email)
	switch {
	case errors.Is(err, ErrAccountLocked):
		log.Warn().Str("email", email).Msg("account locked after repeated failures")
	case err != nil:
		log.Err(err).Msg("failed login could not be recorded")
	}
}

// ResendVerification asks the provider to send the verification email
// again. It is a no-op for verified addresses.
func (a *authService) ResendVerification(ctx context.Context, credentials models.Credentials) error {
	email := normalizeEmail(credentials.Email)
	if email == "" || credentials.Password == "" {
		return ErrInvalidDataProvided
	}

	if err := a.identity.SendVerification(ctx, email, credentials.Password); err != nil {
		logger.FromContext(ctx).Err(err).Str("email", email).Msg("verification resend failed")
		return identityError(err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given identity.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, identity models.Identity) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// identityError translates identity provider errors into the service
// taxonomy.
func identityError(err error) error {
	switch {
	case errors.Is(err, adapter.ErrAccountExists):
		return ErrAccountExists
	case errors.Is(err, adapter.ErrInvalidCredentials), errors.Is(err, adapter.ErrAccountDisabled):
		return ErrInvalidCredentials
	case errors.Is(err, adapter.ErrWeakPassword):
		return ErrWeakPassword
	case errors.Is(err, adapter.ErrTooManyAttempts):
		return ErrRateLimited
	case errors.Is(err, adapter.ErrIdentityRejected):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	default:
		return fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}
}
