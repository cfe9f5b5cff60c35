package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-resty/resty/v2"
)

const (
	signUpPath      = "/accounts:signUp"
	signInPath      = "/accounts:signInWithPassword"
	lookupPath      = "/accounts:lookup"
	sendOobCodePath = "/accounts:sendOobCode"

	requestTypeVerifyEmail = "VERIFY_EMAIL"
)

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID       string `json:"localId"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	} `json:"users"`
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	IDToken     string `json:"idToken"`
}

type identityToolkit struct {
	client *utils.HTTPClient
	apiKey string

	logger *logger.Logger
}

// NewIdentityToolkit constructs the REST implementation of [IdentityProvider].
// Every request carries the API key as the "key" query parameter.
//
// Returns an error if cfg.BaseURL is empty or not an absolute URL.
func NewIdentityToolkit(cfg config.Identity, log *logger.Logger) (IdentityProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)

	return &identityToolkit{client: client, apiKey: cfg.APIKey, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// CreateAccount implements [IdentityProvider]. A failure to send the
// verification email is logged and does not undo the signup; the user can ask
// for it again through SendVerification.
func (i *identityToolkit) CreateAccount(ctx context.Context, email, password string) (models.Identity, error) {
	var created passwordResponse
	if err := i.post(ctx, signUpPath, passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &created); err != nil {
		return models.Identity{}, fmt.Errorf("sign up: %w", err)
	}

	if err := i.sendVerifyEmail(ctx, created.IDToken); err != nil {
		i.logger.Warn().Err(err).Str("uid", created.LocalID).Msg("verification email was not sent")
	}

	return models.Identity{UserID: created.LocalID, Email: created.Email}, nil
}

// Authenticate implements [IdentityProvider].
func (i *identityToolkit) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	signedIn, err := i.signIn(ctx, email, password)
	if err != nil {
		return models.Identity{}, err
	}

	return i.lookup(ctx, signedIn)
}

// SendVerification implements [IdentityProvider].
func (i *identityToolkit) SendVerification(ctx context.Context, email, password string) error {
	signedIn, err := i.signIn(ctx, email, password)
	if err != nil {
		return err
	}

	identity, err := i.lookup(ctx, signedIn)
	if err != nil {
		return err
	}
	if identity.EmailVerified {
		return nil
	}

	if err = i.sendVerifyEmail(ctx, signedIn.IDToken); err != nil {
		return fmt.Errorf("send verification: %w", err)
	}

	return nil
}

func (i *identityToolkit) signIn(ctx context.Context, email, password string) (passwordResponse, error) {
	var signedIn passwordResponse
	if err := i.post(ctx, signInPath, passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &signedIn); err != nil {
		return passwordResponse{}, fmt.Errorf("sign in: %w", err)
	}

	return signedIn, nil
}

func (i *identityToolkit) lookup(ctx context.Context, signedIn passwordResponse) (models.Identity, error) {
	var found lookupResponse
	if err := i.post(ctx, lookupPath, lookupRequest{IDToken: signedIn.IDToken}, &found); err != nil {
		return models.Identity{}, fmt.Errorf("lookup account: %w", err)
	}

	identity := models.Identity{UserID: signedIn.LocalID, Email: signedIn.Email}
	for _, user := range found.Users {
		if user.LocalID == signedIn.LocalID {
			identity.EmailVerified = user.EmailVerified
			break
		}
	}

	return identity, nil
}

func (i *identityToolkit) sendVerifyEmail(ctx context.Context, idToken string) error {
	return i.post(ctx, sendOobCodePath, oobCodeRequest{RequestType: requestTypeVerifyEmail, IDToken: idToken}, nil)
}

func (i *identityToolkit) post(ctx context.Context, path string, body, result any) error {
	req := i.request(ctx).SetBody(body)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}

	return mapIdentityError(resp)
}

func (i *identityToolkit) request(ctx context.Context) *resty.Request {
	return i.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", i.apiKey)
}
