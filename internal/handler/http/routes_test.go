package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/generator"
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helper ----

// stubServices answers every call with an empty success so that route tests
// only observe routing and middleware.
func stubServices() *service.Services {
	return &service.Services{
		AppInfoService: &mockAppInfoService{version: "test-version"},
		AuthService: &mockAuthService{
			signupFn: func(context.Context, models.Credentials) (models.Identity, error) {
				return models.Identity{UserID: "uid"}, nil
			},
			loginFn: func(context.Context, models.Credentials) (models.Identity, error) {
				return models.Identity{UserID: "uid"}, nil
			},
			resendVerificationFn: func(context.Context, models.Credentials) error { return nil },
			createTokenFn: func(context.Context, models.Identity) (models.Token, error) {
				return stubToken("stub"), nil
			},
			parseTokenFn: func(_ context.Context, s string) (models.Token, error) {
				if s != "stub-token" {
					return models.Token{}, service.ErrTokenIsExpiredOrInvalid
				}
				return models.Token{UserID: testUserID}, nil
			},
		},
		VaultService: &mockVaultService{
			saveEntryFn: func(context.Context, models.SaveEntryRequest) (models.VaultEntry, error) {
				return models.VaultEntry{}, nil
			},
			fetchEntriesFn: func(context.Context, string, string, string) ([]models.FetchedEntry, error) {
				return nil, nil
			},
			deleteEntryFn: func(context.Context, string, string, string) error { return nil },
			createVaultFn: func(context.Context, string, string, string) (models.Vault, error) {
				return models.Vault{}, nil
			},
			listVaultsFn:  func(context.Context, string) ([]models.Vault, error) { return nil, nil },
			deleteVaultFn: func(context.Context, string, string) error { return nil },
		},
		MigrationService: &mockMigrationService{
			migrateLegacyFn: func(context.Context, string) (int, error) { return 0, nil },
		},
		PasswordGenerator: generator.NewPasswordGenerator(),
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(stubServices(), nil, config.Server{}, logger.Nop()).Init()
}

func validAuthHeader() string { return "Bearer stub-token" }

type routeCase struct {
	method string
	path   string
	body   string
}

var publicRoutes = []routeCase{
	{http.MethodPost, "/api/auth/signup", `{"email":"a@b.c","password":"x"}`},
	{http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"x"}`},
	{http.MethodPost, "/api/auth/resend-verification", `{"email":"a@b.c","password":"x"}`},
	{http.MethodPost, "/api/passwords/generate", `{}`},
	{http.MethodGet, "/api/health", ""},
	{http.MethodGet, "/api/ping", ""},
	{http.MethodGet, "/api/version", ""},
}

var protectedRoutes = []routeCase{
	{http.MethodGet, "/api/vaults", ""},
	{http.MethodPost, "/api/vaults", `{"name":"Work"}`},
	{http.MethodDelete, "/api/vaults/v-1", ""},
	{http.MethodPost, "/api/entries", `{}`},
	{http.MethodPost, "/api/entries/fetch", `{"master_password":"mp"}`},
	{http.MethodDelete, "/api/entries/github", ""},
	{http.MethodPost, "/api/vaults/v-1/entries", `{}`},
	{http.MethodPost, "/api/vaults/v-1/entries/fetch", `{"master_password":"mp"}`},
	{http.MethodDelete, "/api/vaults/v-1/entries/github", ""},
	{http.MethodPost, "/api/migrations/legacy", ""},
}

func serve(router http.Handler, rc routeCase, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(rc.method, rc.path, strings.NewReader(rc.body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ---- Public routes: reachable without auth ----

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, tt := range publicRoutes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(router, tt, "")
			assert.Less(t, rr.Code, 300, "route should succeed: %s %s, body %s", tt.method, tt.path, rr.Body.String())
		})
	}
}

// ---- Protected routes: 401 without token ----

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(router, tt, "").Code)
			assert.Equal(t, http.StatusUnauthorized, serve(router, tt, "Bearer wrong-token").Code)
		})
	}
}

func TestInit_ProtectedRoutes_PassWithValidToken(t *testing.T) {
	router := newTestRouter(t)

	for _, tt := range protectedRoutes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(router, tt, validAuthHeader())
			assert.Less(t, rr.Code, 300, "body %s", rr.Body.String())
		})
	}
}

// ---- Unknown routes and wrong methods ----

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/nonexistent", "/api/user/register", "/api/data/all", "/"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, serve(router, routeCase{method: http.MethodGet, path: path}, "").Code)
		})
	}
}

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	tests := []routeCase{
		{method: http.MethodPost, path: "/api/version"},
		{method: http.MethodGet, path: "/api/auth/login"},
		{method: http.MethodPut, path: "/api/vaults"},
		{method: http.MethodGet, path: "/api/passwords/generate"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(router, tt, validAuthHeader())
			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

// ---- Cross-cutting headers ----

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	rr := serve(newTestRouter(t), routeCase{method: http.MethodGet, path: "/api/ping"}, "")
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	rr := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rr, req)

	assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))
}

func TestInit_SecurityHeaders_OnEveryResponse(t *testing.T) {
	router := newTestRouter(t)

	for _, rc := range []routeCase{
		{method: http.MethodGet, path: "/api/ping"},
		{method: http.MethodGet, path: "/api/vaults"},
		{method: http.MethodGet, path: "/api/nonexistent"},
	} {
		rr := serve(router, rc, "")
		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"), rc.path)
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"), rc.path)
		assert.NotEmpty(t, rr.Header().Get("Strict-Transport-Security"), rc.path)
	}
}

// ---- Rate limits ----

func TestInit_LoginRateLimit(t *testing.T) {
	counter := limiter.NewMemoryCounter(limiter.DefaultMaxKeys)
	h := NewHandler(stubServices(), limiter.NewRateLimiter(counter, 100), config.Server{}, logger.Nop())
	router := h.Init()

	login := routeCase{http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"x"}`}
	for i := 0; i < loginRequestsPerMinute; i++ {
		require.Equal(t, http.StatusOK, serve(router, login, "").Code, "attempt %d", i+1)
	}

	rr := serve(router, login, "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, string(service.KindRateLimited), decodeError(t, rr).Kind)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))

	// other routes keep their own budget
	assert.Equal(t, http.StatusOK, serve(router, routeCase{method: http.MethodGet, path: "/api/ping"}, "").Code)
}

func newLimitedRouter(t *testing.T) http.Handler {
	t.Helper()
	counter := limiter.NewMemoryCounter(limiter.DefaultMaxKeys)
	return NewHandler(stubServices(), limiter.NewRateLimiter(counter, 100), config.Server{}, logger.Nop()).Init()
}

func TestInit_LoginRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	router := newLimitedRouter(t)

	login := func(i int) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < loginRequestsPerMinute; i++ {
		require.Equal(t, http.StatusOK, login(i), "attempt %d", i+1)
	}
	for i := loginRequestsPerMinute; i < 50; i++ {
		assert.Equal(t, http.StatusTooManyRequests, login(i), "attempt %d", i+1)
	}
}

func TestInit_GenerateRateLimit(t *testing.T) {
	router := newLimitedRouter(t)

	generate := routeCase{http.MethodPost, "/api/passwords/generate", `{}`}
	for i := 0; i < generateRequestsPerMinute; i++ {
		require.Equal(t, http.StatusOK, serve(router, generate, "").Code, "attempt %d", i+1)
	}

	rr := serve(router, generate, "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, fmt.Sprint(generateRequestsPerMinute), rr.Header().Get("X-RateLimit-Limit"))
}

func TestInit_EntryRateLimits(t *testing.T) {
	router := newLimitedRouter(t)

	saves := []routeCase{
		{http.MethodPost, "/api/entries", `{}`},
		{http.MethodPost, "/api/vaults/v-1/entries", `{}`},
	}
	for i := 0; i < entryRequestsPerMinute; i++ {
		rr := serve(router, saves[i%2], validAuthHeader())
		require.Less(t, rr.Code, 300, "attempt %d: %s", i+1, rr.Body.String())
	}

	// both save paths draw on one budget
	for _, rc := range saves {
		assert.Equal(t, http.StatusTooManyRequests, serve(router, rc, validAuthHeader()).Code, rc.path)
	}

	// fetch and delete keep their own budgets
	fetch := routeCase{http.MethodPost, "/api/entries/fetch", `{"master_password":"mp"}`}
	del := routeCase{http.MethodDelete, "/api/vaults/v-1/entries/github", ""}
	assert.Equal(t, http.StatusOK, serve(router, fetch, validAuthHeader()).Code)
	assert.Less(t, serve(router, del, validAuthHeader()).Code, 300)
}
