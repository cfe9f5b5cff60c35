package http

import (
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(withSecurityHeaders)
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(rateLimit(h.limits))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/ping", h.ping)
		r.Get("/api/version", h.getServerVersion)

		r.With(rateLimit(h.scopedLimits("generate", generateRequestsPerMinute))).
			Post("/api/passwords/generate", h.generatePassword)
	})

	// auth routes carry tighter per-client budgets on top of the global one
	router.With(rateLimit(h.scopedLimits("signup", signupRequestsPerMinute))).Post("/api/auth/signup", h.signup)
	router.With(rateLimit(h.scopedLimits("login", loginRequestsPerMinute))).Post("/api/auth/login", h.login)
	router.With(rateLimit(h.scopedLimits("verify", signupRequestsPerMinute))).Post("/api/auth/resend-verification", h.resendVerification)

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/vaults", h.listVaults)
		r.Post("/api/vaults", h.createVault)
		r.Delete("/api/vaults/{vaultID}", h.deleteVault)

		// both path variants of an entry operation share one budget
		saveLimit := rateLimit(h.scopedLimits("save", entryRequestsPerMinute))
		fetchLimit := rateLimit(h.scopedLimits("fetch", entryRequestsPerMinute))
		deleteLimit := rateLimit(h.scopedLimits("delete", entryRequestsPerMinute))

		r.With(saveLimit).Post("/api/entries", h.saveEntry)
		r.With(fetchLimit).Post("/api/entries/fetch", h.fetchEntries)
		r.With(deleteLimit).Delete("/api/entries/{platform}", h.deleteEntry)

		r.With(saveLimit).Post("/api/vaults/{vaultID}/entries", h.saveEntry)
		r.With(fetchLimit).Post("/api/vaults/{vaultID}/entries/fetch", h.fetchEntries)
		r.With(deleteLimit).Delete("/api/vaults/{vaultID}/entries/{platform}", h.deleteEntry)

		r.Post("/api/migrations/legacy", h.migrateLegacy)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) scopedLimits(scope string, perMinute int) *limiter.RateLimiter {
	if h.limits == nil {
		return nil
	}
	return h.limits.Scoped(scope, perMinute)
}
