package http

import (
	"errors"
	"net"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// rateLimit throttles requests per client address with l. A nil limiter
// lets everything through. When the counter backend fails the request is
// served and the failure logged.
func rateLimit(l *limiter.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", l.Limit())

			err := l.Allow(r.Context(), clientAddress(r))
			switch {
			case errors.Is(err, limiter.ErrRateLimited):
				w.Header().Set("Retry-After", "60")
				writeError(w, r, err)
				return
			case err != nil:
				logger.FromRequest(r).Err(err).Msg("rate limiter unavailable, request let through")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress is the remote host of the connection without the port.
// X-Forwarded-For and X-Real-IP are client controlled and never consulted.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
