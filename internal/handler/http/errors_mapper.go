package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

var kindStatusMap = map[service.ErrorKind]int{
	service.KindDecryption:        http.StatusUnprocessableEntity,
	service.KindDuplicateName:     http.StatusConflict,
	service.KindProtectedResource: http.StatusForbidden,
	service.KindNotFound:          http.StatusNotFound,
	service.KindConfiguration:     http.StatusBadRequest,
	service.KindStorage:           http.StatusInternalServerError,
	service.KindInvalidData:       http.StatusBadRequest,
	service.KindUnauthorized:      http.StatusUnauthorized,
	service.KindUnverified:        http.StatusUnauthorized,
	service.KindWeakPassword:      http.StatusBadRequest,
	service.KindAccountExists:     http.StatusConflict,
	service.KindLocked:            http.StatusLocked,
	service.KindRateLimited:       http.StatusTooManyRequests,
	service.KindUnavailable:       http.StatusServiceUnavailable,
	service.KindInternal:          http.StatusInternalServerError,
}

// transportErrors are raised by this package before a service is reached.
var transportErrors = map[error]service.ErrorKind{
	ErrEmptyAuthorizationHeader:   service.KindUnauthorized,
	ErrInvalidAuthorizationHeader: service.KindUnauthorized,
	ErrInvalidJSON:                service.KindInvalidData,
	ErrNoUserInContext:            service.KindUnauthorized,
}

func kindFromError(err error) service.ErrorKind {
	for target, kind := range transportErrors {
		if errors.Is(err, target) {
			return kind
		}
	}
	return service.KindOf(err)
}

func statusFromError(err error) int {
	if status, ok := kindStatusMap[kindFromError(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with an [models.ErrorResponse]. Server-side
// failures are reported with a generic message so storage details never
// leave the process.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	kind := kindFromError(err)
	status := statusFromError(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("kind", string(kind)).Msg("request failed")
		message = http.StatusText(status)
	} else {
		log.Warn().Err(err).Str("kind", string(kind)).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{
		Status:  models.StatusError,
		Kind:    string(kind),
		Message: message,
	}, status)
}
