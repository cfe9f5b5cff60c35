package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// migrateLegacy moves the caller's pre-vault entries into the default vault.
// Login runs the same migration; this endpoint lets clients retry
// after a partial failure.
func (h *Handler) migrateLegacy(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	migrated, err := h.services.MigrationService.MigrateLegacyEntries(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.MigrationResult{
		Status:   models.StatusSuccess,
		Migrated: migrated,
	}, http.StatusOK)
}
