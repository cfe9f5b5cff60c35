package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// generatePassword accepts an empty body, in which case every option takes
// its default.
func (h *Handler) generatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	password, err := h.services.PasswordGenerator.Generate(req.Options())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.GeneratedPasswordResponse{
		Status:   models.StatusSuccess,
		Password: password,
	}, http.StatusOK)
}
