package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listVaults(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vaults, err := h.services.VaultService.ListVaults(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VaultsResponse{
		Status: models.StatusSuccess,
		Vaults: vaults,
	}, http.StatusOK)
}

func (h *Handler) createVault(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.CreateVaultRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	vault, err := h.services.VaultService.CreateVault(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VaultResponse{
		Status: models.StatusSuccess,
		Vault:  vault,
	}, http.StatusCreated)
}

func (h *Handler) deleteVault(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VaultService.DeleteVault(r.Context(), userID, chi.URLParam(r, "vaultID")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
