package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-chi/chi/v5"
)

// Entry routes exist in two forms: under /api/entries, targeting the default
// vault, and under /api/vaults/{vaultID}/entries. An empty vaultID resolves
// to the default vault in the service.

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SaveEntryRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.UserID = userID
	if vaultID := chi.URLParam(r, "vaultID"); vaultID != "" {
		req.VaultID = vaultID
	}

	entry, err := h.services.VaultService.SaveEntry(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.EntryResponse{
		Status: models.StatusSuccess,
		Entry:  entry,
	}, http.StatusCreated)
}

// fetchEntries is a POST so that the master password travels in the body
// and never in a URL or access log.
func (h *Handler) fetchEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.FetchEntriesRequest
	if err = decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entries, err := h.services.VaultService.FetchEntries(r.Context(), userID, chi.URLParam(r, "vaultID"), req.MasterPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.EntriesResponse{
		Status:  models.StatusSuccess,
		Entries: entries,
	}, http.StatusOK)
}

// deleteEntry answers 204 whether or not the entry existed.
func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	platform := chi.URLParam(r, "platform")
	err = h.services.VaultService.DeleteEntry(r.Context(), userID, chi.URLParam(r, "vaultID"), platform)
	switch {
	case errors.Is(err, service.ErrNotFound):
		logger.FromRequest(r).Debug().Str("platform", platform).Msg("entry to delete was not found")
	case err != nil:
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
