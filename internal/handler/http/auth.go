package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	signupMessage       = "Account created! Please verify your email."
	verificationMessage = "If the account exists and is unverified, a verification email was sent."
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	identity, err := h.services.AuthService.Signup(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("user_id", identity.UserID).Msg("account created")

	utils.WriteJSON(w, models.AuthResponse{
		Status:  models.StatusSuccess,
		UID:     identity.UserID,
		Message: signupMessage,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	identity, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, identity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("user_id", identity.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{
		Status: models.StatusSuccess,
		UID:    identity.UserID,
	}, http.StatusOK)
}

// resendVerification always answers with the same message on success so the
// endpoint cannot be used to probe verification state.
func (h *Handler) resendVerification(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(w, r, &credentials); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.ResendVerification(r.Context(), credentials); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Status:  models.StatusSuccess,
		Message: verificationMessage,
	}, http.StatusAccepted)
}
