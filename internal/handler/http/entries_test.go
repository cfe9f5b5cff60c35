package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// ─────────────────────────────────────────────
// save
// ─────────────────────────────────────────────

func TestSaveEntry_VaultFromPath(t *testing.T) {
	tests := []struct {
		name        string
		params      map[string]string
		body        string
		wantVaultID string
	}{
		{
			name:        "default vault route",
			body:        `{"platform":"GitHub","username":"alice","password":"hunter2","master_password":"mp"}`,
			wantVaultID: "",
		},
		{
			name:        "body vault id without path",
			body:        `{"vault_id":"v-9","platform":"GitHub","username":"alice","password":"hunter2","master_password":"mp"}`,
			wantVaultID: "v-9",
		},
		{
			name:        "path wins over body",
			params:      map[string]string{"vaultID": "v-1"},
			body:        `{"vault_id":"v-9","platform":"GitHub","username":"alice","password":"hunter2","master_password":"mp"}`,
			wantVaultID: "v-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vaults := &mockVaultService{
				saveEntryFn: func(_ context.Context, req models.SaveEntryRequest) (models.VaultEntry, error) {
					assert.Equal(t, testUserID, req.UserID)
					assert.Equal(t, tt.wantVaultID, req.VaultID)
					assert.Equal(t, "mp", req.MasterPassword)
					return models.VaultEntry{ID: "github", VaultID: models.DefaultVaultID, Username: req.Username, EncryptedPassword: "blob"}, nil
				},
			}

			rec := httptest.NewRecorder()
			newHandlerWithVaults(t, vaults).saveEntry(rec, authedRequest(http.MethodPost, "/api/entries", tt.body, tt.params))

			require.Equal(t, http.StatusCreated, rec.Code)
			assert.NotContains(t, rec.Body.String(), "blob", "ciphertext must not be echoed")
			assert.NotContains(t, rec.Body.String(), "hunter2")

			var resp models.EntryResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "github", resp.Entry.ID)
		})
	}
}

func TestSaveEntry_MissingFields(t *testing.T) {
	vaults := &mockVaultService{
		saveEntryFn: func(context.Context, models.SaveEntryRequest) (models.VaultEntry, error) {
			return models.VaultEntry{}, fmt.Errorf("save entry: %w", service.ErrInvalidDataProvided)
		},
	}

	rec := httptest.NewRecorder()
	newHandlerWithVaults(t, vaults).saveEntry(rec, authedRequest(http.MethodPost, "/api/entries", `{"platform":"x"}`, nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(service.KindInvalidData), decodeError(t, rec).Kind)
}

// ─────────────────────────────────────────────
// fetch
// ─────────────────────────────────────────────

func TestFetchEntries_PerEntryErrors(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	vaults := &mockVaultService{
		fetchEntriesFn: func(_ context.Context, userID, vaultID, masterPassword string) ([]models.FetchedEntry, error) {
			assert.Equal(t, "v-1", vaultID)
			assert.Equal(t, "mp", masterPassword)
			return []models.FetchedEntry{
				{ID: "github", Platform: "github", Username: "alice", Password: ptr("hunter2"), CreatedAt: now, UpdatedAt: now},
				{ID: "gitlab", Platform: "gitlab", Username: "alice", Error: ptr(models.IncorrectMasterPasswordMsg)},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/vaults/v-1/entries/fetch", `{"master_password":"mp"}`, map[string]string{"vaultID": "v-1"})
	newHandlerWithVaults(t, vaults).fetchEntries(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.EntriesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Entries, 2)

	require.NotNil(t, resp.Entries[0].Password)
	assert.Equal(t, "hunter2", *resp.Entries[0].Password)
	assert.Nil(t, resp.Entries[0].Error)

	assert.Nil(t, resp.Entries[1].Password)
	require.NotNil(t, resp.Entries[1].Error)
	assert.Equal(t, models.IncorrectMasterPasswordMsg, *resp.Entries[1].Error)
}

func TestFetchEntries_VaultNotFound(t *testing.T) {
	vaults := &mockVaultService{
		fetchEntriesFn: func(context.Context, string, string, string) ([]models.FetchedEntry, error) {
			return nil, service.ErrNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := authedRequest(http.MethodPost, "/api/vaults/nope/entries/fetch", `{"master_password":"mp"}`, map[string]string{"vaultID": "nope"})
	newHandlerWithVaults(t, vaults).fetchEntries(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ─────────────────────────────────────────────
// delete
// ─────────────────────────────────────────────

func TestDeleteEntry(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "absent entry is a no-op", err: fmt.Errorf("delete entry: %w", service.ErrNotFound), wantStatus: http.StatusNoContent},
		{name: "storage failure", err: service.ErrStorage, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vaults := &mockVaultService{
				deleteEntryFn: func(_ context.Context, userID, vaultID, platform string) error {
					assert.Equal(t, "", vaultID)
					assert.Equal(t, "github", platform)
					return tt.err
				},
			}

			rec := httptest.NewRecorder()
			req := authedRequest(http.MethodDelete, "/api/entries/github", "", map[string]string{"platform": "github"})
			newHandlerWithVaults(t, vaults).deleteEntry(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
