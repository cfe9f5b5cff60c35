package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-pass-vault/internal/service"
)

func newResponseWriter(rr *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rr}
}

func TestResponseWriter_InitialState(t *testing.T) {
	w := newResponseWriter(httptest.NewRecorder())

	assert.Zero(t, w.status)
	assert.Zero(t, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	tests := []struct {
		name           string
		statusCodes    []int
		expectedStatus int
	}{
		{name: "created vault", statusCodes: []int{http.StatusCreated}, expectedStatus: http.StatusCreated},
		{name: "deleted entry", statusCodes: []int{http.StatusNoContent}, expectedStatus: http.StatusNoContent},
		{name: "locked account", statusCodes: []int{http.StatusLocked}, expectedStatus: http.StatusLocked},
		{name: "second call ignored", statusCodes: []int{http.StatusCreated, http.StatusInternalServerError}, expectedStatus: http.StatusCreated},
		{name: "first of three wins", statusCodes: []int{http.StatusNotFound, http.StatusOK, http.StatusBadRequest}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.expectedStatus, w.status)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write(t *testing.T) {
	tests := []struct {
		name         string
		status       int // 0: no explicit WriteHeader
		writes       []string
		expectedCode int
		expectedSize int
	}{
		{name: "implicit 200", writes: []string{"pong"}, expectedCode: http.StatusOK, expectedSize: 4},
		{name: "writes accumulate", writes: []string{`{"status":`, `"success"}`}, expectedCode: http.StatusOK, expectedSize: 20},
		{name: "explicit 201 then body", status: http.StatusCreated, writes: []string{"{}"}, expectedCode: http.StatusCreated, expectedSize: 2},
		{name: "empty write", writes: []string{""}, expectedCode: http.StatusOK, expectedSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newResponseWriter(rr)

			if tt.status != 0 {
				w.WriteHeader(tt.status)
			}
			for _, chunk := range tt.writes {
				n, err := w.Write([]byte(chunk))
				require.NoError(t, err)
				assert.Equal(t, len(chunk), n)
			}

			assert.Equal(t, tt.expectedCode, w.status)
			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedSize, w.size)
			assert.Equal(t, tt.expectedSize, rr.Body.Len())
		})
	}
}

func TestResponseWriter_CapturesErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	writeError(w, httptest.NewRequest(http.MethodPost, "/api/vaults", nil), service.ErrDuplicateName)

	assert.Equal(t, http.StatusConflict, w.status)
	assert.Equal(t, rr.Body.Len(), w.size)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestResponseWriter_ProxiesHeadersToUnderlying(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriter(rr)

	w.Header().Set(traceIDHeader, "abc")
	w.WriteHeader(http.StatusOK)

	assert.Equal(t, "abc", rr.Header().Get(traceIDHeader))
}
