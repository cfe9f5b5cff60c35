// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter mirrors the method layout of the vault routes without the
// services behind them.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/vaults", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("vaults"))
	})
	router.Post("/api/vaults", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Post("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Post("/api/migrations/legacy", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Delete("/api/vaults/{vaultID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "list vaults", method: http.MethodGet, path: "/api/vaults", expectedStatus: http.StatusOK},
		{name: "create vault", method: http.MethodPost, path: "/api/vaults", expectedStatus: http.StatusCreated},
		{name: "save entry", method: http.MethodPost, path: "/api/entries", expectedStatus: http.StatusCreated},
		{name: "delete vault by id", method: http.MethodDelete, path: "/api/vaults/work", expectedStatus: http.StatusNoContent},

		{name: "PUT on vault collection", method: http.MethodPut, path: "/api/vaults", expectedStatus: http.StatusNotFound},
		{name: "DELETE on vault collection", method: http.MethodDelete, path: "/api/vaults", expectedStatus: http.StatusNotFound},
		{name: "GET on entries", method: http.MethodGet, path: "/api/entries", expectedStatus: http.StatusNotFound},
		{name: "GET on legacy migration", method: http.MethodGet, path: "/api/migrations/legacy", expectedStatus: http.StatusNotFound},
		{name: "GET on a vault id", method: http.MethodGet, path: "/api/vaults/work", expectedStatus: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/api/passwords", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/vaults", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "vaults", rr.Body.String())
}

func TestCheckHTTPMethod_NeverAnswers405(t *testing.T) {
	router := buildRouter()

	for _, method := range []string{http.MethodPut, http.MethodPatch, http.MethodOptions, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/api/vaults", nil))

			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	codes := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodPatch
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(method, "/api/vaults", nil))
			codes <- rr.Code
		}(i)
	}

	ok, notFound := 0, 0
	for i := 0; i < n; i++ {
		switch <-codes {
		case http.StatusOK:
			ok++
		case http.StatusNotFound:
			notFound++
		}
	}
	assert.Equal(t, n/2, ok)
	assert.Equal(t, n/2, notFound)
}

func TestCheckHTTPMethod_NotFoundBody(t *testing.T) {
	router := buildRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, "/api/vaults", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","kind":"not_found","message":"Not Found"}`, rr.Body.String())
}
