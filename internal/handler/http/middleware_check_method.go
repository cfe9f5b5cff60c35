// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is installed as the router's MethodNotAllowed handler.
// A request whose path names a vault route but whose method is not served
// gets the JSON not_found envelope with 404 instead of chi's 405.
//
// Only static patterns are compared against r.URL.Path; a parameterised
// route such as /api/vaults/{vaultID} never matches and always yields 404.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			utils.WriteJSON(w, models.ErrorResponse{
				Status:  models.StatusError,
				Kind:    string(service.KindNotFound),
				Message: http.StatusText(http.StatusNotFound),
			}, http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
