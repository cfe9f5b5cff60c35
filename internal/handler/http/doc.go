// Package http implements the REST transport of the vault API.
//
// It exposes route wiring, request handlers, and middleware. Request tracing,
// access logging, rate limiting, security headers and bearer authentication
// are handled here before requests are delegated to the service layer.
package http
