// Package server wires and runs the application's transport servers.
//
// [Servers.Run] starts the HTTP and gRPC transports that have an address and
// a handler, and shuts all of them down gracefully once the caller's context
// is cancelled or any transport fails.
package server
