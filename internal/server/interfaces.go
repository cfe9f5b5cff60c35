package server

// Server is one transport managed by [Servers].
//
// RunServer blocks until the transport stops and reports why it stopped; a
// stop requested through Shutdown is not an error.
type Server interface {
	RunServer() error

	// Shutdown gracefully stops the transport. It is called at most once.
	Shutdown()
}
