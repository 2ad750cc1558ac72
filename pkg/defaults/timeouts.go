package defaults

import "time"

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Dump responses can stream larger payloads, hence the generous value.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// StoreQueryTimeout bounds single ban-list lookups and writes.
	StoreQueryTimeout = 10 * time.Second

	// DumpHandlerTimeout is the timeout for database dump requests.
	// Longer than store queries due to file I/O on full-table exports.
	DumpHandlerTimeout = 60 * time.Second
)
