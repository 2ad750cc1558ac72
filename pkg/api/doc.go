// Package api wires the YOAS components together and runs the API server:
// environment configuration, the SQLite ban store, the ban-list handlers,
// and the HTTP server with its middleware chain and graceful shutdown.
package api
