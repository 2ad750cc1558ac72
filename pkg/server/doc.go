// Package server provides the HTTP server for the YOAS API with a common
// middleware chain (metrics, version negotiation, request IDs, panic
// recovery, rate limiting, request logging), health and readiness probes,
// a Prometheus /metrics endpoint, and graceful shutdown with systemd
// readiness notification.
//
// Callers register their routes with WithHandler and run the server:
//
//	s := server.New(
//		server.WithName("yoas"),
//		server.WithVersion("1.0.0"),
//		server.WithHandler(routes),
//	)
//	if err := s.Run(ctx); err != nil {
//		...
//	}
package server
