package api

import (
	"context"
	"log/slog"
	"os"

	"github.com/yoas/yoas/pkg/bans"
	"github.com/yoas/yoas/pkg/dump"
	"github.com/yoas/yoas/pkg/logging"
	"github.com/yoas/yoas/pkg/server"
	"github.com/yoas/yoas/pkg/store"
)

const (
	name           = "yoas-api-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/yoas/yoas/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, opens the ban database, sets up routes, and handles
// graceful shutdown. Returns an error if the server fails to start or
// encounters a fatal error.
func Serve(ctx context.Context) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	cfg, err := NewConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	return ServeWithConfig(ctx, cfg)
}

// ServeWithConfig starts the API server with the given configuration.
func ServeWithConfig(ctx context.Context, cfg *Config) error {
	if err := os.MkdirAll(cfg.LogsFolder, 0o755); err != nil {
		slog.Error("failed to create data folder", "folder", cfg.LogsFolder, "error", err)
		return err
	}

	st, err := store.Open(cfg.DBPath())
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath(), "error", err)
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}()

	slog.Info("database ready", "path", cfg.DBPath(), "api_prefix", cfg.APIAddress)

	svc := bans.NewService(bans.Config{
		Store:       st,
		Dumper:      dump.New(st),
		Key:         cfg.Key,
		APIPrefix:   cfg.APIAddress,
		MainAddress: cfg.MainAddress,
		WorkDir:     cfg.LogsFolder,
	})

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(svc.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
