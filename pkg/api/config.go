package api

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yoas/yoas/pkg/errors"
)

const (
	// EnvKey is the access key required by mutating endpoints. The server
	// refuses to start without it.
	EnvKey = "KEY"
	// EnvAPIAddress is the API mount prefix.
	EnvAPIAddress = "MAIN_API_ADDRESS"
	// EnvMainAddress is the optional public address advertised in the
	// welcome text.
	EnvMainAddress = "MAIN_ADDRESS"
	// EnvLogsFolder is the folder holding the database and server logs.
	EnvLogsFolder = "DB_N_LOGS_FOLDER"
	// EnvDBFile is the database file name inside the logs folder.
	EnvDBFile = "DB_FILE"

	// DefaultAPIAddress is the default API mount prefix.
	DefaultAPIAddress = "/api"
	// DefaultLogsFolder is the default database and logs folder.
	DefaultLogsFolder = "db_n_logs"
	// DefaultDBFile is the default database file name.
	DefaultDBFile = "yoas.db"
)

// Config holds the API process configuration, materialized once from the
// environment.
type Config struct {
	// Key authorizes mutating endpoints.
	Key string

	// APIAddress is the API mount prefix, leading slash forced.
	APIAddress string

	// MainAddress is the optional public address for the welcome text.
	MainAddress string

	// LogsFolder holds the database file and server logs.
	LogsFolder string

	// DBFile is the database file name, .db suffix forced.
	DBFile string
}

// NewConfig builds the config from the environment. Returns UNAUTHORIZED
// when KEY is not set.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Key:         os.Getenv(EnvKey),
		APIAddress:  DefaultAPIAddress,
		MainAddress: os.Getenv(EnvMainAddress),
		LogsFolder:  DefaultLogsFolder,
		DBFile:      DefaultDBFile,
	}

	if cfg.Key == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "KEY is not set")
	}

	if v := os.Getenv(EnvAPIAddress); v != "" {
		cfg.APIAddress = v
	}
	if !strings.HasPrefix(cfg.APIAddress, "/") {
		cfg.APIAddress = "/" + cfg.APIAddress
	}

	if v := os.Getenv(EnvLogsFolder); v != "" {
		cfg.LogsFolder = v
	}

	if v := os.Getenv(EnvDBFile); v != "" {
		cfg.DBFile = v
	}
	if !strings.HasSuffix(cfg.DBFile, ".db") {
		cfg.DBFile += ".db"
	}

	return cfg, nil
}

// DBPath returns the full path of the SQLite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.LogsFolder, c.DBFile)
}

// DBPathFromEnv resolves the database location the same way the server does,
// without requiring the access key. Used by tooling that only reads the
// database.
func DBPathFromEnv() string {
	folder := DefaultLogsFolder
	if v := os.Getenv(EnvLogsFolder); v != "" {
		folder = v
	}

	file := DefaultDBFile
	if v := os.Getenv(EnvDBFile); v != "" {
		file = v
	}
	if !strings.HasSuffix(file, ".db") {
		file += ".db"
	}

	return filepath.Join(folder, file)
}
