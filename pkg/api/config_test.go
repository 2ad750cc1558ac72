package api

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoas/yoas/pkg/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv(EnvKey, "secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Key)
	assert.Equal(t, DefaultAPIAddress, cfg.APIAddress)
	assert.Equal(t, DefaultLogsFolder, cfg.LogsFolder)
	assert.Equal(t, DefaultDBFile, cfg.DBFile)
	assert.Empty(t, cfg.MainAddress)
	assert.Equal(t, filepath.Join(DefaultLogsFolder, DefaultDBFile), cfg.DBPath())
}

func TestNewConfigRequiresKey(t *testing.T) {
	t.Setenv(EnvKey, "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnauthorized))
}

func TestNewConfigForcesLeadingSlash(t *testing.T) {
	t.Setenv(EnvKey, "secret")
	t.Setenv(EnvAPIAddress, "bans")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "/bans", cfg.APIAddress)
}

func TestNewConfigForcesDBSuffix(t *testing.T) {
	t.Setenv(EnvKey, "secret")
	t.Setenv(EnvDBFile, "bans")
	t.Setenv(EnvLogsFolder, "data")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "bans.db", cfg.DBFile)
	assert.Equal(t, filepath.Join("data", "bans.db"), cfg.DBPath())
}

func TestNewConfigKeepsDBSuffix(t *testing.T) {
	t.Setenv(EnvKey, "secret")
	t.Setenv(EnvDBFile, "bans.db")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "bans.db", cfg.DBFile)
}
