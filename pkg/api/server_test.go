package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs ServeWithConfig on the given port and returns a cancel
// func that triggers graceful shutdown plus the error channel.
func startTestServer(t *testing.T, port int) (context.CancelFunc, chan error) {
	t.Helper()

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", fmt.Sprintf("%d", port))
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "1")

	cfg := &Config{
		Key:        "test-key",
		APIAddress: "/api",
		LogsFolder: t.TempDir(),
		DBFile:     "yoas.db",
	}

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- ServeWithConfig(ctx, cfg)
	}()

	// Wait for the listener to come up.
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond, "server did not become healthy")

	return cancel, errChan
}

func TestServeWithConfig(t *testing.T) {
	const port = 18411

	cancel, errChan := startTestServer(t, port)
	defer cancel()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)

	t.Run("welcome", func(t *testing.T) {
		resp, err := http.Get(base + "/api")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body["welcome_text"], "YOAS")
	})

	t.Run("versioned mounts", func(t *testing.T) {
		for _, mount := range []string{"/api/latest", "/api/v1"} {
			resp, err := http.Get(base + mount)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode, "mount %s", mount)
		}
	})

	t.Run("user lookup on empty database", func(t *testing.T) {
		resp, err := http.Get(base + "/api/user?user_id=1")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("metrics exposed", func(t *testing.T) {
		resp, err := http.Get(base + "/metrics")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServeWithConfigCreatesDataFolder(t *testing.T) {
	const port = 18412

	dir := filepath.Join(t.TempDir(), "nested", "db_n_logs")

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", fmt.Sprintf("%d", port))

	cfg := &Config{
		Key:        "test-key",
		APIAddress: "/api",
		LogsFolder: dir,
		DBFile:     "yoas.db",
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- ServeWithConfig(ctx, cfg)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 3*time.Second, 50*time.Millisecond)

	assert.FileExists(t, filepath.Join(dir, "yoas.db"))

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
