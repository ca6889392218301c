package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"investorportal/internal/config"
)

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("API_BASE_URL", "http://env-host:8000")

	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--port", "4000", "--api-base-url", "http://flag-host:9000"}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://flag-host:9000", cfg.APIBaseURL)
}

func TestLoadConfigEnvWithoutFlags(t *testing.T) {
	t.Setenv("PORT", "5000")

	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
}

func TestLoadConfigEnvFile(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")

	path := filepath.Join(t.TempDir(), "portal.env")
	require.NoError(t, os.WriteFile(path, []byte("API_BASE_URL=http://from-file:8000\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("API_BASE_URL") })

	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--env-file", path}))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:8000", cfg.APIBaseURL)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad port", []string{"--port", "abc"}},
		{"bad url", []string{"--api-base-url", "ftp://example.com"}},
		{"missing env file", []string{"--env-file", "/nonexistent/portal.env"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newServeCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			_, err := loadConfig(cmd)
			assert.Error(t, err)
		})
	}
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"serve", "--port", "70000"})
	root.SetOut(new(nopWriter))
	root.SetErr(new(nopWriter))
	assert.Error(t, root.Execute())
}

type nopWriter struct{}

func (*nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestServeStopsOnCancel(t *testing.T) {
	port := freePort(t)
	cfg := &config.Config{
		Port:       strconv.Itoa(port),
		APIBaseURL: "http://127.0.0.1:1",
		APITimeout: time.Second,
		Locale:     "en-GB",
		LogLevel:   "error",
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	url := "http://127.0.0.1:" + cfg.Port + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
