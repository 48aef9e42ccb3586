// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conneroisu/inkit/internal/config"
)

// WriteFile writes content to dir/name, creating dir, and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// CreateStylesheet writes css to button.css in a fresh temp dir.
func CreateStylesheet(t *testing.T, css string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "button.css", css)
}

// CreateTestConfig creates a test configuration previewing stylesheet, with
// watching off and a short debounce.
func CreateTestConfig(stylesheet string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8080,
			Open: false,
		},
		Preview: config.PreviewConfig{
			Title:      "Test preview",
			Stylesheet: stylesheet,
			Debounce:   20 * time.Millisecond,
			Default:    map[string]string{},
		},
		Log: config.LogConfig{Level: "info", Format: "text"},
	}
}
