package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigPath returns a puffin.yaml path inside a fresh temp dir. Nothing is
// written, so loading it yields the defaults.
func ConfigPath(t *testing.T) string {
	t.Helper()

	// Watch mode compares absolute paths.
	absPath, err := filepath.Abs(filepath.Join(t.TempDir(), "puffin.yaml"))
	require.NoError(t, err, "Failed to get absolute path for temp dir")
	return absPath
}

// WriteConfig writes content to a fresh config file and returns its path.
// It fails the test immediately on error.
func WriteConfig(t *testing.T, content string) string {
	t.Helper()

	path := ConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write config")
	return path
}
