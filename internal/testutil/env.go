// Package testutil provides helpers for testing provisioning in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv redirects every environment-derived path the provisioner
// consults into a fresh temp directory, so tests never observe a real
// fleet-schema-gen install on the host:
//   - PATH points at an empty bin directory (search-path lookup misses)
//   - HOME is empty (no ~/.cargo/bin candidate)
//   - XDG_CACHE_HOME is isolated (default storage dir stays in the sandbox)
//   - FLEET_LSP_* overrides from the developer's shell are cleared
//
// Cleanup is handled by t.TempDir and t.Setenv automatically.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := map[string]string{
		"PATH":           filepath.Join(tmpDir, "bin"),
		"HOME":           filepath.Join(tmpDir, "home"),
		"XDG_CACHE_HOME": filepath.Join(tmpDir, "cache"),
	}
	for env, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("create %s dir: %v", env, err)
		}
		t.Setenv(env, dir)
	}

	for _, env := range []string{
		"FLEET_LSP_BINARY_PATH",
		"FLEET_LSP_STORAGE_DIR",
		"FLEET_LSP_GITHUB_REPO",
		"FLEET_LSP_API_BASE_URL",
		"FLEET_LSP_LOG_LEVEL",
	} {
		t.Setenv(env, "")
	}

	return tmpDir
}
