package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmpDir)
	t.Setenv("FLEET_LSP_STORAGE_DIR", "")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Repo != DefaultRepo {
		t.Errorf("Repo = %q, want %q", s.Repo, DefaultRepo)
	}
	if s.APIBaseURL != DefaultAPIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", s.APIBaseURL, DefaultAPIBaseURL)
	}
	if s.BinaryPath != "" {
		t.Errorf("BinaryPath = %q, want empty", s.BinaryPath)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}

	wantSuffix := filepath.Join("Package Storage", PackageName)
	if runtime.GOOS == "linux" {
		if s.StorageDir != filepath.Join(tmpDir, wantSuffix) {
			t.Errorf("StorageDir = %q, want under %q", s.StorageDir, tmpDir)
		}
	}
	if !strings.HasSuffix(s.StorageDir, wantSuffix) {
		t.Errorf("StorageDir = %q, want suffix %q", s.StorageDir, wantSuffix)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("FLEET_LSP_BINARY_PATH", "/opt/custom/fleet-schema-gen")
	t.Setenv("FLEET_LSP_STORAGE_DIR", tmpDir)
	t.Setenv("FLEET_LSP_GITHUB_REPO", "example/fork")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.BinaryPath != "/opt/custom/fleet-schema-gen" {
		t.Errorf("BinaryPath = %q", s.BinaryPath)
	}
	if s.StorageDir != tmpDir {
		t.Errorf("StorageDir = %q, want %q", s.StorageDir, tmpDir)
	}
	if s.Repo != "example/fork" {
		t.Errorf("Repo = %q, want example/fork", s.Repo)
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "fleet-lsp.yaml")

	content := "binary_path: /usr/local/bin/fleet-schema-gen\n" +
		"api_base_url: https://github.example.com/api/v3/\n" +
		"storage_dir: " + tmpDir + "\n" +
		"log_level: debug\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	s, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.BinaryPath != "/usr/local/bin/fleet-schema-gen" {
		t.Errorf("BinaryPath = %q", s.BinaryPath)
	}
	// Trailing slash is trimmed so URL joins stay predictable.
	if s.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("APIBaseURL = %q", s.APIBaseURL)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", s.LogLevel)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("expected error for explicit missing config file")
	}
}
