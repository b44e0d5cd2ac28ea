// Package config provides the user-facing settings surface for the
// fleet-schema-gen provisioner.
//
// Settings are loaded with viper from an optional config file plus
// FLEET_LSP_* environment variables. Every path-like value (most
// importantly the storage directory) is resolved here once and threaded
// into component constructors explicitly, so tests can redirect state
// per test case without process-wide side effects.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the CLI/application name.
	AppName = "fleet-lsp"
	// PackageName names the storage subdirectory, matching the editor
	// package this provisioner serves.
	PackageName = "LSP-fleet"

	// DefaultRepo is the GitHub repository publishing release assets.
	DefaultRepo = "fleetdm/fleet"
	// DefaultAPIBaseURL is the GitHub REST API endpoint.
	DefaultAPIBaseURL = "https://api.github.com"

	envPrefix = "FLEET_LSP"
)

// Settings holds resolved configuration values.
type Settings struct {
	// BinaryPath is an explicit user override for the server binary.
	// Empty means "not configured".
	BinaryPath string
	// Repo is the GitHub "owner/name" repository to query for releases.
	Repo string
	// APIBaseURL is the release API endpoint, overridable for testing.
	APIBaseURL string
	// StorageDir is the package-scoped persistent cache directory.
	StorageDir string
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Load reads settings from cfgFile (or the default location when empty)
// and the environment. A missing config file is not an error; defaults
// apply.
func Load(cfgFile string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("binary_path", "")
	v.SetDefault("github_repo", DefaultRepo)
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("storage_dir", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(AppName)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	s := &Settings{
		BinaryPath: v.GetString("binary_path"),
		Repo:       v.GetString("github_repo"),
		APIBaseURL: strings.TrimRight(v.GetString("api_base_url"), "/"),
		StorageDir: v.GetString("storage_dir"),
		LogLevel:   v.GetString("log_level"),
	}

	if s.StorageDir == "" {
		dir, err := defaultStorageDir()
		if err != nil {
			return nil, fmt.Errorf("resolve storage dir: %w", err)
		}
		s.StorageDir = dir
	}

	return s, nil
}

// defaultStorageDir returns the platform cache root joined with the
// package storage layout: <cache root>/Package Storage/<PackageName>.
func defaultStorageDir() (string, error) {
	var cacheRoot string

	switch runtime.GOOS {
	case "windows":
		cacheRoot = os.Getenv("LOCALAPPDATA")
		if cacheRoot == "" {
			cacheRoot = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		cacheRoot = filepath.Join(home, "Library", "Caches")
	default: // Linux and others
		cacheRoot = os.Getenv("XDG_CACHE_HOME")
		if cacheRoot == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("get home directory: %w", err)
			}
			cacheRoot = filepath.Join(home, ".cache")
		}
	}

	return filepath.Join(cacheRoot, "Package Storage", PackageName), nil
}
