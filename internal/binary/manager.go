package binary

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/charmbracelet/log"

	"github.com/headmin/fleet-editor-extensions/internal/config"
	"github.com/headmin/fleet-editor-extensions/internal/platform"
)

// Manager orchestrates binary provisioning: an ordered chain of local
// lookup strategies followed by a remote catalog lookup and install.
type Manager struct {
	strategies []Strategy
	catalog    *CatalogClient
	installer  *Installer
	platform   *platform.Info
	logger     *log.Logger
}

// Config holds configuration for the provisioning manager.
type Config struct {
	// Settings is the resolved user configuration.
	Settings *config.Settings
	// Platform contains detected host platform information.
	Platform *platform.Info
	// Logger receives provisioning diagnostics. Nil discards output.
	Logger *log.Logger
}

// NewManager creates a provisioning manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	if cfg.Platform == nil {
		return nil, fmt.Errorf("platform info is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	installer := NewInstaller(cfg.Settings.StorageDir, logger)

	return &Manager{
		strategies: []Strategy{
			&ConfiguredPathStrategy{Path: cfg.Settings.BinaryPath},
			&ExecPathStrategy{Binary: Name},
			NewWellKnownStrategy(Name),
			&StorageStrategy{Installer: installer},
		},
		catalog:   NewCatalogClient(cfg.Settings.APIBaseURL, cfg.Settings.Repo),
		installer: installer,
		platform:  cfg.Platform,
		logger:    logger,
	}, nil
}

// Resolve answers "give me a working binary path". Strategies run in
// strict order, short-circuiting on the first hit; the remote install
// runs only when every local strategy misses. Resolve is fail-soft: all
// failures are logged and folded into a Result with SourceNone.
func (m *Manager) Resolve(ctx context.Context) *Result {
	for _, s := range m.strategies {
		if path, ok := s.Locate(); ok {
			m.logger.Debug("binary located", "source", s.Source(), "path", path)
			return &Result{Path: path, Source: s.Source()}
		}
	}

	path, err := m.remoteInstall(ctx)
	if err != nil {
		if path != "" && errors.Is(err, ErrStaleFallback) {
			return &Result{Path: path, Source: SourceCached}
		}
		m.logger.Warn("remote install unavailable", "error", err)
		return &Result{Source: SourceNone}
	}
	return &Result{Path: path, Source: SourceDownloaded}
}

// NeedsInstallation reports whether every strategy, including remote
// install, currently fails. Hosts use it to decide whether to block or
// prompt before first use.
func (m *Manager) NeedsInstallation(ctx context.Context) bool {
	return !m.Resolve(ctx).Found()
}

// InstallOrUpdate performs an explicit install or update. Unlike Resolve
// it is fail-loud: if no binary can be provisioned (and no previous
// install survives as a fallback), the error surfaces to the caller,
// which gates server startup on it.
func (m *Manager) InstallOrUpdate(ctx context.Context) (*Result, error) {
	release, err := m.catalog.LatestCompatible(ctx)
	if err != nil {
		// Lookup unavailable right now, not "no release exists". A
		// previous install keeps the host working.
		if m.installer.Installed() {
			m.logger.Warn("release lookup failed, keeping installed binary", "error", err)
			return &Result{Path: m.installer.BinaryPath(), Source: SourceCached}, nil
		}
		return nil, fmt.Errorf("install %s: %w", Name, err)
	}

	path, err := m.installer.Install(ctx, release, m.platform.Tag)
	if errors.Is(err, ErrStaleFallback) {
		m.logger.Warn("update failed, keeping installed binary", "error", err)
		return &Result{Path: path, Source: SourceCached}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", Name, err)
	}

	return &Result{Path: path, Source: SourceDownloaded}, nil
}

// UpdateAvailable compares the installed version marker against the
// latest compatible release. It reports false whenever either side is
// unknown; this is diagnostic, not load-bearing.
func (m *Manager) UpdateAvailable(ctx context.Context) (current, latest string, available bool) {
	current, ok := m.installer.InstalledVersion()
	if !ok {
		return "", "", false
	}

	release, err := m.catalog.LatestCompatible(ctx)
	if err != nil {
		m.logger.Debug("update check unavailable", "error", err)
		return current, "", false
	}
	latest = release.Version

	cur, errCur := semver.ParseTolerant(current)
	next, errNext := semver.ParseTolerant(latest)
	if errCur != nil || errNext != nil {
		// Unparseable markers fall back to plain inequality.
		return current, latest, current != latest
	}
	return current, latest, cur.LT(next)
}

// CurrentVersion resolves the binary and probes its version. Always
// returns a printable string; VersionUnknown on any failure.
func (m *Manager) CurrentVersion(ctx context.Context) string {
	result := m.Resolve(ctx)
	if !result.Found() {
		return VersionUnknown
	}
	return ProbeVersion(ctx, result.Path)
}

// StorageDir returns the storage directory owned by this manager.
func (m *Manager) StorageDir() string {
	return m.installer.storageDir
}

// remoteInstall performs the catalog lookup + install tail of the
// strategy chain.
func (m *Manager) remoteInstall(ctx context.Context) (string, error) {
	if !m.platform.Tag.Supported() {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, m.platform.OS, m.platform.Machine)
	}

	release, err := m.catalog.LatestCompatible(ctx)
	if err != nil {
		return "", err
	}

	return m.installer.Install(ctx, release, m.platform.Tag)
}
