// Package host adapts the provisioning manager to an editor plugin
// lifecycle: install hook, version-query hook, and variable substitution.
//
// The adapter is a thin shim. All provisioning decisions live in the
// binary package; this package only shapes results for the host contract
// and schedules the one-shot deferred check fired at load time.
package host

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/headmin/fleet-editor-extensions/internal/binary"
)

// serverSubcommand is the argument that puts the binary into
// language-server mode.
const serverSubcommand = "lsp"

// DefaultCheckDelay is how long the load-time background check waits
// before firing.
const DefaultCheckDelay = 1 * time.Second

// Adapter exposes provisioning results to the host plugin lifecycle.
type Adapter struct {
	manager *binary.Manager
	logger  *log.Logger
}

// NewAdapter creates a host adapter. A nil logger discards output.
func NewAdapter(manager *binary.Manager, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Adapter{
		manager: manager,
		logger:  logger,
	}
}

// Basedir returns the package storage directory.
func (a *Adapter) Basedir() string {
	return a.manager.StorageDir()
}

// NeedsInstallation reports whether no strategy can currently produce a
// binary. Hosts use it to gate server startup before first use.
func (a *Adapter) NeedsInstallation(ctx context.Context) bool {
	return a.manager.NeedsInstallation(ctx)
}

// InstallOrUpdate installs or updates the server binary. This is the one
// fail-loud path: when the download ultimately fails, the error surfaces
// so the host can halt server startup instead of silently proceeding.
func (a *Adapter) InstallOrUpdate(ctx context.Context) error {
	result, err := a.manager.InstallOrUpdate(ctx)
	if err != nil {
		return fmt.Errorf("install %s: %w", binary.Name, err)
	}
	a.logger.Info("server binary ready", "path", result.Path, "source", result.Source)
	return nil
}

// ServerVersion probes the resolved binary's version. Diagnostic only;
// degrades to the "unknown" sentinel on any failure.
func (a *Adapter) ServerVersion(ctx context.Context) string {
	return a.manager.CurrentVersion(ctx)
}

// AdditionalVariables returns the variable mapping offered to the host
// for command substitution. The binary_path value is empty when no
// binary resolves.
func (a *Adapter) AdditionalVariables(ctx context.Context) map[string]string {
	result := a.manager.Resolve(ctx)
	return map[string]string{
		"binary_path": result.Path,
	}
}

// ServerCommand builds the command that launches the provisioned binary
// in language-server mode.
func (a *Adapter) ServerCommand(ctx context.Context) (*exec.Cmd, error) {
	result := a.manager.Resolve(ctx)
	if !result.Found() {
		return nil, binary.ErrNotInstalled
	}
	return exec.CommandContext(ctx, result.Path, serverSubcommand), nil
}

// StartBackgroundCheck schedules the single deferred provisioning check
// fired at load time. It runs once after delay, logs the outcome, and
// never retries. The returned channel closes when the check finishes.
func (a *Adapter) StartBackgroundCheck(ctx context.Context, delay time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}

		result := a.manager.Resolve(ctx)
		if result.Found() {
			a.logger.Info("using binary", "path", result.Path, "source", result.Source)
		} else {
			a.logger.Info("binary not found, install will be attempted on first use")
		}
	}()
	return done
}
