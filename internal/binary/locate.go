package binary

import (
	"os"
	"os/exec"
	"path/filepath"
)

// Strategy is one way to locate an existing binary. Implementations are
// side-effect-free, perform no network access, and are safe to call at
// arbitrary frequency.
type Strategy interface {
	// Source identifies the strategy in provisioning results.
	Source() Source
	// Locate reports a usable binary path, if this strategy has one.
	Locate() (string, bool)
}

// ConfiguredPathStrategy checks the user-configured explicit path.
// Only existence as a regular file is required, not the executable bit,
// mirroring host settings semantics.
type ConfiguredPathStrategy struct {
	Path string
}

// Source implements Strategy.
func (s *ConfiguredPathStrategy) Source() Source { return SourceConfigured }

// Locate implements Strategy.
func (s *ConfiguredPathStrategy) Locate() (string, bool) {
	if s.Path == "" {
		return "", false
	}
	if !fileExists(s.Path) {
		return "", false
	}
	return s.Path, true
}

// ExecPathStrategy resolves the binary name through the process's standard
// executable search path.
type ExecPathStrategy struct {
	Binary string
}

// Source implements Strategy.
func (s *ExecPathStrategy) Source() Source { return SourcePathSearch }

// Locate implements Strategy.
func (s *ExecPathStrategy) Locate() (string, bool) {
	path, err := exec.LookPath(s.Binary)
	if err != nil {
		return "", false
	}
	return path, true
}

// WellKnownStrategy checks a fixed list of common install directories.
// Candidates must exist and carry an executable permission bit.
type WellKnownStrategy struct {
	Binary string
	Dirs   []string
}

// NewWellKnownStrategy creates the strategy with the standard candidate
// directories: the cargo bin dir, Homebrew prefixes, and system bin dirs.
func NewWellKnownStrategy(binaryName string) *WellKnownStrategy {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".cargo", "bin"))
	}
	dirs = append(dirs,
		"/opt/homebrew/bin",
		"/usr/local/bin",
		"/usr/bin",
	)
	return &WellKnownStrategy{
		Binary: binaryName,
		Dirs:   dirs,
	}
}

// Source implements Strategy.
func (s *WellKnownStrategy) Source() Source { return SourceWellKnown }

// Locate implements Strategy.
func (s *WellKnownStrategy) Locate() (string, bool) {
	for _, dir := range s.Dirs {
		candidate := filepath.Join(dir, s.Binary)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// StorageStrategy checks for a binary left by a previous remote install
// in the storage directory.
type StorageStrategy struct {
	Installer *Installer
}

// Source implements Strategy.
func (s *StorageStrategy) Source() Source { return SourceCached }

// Locate implements Strategy.
func (s *StorageStrategy) Locate() (string, bool) {
	if !s.Installer.Installed() {
		return "", false
	}
	return s.Installer.BinaryPath(), true
}
