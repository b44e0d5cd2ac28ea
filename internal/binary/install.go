package binary

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/headmin/fleet-editor-extensions/internal/platform"
)

// markerFile is the version marker filename inside the storage directory.
const markerFile = "version"

// Installer downloads a release archive, extracts the target executable
// into the storage directory, and maintains the version marker.
type Installer struct {
	storageDir string
	downloader *Downloader
	extractor  *Extractor
	lock       *storageLock
	logger     *log.Logger
}

// NewInstaller creates an installer rooted at storageDir. A nil logger
// discards output.
func NewInstaller(storageDir string, logger *log.Logger) *Installer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Installer{
		storageDir: storageDir,
		downloader: NewDownloader(),
		extractor:  NewExtractor(),
		lock:       newStorageLock(storageDir),
		logger:     logger,
	}
}

// BinaryPath returns the install target path inside the storage directory.
func (i *Installer) BinaryPath() string {
	return filepath.Join(i.storageDir, Name)
}

// markerPath returns the version marker path.
func (i *Installer) markerPath() string {
	return filepath.Join(i.storageDir, markerFile)
}

// Installed reports whether a previously installed binary exists.
func (i *Installer) Installed() bool {
	return fileExists(i.BinaryPath())
}

// InstalledVersion returns the version marker content, if both the marker
// and the binary it describes exist.
func (i *Installer) InstalledVersion() (string, bool) {
	if !i.Installed() {
		return "", false
	}
	data, err := os.ReadFile(i.markerPath())
	if err != nil {
		return "", false
	}
	version := strings.TrimSpace(string(data))
	if version == "" {
		return "", false
	}
	return version, true
}

// AssetName returns the expected archive name for a version and tag.
func AssetName(version string, tag platform.Tag) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", Name, version, tag)
}

// Install provisions release for the given platform tag and returns the
// installed binary path.
//
// If the marker already records release.Version and the binary exists, no
// network request is made and the existing path is returned. On a failure
// during download or extraction, a binary surviving from a previous
// install is returned together with ErrStaleFallback; the storage
// directory is never left looking "installed" when it is not, because the
// marker is the last thing written.
func (i *Installer) Install(ctx context.Context, release *Release, tag platform.Tag) (string, error) {
	if !tag.Supported() {
		return "", ErrUnsupportedPlatform
	}

	assetName := AssetName(release.Version, tag)
	asset, ok := findAsset(release.Assets, assetName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, assetName)
	}

	binaryPath := i.BinaryPath()

	// Already current, skip the whole network path.
	if version, ok := i.InstalledVersion(); ok && version == release.Version {
		i.logger.Debug("install is current", "version", version)
		return binaryPath, nil
	}

	unlock, err := i.lock.Acquire(ctx)
	if err != nil {
		return i.failed(fmt.Errorf("install %s: %w", release.Version, err))
	}
	defer unlock()

	// Lock held: another process may have finished this install already.
	if version, ok := i.InstalledVersion(); ok && version == release.Version {
		return binaryPath, nil
	}

	i.logger.Info("downloading", "asset", assetName)

	archivePath := filepath.Join(i.storageDir, assetName)
	if err := i.downloader.DownloadToFile(ctx, asset.DownloadURL, archivePath); err != nil {
		return i.failed(fmt.Errorf("download %s: %w", assetName, err))
	}

	if err := i.extractor.ExtractBinary(archivePath, binaryPath, Name); err != nil {
		os.Remove(archivePath)
		return i.failed(fmt.Errorf("extract %s: %w", assetName, err))
	}

	if err := EnsureExecutable(binaryPath); err != nil {
		os.Remove(archivePath)
		return i.failed(err)
	}

	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return i.failed(fmt.Errorf("remove archive: %w", err))
	}

	// Marker write comes last so a crash anywhere above leaves the marker
	// absent or pointing at the prior version.
	if err := os.WriteFile(i.markerPath(), []byte(release.Version), 0644); err != nil {
		return i.failed(fmt.Errorf("write version marker: %w", err))
	}

	i.logger.Info("installed", "binary", Name, "version", release.Version)
	return binaryPath, nil
}

// failed applies the stale-fallback rule: a binary surviving from a
// previous install is returned as a degraded result.
func (i *Installer) failed(cause error) (string, error) {
	if i.Installed() {
		i.logger.Warn("install failed, keeping previous binary", "error", cause)
		return i.BinaryPath(), fmt.Errorf("%w: %v", ErrStaleFallback, cause)
	}
	return "", cause
}

func findAsset(assets []Asset, name string) (Asset, bool) {
	for _, a := range assets {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}
