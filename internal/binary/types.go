package binary

import "errors"

// Name is the canonical name of the provisioned binary.
const Name = "fleet-schema-gen"

// VersionUnknown is the sentinel returned when the version probe fails.
// Version reporting is diagnostic only and never produces an error.
const VersionUnknown = "unknown"

// Release is one published release of the binary.
type Release struct {
	// Version is the semantic version with no leading "v".
	Version string
	// Assets are the release's downloadable files, in published order.
	Assets []Asset
}

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string
	DownloadURL string
}

// Source identifies which strategy produced a resolved binary path.
type Source string

const (
	// SourceConfigured is the user-configured explicit path.
	SourceConfigured Source = "configured"
	// SourcePathSearch is standard executable search-path lookup.
	SourcePathSearch Source = "path"
	// SourceWellKnown is one of the fixed well-known install directories.
	SourceWellKnown Source = "well-known"
	// SourceCached is a previous install in the storage directory.
	SourceCached Source = "cached"
	// SourceDownloaded is a fresh or stale remote install.
	SourceDownloaded Source = "downloaded"
	// SourceNone means no strategy produced a path.
	SourceNone Source = "none"
)

// Result is the outcome of a provisioning attempt.
type Result struct {
	// Path is the resolved binary path, empty when Source is SourceNone.
	Path string
	// Source is the strategy that produced Path.
	Source Source
}

// Found reports whether the attempt produced a usable path.
func (r *Result) Found() bool {
	return r != nil && r.Path != ""
}

var (
	// ErrUnsupportedPlatform means no release asset exists for this host.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrAssetNotFound means the release publishes no asset matching the
	// expected name for this version and platform.
	ErrAssetNotFound = errors.New("release asset not found")

	// ErrNoBinaryInArchive means the downloaded archive contains no member
	// matching the binary name. Treated as a hard install failure so the
	// stale-fallback path engages deliberately.
	ErrNoBinaryInArchive = errors.New("no matching binary in archive")

	// ErrStaleFallback wraps an install failure when a previously installed
	// binary remains usable. Callers that receive it together with a path
	// got a degraded but working result.
	ErrStaleFallback = errors.New("falling back to previously installed binary")

	// ErrNotInstalled means no binary could be located by any strategy.
	ErrNotInstalled = errors.New("binary not installed")
)
