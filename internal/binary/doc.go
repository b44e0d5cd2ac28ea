// Package binary provisions the fleet-schema-gen language-server binary.
//
// It answers one question for the host: "give me a working binary path".
// Resolution tries an ordered list of local strategies first (configured
// path, executable search path, well-known install directories, previous
// install in the storage directory) and falls back to a remote install
// from GitHub releases only when no local binary is found or an explicit
// update is requested.
//
// # Components
//
//   - Manager: orchestrates the strategy chain and the remote fallback
//   - Strategy implementations: offline, side-effect-free binary lookup
//   - CatalogClient: queries the GitHub release listing
//   - Downloader: HTTP download with retries and atomic temp-file rename
//   - Extractor: pulls the single target executable out of a tar.gz
//   - Installer: download + extract + version marker, with stale fallback
//
// # Storage layout
//
// The storage directory holds exactly two long-lived files: the extracted
// executable and a plain-text "version" marker. The marker is always
// written last during an install, so a crash mid-install leaves either no
// marker or one pointing at the prior, still-intact binary. An advisory
// file lock serializes concurrent installs against the same directory.
//
// # Failure policy
//
// Discovery and network steps are fail-soft: they log, fall back to any
// previously installed binary, and never take the host down. Only the
// explicit InstallOrUpdate path fails loudly, because the host gates
// server startup on it.
package binary
