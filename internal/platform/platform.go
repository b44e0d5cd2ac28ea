// Package platform maps the host operating system and machine architecture
// to the canonical platform tag used in release asset names.
//
// Tags follow the fleet-schema-gen release naming convention
// (e.g. "linux-x64", "darwin-arm64"). Resolution is a pure function of the
// OS name and machine architecture string; detection of those strings uses
// runtime.GOOS and gopsutil with a GOARCH fallback.
package platform

import "strings"

// Tag identifies an OS/architecture combination in release asset names.
type Tag string

const (
	// TagDarwinARM64 is macOS on Apple Silicon.
	TagDarwinARM64 Tag = "darwin-arm64"
	// TagDarwinX64 is macOS on Intel.
	TagDarwinX64 Tag = "darwin-x64"
	// TagLinuxX64 is Linux on x86_64.
	TagLinuxX64 Tag = "linux-x64"
	// TagLinuxARM64 is Linux on aarch64.
	TagLinuxARM64 Tag = "linux-arm64"
	// TagWindowsX64 is Windows (x64 is the only published Windows build).
	TagWindowsX64 Tag = "windows-x64"
	// TagUnsupported means no release asset exists for this host.
	// It is a terminal condition for remote install, not an error.
	TagUnsupported Tag = ""
)

// String returns the tag as it appears in asset names, or "unsupported".
func (t Tag) String() string {
	if t == TagUnsupported {
		return "unsupported"
	}
	return string(t)
}

// Supported reports whether a release asset can exist for this tag.
func (t Tag) Supported() bool {
	return t != TagUnsupported
}

// ResolveTag maps an OS name and machine architecture string to a Tag.
// Both inputs are matched case-insensitively. Machine strings accept both
// uname-style ("x86_64", "aarch64") and Go-style ("amd64", "arm64") names.
// Unknown combinations resolve to TagUnsupported.
func ResolveTag(osName, machine string) Tag {
	osName = strings.ToLower(osName)
	machine = strings.ToLower(machine)

	switch osName {
	case "darwin":
		switch machine {
		case "arm64", "aarch64":
			return TagDarwinARM64
		case "x86_64", "amd64":
			return TagDarwinX64
		}
	case "linux":
		switch machine {
		case "x86_64", "amd64":
			return TagLinuxX64
		case "aarch64", "arm64":
			return TagLinuxARM64
		}
	case "windows":
		return TagWindowsX64
	}

	return TagUnsupported
}
