package binary

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	// VersionProbeTimeout bounds a version probe invocation.
	VersionProbeTimeout = 5 * time.Second
	// versionFlag is the binary's version-query flag.
	versionFlag = "--version"
)

// ProbeVersion invokes the binary with its version flag and returns the
// last whitespace-delimited token of its standard output.
//
// This is diagnostic only and always degrades to VersionUnknown: a
// missing binary, non-zero exit, timeout, or empty output never produces
// an error. Only exit code 0 output is trusted.
func ProbeVersion(ctx context.Context, binaryPath string) string {
	if binaryPath == "" {
		return VersionUnknown
	}

	ctx, cancel := context.WithTimeout(ctx, VersionProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binaryPath, versionFlag).Output()
	if err != nil {
		return VersionUnknown
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return VersionUnknown
	}
	return fields[len(fields)-1]
}
