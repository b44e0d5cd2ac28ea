package platform

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Info contains detected host platform information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Machine string // kernel arch (e.g. "x86_64", "aarch64") or GOARCH fallback
	Tag     Tag    // resolved asset tag, TagUnsupported if none
}

// Detect resolves the host platform once. The OS comes from runtime.GOOS
// and the machine architecture from the kernel via gopsutil, which reports
// uname-style names matching published asset tags more directly than GOARCH.
//
// If kernel detection fails, runtime.GOARCH is used instead; ResolveTag
// accepts both naming schemes. An unsupported host is not an error.
func Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS: runtime.GOOS,
	}

	machine, err := host.KernelArch()
	if err != nil || machine == "" {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Graceful fallback for detection failures only
		machine = runtime.GOARCH
	}
	info.Machine = machine
	info.Tag = ResolveTag(info.OS, info.Machine)

	return info, nil
}
