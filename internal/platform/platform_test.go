package platform

import (
	"context"
	"testing"
)

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name    string
		osName  string
		machine string
		want    Tag
	}{
		{"darwin_arm64", "darwin", "arm64", TagDarwinARM64},
		{"darwin_aarch64", "darwin", "aarch64", TagDarwinARM64},
		{"darwin_x86_64", "darwin", "x86_64", TagDarwinX64},
		{"darwin_amd64", "darwin", "amd64", TagDarwinX64},
		{"linux_x86_64", "linux", "x86_64", TagLinuxX64},
		{"linux_amd64", "linux", "amd64", TagLinuxX64},
		{"linux_aarch64", "linux", "aarch64", TagLinuxARM64},
		{"linux_arm64", "linux", "arm64", TagLinuxARM64},
		{"windows_amd64", "windows", "amd64", TagWindowsX64},
		{"windows_arm64", "windows", "arm64", TagWindowsX64},
		{"windows_386", "windows", "386", TagWindowsX64},
		{"freebsd_amd64", "freebsd", "amd64", TagUnsupported},
		{"linux_armv7", "linux", "armv7l", TagUnsupported},
		{"linux_386", "linux", "386", TagUnsupported},
		{"darwin_ppc", "darwin", "ppc", TagUnsupported},
		{"empty", "", "", TagUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTag(tt.osName, tt.machine)
			if got != tt.want {
				t.Errorf("ResolveTag(%q, %q) = %q, want %q", tt.osName, tt.machine, got, tt.want)
			}
		})
	}
}

func TestResolveTagCaseInsensitive(t *testing.T) {
	tests := []struct {
		name    string
		osName  string
		machine string
		want    Tag
	}{
		{"upper_os", "Darwin", "arm64", TagDarwinARM64},
		{"upper_machine", "linux", "X86_64", TagLinuxX64},
		{"mixed", "Windows", "AMD64", TagWindowsX64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTag(tt.osName, tt.machine)
			if got != tt.want {
				t.Errorf("ResolveTag(%q, %q) = %q, want %q", tt.osName, tt.machine, got, tt.want)
			}
		})
	}
}

func TestTagString(t *testing.T) {
	if got := TagLinuxX64.String(); got != "linux-x64" {
		t.Errorf("String() = %q, want %q", got, "linux-x64")
	}
	if got := TagUnsupported.String(); got != "unsupported" {
		t.Errorf("String() = %q, want %q", got, "unsupported")
	}
}

func TestTagSupported(t *testing.T) {
	if !TagDarwinARM64.Supported() {
		t.Error("expected darwin-arm64 to be supported")
	}
	if TagUnsupported.Supported() {
		t.Error("expected unsupported sentinel to report false")
	}
}

func TestDetect(t *testing.T) {
	info, err := Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if info.OS == "" {
		t.Error("expected non-empty OS")
	}
	if info.Machine == "" {
		t.Error("expected non-empty machine")
	}

	// The resolved tag must agree with resolving the detected strings again.
	if got := ResolveTag(info.OS, info.Machine); got != info.Tag {
		t.Errorf("tag mismatch: Detect=%q ResolveTag=%q", info.Tag, got)
	}
}

func TestDetectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context may fail detection or fall back to GOARCH before
	// the cancellation is observed; either way no tag/arch disagreement.
	info, err := Detect(ctx)
	if err == nil && info.Tag != ResolveTag(info.OS, info.Machine) {
		t.Errorf("tag mismatch: %q vs %q", info.Tag, ResolveTag(info.OS, info.Machine))
	}
}
