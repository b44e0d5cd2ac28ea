package binary

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor pulls the single target executable out of a gzip-compressed
// tar archive.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBinary scans a tar.gz archive for the member whose name equals
// binaryName or ends with a path separator followed by binaryName, and
// extracts it flattened to destPath. The first match wins and scanning
// stops after extraction.
//
// An archive with no matching member returns ErrNoBinaryInArchive rather
// than silently installing nothing.
func (e *Extractor) ExtractBinary(archivePath, destPath, binaryName string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return fmt.Errorf("%w: %s", ErrNoBinaryInArchive, binaryName)
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		if header.Typeflag != tar.TypeReg || !memberMatches(header.Name, binaryName) {
			continue
		}

		destDir := filepath.Dir(destPath)
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return fmt.Errorf("create dest dir: %w", err)
		}

		mode := os.FileMode(header.Mode).Perm()
		if mode == 0 {
			mode = 0644
		}

		outFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			return fmt.Errorf("create file: %w", err)
		}

		if _, err := io.Copy(outFile, tarReader); err != nil {
			outFile.Close()
			return fmt.Errorf("write file: %w", err)
		}

		if err := outFile.Close(); err != nil {
			return fmt.Errorf("close file: %w", err)
		}

		return nil
	}
}

// memberMatches applies the single-member naming rule: exact name or any
// path ending in "/<binaryName>". Tar member names use forward slashes
// regardless of host OS.
func memberMatches(memberName, binaryName string) bool {
	return memberName == binaryName || strings.HasSuffix(memberName, "/"+binaryName)
}

// EnsureExecutable ORs owner/group/other executable bits into a file's
// permissions. Existing bits are preserved, never replaced wholesale.
func EnsureExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat binary: %w", err)
	}
	if err := os.Chmod(path, info.Mode().Perm()|0111); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
