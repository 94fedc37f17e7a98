// Archive handling for slow-query logs shipped as tar or 7z bundles.
package parser

import (
	"archive/tar"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bodgit/sevenzip"
)

// archiveSuffixes lists the archive container formats accepted as input.
var archiveSuffixes = []string{
	".tar", ".tar.gz", ".tgz", ".tar.zst", ".tar.zstd", ".tzst", ".7z",
}

// isArchive reports whether the filename names a supported archive.
func isArchive(filename string) bool {
	lower := strings.ToLower(filename)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// parseArchive parses every slow-log member of an archive in order.
// Each member is an independent log, so the USE-directive pointer is
// reset per member by giving each its own parser.
func parseArchive(filename string, emit func(*Query)) error {
	if strings.HasSuffix(strings.ToLower(filename), ".7z") {
		return parseSevenZip(filename, emit)
	}
	return parseTar(filename, emit)
}

// parseTar reads a tar archive, optionally gzip- or zstd-compressed,
// and parses the slow-log members inside it.
func parseTar(filename string, emit func(*Query)) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", filename, err)
	}
	defer file.Close()

	var reader io.Reader = file
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		gr, gzipErr := newParallelGzipReader(file)
		if gzipErr != nil {
			return fmt.Errorf("failed to open gzip reader for archive %s: %w", filename, gzipErr)
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tar.zstd"),
		strings.HasSuffix(lower, ".tzst"):
		zr, zstdErr := newZstdDecoder(file)
		if zstdErr != nil {
			return fmt.Errorf("failed to open zstd reader for archive %s: %w", filename, zstdErr)
		}
		defer zr.Close()
		reader = zr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading archive %s: %w", filename, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !isSlowLogMember(hdr.Name) {
			log.Printf("[WARN] Skipping unsupported archive entry %s in %s", hdr.Name, filename)
			continue
		}
		if err := NewSlowLogParser().Parse(tr, emit); err != nil {
			return fmt.Errorf("parsing %s from archive %s: %w", hdr.Name, filename, err)
		}
	}
	return nil
}

// parseSevenZip reads a 7z archive and parses the slow-log members inside it.
func parseSevenZip(filename string, emit func(*Query)) error {
	archive, err := sevenzip.OpenReader(filename)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive %s: %w", filename, err)
	}
	defer archive.Close()

	for _, member := range archive.File {
		if member.FileInfo().IsDir() {
			continue
		}
		if !isSlowLogMember(member.Name) {
			log.Printf("[WARN] Skipping unsupported archive entry %s in %s", member.Name, filename)
			continue
		}

		rc, err := member.Open()
		if err != nil {
			return fmt.Errorf("opening %s from archive %s: %w", member.Name, filename, err)
		}
		parseErr := NewSlowLogParser().Parse(rc, emit)
		rc.Close()
		if parseErr != nil {
			return fmt.Errorf("parsing %s from archive %s: %w", member.Name, filename, parseErr)
		}
	}
	return nil
}

// isSlowLogMember reports whether an archive entry looks like a slow-query log.
func isSlowLogMember(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".log") || strings.HasSuffix(lower, ".txt")
}
