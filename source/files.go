package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 32 * 1024

// Extensions lists the file extensions collected from directories.
var Extensions = []string{".html", ".htm"}

// WalkOptions configures directory walking behavior.
type WalkOptions struct {
	// SkipHidden skips directories starting with ".".
	SkipHidden bool
	// SkipVendor skips vendor and node_modules directories.
	SkipVendor bool
	// ExcludeDirs lists additional directory names to skip.
	ExcludeDirs []string
}

// DefaultWalkOptions skips hidden and dependency directories.
var DefaultWalkOptions = WalkOptions{SkipHidden: true, SkipVendor: true}

// ErrNoMatch is returned by Expand when a pattern matches nothing.
var ErrNoMatch = errors.New("pattern matched no files")

// ReadFile reads path chunkSize bytes at a time through a Tagger and returns
// the tagged content.
func ReadFile(path string, chunkSize int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadAll(f, path, chunkSize)
}

// ReadAll reads r in chunks of chunkSize through a Tagger for file.
func ReadAll(r io.Reader, file string, chunkSize int) ([]byte, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	var out bytes.Buffer
	t := NewTagger(&out, file)
	if _, err := io.CopyBuffer(t, onlyReader{r}, make([]byte, chunkSize)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return out.Bytes(), nil
}

// onlyReader hides io.WriterTo so io.CopyBuffer honors the chunk size.
type onlyReader struct {
	io.Reader
}

// Expand resolves file patterns to a sorted, de-duplicated list of paths.
// A pattern may name a file, a directory (walked for markup files) or a glob.
func Expand(patterns []string, opts WalkOptions) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				add(m)
				continue
			}
			err = WalkDir(m, opts, func(path string) error {
				add(path)
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// WalkDir walks a directory tree and calls fn for each markup file.
func WalkDir(root string, opts WalkOptions, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if SkipDir(d.Name(), opts) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkup(path) {
			return nil
		}
		return fn(path)
	})
}

// SkipDir reports whether a directory named name is excluded by opts.
func SkipDir(name string, opts WalkOptions) bool {
	if opts.SkipHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if opts.SkipVendor && (name == "vendor" || name == "node_modules") {
		return true
	}
	for _, excluded := range opts.ExcludeDirs {
		if name == excluded {
			return true
		}
	}
	return false
}

// IsMarkup reports whether path has a markup file extension.
func IsMarkup(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
