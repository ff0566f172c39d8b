package lsp

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Documents holds the text of documents open in the editor. Documents that
// are not open are read from disk.
type Documents struct {
	mu   sync.RWMutex
	text map[string]string
}

// NewDocuments returns an empty document store.
func NewDocuments() *Documents {
	return &Documents{text: make(map[string]string)}
}

// Open records the text of a newly opened or changed document.
func (d *Documents) Open(uri, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text[uri] = text
}

// Close forgets an open document.
func (d *Documents) Close(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.text, uri)
}

// Get returns the current text of uri.
func (d *Documents) Get(uri string) (string, error) {
	d.mu.RLock()
	text, ok := d.text[uri]
	d.mu.RUnlock()
	if ok {
		return text, nil
	}

	path, err := Path(uri)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Path converts a file URI to a file system path. Plain paths are returned
// unchanged.
func Path(uri string) (string, error) {
	if !strings.Contains(uri, "://") {
		return uri, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document URI %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}
	return u.Path, nil
}

// lineAt returns line n (0-based) of text without its line ending.
func lineAt(text string, n int) string {
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return ""
		}
		text = text[idx+1:]
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSuffix(text, "\r")
}
