// Package extract pulls plain text out of source CV files. Each
// format has its own extractor; unsupported or corrupt files fail
// per-file so one bad CV never aborts an ingest batch.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"cvassist/internal/domain"
)

// Registry dispatches files to format extractors by extension.
type Registry struct {
	byExt map[string]domain.Extractor
}

// NewRegistry builds a registry over the given extractors. Later
// extractors win on extension clashes.
func NewRegistry(extractors ...domain.Extractor) *Registry {
	r := &Registry{byExt: make(map[string]domain.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[strings.ToLower(ext)] = e
		}
	}
	return r
}

// Default returns a registry covering .txt, .pdf and .docx.
func Default() *Registry {
	return NewRegistry(PlainText{}, PDF{}, DOCX{})
}

// Supported reports whether any extractor claims the file's extension.
func (r *Registry) Supported(path string) bool {
	_, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extract reads the file and returns its trimmed plain text.
func (r *Registry) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return "", fmt.Errorf("%s: %w", ext, domain.ErrUnsupportedFormat)
	}
	text, err := e.Extract(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
