package extractors

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/askpdf/askpdf-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry implements ExtractorRegistry with priority-based selection.
// When multiple extractors match a MIME type, the highest priority one is
// used.
type Registry struct {
	mu         sync.RWMutex
	extractors []driven.Extractor
}

// NewRegistry creates a new extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make([]driven.Extractor, 0),
	}
}

// DefaultRegistry returns a registry with the standard extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPDFExtractor())
	r.Register(NewMarkdownExtractor())
	return r
}

// Register registers an extractor.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.extractors = append(r.extractors, e)
}

// Get retrieves the best-matching extractor for a MIME type.
// Returns nil if no extractor is registered for the type.
func (r *Registry) Get(mimeType string) driven.Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.Extractor
	for _, e := range r.extractors {
		if matchesMIMEType(e.SupportedTypes(), mimeType) {
			matches = append(matches, e)
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})
	return matches[0]
}

// List returns all registered MIME types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, e := range r.extractors {
		for _, t := range e.SupportedTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// TypeForFilename maps a filename extension to the content type used for
// extractor lookup. Returns "" for unknown extensions.
func TypeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".md", ".markdown":
		return "text/markdown"
	default:
		return ""
	}
}

// matchesMIMEType checks if any of the supported types match the given
// MIME type. Supports wildcard matching (e.g., "text/*" matches
// "text/plain").
func matchesMIMEType(supportedTypes []string, mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	// Strip charset and other parameters
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	for _, supported := range supportedTypes {
		supported = strings.ToLower(strings.TrimSpace(supported))

		if supported == mimeType {
			return true
		}

		if strings.HasSuffix(supported, "/*") {
			prefix := supported[:len(supported)-1]
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}

		if supported == "*/*" {
			return true
		}
	}

	return false
}
