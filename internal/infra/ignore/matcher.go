package ignore

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Matcher skips paths that match gitignore-style patterns. Paths are
// relative to the walked root.
type Matcher struct {
	matcher gitignore.Matcher
}

// New parses patterns; blank lines and comments are ignored. A matcher built
// from no patterns never skips anything.
func New(patterns []string) *Matcher {
	var parsed []gitignore.Pattern
	for _, line := range patterns {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parsed = append(parsed, gitignore.ParsePattern(line, nil))
	}
	if len(parsed) == 0 {
		return &Matcher{}
	}
	return &Matcher{matcher: gitignore.NewMatcher(parsed)}
}

func (m *Matcher) Skip(relPath string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	segments := splitPath(relPath)
	if len(segments) == 0 {
		return false
	}
	return m.matcher.Match(segments, isDir)
}

func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
