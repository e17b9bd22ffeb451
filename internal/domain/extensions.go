package domain

import (
	"slices"
	"strings"
)

// DefaultImageExtensions is the extension set both tools fall back to.
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff"}

// ExtensionSet is an immutable, case-insensitive set of file extensions.
type ExtensionSet struct {
	exts []string
}

func NewExtensionSet(exts ...string) ExtensionSet {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(normalized, ext) {
			normalized = append(normalized, ext)
		}
	}
	return ExtensionSet{exts: normalized}
}

func DefaultExtensionSet() ExtensionSet {
	return NewExtensionSet(DefaultImageExtensions...)
}

// Extensions returns a copy of the members in insertion order.
func (s ExtensionSet) Extensions() []string {
	return slices.Clone(s.exts)
}

func (s ExtensionSet) Len() int {
	return len(s.exts)
}

// HasSuffix reports whether the lower-cased name ends with any member.
// The lister uses this form, so a bare ".png" entry matches.
func (s ExtensionSet) HasSuffix(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Contains reports whether ext, compared case-insensitively, is a member.
func (s ExtensionSet) Contains(ext string) bool {
	if ext == "" {
		return false
	}
	return slices.Contains(s.exts, strings.ToLower(ext))
}

// MatchesExt reports whether the extension of name, as split by SplitExt,
// is a member.
func (s ExtensionSet) MatchesExt(name string) bool {
	_, ext := SplitExt(name)
	return s.Contains(ext)
}

// SplitExt splits name into base and extension. The extension starts at the
// last dot; leading dots never start an extension, so ".jpg" has none.
func SplitExt(name string) (string, string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}
	if strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}
