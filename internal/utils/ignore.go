package utils

import "strings"

// hiddenEntryPrefix marks dotfile entries excluded by the default predicate.
const hiddenEntryPrefix = "."

// defaultIgnoredNames lists directory and file names excluded from the tree
// unless include-all is requested: version control, language and tool caches,
// build output, virtual environments, IDE state, and OS metadata files.
var defaultIgnoredNames = map[string]struct{}{
	".git":          {},
	".svn":          {},
	".hg":           {},
	".bzr":          {},
	"__pycache__":   {},
	".pytest_cache": {},
	".mypy_cache":   {},
	"node_modules":  {},
	".next":         {},
	".nuxt":         {},
	"cache":         {},
	".cache":        {},
	"tmp":           {},
	"temp":          {},
	".idea":         {},
	".vscode":       {},
	".vs":           {},
	"dist":          {},
	"build":         {},
	".build":        {},
	".venv":         {},
	"venv":          {},
	"env":           {},
	".env":          {},
	".DS_Store":     {},
	"Thumbs.db":     {},
}

// IgnorePredicate decides whether a directory entry is excluded from the tree.
type IgnorePredicate struct {
	includeAll      bool
	additionalNames map[string]struct{}
}

// NewIgnorePredicate builds a predicate over the default ignored names plus
// the provided additional names. When includeAll is true the predicate
// accepts every entry.
func NewIgnorePredicate(additionalNames []string, includeAll bool) IgnorePredicate {
	extraNames := make(map[string]struct{}, len(additionalNames))
	for _, entryName := range additionalNames {
		trimmedName := strings.TrimSpace(entryName)
		if trimmedName == EmptyString {
			continue
		}
		extraNames[trimmedName] = struct{}{}
	}
	return IgnorePredicate{includeAll: includeAll, additionalNames: extraNames}
}

// ShouldIgnore reports whether the named entry is excluded from traversal.
// Dotfiles are excluded by convention unless include-all is set.
func (predicate IgnorePredicate) ShouldIgnore(entryName string) bool {
	if predicate.includeAll {
		return false
	}
	if _, isDefaultIgnored := defaultIgnoredNames[entryName]; isDefaultIgnored {
		return true
	}
	if _, isAdditionalIgnored := predicate.additionalNames[entryName]; isAdditionalIgnored {
		return true
	}
	return strings.HasPrefix(entryName, hiddenEntryPrefix)
}

// DeduplicateNames removes duplicate names from a slice while preserving order.
// The first occurrence of each unique name is kept.
func DeduplicateNames(names []string) []string {
	encounteredNames := make(map[string]struct{})
	result := make([]string, 0, len(names))
	for _, currentName := range names {
		if _, exists := encounteredNames[currentName]; !exists {
			encounteredNames[currentName] = struct{}{}
			result = append(result, currentName)
		}
	}
	return result
}
