package scopes

import (
	"slices"
	"sort"
	"strings"
)

const (
	// Separator splits multiple scopes within a single string.
	Separator = " "

	// Wildcard matches every scope.
	Wildcard = "*"

	// Delimiter separates hierarchical scope parts (e.g., "vehicles.read").
	Delimiter = "."
)

// Parse converts a space-separated scope string into a slice.
// Empty entries are dropped; returns nil for empty input.
func Parse(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, Separator)
	out := make([]string, 0, len(parts))
	for i := range parts {
		if parts[i] = strings.TrimSpace(parts[i]); parts[i] != "" {
			out = append(out, parts[i])
		}
	}
	return out
}

// Join converts a scope slice back to a space-separated string.
func Join(scopes []string) string {
	if len(scopes) == 0 {
		return ""
	}
	return strings.Join(scopes, Separator)
}

// Matches reports whether a single scope satisfies a pattern.
//
// Matching rules:
//   - direct match: "read" matches "read"
//   - global wildcard: "*" matches anything
//   - namespace wildcard: "vehicles.*" matches "vehicles.read"
func Matches(scope, pattern string) bool {
	if scope == pattern || pattern == Wildcard {
		return true
	}

	if strings.HasSuffix(pattern, Wildcard) {
		prefix := strings.TrimSuffix(pattern, Wildcard)
		prefix = strings.TrimSuffix(prefix, Delimiter)
		return strings.HasPrefix(scope, prefix+Delimiter)
	}

	return false
}

// Has reports whether the scope collection grants the given scope.
func Has(scopes []string, scope string) bool {
	for _, s := range scopes {
		if Matches(scope, s) {
			return true
		}
	}
	return false
}

// HasAll reports whether the collection grants every required scope.
// An empty required set is always satisfied.
func HasAll(scopes, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if slices.Contains(scopes, Wildcard) {
		return true
	}
	for _, req := range required {
		if !Has(scopes, req) {
			return false
		}
	}
	return true
}

// HasAny reports whether the collection grants at least one required scope.
// An empty required set is always satisfied.
func HasAny(scopes, required []string) bool {
	if len(required) == 0 {
		return true
	}
	if slices.Contains(scopes, Wildcard) {
		return true
	}
	for _, req := range required {
		if Has(scopes, req) {
			return true
		}
	}
	return false
}

// Normalize deduplicates and sorts a scope collection for stable comparison
// and storage. Returns nil for empty input.
func Normalize(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}

	unique := make(map[string]struct{}, len(scopes))
	for i := range scopes {
		unique[scopes[i]] = struct{}{}
	}

	out := make([]string, 0, len(unique))
	for s := range unique {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
