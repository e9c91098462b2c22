// Package resolver turns an opaque source application identifier into
// process/display names that may own a window.
//
// Two strategies run in order and are concatenated: the service rule table,
// then a structural parse of the identifier around its first '!'. The result
// is deduplicated case-insensitively, keeping first occurrences.
package resolver

import (
	"strings"
)

// Resolve returns the ordered candidate list for identifier.
// An empty identifier yields an empty list.
func Resolve(identifier string) []string {
	var candidates []string

	for _, svc := range services {
		if svc.Matches(identifier) {
			candidates = append(candidates, svc.Candidates...)
		}
	}

	candidates = append(candidates, parseIdentifier(identifier)...)

	return dedupe(candidates)
}

// parseIdentifier splits on the first '!' and cleans each side.
// Without a '!' both sides are the whole identifier.
func parseIdentifier(identifier string) []string {
	before, after := identifier, identifier
	if i := strings.IndexByte(identifier, '!'); i >= 0 {
		before = identifier[:i]
		if i+1 < len(identifier) {
			after = identifier[i+1:]
		}
	}

	var out []string
	for _, part := range []string{cleanSegment(before), cleanSegment(after)} {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// cleanSegment strips a path prefix, a ".exe" suffix and surrounding whitespace
func cleanSegment(s string) string {
	if i := strings.LastIndexAny(s, `\/`); i >= 0 && i+1 < len(s) {
		s = s[i+1:]
	}
	if len(s) >= 4 && strings.EqualFold(s[len(s)-4:], ".exe") {
		s = s[:len(s)-4]
	}
	return strings.TrimSpace(s)
}

func dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
