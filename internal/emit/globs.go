package emit

import (
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SplitGlobs tokenizes a comma-separated glob list. Only top-level commas
// split patterns; commas inside brace alternations ({js,jsx}) belong to the
// pattern. The grammar is bounded, so an explicit depth counter is enough.
func SplitGlobs(list string) []string {
	var (
		patterns []string
		current  strings.Builder
		depth    int
	)

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			patterns = append(patterns, p)
		}
		current.Reset()
	}

	for _, r := range list {
		switch r {
		case '{':
			depth++
			current.WriteRune(r)
		case '}':
			if depth > 0 {
				depth--
			}
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				flush()
				continue
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return patterns
}

// ValidGlobs tokenizes list and drops patterns doublestar rejects, warning
// on each dropped pattern.
func ValidGlobs(list string) []string {
	patterns := SplitGlobs(list)
	valid := patterns[:0]
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			slog.Warn("dropping invalid glob pattern", "pattern", p)
			continue
		}
		valid = append(valid, p)
	}
	return valid
}
