// Package managed stamps every emitted artifact with an embedded ownership
// marker and uses that marker to delete only rulekit-owned files on cleanup.
// The marker lives inside the file itself, so a future process invocation
// can recognize prior output without any external bookkeeping.
package managed

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarkerSchema is the managed-marker schema version embedded in artifacts.
const MarkerSchema = 1

// frontmatterFence delimits the attribute block of directory-member artifacts.
const frontmatterFence = "---"

// Marker is the ownership attribute embedded in directory-member artifacts.
type Marker struct {
	Managed bool `yaml:"managed"`
	Schema  int  `yaml:"schema"`
}

// Frontmatter is the attribute block prepended to every directory-member
// artifact: tool-facing display metadata plus the ownership marker.
type Frontmatter struct {
	Description string   `yaml:"description,omitempty"`
	Globs       []string `yaml:"globs,omitempty"`
	AlwaysApply bool     `yaml:"alwaysApply"`
	Rulekit     Marker   `yaml:"rulekit"`
}

// NewFrontmatter builds an attribute block carrying the current marker.
func NewFrontmatter(description string, globs []string, alwaysApply bool) Frontmatter {
	return Frontmatter{
		Description: description,
		Globs:       globs,
		AlwaysApply: alwaysApply,
		Rulekit:     Marker{Managed: true, Schema: MarkerSchema},
	}
}

// BundleMarkerLine returns the single leading marker line of a concatenated
// artifact for the given tool.
func BundleMarkerLine(toolID string) string {
	return fmt.Sprintf("<!-- rulekit:managed schema=%d tool=%s -->", MarkerSchema, toolID)
}

// ParseBundleMarker extracts the tool id from a concatenated artifact's
// first line. ok is false when the line is not a rulekit marker.
func ParseBundleMarker(line string) (toolID string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "<!-- rulekit:managed ") || !strings.HasSuffix(line, " -->") {
		return "", false
	}
	fields := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(line, "<!--"), "-->"))
	for _, f := range fields {
		if after, found := strings.CutPrefix(f, "tool="); found {
			return after, after != ""
		}
	}
	return "", false
}

// HasManagedFrontmatter reports whether data starts with a frontmatter
// block whose rulekit marker claims ownership. Files without the marker
// were authored by the user or another tool and are never touched.
func HasManagedFrontmatter(data []byte) bool {
	block, ok := frontmatterBlock(data)
	if !ok {
		return false
	}
	var fm Frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return false
	}
	return fm.Rulekit.Managed
}

// frontmatterBlock extracts the bytes between the leading fence pair.
func frontmatterBlock(data []byte) ([]byte, bool) {
	open := []byte(frontmatterFence + "\n")
	if !bytes.HasPrefix(data, open) {
		return nil, false
	}
	rest := data[len(open):]
	end := bytes.Index(rest, []byte("\n"+frontmatterFence))
	if end < 0 {
		return nil, false
	}
	return rest[:end+1], true
}
