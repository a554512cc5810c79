package defs

import (
	"path/filepath"
	"slices"
)

// Shape is the structural form of a tool's output.
type Shape string

const (
	// ShapeDirectory emits one file per content item into a rules directory,
	// each prefixed with a YAML frontmatter attribute block.
	ShapeDirectory Shape = "directory"

	// ShapeConcatenated emits a single document per tool with one leading
	// marker line and a fixed delimiter between sections.
	ShapeConcatenated Shape = "concatenated"
)

// Target statically binds a tool id to its output shape and location.
// The configuration document contributes display metadata only; the shape
// binding is not user-configurable.
type Target struct {
	ID    string
	Shape Shape

	// Dir and Ext apply to ShapeDirectory targets.
	Dir string
	Ext string

	// File applies to ShapeConcatenated targets.
	File string
}

// OutputPath returns the artifact path for a content item named base,
// relative joining under projectRoot. For concatenated targets the base is
// ignored; every item lands in the single bundle file.
func (t Target) OutputPath(projectRoot, base string) string {
	if t.Shape == ShapeConcatenated {
		return filepath.Join(projectRoot, t.File)
	}
	return filepath.Join(projectRoot, t.Dir, base+t.Ext)
}

// targets is the registry of supported tools, keyed by tool id.
var targets = map[string]Target{
	"cursor": {
		ID:    "cursor",
		Shape: ShapeDirectory,
		Dir:   filepath.Join(".cursor", "rules"),
		Ext:   ".mdc",
	},
	"copilot": {
		ID:    "copilot",
		Shape: ShapeDirectory,
		Dir:   filepath.Join(".github", "instructions"),
		Ext:   ".instructions.md",
	},
	"claude": {
		ID:    "claude",
		Shape: ShapeConcatenated,
		File:  "CLAUDE.md",
	},
	"windsurf": {
		ID:    "windsurf",
		Shape: ShapeConcatenated,
		File:  ".windsurfrules",
	},
	"cline": {
		ID:    "cline",
		Shape: ShapeConcatenated,
		File:  ".clinerules",
	},
}

// LookupTarget returns the target for a tool id.
func LookupTarget(toolID string) (Target, bool) {
	t, ok := targets[toolID]
	return t, ok
}

// TargetIDs returns all registered tool ids in stable sorted order.
func TargetIDs() []string {
	ids := make([]string, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
