package models

// Category identifies the resolution namespace of a content item.
type Category string

const (
	// CategoryRule resolves under <language>/<name>.
	CategoryRule Category = "rule"

	// CategoryFramework resolves under <language>/frameworks/<name>.
	CategoryFramework Category = "framework"

	// CategoryStructure resolves under <language>/frameworks/structures/<name>.
	CategoryStructure Category = "structure"

	// CategoryProcess resolves under <language>/<name>, with a legacy
	// <language>/<phase>/<name> fallback.
	CategoryProcess Category = "process"

	// CategoryDoc resolves under docs/<name>, independent of any language.
	CategoryDoc Category = "doc"
)

// IsValid checks if the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRule, CategoryFramework, CategoryStructure, CategoryProcess, CategoryDoc:
		return true
	}
	return false
}

// ProcessPhase classifies when a process guide should be loaded.
type ProcessPhase string

const (
	// PhasePermanent guides are emitted into managed output on every run.
	PhasePermanent ProcessPhase = "permanent"

	// PhaseOnDemand guides are never emitted; they are surfaced for manual
	// reference so they do not occupy assistant context permanently.
	PhaseOnDemand ProcessPhase = "ondemand"
)

// IsValid checks if the process phase is a known value.
func (p ProcessPhase) IsValid() bool {
	return p == PhasePermanent || p == PhaseOnDemand
}

// Document is the configuration document tree, both before and after
// normalization. The loader decodes the deep-merged base+overlay YAML into
// it; Normalize folds the custom* sibling fields into their canonical
// counterparts and drops them.
type Document struct {
	Tools         map[string]ToolInfo     `yaml:"tools"`
	Languages     map[string]LanguageSpec `yaml:"languages"`
	Documentation map[string]DocEntry     `yaml:"documentation"`
}

// ToolInfo carries display metadata for an assistant tool. The output shape
// of a tool is not configurable; it is statically bound in the emitter.
type ToolInfo struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Recommended bool   `yaml:"recommended"`
}

// LanguageSpec describes one language's content: ordered base rule files,
// an applicability glob list, frameworks, and process guides.
//
// The custom* fields are the overlay's additive channel: they are unioned
// into their canonical siblings during normalization and never consulted
// afterwards.
type LanguageSpec struct {
	Name        string                   `yaml:"name"`
	Files       []string                 `yaml:"files"`
	Globs       string                   `yaml:"globs"`
	AlwaysApply bool                     `yaml:"alwaysApply"`
	Frameworks  map[string]FrameworkSpec `yaml:"frameworks"`
	Processes   map[string]ProcessSpec   `yaml:"processes"`

	CustomFiles      []string                 `yaml:"customFiles,omitempty"`
	CustomFrameworks map[string]FrameworkSpec `yaml:"customFrameworks,omitempty"`
	CustomProcesses  map[string]ProcessSpec   `yaml:"customProcesses,omitempty"`
}

// FrameworkSpec describes a framework's rule file and its project structures.
type FrameworkSpec struct {
	File        string                   `yaml:"file"`
	Category    string                   `yaml:"category"`
	Recommended bool                     `yaml:"recommended"`
	Structures  map[string]StructureSpec `yaml:"structures"`
}

// StructureSpec describes one project-structure template under a framework.
type StructureSpec struct {
	File        string `yaml:"file"`
	Recommended bool   `yaml:"recommended"`
}

// ProcessSpec describes one implementation process guide.
type ProcessSpec struct {
	File        string `yaml:"file"`
	Description string `yaml:"description"`
	Permanent   bool   `yaml:"permanent"`
}

// Phase returns the process phase implied by the Permanent flag.
func (p ProcessSpec) Phase() ProcessPhase {
	if p.Permanent {
		return PhasePermanent
	}
	return PhaseOnDemand
}

// DocEntry describes one language-independent documentation item.
type DocEntry struct {
	File        string `yaml:"file"`
	Description string `yaml:"description"`
}
