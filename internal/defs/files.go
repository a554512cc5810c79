// Package defs holds file-name constants and the static tool target
// registry shared across rulekit packages.
package defs

import "path/filepath"

// Well-known file and directory names.
const (
	// RulekitDir is the per-project rulekit directory.
	RulekitDir = ".rulekit"

	// ConfigYAML is the configuration document file name, used for both the
	// base library config and the project overlay.
	ConfigYAML = "config.yaml"

	// StateYAML is the persisted selection state file.
	StateYAML = "state.yaml"

	// OverridesDir is the project-local content override root.
	OverridesDir = "overrides"

	// LibraryDirName is the default library location under the user home.
	LibraryDirName = ".rulekit/library"
)

// OverlayConfigPath returns the overlay document path for a project root.
func OverlayConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, RulekitDir, ConfigYAML)
}

// OverridesRoot returns the override content root for a project root.
func OverridesRoot(projectRoot string) string {
	return filepath.Join(projectRoot, RulekitDir, OverridesDir)
}

// StatePath returns the selection state file path for a project root.
func StatePath(projectRoot string) string {
	return filepath.Join(projectRoot, RulekitDir, StateYAML)
}
