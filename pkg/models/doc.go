// Package models provides the shared configuration document schema for rulekit.
//
// The document describes everything a content library offers: assistant
// tools, languages with their base rule files, frameworks and project
// structures, process guides, and standalone documentation entries. It is
// the type that the base config.yaml and the user overlay both decode into
// after the loader's deep merge.
//
// # Categories
//
// Every piece of emittable content belongs to exactly one [Category]:
//   - [CategoryRule]: a language's base rule files
//   - [CategoryFramework]: framework-specific rules under a language
//   - [CategoryStructure]: project-structure templates under a framework
//   - [CategoryProcess]: implementation process guides
//   - [CategoryDoc]: language-independent documentation
//
// Categories resolve in independent namespaces; a framework request is never
// satisfied by a rule file of the same name.
//
// # Process phases
//
// Process guides are either permanent (emitted into managed output) or
// on-demand (surfaced for manual reference only). Use [ProcessPhase]:
//
//	phase := models.PhasePermanent
//	if phase.IsValid() {
//	    fmt.Println("valid phase:", phase)
//	}
package models
