package config

import (
	"maps"
	"slices"

	"github.com/rulekit-dev/rulekit/pkg/models"
)

// Normalize folds every language's custom* fields into their canonical
// counterparts and drops them: customFiles are unioned into files with
// first-seen order preserved, customFrameworks and customProcesses are
// unioned into frameworks/processes with custom entries winning on id
// collision. Normalizing an already-normalized document is a no-op.
func Normalize(doc *models.Document) *models.Document {
	out := &models.Document{
		Tools:         maps.Clone(doc.Tools),
		Documentation: maps.Clone(doc.Documentation),
	}
	if doc.Languages != nil {
		out.Languages = make(map[string]models.LanguageSpec, len(doc.Languages))
		for id, lang := range doc.Languages {
			out.Languages[id] = normalizeLanguage(lang)
		}
	}
	return out
}

// normalizeLanguage folds one language's custom fields.
func normalizeLanguage(lang models.LanguageSpec) models.LanguageSpec {
	norm := lang

	norm.Files = uniqueAppend(lang.Files, lang.CustomFiles)
	norm.Frameworks = unionFrameworks(lang.Frameworks, lang.CustomFrameworks)
	norm.Processes = unionProcesses(lang.Processes, lang.CustomProcesses)

	norm.CustomFiles = nil
	norm.CustomFrameworks = nil
	norm.CustomProcesses = nil
	return norm
}

// uniqueAppend returns base ++ extra with duplicates removed, preserving
// first-seen order.
func uniqueAppend(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range slices.Concat(base, extra) {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func unionFrameworks(base, extra map[string]models.FrameworkSpec) map[string]models.FrameworkSpec {
	if len(extra) == 0 {
		return maps.Clone(base)
	}
	out := make(map[string]models.FrameworkSpec, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}

func unionProcesses(base, extra map[string]models.ProcessSpec) map[string]models.ProcessSpec {
	if len(extra) == 0 {
		return maps.Clone(base)
	}
	out := make(map[string]models.ProcessSpec, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
