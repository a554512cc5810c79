package wizard

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/huh"

	"github.com/rulekit-dev/rulekit/internal/selection"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

// askTools prompts for assistant tools. Only tools with a registered output
// target are offered; recommended ones are pre-selected.
func askTools(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	var opts []huh.Option[string]
	for _, id := range slices.Sorted(maps.Keys(doc.Tools)) {
		if !knownTool(id) {
			continue
		}
		info := doc.Tools[id]
		label := info.Name
		if label == "" {
			label = id
		}
		opt := huh.NewOption(label+recommendedSuffix(info.Recommended), id)
		if info.Recommended {
			opt = opt.Selected(true)
		}
		opts = append(opts, opt)
	}
	if len(opts) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Assistant tools").
			Description("Which tools should rulekit generate configuration for?").
			Options(opts...).
			Value(&st.Tools),
	))
	return runForm(form, theme)
}

// askLanguages prompts for languages.
func askLanguages(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	var opts []huh.Option[string]
	for _, id := range slices.Sorted(maps.Keys(doc.Languages)) {
		opts = append(opts, huh.NewOption(displayLabel(id, doc.Languages[id]), id))
	}
	if len(opts) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Languages").
			Description("Base rule sets to generate.").
			Options(opts...).
			Value(&st.Languages),
	))
	return runForm(form, theme)
}

// askDocumentation prompts for language-independent documentation.
func askDocumentation(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	var opts []huh.Option[string]
	for _, id := range slices.Sorted(maps.Keys(doc.Documentation)) {
		entry := doc.Documentation[id]
		label := id
		if entry.Description != "" {
			label = fmt.Sprintf("%s - %s", id, entry.Description)
		}
		opts = append(opts, huh.NewOption(label, id))
	}
	if len(opts) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Documentation").
			Description("Language-independent guides to include.").
			Options(opts...).
			Value(&st.Documentation),
	))
	return runForm(form, theme)
}

// askFrameworks prompts once per selected language that has frameworks.
func askFrameworks(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	for _, lang := range slices.Sorted(slices.Values(st.Languages)) {
		spec, ok := doc.Languages[lang]
		if !ok || len(spec.Frameworks) == 0 {
			continue
		}

		var opts []huh.Option[string]
		for _, id := range slices.Sorted(maps.Keys(spec.Frameworks)) {
			fw := spec.Frameworks[id]
			opt := huh.NewOption(id+recommendedSuffix(fw.Recommended), id)
			if fw.Recommended {
				opt = opt.Selected(true)
			}
			opts = append(opts, opt)
		}

		var chosen []string
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Frameworks for %s", displayLabel(lang, spec))).
				Options(opts...).
				Value(&chosen),
		))
		if err := runForm(form, theme); err != nil {
			return err
		}
		st.Frameworks[lang] = chosen
	}
	return nil
}

// askStructures prompts once per selected framework that offers project
// structures. A "none" option skips the structure entirely.
func askStructures(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	for _, lang := range slices.Sorted(slices.Values(st.Languages)) {
		spec, ok := doc.Languages[lang]
		if !ok {
			continue
		}
		for _, fw := range slices.Sorted(slices.Values(st.Frameworks[lang])) {
			fwSpec, ok := spec.Frameworks[fw]
			if !ok || len(fwSpec.Structures) == 0 {
				continue
			}

			opts := []huh.Option[string]{huh.NewOption("none", "")}
			for _, id := range slices.Sorted(maps.Keys(fwSpec.Structures)) {
				structSpec := fwSpec.Structures[id]
				opts = append(opts, huh.NewOption(id+recommendedSuffix(structSpec.Recommended), id))
			}

			var choice string
			form := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Project structure for %s/%s", lang, fw)).
					Options(opts...).
					Value(&choice),
			))
			if err := runForm(form, theme); err != nil {
				return err
			}
			st.Structures[selection.StructureKey(lang, fw)] = choice
		}
	}
	return nil
}

// askProcesses prompts once per selected language that has process guides.
// On-demand guides are offered too; they surface via `rulekit show` rather
// than managed output.
func askProcesses(doc *models.Document, st *selection.State, theme *huh.Theme) error {
	for _, lang := range slices.Sorted(slices.Values(st.Languages)) {
		spec, ok := doc.Languages[lang]
		if !ok || len(spec.Processes) == 0 {
			continue
		}

		var opts []huh.Option[string]
		for _, id := range slices.Sorted(maps.Keys(spec.Processes)) {
			proc := spec.Processes[id]
			label := id
			if proc.Description != "" {
				label = fmt.Sprintf("%s - %s", id, proc.Description)
			}
			if !proc.Permanent {
				label += " [on-demand]"
			}
			opts = append(opts, huh.NewOption(label, id))
		}

		var chosen []string
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Process guides for %s", displayLabel(lang, spec))).
				Options(opts...).
				Value(&chosen),
		))
		if err := runForm(form, theme); err != nil {
			return err
		}
		st.Processes[lang] = chosen
	}
	return nil
}

// displayLabel prefers the configured display name over the id.
func displayLabel(id string, spec models.LanguageSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return id
}
