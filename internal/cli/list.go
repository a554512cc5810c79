package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rulekit-dev/rulekit/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List everything the content library offers",
	Long: `List the tools, languages, frameworks, project structures, process
guides, and documentation available after merging the base library with the
project overlay.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	addCommonFlags(listCmd)
}

// titleCaser upper-cases ids for display when no display name is configured.
var titleCaser = cases.Title(language.English)

// runList prints the merged catalog.
func runList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	projectRoot, err := resolveProjectRoot(cmd)
	if err != nil {
		return err
	}
	libraryRoot, err := resolveLibraryRoot(cmd)
	if err != nil {
		return err
	}
	doc, err := loadDocument(cmd, projectRoot, libraryRoot)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("Tools"))
	for _, id := range slices.Sorted(maps.Keys(doc.Tools)) {
		info := doc.Tools[id]
		name := info.Name
		if name == "" {
			name = titleCaser.String(id)
		}
		_, _ = fmt.Fprintf(out, "  %s%s\n", name, recommendedMark(info.Recommended))
	}

	_, _ = fmt.Fprintln(out, cliPrimary.Render("Languages"))
	for _, id := range slices.Sorted(maps.Keys(doc.Languages)) {
		spec := doc.Languages[id]
		name := spec.Name
		if name == "" {
			name = titleCaser.String(id)
		}
		_, _ = fmt.Fprintf(out, "  %s (%d base files)\n", name, len(spec.Files))
		printLanguageDetail(cmd, id, spec)
	}

	if len(doc.Documentation) > 0 {
		_, _ = fmt.Fprintln(out, cliPrimary.Render("Documentation"))
		for _, id := range slices.Sorted(maps.Keys(doc.Documentation)) {
			entry := doc.Documentation[id]
			_, _ = fmt.Fprintf(out, "  %s%s\n", id, describe(entry.Description))
		}
	}

	return nil
}

// printLanguageDetail prints one language's frameworks, structures, and
// process guides.
func printLanguageDetail(cmd *cobra.Command, langID string, spec models.LanguageSpec) {
	out := cmd.OutOrStdout()

	for _, fw := range slices.Sorted(maps.Keys(spec.Frameworks)) {
		fwSpec := spec.Frameworks[fw]
		_, _ = fmt.Fprintf(out, "    framework %s%s\n", fw, recommendedMark(fwSpec.Recommended))
		for _, structID := range slices.Sorted(maps.Keys(fwSpec.Structures)) {
			structSpec := fwSpec.Structures[structID]
			_, _ = fmt.Fprintf(out, "      structure %s%s\n", structID, recommendedMark(structSpec.Recommended))
		}
	}
	for _, proc := range slices.Sorted(maps.Keys(spec.Processes)) {
		procSpec := spec.Processes[proc]
		phase := ""
		if !procSpec.Permanent {
			phase = cliMuted.Render(" [on-demand: rulekit show " + langID + " " + proc + "]")
		}
		_, _ = fmt.Fprintf(out, "    process %s%s%s\n", proc, describe(procSpec.Description), phase)
	}
}

// recommendedMark renders the recommended suffix.
func recommendedMark(recommended bool) string {
	if recommended {
		return cliSuccess.Render(" (recommended)")
	}
	return ""
}

// describe renders an optional description suffix.
func describe(desc string) string {
	if desc == "" {
		return ""
	}
	return cliMuted.Render(" - " + desc)
}
