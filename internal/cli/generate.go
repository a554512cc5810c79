package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/cli/wizard"
	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/emit"
	"github.com/rulekit-dev/rulekit/internal/managed"
	"github.com/rulekit-dev/rulekit/internal/selection"
	"github.com/rulekit-dev/rulekit/internal/ui"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate assistant configuration artifacts",
	Long: `Generate per-tool configuration artifacts from the content library and
your project's override layer.

Prior selections are stored in .rulekit/state.yaml and offered for reuse on
the next run; selections that no longer exist in the library are dropped
silently. Artifacts owned by rulekit are regenerated in place; files without
a rulekit marker are never touched.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addCommonFlags(generateCmd)
	generateCmd.Flags().Bool("reuse", false, "Reuse prior selections without asking")
	generateCmd.Flags().Bool("non-interactive", false, "Never prompt; requires reusable prior selections")
}

// runGenerate executes the full generation workflow: load and merge the
// documents, obtain a selection state (reused or via the wizard), clean the
// selected tools' prior output, emit, and persist the selections.
func runGenerate(cmd *cobra.Command, _ []string) error {
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

	headless := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "non-interactive") {
		headless.ForceHeadless(true)
	}

	statePath := defs.StatePath(projectRoot)
	prior, hasPrior := selection.Load(statePath, doc)

	sel, err := obtainSelection(cmd, doc, prior, hasPrior, headless)
	if err != nil {
		return err
	}
	if sel == nil {
		_, _ = fmt.Fprintln(out, "Generation cancelled.")
		return nil
	}

	// Prior output of the selected tools is removed first so the result of
	// a run never depends on what an earlier selection emitted.
	for _, toolID := range sel.Tools {
		target, ok := defs.LookupTarget(toolID)
		if !ok {
			continue
		}
		if _, cleanErr := managed.Cleanup(projectRoot, target); cleanErr != nil {
			return fmt.Errorf("clean prior output for %s: %w", toolID, cleanErr)
		}
	}

	pipe := emit.New(buildResolver(projectRoot, libraryRoot), doc)

	prog := ui.NewProgress(ui.DefaultTheme(), headless)
	sp := prog.Spinner("Generating assistant configuration...")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := pipe.Run(ctx, projectRoot, sel)
	sp.Stop()
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := sel.Save(statePath); err != nil {
		return err
	}

	printGenerateReport(cmd, result)
	return nil
}

// obtainSelection decides where this run's selection state comes from: the
// filtered prior state (silently with --reuse or in non-interactive mode,
// after a confirm otherwise) or a fresh wizard run. A nil state with nil
// error means the user cancelled.
func obtainSelection(cmd *cobra.Command, doc *models.Document, prior *selection.State, hasPrior bool, headless *ui.HeadlessManager) (*selection.State, error) {
	reuseFlag := getBoolFlag(cmd, "reuse")

	if headless.IsHeadless() {
		if !hasPrior {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), renderErrorCard(
				"No prior selections to reuse",
				"Run once interactively: rulekit generate",
			))
			return nil, errors.New("non-interactive run requires prior selections")
		}
		return prior, nil
	}

	if hasPrior {
		if reuseFlag {
			return prior, nil
		}
		reuse, err := wizard.ConfirmReuse(summarizeSelection(prior))
		if err != nil {
			if errors.Is(err, wizard.ErrCancelled) {
				return nil, nil
			}
			return nil, err
		}
		if reuse {
			return prior, nil
		}
	}

	sel, err := wizard.Run(doc)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			return nil, nil
		}
		return nil, err
	}
	return sel, nil
}

// summarizeSelection renders a short summary of a prior state for the
// reuse confirmation prompt.
func summarizeSelection(st *selection.State) string {
	return fmt.Sprintf("Tools: %s | Languages: %s",
		joinOrNone(st.Tools), joinOrNone(st.Languages))
}

// joinOrNone joins ids or reports "none".
func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

// printGenerateReport renders the success card with emission details.
func printGenerateReport(cmd *cobra.Command, result *emit.Result) {
	out := cmd.OutOrStdout()

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Artifacts", fmt.Sprintf("%d written", len(result.Written))},
			{"Skipped", fmt.Sprintf("%d missing", len(result.Skipped))},
		}),
	}
	for _, s := range result.Skipped {
		details = append(details, cliWarn.Render(
			fmt.Sprintf("Warning: %s %q not found (tried: %s)", s.Category, s.Name, strings.Join(s.Candidates, ", "))))
	}
	if len(result.OnDemand) > 0 {
		details = append(details, "", cliPrimary.Render("On-demand guides (not emitted):"))
		for _, od := range result.OnDemand {
			details = append(details, cliMuted.Render(
				fmt.Sprintf("  rulekit show %s %s", od.Language, od.Process)))
		}
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, renderSuccessCard("Assistant configuration generated", details...))
}
