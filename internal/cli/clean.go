package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/managed"
	"github.com/rulekit-dev/rulekit/internal/selection"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [tool...]",
	Short: "Remove artifacts previously generated by rulekit",
	Long: `Remove output artifacts that carry a rulekit ownership marker.

Only files rulekit wrote are deleted; files authored by you or by another
tool are never touched, even when they live in the same output directory.
With no arguments every known tool is cleaned. The stored selection state
is deleted as well, so the next generate run starts fresh.

Known tools: ` + strings.Join(defs.TargetIDs(), ", "),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().String("root", "", "Project root directory (default: current directory)")
}

// runClean removes marked artifacts for the named tools (or all known
// tools) and deletes the persisted selection state.
func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	projectRoot, err := resolveProjectRoot(cmd)
	if err != nil {
		return err
	}

	ids := args
	if len(ids) == 0 {
		ids = defs.TargetIDs()
	}

	var removed, kept int
	var warnings []string
	for _, id := range ids {
		target, ok := defs.LookupTarget(id)
		if !ok {
			return fmt.Errorf("unknown tool %q (known: %s)", id, strings.Join(defs.TargetIDs(), ", "))
		}
		res, err := managed.Cleanup(projectRoot, target)
		if err != nil {
			return err
		}
		removed += len(res.Removed)
		kept += len(res.Kept)
		warnings = append(warnings, res.Errors...)
	}

	// A pure cleanup run ends without selections to carry forward.
	if err := selection.Delete(defs.StatePath(projectRoot)); err != nil {
		return err
	}

	details := []string{
		renderKeyValueLines([]kvPair{
			{"Removed", fmt.Sprintf("%d managed files", removed)},
			{"Preserved", fmt.Sprintf("%d unmanaged files", kept)},
		}),
	}
	for _, w := range warnings {
		details = append(details, cliWarn.Render("Warning: "+w))
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Cleanup complete", details...))
	return nil
}
