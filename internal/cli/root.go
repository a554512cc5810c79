// Package cli wires the rulekit commands. Everything here is the thin
// interactive shell around the core packages: prompting, flag parsing, and
// display formatting.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "rulekit",
	Short: "rulekit: coding-assistant rule generation from one declaration",
	Long: `rulekit generates per-tool configuration artifacts (Cursor rules,
CLAUDE.md, .windsurfrules, and friends) from a content library plus your
project's override layer.

Declare your tools, languages, frameworks, project structures, and process
guides once; rulekit emits each tool's artifacts deterministically and can
be re-run at any time without touching files it does not own.`,
	Version: version.GetVersion(),
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("rulekit %s\n", version.GetVersion()))
}
