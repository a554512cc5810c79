package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/resolver"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

var showCmd = &cobra.Command{
	Use:   "show <language> <process>",
	Short: "Render a process guide in the terminal",
	Long: `Resolve a process guide through the override layer and render it as
markdown in the terminal.

This is the reading channel for on-demand guides, which are deliberately
never written into generated artifacts; permanent guides render too.`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	addCommonFlags(showCmd)
}

// runShow resolves and renders one process guide.
func runShow(cmd *cobra.Command, args []string) error {
	lang, proc := args[0], args[1]

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

	spec, ok := doc.Languages[lang]
	if !ok {
		return fmt.Errorf("unknown language %q", lang)
	}
	procSpec, ok := spec.Processes[proc]
	if !ok {
		return fmt.Errorf("language %q has no process %q", lang, proc)
	}

	name := procSpec.File
	if name == "" {
		name = proc
	}
	content, err := buildResolver(projectRoot, libraryRoot).Resolve(resolver.Request{
		Category: models.CategoryProcess,
		Language: lang,
		Name:     name,
		Phase:    procSpec.Phase(),
	})
	if err != nil {
		var nf *resolver.NotFoundError
		if errors.As(err, &nf) {
			return fmt.Errorf("guide %q not found (tried: %s)", proc, strings.Join(nf.Candidates, ", "))
		}
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := renderer.Render(string(content))
	if err != nil {
		return fmt.Errorf("render guide: %w", err)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
