package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rulekit-dev/rulekit/internal/config"
	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/resolver"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// addCommonFlags registers the flags shared by every document-reading command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Project root directory (default: current directory)")
	cmd.Flags().String("library", "", "Content library root (default: ~/"+defs.LibraryDirName+")")
}

// resolveProjectRoot returns the project root from --root or the cwd.
func resolveProjectRoot(cmd *cobra.Command) (string, error) {
	if root := getStringFlag(cmd, "root"); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("resolve project root %q: %w", root, err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// resolveLibraryRoot returns the content library root from --library or the
// default location under the user home.
func resolveLibraryRoot(cmd *cobra.Command) (string, error) {
	if lib := getStringFlag(cmd, "library"); lib != "" {
		abs, err := filepath.Abs(lib)
		if err != nil {
			return "", fmt.Errorf("resolve library root %q: %w", lib, err)
		}
		return abs, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, filepath.FromSlash(defs.LibraryDirName)), nil
}

// loadDocument merges and normalizes the configuration documents, printing
// a remediation card on the fatal error paths.
func loadDocument(cmd *cobra.Command, projectRoot, libraryRoot string) (*models.Document, error) {
	basePath := filepath.Join(libraryRoot, defs.ConfigYAML)
	overlayPath := defs.OverlayConfigPath(projectRoot)

	doc, err := config.NewLoader(basePath, overlayPath).Load()
	if err != nil {
		printLoadError(cmd, err, basePath, overlayPath)
		return nil, err
	}
	return doc, nil
}

// printLoadError turns the loader's fatal errors into a diagnosis with a
// concrete next command rather than a bare error.
func printLoadError(cmd *cobra.Command, err error, basePath, overlayPath string) {
	out := cmd.ErrOrStderr()
	switch {
	case errors.Is(err, config.ErrConfigMissing):
		_, _ = fmt.Fprintln(out, renderErrorCard(
			"Base configuration not found",
			fmt.Sprintf("Expected it at: %s", basePath),
			"Point --library at your content library, or create the file there.",
		))
	case errors.Is(err, config.ErrOverlayParse):
		_, _ = fmt.Fprintln(out, renderErrorCard(
			"Project overlay is not valid YAML",
			fmt.Sprintf("Check the syntax: yamllint %s", overlayPath),
			fmt.Sprintf("Or revert your last change: git checkout -- %s", overlayPath),
		))
	case errors.Is(err, config.ErrConfigParse):
		_, _ = fmt.Fprintln(out, renderErrorCard(
			"Base configuration is not valid YAML",
			fmt.Sprintf("Check the syntax: yamllint %s", basePath),
			fmt.Sprintf("Or revert your last change: git checkout -- %s", basePath),
		))
	}
}

// buildResolver constructs the content resolver: project overrides first,
// base library second.
func buildResolver(projectRoot, libraryRoot string) *resolver.Resolver {
	overrides := resolver.Root{Label: defs.OverridesDir}
	if overridesDir := defs.OverridesRoot(projectRoot); dirExists(overridesDir) {
		overrides.FS = os.DirFS(overridesDir)
	}
	return resolver.New(overrides, resolver.Root{Label: "library", FS: os.DirFS(libraryRoot)})
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
