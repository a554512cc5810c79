package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

const testLibraryConfig = `
tools:
  cursor:
    name: Cursor
  claude:
    name: Claude Code
languages:
  demo:
    name: Demo
    files: [style]
    globs: "**/*.demo"
    alwaysApply: true
    frameworks:
      web:
        file: web
    processes:
      refactoring:
        file: refactoring
        description: Refactoring guide
        permanent: true
      migration:
        file: migration
        description: Migration guide
        permanent: false
documentation:
  commit-style:
    file: commit-style
    description: Commit conventions
`

// setupLibrary writes a minimal content library and returns its root.
func setupLibrary(t *testing.T) string {
	t.Helper()
	lib := t.TempDir()
	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(lib, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("config.yaml", testLibraryConfig)
	write("demo/style.md", "Use two-space indent.\n")
	write("demo/frameworks/web.md", "Web conventions.\n")
	write("demo/refactoring.md", "Refactor in small steps.\n")
	write("demo/migration.md", "Migrate carefully.\n")
	write("docs/commit-style.md", "Commit message rules.\n")
	return lib
}

// setupPriorState persists a selection state under the project root.
func setupPriorState(t *testing.T, root string) {
	t.Helper()
	state := `version: "1"
tools: [cursor, claude]
languages: [demo]
documentation: [commit-style]
frameworks:
  demo: [web]
processes:
  demo: [migration, refactoring]
`
	path := defs.StatePath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(state), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setGenerateFlags(t *testing.T, root, lib string) {
	t.Helper()
	for name, value := range map[string]string{
		"root":            root,
		"library":         lib,
		"non-interactive": "true",
	} {
		if err := generateCmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s flag: %v", name, err)
		}
	}
}

func TestGenerateCmd_Registration(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "generate" {
			found = true
			break
		}
	}
	if !found {
		t.Error("generate should be registered as a subcommand of root")
	}
	for _, name := range []string{"root", "library", "reuse", "non-interactive"} {
		if generateCmd.Flags().Lookup(name) == nil {
			t.Errorf("generate command should have --%s flag", name)
		}
	}
	if !generateCmd.HasAlias("gen") {
		t.Error("generate should carry the gen alias")
	}
}

func TestGenerateCmd_NonInteractive(t *testing.T) {
	t.Run("emits_from_prior_selections", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()
		setupPriorState(t, root)

		buf := new(bytes.Buffer)
		generateCmd.SetOut(buf)
		generateCmd.SetErr(buf)
		setGenerateFlags(t, root, lib)

		if err := runGenerate(generateCmd, nil); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}

		for _, want := range []string{
			filepath.Join(root, ".cursor", "rules", "demo-style.mdc"),
			filepath.Join(root, ".cursor", "rules", "demo-web.mdc"),
			filepath.Join(root, ".cursor", "rules", "demo-refactoring.mdc"),
			filepath.Join(root, ".cursor", "rules", "docs-commit-style.mdc"),
			filepath.Join(root, "CLAUDE.md"),
		} {
			if _, err := os.Stat(want); err != nil {
				t.Errorf("expected artifact missing: %s", want)
			}
		}
		if _, err := os.Stat(filepath.Join(root, ".cursor", "rules", "demo-migration.mdc")); !os.IsNotExist(err) {
			t.Error("on-demand process guide was emitted")
		}
		if !strings.Contains(buf.String(), "rulekit show demo migration") {
			t.Errorf("report does not surface the on-demand guide:\n%s", buf.String())
		}
	})

	t.Run("rerun_reuses_saved_state", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()
		setupPriorState(t, root)

		generateCmd.SetOut(new(bytes.Buffer))
		generateCmd.SetErr(new(bytes.Buffer))
		setGenerateFlags(t, root, lib)
		if err := runGenerate(generateCmd, nil); err != nil {
			t.Fatalf("first run: %v", err)
		}

		first, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
		if err != nil {
			t.Fatal(err)
		}

		setGenerateFlags(t, root, lib)
		if err := runGenerate(generateCmd, nil); err != nil {
			t.Fatalf("second run: %v", err)
		}
		second, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(first, second) {
			t.Error("reruns with equal selections produced different output")
		}
	})

	t.Run("fails_without_prior_selections", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()

		errBuf := new(bytes.Buffer)
		generateCmd.SetOut(new(bytes.Buffer))
		generateCmd.SetErr(errBuf)
		setGenerateFlags(t, root, lib)

		if err := runGenerate(generateCmd, nil); err == nil {
			t.Fatal("runGenerate() succeeded without prior selections")
		}
		if !strings.Contains(errBuf.String(), "No prior selections") {
			t.Errorf("stderr missing remediation card:\n%s", errBuf.String())
		}
	})

	t.Run("missing_library_config_is_fatal", func(t *testing.T) {
		root := t.TempDir()
		setupPriorState(t, root)

		errBuf := new(bytes.Buffer)
		generateCmd.SetOut(new(bytes.Buffer))
		generateCmd.SetErr(errBuf)
		setGenerateFlags(t, root, t.TempDir())

		if err := runGenerate(generateCmd, nil); err == nil {
			t.Fatal("runGenerate() succeeded without a base configuration")
		}
		if !strings.Contains(errBuf.String(), "Base configuration not found") {
			t.Errorf("stderr missing remediation card:\n%s", errBuf.String())
		}
	})

	t.Run("override_layer_wins", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()
		setupPriorState(t, root)

		override := filepath.Join(defs.OverridesRoot(root), "demo", "style.md")
		if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(override, []byte("Use tabs instead.\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		generateCmd.SetOut(new(bytes.Buffer))
		generateCmd.SetErr(new(bytes.Buffer))
		setGenerateFlags(t, root, lib)
		if err := runGenerate(generateCmd, nil); err != nil {
			t.Fatalf("runGenerate() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(root, ".cursor", "rules", "demo-style.mdc"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "Use tabs instead.") {
			t.Error("override content not preferred over library content")
		}
	})
}
