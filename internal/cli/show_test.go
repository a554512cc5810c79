package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

func setShowFlags(t *testing.T, root, lib string) {
	t.Helper()
	if err := showCmd.Flags().Set("root", root); err != nil {
		t.Fatal(err)
	}
	if err := showCmd.Flags().Set("library", lib); err != nil {
		t.Fatal(err)
	}
}

func TestShowCmd_Execution(t *testing.T) {
	t.Run("renders_on_demand_guide", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()

		buf := new(bytes.Buffer)
		showCmd.SetOut(buf)
		showCmd.SetErr(buf)
		setShowFlags(t, root, lib)

		if err := runShow(showCmd, []string{"demo", "migration"}); err != nil {
			t.Fatalf("runShow() error = %v", err)
		}
		if !strings.Contains(buf.String(), "Migrate carefully") {
			t.Errorf("rendered output missing guide content:\n%s", buf.String())
		}
	})

	t.Run("prefers_override_content", func(t *testing.T) {
		lib := setupLibrary(t)
		root := t.TempDir()

		override := filepath.Join(defs.OverridesRoot(root), "demo", "migration.md")
		if err := os.MkdirAll(filepath.Dir(override), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(override, []byte("Team migration playbook.\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		buf := new(bytes.Buffer)
		showCmd.SetOut(buf)
		showCmd.SetErr(buf)
		setShowFlags(t, root, lib)

		if err := runShow(showCmd, []string{"demo", "migration"}); err != nil {
			t.Fatalf("runShow() error = %v", err)
		}
		if !strings.Contains(buf.String(), "Team migration playbook") {
			t.Errorf("override content not rendered:\n%s", buf.String())
		}
	})

	t.Run("unknown_language", func(t *testing.T) {
		lib := setupLibrary(t)
		setShowFlags(t, t.TempDir(), lib)
		showCmd.SetOut(new(bytes.Buffer))
		showCmd.SetErr(new(bytes.Buffer))

		err := runShow(showCmd, []string{"cobol", "migration"})
		if err == nil || !strings.Contains(err.Error(), "cobol") {
			t.Errorf("error = %v, want unknown language named", err)
		}
	})

	t.Run("unknown_process", func(t *testing.T) {
		lib := setupLibrary(t)
		setShowFlags(t, t.TempDir(), lib)
		showCmd.SetOut(new(bytes.Buffer))
		showCmd.SetErr(new(bytes.Buffer))

		err := runShow(showCmd, []string{"demo", "ghost"})
		if err == nil || !strings.Contains(err.Error(), "ghost") {
			t.Errorf("error = %v, want unknown process named", err)
		}
	})

	t.Run("missing_guide_file_lists_candidates", func(t *testing.T) {
		lib := setupLibrary(t)
		if err := os.Remove(filepath.Join(lib, "demo", "migration.md")); err != nil {
			t.Fatal(err)
		}
		setShowFlags(t, t.TempDir(), lib)
		showCmd.SetOut(new(bytes.Buffer))
		showCmd.SetErr(new(bytes.Buffer))

		err := runShow(showCmd, []string{"demo", "migration"})
		if err == nil || !strings.Contains(err.Error(), "tried:") {
			t.Errorf("error = %v, want candidate listing", err)
		}
	})
}
