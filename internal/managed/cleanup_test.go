package managed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

var (
	cursorTarget = defs.Target{ID: "cursor", Shape: defs.ShapeDirectory, Dir: ".cursor/rules", Ext: ".mdc"}
	claudeTarget = defs.Target{ID: "claude", Shape: defs.ShapeConcatenated, File: "CLAUDE.md"}
)

// writeManagedRule is a test helper emitting one owned directory artifact.
func writeManagedRule(t *testing.T, path string) {
	t.Helper()
	if err := WriteRule(path, NewFrontmatter("", nil, false), []byte("body")); err != nil {
		t.Fatalf("WriteRule(%s): %v", path, err)
	}
}

func TestCleanup_Directory(t *testing.T) {
	t.Run("removes_only_marked_files", func(t *testing.T) {
		root := t.TempDir()
		rules := filepath.Join(root, ".cursor", "rules")
		writeManagedRule(t, filepath.Join(rules, "demo-style.mdc"))
		writeManagedRule(t, filepath.Join(rules, "demo-web.mdc"))
		userFile := filepath.Join(rules, "my-notes.mdc")
		if err := os.MkdirAll(rules, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(userFile, []byte("hand written"), 0o644); err != nil {
			t.Fatal(err)
		}

		res, err := Cleanup(root, cursorTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}

		if len(res.Removed) != 2 {
			t.Errorf("removed = %v, want 2 managed files", res.Removed)
		}
		if len(res.Kept) != 1 || res.Kept[0] != userFile {
			t.Errorf("kept = %v, want the user file", res.Kept)
		}
		if _, err := os.Stat(userFile); err != nil {
			t.Error("user file deleted by cleanup")
		}
		if _, err := os.Stat(rules); err != nil {
			t.Error("non-empty rules directory pruned")
		}
	})

	t.Run("prunes_emptied_directories", func(t *testing.T) {
		root := t.TempDir()
		rules := filepath.Join(root, ".cursor", "rules")
		writeManagedRule(t, filepath.Join(rules, "nested", "demo-style.mdc"))
		writeManagedRule(t, filepath.Join(rules, "demo-web.mdc"))

		res, err := Cleanup(root, cursorTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}

		if len(res.Removed) != 2 {
			t.Errorf("removed = %v", res.Removed)
		}
		if _, err := os.Stat(rules); !os.IsNotExist(err) {
			t.Error("fully emptied rules directory not pruned")
		}
	})

	t.Run("missing_directory_is_noop", func(t *testing.T) {
		res, err := Cleanup(t.TempDir(), cursorTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}
		if len(res.Removed)+len(res.Kept)+len(res.Errors) != 0 {
			t.Errorf("unexpected activity on missing directory: %+v", res)
		}
	})
}

func TestCleanup_Bundle(t *testing.T) {
	t.Run("removes_owned_bundle", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "CLAUDE.md")
		if err := WriteBundle(path, "claude", [][]byte{[]byte("section")}); err != nil {
			t.Fatal(err)
		}

		res, err := Cleanup(root, claudeTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}
		if len(res.Removed) != 1 {
			t.Errorf("removed = %v", res.Removed)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("owned bundle still present")
		}
	})

	t.Run("keeps_unmarked_bundle", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "CLAUDE.md")
		if err := os.WriteFile(path, []byte("# My hand-written CLAUDE.md\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		res, err := Cleanup(root, claudeTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}
		if len(res.Removed) != 0 {
			t.Errorf("removed = %v, want nothing", res.Removed)
		}
		if len(res.Kept) != 1 {
			t.Errorf("kept = %v, want the user bundle", res.Kept)
		}
		if _, err := os.Stat(path); err != nil {
			t.Error("user bundle deleted by cleanup")
		}
	})

	t.Run("keeps_bundle_owned_by_other_tool", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "CLAUDE.md")
		if err := WriteBundle(path, "windsurf", [][]byte{[]byte("section")}); err != nil {
			t.Fatal(err)
		}

		res, err := Cleanup(root, claudeTarget)
		if err != nil {
			t.Fatalf("Cleanup() error = %v", err)
		}
		if len(res.Removed) != 0 || len(res.Kept) != 1 {
			t.Errorf("result = %+v, want bundle kept", res)
		}
	})
}
