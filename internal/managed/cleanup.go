package managed

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/rulekit-dev/rulekit/internal/defs"
)

// CleanupResult reports what a cleanup pass did. Errors are accumulated so
// one unreadable file does not stop the rest of the pass.
type CleanupResult struct {
	Removed []string
	Kept    []string
	Errors  []string
}

// Cleanup removes previously emitted artifacts for one tool target. A file
// is deleted if and only if its embedded marker matches the target; a file
// without the marker was authored by the user or a different tool and is
// left alone. For directory targets, directories left empty are pruned.
func Cleanup(projectRoot string, target defs.Target) (*CleanupResult, error) {
	res := &CleanupResult{}

	switch target.Shape {
	case defs.ShapeConcatenated:
		cleanBundle(filepath.Join(projectRoot, target.File), target.ID, res)
	case defs.ShapeDirectory:
		cleanDirectory(filepath.Join(projectRoot, target.Dir), res)
	default:
		return nil, fmt.Errorf("managed: unknown shape %q for tool %q", target.Shape, target.ID)
	}

	return res, nil
}

// cleanBundle removes a concatenated artifact when its leading marker names
// the expected tool.
func cleanBundle(path, toolID string, res *CleanupResult) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			res.Errors = append(res.Errors, fmt.Sprintf("open %s: %v", path, err))
		}
		return
	}
	scanner := bufio.NewScanner(f)
	var first string
	if scanner.Scan() {
		first = scanner.Text()
	}
	_ = f.Close()

	marked, ok := ParseBundleMarker(first)
	if !ok || marked != toolID {
		res.Kept = append(res.Kept, path)
		return
	}
	if err := os.Remove(path); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("remove %s: %v", path, err))
		return
	}
	res.Removed = append(res.Removed, path)
}

// cleanDirectory walks a rules directory, removes marker-carrying files,
// then prunes directories that ended up empty, deepest first.
func cleanDirectory(dir string, res *CleanupResult) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			res.Errors = append(res.Errors, fmt.Sprintf("stat %s: %v", dir, err))
		}
		return
	}
	if !info.IsDir() {
		return
	}

	var files, dirs []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("walk %s: %v", path, err))
			return nil
		}
		if path == dir {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("walk %s: %v", dir, walkErr))
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("read %s: %v", path, err))
			continue
		}
		if !HasManagedFrontmatter(data) {
			res.Kept = append(res.Kept, path)
			continue
		}
		if err := os.Remove(path); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("remove %s: %v", path, err))
			continue
		}
		res.Removed = append(res.Removed, path)
	}

	// Deepest first so nested empty directories collapse upward.
	dirs = append(dirs, dir)
	slices.SortFunc(dirs, func(a, b string) int { return len(b) - len(a) })
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(d); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("remove dir %s: %v", d, err))
		}
	}
}
