package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rulekit-dev/rulekit/pkg/models"
)

// Loader merges the base configuration document with an optional overlay
// and produces the normalized document.
type Loader struct {
	// BasePath is the base configuration document (required).
	BasePath string

	// OverlayPath is the project overlay document. An absent file is fine;
	// a present but unparseable one is fatal.
	OverlayPath string
}

// NewLoader creates a Loader for the given base and overlay paths.
func NewLoader(basePath, overlayPath string) *Loader {
	return &Loader{BasePath: basePath, OverlayPath: overlayPath}
}

// Load reads both documents, deep-merges overlay over base, writes the
// merged tree to a process-scoped scratch file (removed on every exit path),
// and decodes the result into a normalized document.
func (l *Loader) Load() (*models.Document, error) {
	base, err := readDocumentTree(l.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, l.BasePath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, l.BasePath, err)
	}

	merged := base
	if l.OverlayPath != "" {
		if _, statErr := os.Stat(l.OverlayPath); statErr == nil {
			overlay, overlayErr := readDocumentTree(l.OverlayPath)
			if overlayErr != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrOverlayParse, l.OverlayPath, overlayErr)
			}
			merged = deepMerge(base, overlay)
		}
	}

	mergedYAML, err := yaml.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("config: marshal merged document: %w", err)
	}

	// Scratch artifact for the lifetime of this call only. The name is
	// pid-scoped to reduce collision risk between invocations; concurrent
	// runs on one project are unsupported.
	scratch := filepath.Join(os.TempDir(), fmt.Sprintf("rulekit-merged-%d.yaml", os.Getpid()))
	if writeErr := os.WriteFile(scratch, mergedYAML, 0o600); writeErr != nil {
		slog.Warn("failed to write merged scratch file", "path", scratch, "error", writeErr)
	} else {
		defer func() {
			if removeErr := os.Remove(scratch); removeErr != nil && !os.IsNotExist(removeErr) {
				slog.Warn("failed to remove merged scratch file", "path", scratch, "error", removeErr)
			}
		}()
	}

	var doc models.Document
	if err := yaml.Unmarshal(mergedYAML, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, l.BasePath, err)
	}

	return Normalize(&doc), nil
}

// readDocumentTree reads a YAML file into an untyped tree for merging.
// os.IsNotExist on the returned error distinguishes a missing file from a
// parse failure.
func readDocumentTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}
