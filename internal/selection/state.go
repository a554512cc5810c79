// Package selection persists a user's prior selections and re-validates
// them against the current configuration document on every load.
package selection

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rulekit-dev/rulekit/pkg/models"
)

// SchemaVersion is written into every persisted state record. Records with
// an unknown version are loaded best-effort rather than rejected, so the
// schema can evolve in both directions.
const SchemaVersion = "1"

// structureKeySep joins language and framework ids in structure keys.
const structureKeySep = "-"

// State is one run's selection set. It is created fresh per run, persisted
// at the end of a successful interactive run, and filtered against the
// current document when a later run reuses it.
type State struct {
	Version       string              `yaml:"version"`
	Tools         []string            `yaml:"tools"`
	Languages     []string            `yaml:"languages"`
	Documentation []string            `yaml:"documentation"`
	Frameworks    map[string][]string `yaml:"frameworks"`
	Structures    map[string]string   `yaml:"structures"`
	Processes     map[string][]string `yaml:"processes"`
}

// NewState creates an empty selection state at the current schema version.
func NewState() *State {
	return &State{
		Version:    SchemaVersion,
		Frameworks: make(map[string][]string),
		Structures: make(map[string]string),
		Processes:  make(map[string][]string),
	}
}

// StructureKey builds the composite key addressing a structure selection.
func StructureKey(language, framework string) string {
	return language + structureKeySep + framework
}

// Load reads a persisted state record and filters it against doc. A missing
// file means "first run" (nil, false). A record that fails to parse is also
// treated as first run with a warning; only the two configuration documents
// are fatal on parse errors, prior state never is.
func Load(path string, doc *models.Document) (*State, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read selection state, starting fresh", "path", path, "error", err)
		}
		return nil, false
	}

	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		slog.Warn("selection state is not valid YAML, starting fresh", "path", path, "error", err)
		return nil, false
	}

	st.Filter(doc)
	return &st, true
}

// Save writes the state record. Slices and map keys serialize in sorted
// order so repeated saves of equal selections are byte-identical.
func (s *State) Save(path string) error {
	s.Version = SchemaVersion
	s.sort()

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("selection: marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("selection: create state dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("selection: write state: %w", err)
	}
	return nil
}

// Delete removes the persisted record. Used by pure cleanup runs, which end
// without a state to save.
func Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("selection: delete state: %w", err)
	}
	return nil
}

// Filter drops every reference that no longer exists in doc. Stale keys are
// the expected consequence of the content library evolving between runs, so
// they are removed silently, not even warned about.
func (s *State) Filter(doc *models.Document) {
	s.Tools = intersect(s.Tools, func(id string) bool {
		_, ok := doc.Tools[id]
		return ok
	})
	s.Languages = intersect(s.Languages, func(id string) bool {
		_, ok := doc.Languages[id]
		return ok
	})
	s.Documentation = intersect(s.Documentation, func(id string) bool {
		_, ok := doc.Documentation[id]
		return ok
	})

	for lang, fws := range s.Frameworks {
		spec, ok := doc.Languages[lang]
		if !ok {
			delete(s.Frameworks, lang)
			continue
		}
		kept := intersect(fws, func(id string) bool {
			_, ok := spec.Frameworks[id]
			return ok
		})
		if len(kept) == 0 {
			delete(s.Frameworks, lang)
			continue
		}
		s.Frameworks[lang] = kept
	}

	for key, structID := range s.Structures {
		if !s.structureKeyValid(doc, key, structID) {
			delete(s.Structures, key)
		}
	}

	for lang, procs := range s.Processes {
		spec, ok := doc.Languages[lang]
		if !ok {
			delete(s.Processes, lang)
			continue
		}
		kept := intersect(procs, func(id string) bool {
			_, ok := spec.Processes[id]
			return ok
		})
		if len(kept) == 0 {
			delete(s.Processes, lang)
			continue
		}
		s.Processes[lang] = kept
	}
}

// structureKeyValid reports whether a "<language>-<framework>" key and its
// structure id all still exist in doc. Language ids may themselves contain
// the separator, so every split point is tried.
func (s *State) structureKeyValid(doc *models.Document, key, structID string) bool {
	for i := strings.Index(key, structureKeySep); i >= 0; {
		lang, fw := key[:i], key[i+len(structureKeySep):]
		if spec, ok := doc.Languages[lang]; ok {
			if fwSpec, ok := spec.Frameworks[fw]; ok {
				if _, ok := fwSpec.Structures[structID]; ok {
					return true
				}
			}
		}
		next := strings.Index(key[i+len(structureKeySep):], structureKeySep)
		if next < 0 {
			break
		}
		i += len(structureKeySep) + next
	}
	return false
}

// intersect keeps the elements of ids accepted by keep, preserving order
// and dropping duplicates.
func intersect(ids []string, keep func(string) bool) []string {
	var out []string
	for _, id := range ids {
		if keep(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// sort orders all slice fields for stable serialization.
func (s *State) sort() {
	slices.Sort(s.Tools)
	slices.Sort(s.Languages)
	slices.Sort(s.Documentation)
	for _, fws := range s.Frameworks {
		slices.Sort(fws)
	}
	for _, procs := range s.Processes {
		slices.Sort(procs)
	}
}
