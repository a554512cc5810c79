package managed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SectionDelimiter separates items inside a concatenated artifact.
const SectionDelimiter = "---"

// WriteRule writes a directory-member artifact: the frontmatter attribute
// block followed by the content body. An existing file at the path is
// overwritten unconditionally; regeneration is destructive-then-rewrite for
// files rulekit owns.
func WriteRule(path string, fm Frontmatter, body []byte) error {
	attrs, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("managed: marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterFence + "\n")
	buf.Write(attrs)
	buf.WriteString(frontmatterFence + "\n\n")
	buf.Write(normalizeBody(body))

	return writeArtifact(path, buf.Bytes())
}

// WriteBundle writes a concatenated artifact: one leading marker line for
// the whole document, then each section separated by the fixed delimiter.
func WriteBundle(path, toolID string, sections [][]byte) error {
	var buf bytes.Buffer
	buf.WriteString(BundleMarkerLine(toolID) + "\n\n")
	for i, section := range sections {
		if i > 0 {
			buf.WriteString("\n" + SectionDelimiter + "\n\n")
		}
		buf.Write(normalizeBody(section))
	}
	return writeArtifact(path, buf.Bytes())
}

// writeArtifact creates parent directories and writes the file.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("managed: mkdir %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("managed: write %q: %w", path, err)
	}
	return nil
}

// normalizeBody guarantees exactly one trailing newline so output bytes do
// not depend on how the source file happened to end.
func normalizeBody(body []byte) []byte {
	trimmed := bytes.TrimRight(body, "\n")
	return append(trimmed, '\n')
}
