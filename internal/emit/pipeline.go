// Package emit walks a selection set in a fixed order and writes per-tool
// output artifacts through the managed lifecycle layer. Given the same
// normalized document and selection state, two runs visit items in the
// identical sequence and produce byte-identical output trees.
package emit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/managed"
	"github.com/rulekit-dev/rulekit/internal/resolver"
	"github.com/rulekit-dev/rulekit/internal/selection"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

// phase enumerates the per-tool emission states. Transitions are
// unconditional and sequential; a phase with zero selected items simply
// contributes no artifacts.
type phase int

const (
	phaseInit phase = iota
	phaseBaseRules
	phaseDocumentation
	phaseFrameworks
	phaseStructures
	phaseProcesses
	phaseDone
)

// SkippedItem records a content item whose source could not be located.
type SkippedItem struct {
	Tool       string
	Category   models.Category
	Language   string
	Name       string
	Candidates []string
}

// OnDemandItem is a selected process guide that is deliberately not emitted
// because it is not flagged permanent; it stays available for manual
// reference via `rulekit show`.
type OnDemandItem struct {
	Language    string
	Process     string
	Description string
}

// Result reports one generation pass.
type Result struct {
	Written  []string
	Skipped  []SkippedItem
	OnDemand []OnDemandItem
}

// Pipeline orchestrates emission for every selected tool. The document and
// selection state are read-only inputs; the only side effects are
// filesystem writes under the project root.
type Pipeline struct {
	resolver *resolver.Resolver
	doc      *models.Document
}

// New creates a Pipeline over a resolver and a normalized document.
func New(res *resolver.Resolver, doc *models.Document) *Pipeline {
	return &Pipeline{resolver: res, doc: doc}
}

// Run emits artifacts for every selected tool, visiting selections in the
// fixed order: base rules, documentation, frameworks, structures,
// processes. Missing content is warned about and skipped; it never aborts
// the pass.
func (p *Pipeline) Run(ctx context.Context, projectRoot string, sel *selection.State) (*Result, error) {
	res := &Result{}

	tools := sortedCopy(sel.Tools)
	for _, toolID := range tools {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		target, ok := defs.LookupTarget(toolID)
		if !ok {
			slog.Warn("no output target registered for tool, skipping", "tool", toolID)
			continue
		}
		if err := p.runTool(projectRoot, target, sel, res); err != nil {
			return res, err
		}
	}

	res.OnDemand = p.collectOnDemand(sel)
	return res, nil
}

// runTool drives the per-tool state machine.
func (p *Pipeline) runTool(projectRoot string, target defs.Target, sel *selection.State, res *Result) error {
	tw := newToolWriter(projectRoot, target)

	for ph := phaseInit; ph != phaseDone; ph++ {
		switch ph {
		case phaseBaseRules:
			p.emitBaseRules(tw, sel, res)
		case phaseDocumentation:
			p.emitDocumentation(tw, sel, res)
		case phaseFrameworks:
			p.emitFrameworks(tw, sel, res)
		case phaseStructures:
			p.emitStructures(tw, sel, res)
		case phaseProcesses:
			p.emitProcesses(tw, sel, res)
		}
	}

	return tw.finish(res)
}

// emitBaseRules emits every base rule file of every selected language, in
// the document's file order.
func (p *Pipeline) emitBaseRules(tw *toolWriter, sel *selection.State, res *Result) {
	for _, lang := range sortedCopy(sel.Languages) {
		spec, ok := p.doc.Languages[lang]
		if !ok {
			continue
		}
		for _, file := range spec.Files {
			p.emitItem(tw, res, resolver.Request{
				Category: models.CategoryRule,
				Language: lang,
				Name:     file,
			}, itemMeta{
				base:        lang + "-" + fileBase(file),
				description: fmt.Sprintf("%s %s rules", displayName(lang, spec), fileBase(file)),
				globs:       ValidGlobs(spec.Globs),
				alwaysApply: spec.AlwaysApply,
			})
		}
	}
}

// emitDocumentation emits the selected language-independent documentation.
func (p *Pipeline) emitDocumentation(tw *toolWriter, sel *selection.State, res *Result) {
	for _, docID := range sortedCopy(sel.Documentation) {
		entry, ok := p.doc.Documentation[docID]
		if !ok {
			continue
		}
		p.emitItem(tw, res, resolver.Request{
			Category: models.CategoryDoc,
			Name:     entryFile(entry.File, docID),
		}, itemMeta{
			base:        "docs-" + docID,
			description: entry.Description,
			alwaysApply: true,
		})
	}
}

// emitFrameworks emits the rule file of every selected framework.
func (p *Pipeline) emitFrameworks(tw *toolWriter, sel *selection.State, res *Result) {
	for _, lang := range sortedCopy(sel.Languages) {
		spec, ok := p.doc.Languages[lang]
		if !ok {
			continue
		}
		for _, fw := range sortedCopy(sel.Frameworks[lang]) {
			fwSpec, ok := spec.Frameworks[fw]
			if !ok {
				continue
			}
			p.emitItem(tw, res, resolver.Request{
				Category: models.CategoryFramework,
				Language: lang,
				Name:     entryFile(fwSpec.File, fw),
			}, itemMeta{
				base:        lang + "-" + fw,
				description: fmt.Sprintf("%s %s framework rules", displayName(lang, spec), fw),
				globs:       ValidGlobs(spec.Globs),
				alwaysApply: spec.AlwaysApply,
			})
		}
	}
}

// emitStructures emits the chosen project structure per selected framework.
func (p *Pipeline) emitStructures(tw *toolWriter, sel *selection.State, res *Result) {
	for _, lang := range sortedCopy(sel.Languages) {
		spec, ok := p.doc.Languages[lang]
		if !ok {
			continue
		}
		for _, fw := range sortedCopy(sel.Frameworks[lang]) {
			fwSpec, ok := spec.Frameworks[fw]
			if !ok {
				continue
			}
			structID, ok := sel.Structures[selection.StructureKey(lang, fw)]
			if !ok {
				continue
			}
			structSpec, ok := fwSpec.Structures[structID]
			if !ok {
				continue
			}
			p.emitItem(tw, res, resolver.Request{
				Category: models.CategoryStructure,
				Language: lang,
				Name:     entryFile(structSpec.File, structID),
			}, itemMeta{
				base:        lang + "-" + fw + "-" + structID,
				description: fmt.Sprintf("%s %s project structure", fw, structID),
				globs:       ValidGlobs(spec.Globs),
				alwaysApply: spec.AlwaysApply,
			})
		}
	}
}

// emitProcesses emits permanent process guides only. On-demand guides never
// enter the managed artifact stream; loading every guide permanently would
// defeat the permanent/on-demand distinction.
func (p *Pipeline) emitProcesses(tw *toolWriter, sel *selection.State, res *Result) {
	for _, lang := range sortedCopy(sel.Languages) {
		spec, ok := p.doc.Languages[lang]
		if !ok {
			continue
		}
		for _, proc := range sortedCopy(sel.Processes[lang]) {
			procSpec, ok := spec.Processes[proc]
			if !ok || !procSpec.Permanent {
				continue
			}
			p.emitItem(tw, res, resolver.Request{
				Category: models.CategoryProcess,
				Language: lang,
				Name:     entryFile(procSpec.File, proc),
				Phase:    procSpec.Phase(),
			}, itemMeta{
				base:        lang + "-" + proc,
				description: procSpec.Description,
				alwaysApply: true,
			})
		}
	}
}

// collectOnDemand gathers the selected non-permanent guides once, across
// all tools, for the run report.
func (p *Pipeline) collectOnDemand(sel *selection.State) []OnDemandItem {
	var items []OnDemandItem
	for _, lang := range sortedCopy(sel.Languages) {
		spec, ok := p.doc.Languages[lang]
		if !ok {
			continue
		}
		for _, proc := range sortedCopy(sel.Processes[lang]) {
			procSpec, ok := spec.Processes[proc]
			if !ok || procSpec.Permanent {
				continue
			}
			items = append(items, OnDemandItem{
				Language:    lang,
				Process:     proc,
				Description: procSpec.Description,
			})
		}
	}
	return items
}

// itemMeta carries the tool-facing metadata synthesized per content item.
type itemMeta struct {
	base        string
	description string
	globs       []string
	alwaysApply bool
}

// emitItem resolves one item and hands it to the tool writer. A resolution
// miss is recorded and warned about with every candidate path tried.
func (p *Pipeline) emitItem(tw *toolWriter, res *Result, req resolver.Request, meta itemMeta) {
	content, err := p.resolver.Resolve(req)
	if err != nil {
		var nf *resolver.NotFoundError
		if errors.As(err, &nf) {
			slog.Warn("content not found, skipping item",
				"tool", tw.target.ID,
				"category", req.Category,
				"name", req.Name,
				"tried", strings.Join(nf.Candidates, ", "))
			res.Skipped = append(res.Skipped, SkippedItem{
				Tool:       tw.target.ID,
				Category:   req.Category,
				Language:   req.Language,
				Name:       req.Name,
				Candidates: nf.Candidates,
			})
			return
		}
		slog.Warn("content resolution failed, skipping item", "name", req.Name, "error", err)
		return
	}
	tw.add(meta, content)
}

// toolWriter applies one tool's output shape as a strategy: directory
// members are written as they arrive, concatenated sections are buffered
// and flushed once in finish.
type toolWriter struct {
	projectRoot string
	target      defs.Target

	written  []string
	sections [][]byte
	writeErr error
}

func newToolWriter(projectRoot string, target defs.Target) *toolWriter {
	return &toolWriter{projectRoot: projectRoot, target: target}
}

// add emits one resolved item according to the target shape.
func (w *toolWriter) add(meta itemMeta, content []byte) {
	if w.writeErr != nil {
		return
	}
	if w.target.Shape == defs.ShapeConcatenated {
		w.sections = append(w.sections, content)
		return
	}

	outPath := w.target.OutputPath(w.projectRoot, meta.base)
	fm := managed.NewFrontmatter(meta.description, meta.globs, meta.alwaysApply)
	if err := managed.WriteRule(outPath, fm, content); err != nil {
		w.writeErr = err
		return
	}
	w.written = append(w.written, outPath)
}

// finish flushes a concatenated bundle and folds the tool's writes into the
// run result.
func (w *toolWriter) finish(res *Result) error {
	if w.writeErr != nil {
		return w.writeErr
	}
	if w.target.Shape == defs.ShapeConcatenated && len(w.sections) > 0 {
		outPath := w.target.OutputPath(w.projectRoot, "")
		if err := managed.WriteBundle(outPath, w.target.ID, w.sections); err != nil {
			return err
		}
		w.written = append(w.written, outPath)
	}
	res.Written = append(res.Written, w.written...)
	return nil
}

// entryFile prefers an explicit file name over the entry id.
func entryFile(file, id string) string {
	if file != "" {
		return file
	}
	return id
}

// fileBase strips any extension from a content name for output naming.
func fileBase(name string) string {
	return strings.TrimSuffix(path.Base(name), path.Ext(name))
}

// displayName prefers the configured display name over the language id.
func displayName(id string, spec models.LanguageSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return id
}

// sortedCopy returns a sorted copy so emission order never depends on the
// in-memory order of the selection state.
func sortedCopy(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	return out
}
