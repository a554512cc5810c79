// Package resolver locates the physical source text for a content
// identifier across an ordered set of content roots, override layer first.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/rulekit-dev/rulekit/pkg/models"
)

// ErrNotFound indicates no candidate location supplied the requested content.
var ErrNotFound = errors.New("resolver: content not found")

// frameworksDir and structuresDir are the fixed namespace segments.
const (
	frameworksDir = "frameworks"
	structuresDir = "structures"
	docsDir       = "docs"
)

// Request addresses one content item. It is constructed transiently per
// item during emission and never persisted.
type Request struct {
	Category models.Category
	Language string
	Name     string

	// Phase enables the legacy <language>/<phase>/<name> fallback for
	// process requests.
	Phase models.ProcessPhase
}

// Root is one physical content tree.
type Root struct {
	// Label prefixes candidate paths in warnings so the user can tell the
	// override layer from the base library.
	Label string
	FS    fs.FS
}

// NotFoundError reports every candidate path tried, so a warning can name
// them all. It matches ErrNotFound via errors.Is.
type NotFoundError struct {
	Request    Request
	Candidates []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resolver: %s %q not found (tried: %s)",
		e.Request.Category, e.Request.Name, strings.Join(e.Candidates, ", "))
}

// Unwrap returns ErrNotFound for errors.Is matching.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Resolver tries roots in order and returns the first match. Categories
// never cross-resolve: each has its own subpath convention and a framework
// request is never satisfied by a rule file of the same name.
type Resolver struct {
	roots []Root
}

// New creates a Resolver over the given roots, tried in argument order.
// Roots with a nil filesystem are skipped, so a project without an override
// layer passes a zero Root first.
func New(roots ...Root) *Resolver {
	return &Resolver{roots: roots}
}

// Resolve returns the content of the first existing candidate. On a miss it
// returns a *NotFoundError listing every candidate tried; the caller is
// expected to warn and continue, a single missing item never fails a run.
func (r *Resolver) Resolve(req Request) ([]byte, error) {
	subpaths := req.subpaths()

	var tried []string
	for _, root := range r.roots {
		if root.FS == nil {
			continue
		}
		for _, sub := range subpaths {
			data, err := fs.ReadFile(root.FS, sub)
			if err == nil {
				return data, nil
			}
			tried = append(tried, path.Join(root.Label, sub))
		}
	}

	return nil, &NotFoundError{Request: req, Candidates: tried}
}

// subpaths returns the candidate subpaths for the request's category, in
// resolution order within a single root.
func (req Request) subpaths() []string {
	name := req.Name
	if path.Ext(name) == "" {
		name += ".md"
	}

	switch req.Category {
	case models.CategoryRule:
		return []string{path.Join(req.Language, name)}
	case models.CategoryFramework:
		return []string{path.Join(req.Language, frameworksDir, name)}
	case models.CategoryStructure:
		return []string{path.Join(req.Language, frameworksDir, structuresDir, name)}
	case models.CategoryProcess:
		subs := []string{path.Join(req.Language, name)}
		if req.Phase.IsValid() {
			subs = append(subs, path.Join(req.Language, string(req.Phase), name))
		}
		return subs
	case models.CategoryDoc:
		return []string{path.Join(docsDir, name)}
	}
	return nil
}
