// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package driver runs one constructor generation: it reads a document,
// resolves the type at the cursor, inserts the generated constructor and
// optionally commits the result.
package driver

import (
	"bytes"
	"context"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/ctorgen/internal/csharp"
	"github.com/petar-djukic/ctorgen/internal/logger"
	"github.com/petar-djukic/ctorgen/internal/synth"
	"github.com/petar-djukic/ctorgen/pkg/types"
)

// Insertion points accepted by Deps.InsertAt.
const (
	InsertAtBody   = "body"   // just after the opening brace of the type body
	InsertAtCursor = "cursor" // at the cursor position
)

// ErrNoBody is returned when inserting at the body of a type declared
// without one, such as a positional record ending in a semicolon.
var ErrNoBody = errors.New("type declaration has no body")

// Status is the outcome of a run.
type Status int

const (
	StatusNotApplicable Status = iota // cursor is not on a type declaration
	StatusInserted                    // constructor written to the document
	StatusPreviewed                   // constructor computed but not written
)

func (s Status) String() string {
	switch s {
	case StatusInserted:
		return "inserted"
	case StatusPreviewed:
		return "previewed"
	default:
		return "not-applicable"
	}
}

// Committer records an inserted constructor in version control.
type Committer interface {
	HandleDirty() error
	Commit(files []string, typeName string) error
}

// Deps holds injected dependencies for the runner.
type Deps struct {
	Source    types.DocumentSource
	Inserter  types.TextInserter
	Newline   string    // synth.CRLF or synth.LF; empty means CRLF
	InsertAt  string    // InsertAtBody (default) or InsertAtCursor
	Committer Committer // nil disables git integration
}

// Result holds the outcome of Runner.Run.
type Result struct {
	Status      Status
	FilePath    string
	TypeName    string
	Constructor string // rendered constructor before re-indentation
	Offset      int    // byte offset of the insertion point
	Apply       *types.ApplyResult
	Committed   bool
	Warnings    []string
}

// Runner orchestrates a single generation.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	return &Runner{deps: deps}
}

// Run reads the document, classifies the cursor, generates the constructor
// and inserts it. A cursor that is not on a type declaration is not an
// error: the result has StatusNotApplicable and nothing is written.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := logger.ComponentLogger("driver")

	doc, err := r.deps.Source.Document(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}
	result := &Result{FilePath: doc.Path}

	tree, err := csharp.Parse(ctx, doc.Text)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", doc.Path)
	}
	defer tree.Close()
	if tree.HasErrors() {
		log.Warnw("source has syntax errors", logger.FieldFile, doc.Path)
	}

	if !synth.Classify(tree, doc.Line, doc.Column) {
		log.Infow("cursor is not on a type declaration",
			logger.FieldFile, doc.Path, logger.FieldLine, doc.Line, logger.FieldColumn, doc.Column)
		return result, nil
	}

	decl, err := synth.Resolve(tree, doc.Line, doc.Column)
	if err != nil {
		return nil, err
	}
	result.TypeName = decl.Name
	result.Constructor = synth.Render(decl, synth.WithNewline(r.deps.Newline))

	offset, err := r.insertionOffset(tree, decl.BodyStart, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "placing constructor for %s", decl.Name)
	}
	result.Offset = offset

	if r.deps.Committer != nil {
		if err := r.deps.Committer.HandleDirty(); err != nil {
			return nil, errors.Wrap(err, "handling dirty files")
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	applied, err := r.deps.Inserter.Insert(ctx, types.Edit{
		FilePath:   doc.Path,
		Offset:     offset,
		NewContent: result.Constructor,
		Indent:     lineIndent(doc.Text, decl.Loc.StartByte),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "inserting constructor for %s", decl.Name)
	}
	result.Apply = applied
	result.Warnings = append(result.Warnings, applied.Warnings...)

	if !applied.Written {
		result.Status = StatusPreviewed
		return result, nil
	}
	result.Status = StatusInserted
	log.Infow("constructor inserted",
		logger.FieldFile, doc.Path, logger.FieldType, decl.Name, logger.FieldStatus, result.Status.String())

	if r.deps.Committer != nil {
		if err := r.deps.Committer.Commit([]string{doc.Path}, decl.Name); err != nil {
			log.Warnw("auto-commit failed", logger.FieldFile, doc.Path, "error", err)
			result.Warnings = append(result.Warnings, "auto-commit failed: "+err.Error())
		} else {
			result.Committed = true
		}
	}

	return result, nil
}

func (r *Runner) insertionOffset(tree *csharp.Tree, bodyStart int, doc *types.Document) (int, error) {
	switch r.deps.InsertAt {
	case "", InsertAtBody:
		if bodyStart < 0 {
			return 0, errors.WithHint(ErrNoBody, "use insert-at cursor or give the type a body")
		}
		return bodyStart, nil
	case InsertAtCursor:
		offset, ok := tree.Offset(doc.Line, doc.Column)
		if !ok {
			return 0, errors.Newf("cursor %d:%d is outside the document", doc.Line, doc.Column)
		}
		return offset, nil
	default:
		return 0, errors.Newf("unknown insertion point %q", r.deps.InsertAt)
	}
}

// lineIndent returns the leading blanks of the line containing offset.
func lineIndent(text []byte, offset int) string {
	offset = min(max(offset, 0), len(text))
	start := bytes.LastIndexByte(text[:offset], '\n') + 1
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return string(text[start:end])
}
