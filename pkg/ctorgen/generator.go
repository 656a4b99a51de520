// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ctorgen

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/ctorgen/internal/csharp"
	"github.com/petar-djukic/ctorgen/internal/driver"
	"github.com/petar-djukic/ctorgen/internal/editor"
	gitpkg "github.com/petar-djukic/ctorgen/internal/git"
	"github.com/petar-djukic/ctorgen/internal/logger"
	"github.com/petar-djukic/ctorgen/internal/reformat"
	"github.com/petar-djukic/ctorgen/internal/scan"
	"github.com/petar-djukic/ctorgen/internal/synth"
)

const (
	defaultIndent        = "    "
	defaultFormatTimeout = 60 * time.Second
)

// New validates the config and returns a ready-to-use Generator.
func New(cfg Config) (Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Newf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)
	return &generator{cfg: cfg}, nil
}

type generator struct {
	cfg Config
}

func (g *generator) Generate(ctx context.Context, path string, line, column int) (*Result, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.cfg.WorkDir, path)
	}

	deps := driver.Deps{
		Source:   &driver.FileSource{Path: path, Line: line, Column: column},
		Inserter: g.inserter(),
		Newline:  newline(g.cfg.Newline),
		InsertAt: g.cfg.InsertAt,
	}
	if !g.cfg.NoGit && !g.cfg.DryRun {
		repo, err := gitpkg.Open(gitpkg.Config{WorkDir: g.cfg.WorkDir, AutoCommit: true, DirtyCommit: true})
		if err == nil {
			deps.Committer = repo
		} else {
			logger.ComponentLogger("ctorgen").Debugw("git integration disabled", "error", err)
		}
	}

	ir, err := driver.NewRunner(deps).Run(ctx)
	if ir == nil {
		return nil, err
	}
	result := &Result{
		Status:    ir.Status.String(),
		FilePath:  ir.FilePath,
		TypeName:  ir.TypeName,
		Committed: ir.Committed,
		Warnings:  ir.Warnings,
	}
	if ir.Apply != nil {
		result.Inserted = ir.Apply.Inserted
		result.Diff = ir.Apply.Diff
	}
	return result, err
}

func (g *generator) inserter() *editor.FileInserter {
	ins := &editor.FileInserter{IndentUnit: g.cfg.Indent, Preview: g.cfg.DryRun}
	if g.cfg.FormatCmd != "" {
		ins.Formatter = &reformat.Command{
			Line:    g.cfg.FormatCmd,
			Dir:     g.cfg.WorkDir,
			Timeout: g.cfg.FormatTimeout,
		}
	}
	return ins
}

// Constructor renders the constructor for the type declaration at the
// cursor of src without touching the file system. newline is "crlf" or
// "lf". It fails with an error matching synth.ErrMalformedInput when the
// cursor is not on a type declaration.
func Constructor(ctx context.Context, src []byte, line, column int, newlineSetting string) (string, error) {
	tree, err := csharp.Parse(ctx, src)
	if err != nil {
		return "", err
	}
	defer tree.Close()
	return synth.Generate(tree, line, column, synth.WithNewline(newline(newlineSetting)))
}

// Applicable reports whether the cursor of src is on a type declaration.
func Applicable(ctx context.Context, src []byte, line, column int) (bool, error) {
	tree, err := csharp.Parse(ctx, src)
	if err != nil {
		return false, err
	}
	defer tree.Close()
	return synth.Classify(tree, line, column), nil
}

// Scan lists the type declarations of every source file under dir.
func Scan(ctx context.Context, dir string, concurrency int, exclude []string) (*ScanResult, error) {
	res, err := scan.Dir(ctx, dir, scan.Options{Concurrency: concurrency, Exclude: exclude})
	if err != nil {
		return nil, err
	}
	out := &ScanResult{Root: res.Root, Files: res.Files, Symbols: res.Symbols}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, e.Error())
	}
	return out, nil
}

// Undo reverts the last ctorgen commit in the repository containing
// workDir, keeping the generated code as staged changes.
func Undo(workDir string) error {
	repo, err := gitpkg.Open(gitpkg.Config{WorkDir: workDir})
	if err != nil {
		return err
	}
	return repo.Undo()
}

func newline(setting string) string {
	if setting == NewlineLF {
		return synth.LF
	}
	return synth.CRLF
}

// validateConfig checks required fields and enumerated values.
func validateConfig(cfg Config) error {
	if cfg.WorkDir == "" {
		return errors.New("WorkDir is required")
	}
	if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
		return errors.Newf("WorkDir %q does not exist or is not a directory", cfg.WorkDir)
	}
	switch cfg.Newline {
	case "", NewlineCRLF, NewlineLF:
	default:
		return errors.Newf("newline %q: want %s or %s", cfg.Newline, NewlineCRLF, NewlineLF)
	}
	switch cfg.InsertAt {
	case "", driver.InsertAtBody, driver.InsertAtCursor:
	default:
		return errors.Newf("insert-at %q: want %s or %s", cfg.InsertAt, driver.InsertAtBody, driver.InsertAtCursor)
	}
	if cfg.FormatTimeout < 0 {
		return errors.Newf("format timeout %s is negative", cfg.FormatTimeout)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Newline == "" {
		cfg.Newline = NewlineCRLF
	}
	if cfg.InsertAt == "" {
		cfg.InsertAt = driver.InsertAtBody
	}
	if cfg.Indent == "" {
		cfg.Indent = defaultIndent
	}
	if cfg.FormatTimeout == 0 {
		cfg.FormatTimeout = defaultFormatTimeout
	}
}
