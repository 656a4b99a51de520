// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scan walks a directory of C# sources and lists every type
// declaration a constructor can be generated for.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/ctorgen/internal/csharp"
	"github.com/petar-djukic/ctorgen/internal/logger"
	"github.com/petar-djukic/ctorgen/internal/synth"
	"github.com/petar-djukic/ctorgen/pkg/types"
)

const sourceExt = ".cs"

// skipDirs contains directory names that Dir never descends into.
var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	".vs":          true,
	"node_modules": true,
}

// ErrSyntax marks files that parsed with syntax errors. Their types are
// still listed.
var ErrSyntax = errors.New("syntax errors")

// Options configures a scan.
type Options struct {
	// Concurrency bounds the number of files parsed at once. Defaults to
	// runtime.NumCPU().
	Concurrency int
	// Exclude holds extra glob patterns, matched like .gitignore entries.
	Exclude []string
}

// Result holds the output of a directory scan.
type Result struct {
	Root    string             // Absolute scan root
	Files   int                // Number of source files parsed
	Symbols []types.TypeSymbol // Sorted by file, line and column
	Errors  []ScanError        // Sorted by file
}

// ScanError records a failure for a single file.
type ScanError struct {
	FilePath string
	Err      error
}

func (e ScanError) Error() string {
	return e.FilePath + ": " + e.Err.Error()
}

// Dir walks the tree rooted at dir, parses every .cs file with a bounded
// worker pool and lists the type declarations it finds.
//
// Unreadable or malformed files are recorded in Result.Errors and do not
// abort the scan. Only context cancellation and failures to walk dir
// itself are returned as errors.
func Dir(ctx context.Context, dir string, opts Options) (*Result, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolving directory")
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, errors.Wrap(err, "stat directory")
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", absDir)
	}

	paths, err := collect(absDir, newIgnorer(absDir, opts.Exclude))
	if err != nil {
		return nil, err
	}

	log := logger.ComponentLogger("scan")
	log.Debugw("scanning", logger.FieldFile, absDir, logger.FieldCount, len(paths))

	result := &Result{Root: absDir, Files: len(paths)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rel := relative(absDir, path)
			symbols, scanErr := scanFile(gctx, path, rel)

			mu.Lock()
			defer mu.Unlock()
			result.Symbols = append(result.Symbols, symbols...)
			if scanErr != nil {
				if errors.Is(scanErr, context.Canceled) || errors.Is(scanErr, context.DeadlineExceeded) {
					return scanErr
				}
				log.Debugw("scan error", logger.FieldFile, rel, "error", scanErr)
				result.Errors = append(result.Errors, ScanError{FilePath: rel, Err: scanErr})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scanning")
	}

	sort.Slice(result.Symbols, func(i, j int) bool {
		a, b := result.Symbols[i], result.Symbols[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].FilePath < result.Errors[j].FilePath
	})
	return result, nil
}

// collect returns the absolute paths of all source files under root.
func collect(root string, ign ignorer) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if path == root {
			return nil
		}
		rel := relative(root, path)
		if d.IsDir() {
			if skipDirs[d.Name()] || ign.isIgnored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), sourceExt) || ign.isIgnored(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking directory")
	}
	return paths, nil
}

// scanFile parses one file. Symbols are returned even when the file has
// syntax errors.
func scanFile(ctx context.Context, path, rel string) ([]types.TypeSymbol, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading")
	}

	tree, err := csharp.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	decls := tree.Types()
	symbols := make([]types.TypeSymbol, 0, len(decls))
	for _, decl := range decls {
		symbols = append(symbols, types.TypeSymbol{
			Name:       decl.Name,
			Keyword:    decl.Keyword,
			FilePath:   rel,
			Line:       decl.Loc.StartLine,
			Column:     decl.Loc.StartColumn,
			FieldCount: len(synth.Fields(decl)),
		})
	}

	if tree.HasErrors() {
		return symbols, ErrSyntax
	}
	return symbols, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
