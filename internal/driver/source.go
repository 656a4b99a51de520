// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package driver

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/ctorgen/pkg/types"
)

// FileSource reads a document from disk with a cursor supplied by the
// caller. It implements types.DocumentSource.
type FileSource struct {
	Path   string
	Line   int // 1-based
	Column int // 1-based, in characters
}

// Verify interface compliance at compile time.
var _ types.DocumentSource = (*FileSource)(nil)

// Document reads the file.
func (s *FileSource) Document(ctx context.Context) (*types.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", s.Path)
	}
	return &types.Document{Path: s.Path, Text: text, Line: s.Line, Column: s.Column}, nil
}

// ParseCursor parses "path:line:column", the form printed by scan. The path
// may itself contain colons.
func ParseCursor(s string) (*FileSource, error) {
	rest, colText, ok := cutLast(s, ":")
	if !ok {
		return nil, errors.Newf("cursor %q: want path:line:column", s)
	}
	path, lineText, ok := cutLast(rest, ":")
	if !ok || path == "" {
		return nil, errors.Newf("cursor %q: want path:line:column", s)
	}

	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return nil, errors.Newf("cursor %q: line must be a positive integer", s)
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return nil, errors.Newf("cursor %q: column must be a positive integer", s)
	}
	return &FileSource{Path: path, Line: line, Column: col}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}
