// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "context"

// Document is the text a constructor is generated for, together with the
// cursor that selects the type declaration.
type Document struct {
	Path   string // File path; empty for in-memory documents
	Text   []byte // Full document text
	Line   int    // Cursor line (1-based)
	Column int    // Cursor column in characters (1-based)
}

// Edit inserts NewContent into a file at a byte offset.
type Edit struct {
	FilePath   string // Target file path
	Offset     int    // Byte offset of the insertion point
	NewContent string // Text to insert
	Indent     string // Indentation of the enclosing declaration line
}

// ApplyResult describes the outcome of applying a single edit.
type ApplyResult struct {
	FilePath string // File that was modified (or would be, in preview mode)
	Inserted string // Text as inserted, after reformatting
	Diff     string // Unified diff of the change
	Written  bool   // False in preview mode
	Warnings []string
}

// DocumentSource yields the current document and cursor.
type DocumentSource interface {
	Document(ctx context.Context) (*Document, error)
}

// TextInserter applies an Edit and reformats the inserted text. The on-disk
// editor implements it; hosts embedding the generator can supply their own.
type TextInserter interface {
	Insert(ctx context.Context, edit Edit) (*ApplyResult, error)
}
