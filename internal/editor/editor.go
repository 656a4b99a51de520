// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor inserts generated text into source files, re-indents it
// to match the surrounding declaration, and renders diff previews.
package editor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/ctorgen/pkg/types"
)

const defaultIndentUnit = "    "

// Formatter reformats a file on disk after an insertion.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// FileInserter splices edits into files on disk. It implements
// types.TextInserter.
type FileInserter struct {
	// IndentUnit is one indentation level. Defaults to four spaces.
	IndentUnit string
	// Preview computes the result and diff without writing.
	Preview bool
	// Formatter, when set, runs after the file is written. Its failure is
	// reported as a warning and does not undo the insertion.
	Formatter Formatter
}

// Verify interface compliance at compile time.
var _ types.TextInserter = (*FileInserter)(nil)

// Insert reads the target file, inserts the re-indented text at the edit
// offset and writes the result atomically.
func (e *FileInserter) Insert(ctx context.Context, edit types.Edit) (*types.ApplyResult, error) {
	content, err := os.ReadFile(edit.FilePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", edit.FilePath)
	}

	updated, inserted, err := Splice(content, edit, e.indentUnit())
	if err != nil {
		return nil, err
	}

	result := &types.ApplyResult{
		FilePath: edit.FilePath,
		Inserted: inserted,
		Diff:     Preview(edit.FilePath, string(content), string(updated)),
	}
	if e.Preview {
		return result, nil
	}

	if err := atomicWrite(edit.FilePath, updated); err != nil {
		return nil, errors.Wrapf(err, "writing %s", edit.FilePath)
	}
	result.Written = true

	if e.Formatter != nil {
		if err := e.Formatter.Format(ctx, edit.FilePath); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		}
	}

	return result, nil
}

// Splice inserts edit.NewContent into content at edit.Offset and returns the
// new content together with the text as inserted. The inserted lines take
// the document's line terminator. An offset preceded only
// by whitespace on its line moves back to the line start so that the
// re-indented text does not inherit stray indentation.
func Splice(content []byte, edit types.Edit, indentUnit string) ([]byte, string, error) {
	offset := edit.Offset
	if offset < 0 || offset > len(content) {
		return nil, "", errors.Newf("offset %d out of range for %s (%d bytes)", offset, edit.FilePath, len(content))
	}

	lineStart := bytes.LastIndexByte(content[:offset], '\n') + 1
	if len(bytes.TrimSpace(content[lineStart:offset])) == 0 {
		offset = lineStart
	}

	nl := lineEnding(content)
	text := Reindent(convertEOL(edit.NewContent, nl), edit.Indent+indentUnit, indentUnit)
	if offset > 0 && content[offset-1] != '\n' {
		text = nl + text
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(text))
	buf.Write(content[:offset])
	buf.WriteString(text)
	buf.Write(content[offset:])
	return buf.Bytes(), text, nil
}

func (e *FileInserter) indentUnit() string {
	if e.IndentUnit != "" {
		return e.IndentUnit
	}
	return defaultIndentUnit
}

// lineEnding returns the document's line terminator, CRLF if any line uses
// it and LF otherwise.
func lineEnding(content []byte) string {
	if bytes.Contains(content, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}

// convertEOL rewrites every line terminator in text to nl.
func convertEOL(text, nl string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if nl == "\n" {
		return text
	}
	return strings.ReplaceAll(text, "\n", nl)
}

// atomicWrite writes data to a temp file in the same directory, then renames
// it to the target path. This prevents partial writes from corrupting files.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Preserve original file permissions if the file exists.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".ctorgen-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "writing temp file")
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "setting permissions")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}
