// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/ctorgen/internal/editor"
	"github.com/petar-djukic/ctorgen/internal/synth"
	"github.com/petar-djukic/ctorgen/pkg/types"
)

const pointSource = "class Point\n{\n    int x;\n    int y;\n\n    void Move()\n    {\n        x++;\n    }\n}\n"

type memSource struct {
	doc *types.Document
	err error
}

func (s *memSource) Document(context.Context) (*types.Document, error) {
	return s.doc, s.err
}

type recordingInserter struct {
	preview bool
	err     error
	edits   []types.Edit
}

func (r *recordingInserter) Insert(_ context.Context, edit types.Edit) (*types.ApplyResult, error) {
	r.edits = append(r.edits, edit)
	if r.err != nil {
		return nil, r.err
	}
	return &types.ApplyResult{FilePath: edit.FilePath, Inserted: edit.NewContent, Written: !r.preview}, nil
}

type fakeCommitter struct {
	dirtyErr  error
	commitErr error
	dirty     int
	files     []string
	typeName  string
}

func (f *fakeCommitter) HandleDirty() error {
	f.dirty++
	return f.dirtyErr
}

func (f *fakeCommitter) Commit(files []string, typeName string) error {
	f.files = files
	f.typeName = typeName
	return f.commitErr
}

func doc(text string, line, col int) *memSource {
	return &memSource{doc: &types.Document{Path: "Point.cs", Text: []byte(text), Line: line, Column: col}}
}

func TestRun_InsertsAtBody(t *testing.T) {
	inserter := &recordingInserter{}
	runner := NewRunner(Deps{Source: doc(pointSource, 1, 7), Inserter: inserter})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusInserted, result.Status)
	assert.Equal(t, "Point", result.TypeName)
	assert.Equal(t, 13, result.Offset)
	assert.Empty(t, result.Warnings)

	require.Len(t, inserter.edits, 1)
	edit := inserter.edits[0]
	assert.Equal(t, "Point.cs", edit.FilePath)
	assert.Equal(t, 13, edit.Offset)
	assert.Equal(t, "", edit.Indent)
	assert.Equal(t, "public Point(\r\nint x,\r\nint y)\r\n{\r\nthis.x = x;\r\nthis.y = y;\r\n}\r\n", edit.NewContent)
}

func TestRun_InsertsAtCursor(t *testing.T) {
	inserter := &recordingInserter{}
	runner := NewRunner(Deps{
		Source:   doc(pointSource, 5, 1),
		Inserter: inserter,
		Newline:  synth.LF,
		InsertAt: InsertAtCursor,
	})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusInserted, result.Status)
	assert.Equal(t, 36, result.Offset)
	assert.Equal(t, "public Point(\nint x,\nint y)\n{\nthis.x = x;\nthis.y = y;\n}\n", inserter.edits[0].NewContent)
}

func TestRun_NestedTypeIndent(t *testing.T) {
	src := "namespace Geo\n{\n    public struct Cell\n    {\n        public int Row;\n    }\n}\n"
	inserter := &recordingInserter{}
	runner := NewRunner(Deps{Source: doc(src, 3, 19), Inserter: inserter})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Cell", result.TypeName)
	assert.Equal(t, "    ", inserter.edits[0].Indent)
}

func TestRun_NotApplicable(t *testing.T) {
	tests := []struct {
		name string
		line int
		col  int
	}{
		{name: "method body", line: 8, col: 9},
		{name: "field", line: 3, col: 5},
		{name: "past the end", line: 99, col: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inserter := &recordingInserter{}
			committer := &fakeCommitter{}
			runner := NewRunner(Deps{Source: doc(pointSource, tt.line, tt.col), Inserter: inserter, Committer: committer})

			result, err := runner.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, StatusNotApplicable, result.Status)
			assert.Empty(t, inserter.edits)
			assert.Zero(t, committer.dirty)
		})
	}
}

func TestRun_Preview(t *testing.T) {
	committer := &fakeCommitter{}
	runner := NewRunner(Deps{
		Source:    doc(pointSource, 1, 7),
		Inserter:  &recordingInserter{preview: true},
		Committer: committer,
	})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusPreviewed, result.Status)
	assert.False(t, result.Committed)
	assert.Empty(t, committer.files)
}

func TestRun_Commits(t *testing.T) {
	committer := &fakeCommitter{}
	runner := NewRunner(Deps{Source: doc(pointSource, 1, 7), Inserter: &recordingInserter{}, Committer: committer})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, 1, committer.dirty)
	assert.Equal(t, []string{"Point.cs"}, committer.files)
	assert.Equal(t, "Point", committer.typeName)
}

func TestRun_CommitFailureIsAWarning(t *testing.T) {
	committer := &fakeCommitter{commitErr: errors.New("index locked")}
	runner := NewRunner(Deps{Source: doc(pointSource, 1, 7), Inserter: &recordingInserter{}, Committer: committer})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusInserted, result.Status)
	assert.False(t, result.Committed)
	assert.Equal(t, []string{"auto-commit failed: index locked"}, result.Warnings)
}

func TestRun_Errors(t *testing.T) {
	dirtyErr := errors.New("uncommitted changes exist")
	insertErr := errors.New("disk full")
	sourceErr := errors.New("no such file")

	tests := []struct {
		name    string
		deps    Deps
		wantErr error
	}{
		{
			name:    "source failure",
			deps:    Deps{Source: &memSource{err: sourceErr}, Inserter: &recordingInserter{}},
			wantErr: sourceErr,
		},
		{
			name:    "dirty tree refused",
			deps:    Deps{Source: doc(pointSource, 1, 7), Inserter: &recordingInserter{}, Committer: &fakeCommitter{dirtyErr: dirtyErr}},
			wantErr: dirtyErr,
		},
		{
			name:    "insert failure",
			deps:    Deps{Source: doc(pointSource, 1, 7), Inserter: &recordingInserter{err: insertErr}},
			wantErr: insertErr,
		},
		{
			name:    "bodiless record",
			deps:    Deps{Source: doc("record Pair(int A, int B);\n", 1, 8), Inserter: &recordingInserter{}},
			wantErr: ErrNoBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(tt.deps).Run(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestRun_UnknownInsertionPoint(t *testing.T) {
	runner := NewRunner(Deps{Source: doc(pointSource, 1, 7), Inserter: &recordingInserter{}, InsertAt: "top"})

	_, err := runner.Run(context.Background())
	assert.ErrorContains(t, err, `unknown insertion point "top"`)
}

func TestRun_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Point.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Point\n{\n    int x;\n}\n"), 0o644))

	runner := NewRunner(Deps{
		Source:   &FileSource{Path: path, Line: 1, Column: 1},
		Inserter: &editor.FileInserter{},
		Newline:  synth.LF,
	})

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusInserted, result.Status)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class Point\n{\n"+
		"    public Point(\n"+
		"        int x)\n"+
		"    {\n"+
		"        this.x = x;\n"+
		"    }\n"+
		"\n    int x;\n}\n", string(got))
}

func TestRun_DefaultNewlineFollowsDocument(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "LF document",
			src:  "class Point\n{\n    int x;\n}\n",
			want: "class Point\n{\n    public Point(\n        int x)\n    {\n        this.x = x;\n    }\n\n    int x;\n}\n",
		},
		{
			name: "CRLF document",
			src:  "class Point\r\n{\r\n    int x;\r\n}\r\n",
			want: "class Point\r\n{\r\n    public Point(\r\n        int x)\r\n    {\r\n        this.x = x;\r\n    }\r\n\r\n    int x;\r\n}\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Point.cs")
			require.NoError(t, os.WriteFile(path, []byte(tt.src), 0o644))

			runner := NewRunner(Deps{
				Source:   &FileSource{Path: path, Line: 1, Column: 7},
				Inserter: &editor.FileInserter{},
			})
			_, err := runner.Run(context.Background())
			require.NoError(t, err)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestLineIndent(t *testing.T) {
	text := []byte("a\n    class B\n\tstruct C\n")
	assert.Equal(t, "", lineIndent(text, 0))
	assert.Equal(t, "    ", lineIndent(text, 6))
	assert.Equal(t, "\t", lineIndent(text, 15))
	assert.Equal(t, "", lineIndent(text, 999))
}
