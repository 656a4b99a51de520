// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSource = "class Point\n{\n    int x;\n}\n"

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	repo, err := Open(Config{WorkDir: dir, AutoCommit: true, DirtyCommit: true})
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestOpen_Subdirectory(t *testing.T) {
	dir := initTestRepo(t)
	sub := filepath.Join(dir, "src", "Geometry")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := Open(Config{WorkDir: sub})
	require.NoError(t, err)

	root, err := repo.Root()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(Config{WorkDir: dir})
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestIsDirty(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, dir string)
		want   bool
	}{
		{
			name:   "clean",
			mutate: func(t *testing.T, dir string) {},
			want:   false,
		},
		{
			name: "modified tracked file",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "Point.cs"), []byte("class Point { }\n"), 0o644))
			},
			want: true,
		},
		{
			name: "untracked file",
			mutate: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "Line.cs"), []byte("class Line { }\n"), 0o644))
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := initTestRepo(t)
			repo, err := Open(Config{WorkDir: dir})
			require.NoError(t, err)

			tt.mutate(t, dir)

			dirty, err := repo.IsDirty()
			require.NoError(t, err)
			assert.Equal(t, tt.want, dirty)
		})
	}
}

func TestIsCtorgenCommit(t *testing.T) {
	t.Run("ctorgen commit", func(t *testing.T) {
		dir := initTestRepo(t)
		addFileAndCommit(t, dir, "Line.cs", "class Line { }\n", "feat: generate constructor for Line\n\n"+generatedTrailer)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ours, err := repo.IsCtorgenCommit()
		require.NoError(t, err)
		assert.True(t, ours)
	})

	t.Run("foreign commit", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := Open(Config{WorkDir: dir})
		require.NoError(t, err)

		ours, err := repo.IsCtorgenCommit()
		require.NoError(t, err)
		assert.False(t, ours)
	})
}

func TestGenerateMessage(t *testing.T) {
	tests := []struct {
		name        string
		typeName    string
		files       []string
		wantSubject string
		wantBody    []string
	}{
		{
			name:        "single file",
			typeName:    "Point",
			files:       []string{"src/Point.cs"},
			wantSubject: "feat: generate constructor for Point",
			wantBody:    []string{"Modified files:", "- src/Point.cs"},
		},
		{
			name:        "no files",
			typeName:    "Point",
			wantSubject: "feat: generate constructor for Point",
		},
		{
			name:        "blank type name",
			typeName:    "  ",
			files:       []string{"A.cs", "B.cs"},
			wantSubject: "feat: generate constructor for type",
			wantBody:    []string{"- A.cs", "- B.cs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := GenerateMessage(tt.typeName, tt.files)
			assert.Equal(t, tt.wantSubject, firstLineOf(msg))
			for _, line := range tt.wantBody {
				assert.Contains(t, msg, line)
			}
			if len(tt.files) == 0 {
				assert.NotContains(t, msg, "Modified files:")
			}
			assert.True(t, strings.HasSuffix(msg, "\n\n"+generatedTrailer))
		})
	}
}

func TestGenerateMessage_LongTypeNameTruncated(t *testing.T) {
	msg := GenerateMessage(strings.Repeat("VeryLongGenericRepositoryName", 4), nil)

	subject := firstLineOf(msg)
	assert.Len(t, subject, maxSubjectLength)
	assert.True(t, strings.HasSuffix(subject, "..."))
}

// initTestRepo creates a temp dir holding a git repo with one commit of
// Point.cs and returns the directory path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	addFileAndCommit(t, dir, "Point.cs", pointSource, "initial commit")
	return dir
}

// addFileAndCommit writes a file and commits it with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@test.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func firstLineOf(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
