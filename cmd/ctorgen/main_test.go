// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/ctorgen/internal/driver"
	"github.com/petar-djukic/ctorgen/pkg/ctorgen"
	"github.com/petar-djukic/ctorgen/pkg/types"
)

func TestCursorFromArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		flags   map[string]string
		want    *driver.FileSource
		wantErr bool
	}{
		{
			name: "positional cursor",
			args: []string{"src/Point.cs:3:11"},
			want: &driver.FileSource{Path: "src/Point.cs", Line: 3, Column: 11},
		},
		{
			name:  "flags",
			flags: map[string]string{"file": "Point.cs", "line": "4"},
			want:  &driver.FileSource{Path: "Point.cs", Line: 4, Column: 1},
		},
		{
			name:    "missing line",
			flags:   map[string]string{"file": "Point.cs"},
			wantErr: true,
		},
		{
			name:    "malformed positional cursor",
			args:    []string{"Point.cs:x:1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newGenerateCmd()
			for k, v := range tt.flags {
				require.NoError(t, cmd.Flags().Set(k, v))
			}
			got, err := cursorFromArgs(cmd, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintScan(t *testing.T) {
	var out, errOut bytes.Buffer
	printScan(&out, &errOut, &ctorgen.ScanResult{
		Symbols: []types.TypeSymbol{
			{Name: "Point", Keyword: "class", FilePath: "Point.cs", Line: 3, Column: 5, FieldCount: 2},
		},
		Errors: []string{"Bad.cs: syntax errors"},
	})

	assert.Equal(t, "Point.cs:3:5  class Point  2 fields\n", out.String())
	assert.Equal(t, "warning: Bad.cs: syntax errors\n", errOut.String())
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "ctorgen "+version+"\n", out.String())
}

func TestGenerateCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Point.cs")
	src := "class Point\n{\n    int x;\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "--workdir", dir, "--newline", "lf", "--dry-run", "Point.cs:1:7"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "+    public Point(")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(got))
}
