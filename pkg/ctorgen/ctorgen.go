// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctorgen defines the public interface for ctorgen, a constructor
// generator for C# type declarations.
package ctorgen

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/ctorgen/pkg/types"
)

// Error types for the ctorgen API.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Newline settings accepted by Config.Newline.
const (
	NewlineCRLF = "crlf"
	NewlineLF   = "lf"
)

// Config configures a Generator.
type Config struct {
	WorkDir       string        // Repository root; relative paths resolve here (required)
	Newline       string        // "crlf" (default) or "lf"
	InsertAt      string        // "body" (default) or "cursor"
	Indent        string        // One indentation level (default four spaces)
	FormatCmd     string        // Formatter command line, {file} is replaced by the path
	FormatTimeout time.Duration // Formatter timeout (default 60s)
	NoGit         bool          // Disable dirty-file handling and auto-commit
	DryRun        bool          // Compute a diff without writing
}

// Result holds the outcome of a Generate invocation.
type Result struct {
	Status    string   `json:"status"` // inserted, previewed or not-applicable
	FilePath  string   `json:"file"`
	TypeName  string   `json:"type,omitempty"`
	Inserted  string   `json:"inserted,omitempty"`
	Diff      string   `json:"diff,omitempty"`
	Committed bool     `json:"committed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Generator inserts constructors into files on disk.
type Generator interface {
	// Generate inserts a constructor for the type declaration at the
	// cursor. A cursor that is not on a type declaration yields status
	// not-applicable and no error.
	Generate(ctx context.Context, path string, line, column int) (*Result, error)
}

// ScanResult lists the type declarations found under a directory.
type ScanResult struct {
	Root    string             `json:"root"`
	Files   int                `json:"files"`
	Symbols []types.TypeSymbol `json:"types"`
	Errors  []string           `json:"errors,omitempty"`
}
