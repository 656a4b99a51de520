// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across ctorgen packages.
package types

import "fmt"

// TypeSymbol is a type declaration found by a directory scan.
type TypeSymbol struct {
	Name       string // Type name
	Keyword    string // class, struct, interface, record
	FilePath   string // Source file path relative to the scan root
	Line       int    // Line number (1-based)
	Column     int    // Column number (1-based)
	FieldCount int    // Number of constructor parameters the type would get
}

// Cursor returns the position to pass to generate for this type.
func (s TypeSymbol) Cursor() string {
	return fmt.Sprintf("%s:%d:%d", s.FilePath, s.Line, s.Column)
}
