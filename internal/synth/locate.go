// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package synth locates the type declaration under a cursor and renders a
// constructor that assigns every field from a same-named parameter.
package synth

import (
	"github.com/petar-djukic/ctorgen/internal/syntax"
)

// Classify reports whether the innermost node at the cursor is a type
// declaration. Positions outside the tree classify false.
func Classify(tree syntax.Tree, line, column int) bool {
	_, ok := locate(tree, line, column)
	return ok
}

// locate resolves the cursor to the innermost type declaration, if any.
func locate(tree syntax.Tree, line, column int) (*syntax.TypeDeclaration, bool) {
	if tree == nil {
		return nil, false
	}
	switch n := tree.NodeAt(line, column).(type) {
	case *syntax.TypeDeclaration:
		return n, true
	default:
		return nil, false
	}
}
