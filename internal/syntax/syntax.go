// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package syntax defines the read-only syntax tree contract consumed by the
// constructor synthesizer. Nodes form a closed set of variants: a type
// declaration, a field declaration, a method declaration, or anything else.
package syntax

// Tree resolves cursor positions to syntax nodes. Implementations must be
// safe for concurrent reads and must never return nil: positions outside
// the source resolve to the root node.
type Tree interface {
	// NodeAt returns the innermost node containing the 1-based line and
	// column.
	NodeAt(line, column int) Node
}

// Kind identifies a node variant.
type Kind int

const (
	KindOther Kind = iota
	KindTypeDeclaration
	KindFieldDeclaration
	KindMethodDeclaration
)

func (k Kind) String() string {
	switch k {
	case KindTypeDeclaration:
		return "TypeDeclaration"
	case KindFieldDeclaration:
		return "FieldDeclaration"
	case KindMethodDeclaration:
		return "MethodDeclaration"
	default:
		return "Other"
	}
}

// Node is one of *TypeDeclaration, *FieldDeclaration, *MethodDeclaration
// or *Other. The set is sealed.
type Node interface {
	Kind() Kind
	Span() Span
	sealed()
}

// Span locates a node in the source text.
type Span struct {
	StartByte   int
	EndByte     int
	StartLine   int // 1-based
	StartColumn int // 1-based
}

// TypeDeclaration is a class, struct, interface or record.
type TypeDeclaration struct {
	Name      string
	Keyword   string // "class", "struct", "interface", "record"
	Members   []Node // direct members in source order
	BodyStart int    // byte offset just past the opening brace, -1 if absent
	Loc       Span
}

// FieldDeclaration declares one or more variables sharing a type.
type FieldDeclaration struct {
	Type      string   // declared type, verbatim source text
	Names     []string // declared variables in order
	Modifiers []string
	Loc       Span
}

// MethodDeclaration covers methods, constructors, destructors and operators.
type MethodDeclaration struct {
	Name string
	Loc  Span
}

// Other is any node the synthesizer does not model.
type Other struct {
	Type string // grammar node type, e.g. "compilation_unit"
	Loc  Span
}

func (*TypeDeclaration) Kind() Kind   { return KindTypeDeclaration }
func (*FieldDeclaration) Kind() Kind  { return KindFieldDeclaration }
func (*MethodDeclaration) Kind() Kind { return KindMethodDeclaration }
func (*Other) Kind() Kind             { return KindOther }

func (n *TypeDeclaration) Span() Span   { return n.Loc }
func (n *FieldDeclaration) Span() Span  { return n.Loc }
func (n *MethodDeclaration) Span() Span { return n.Loc }
func (n *Other) Span() Span             { return n.Loc }

func (*TypeDeclaration) sealed()   {}
func (*FieldDeclaration) sealed()  {}
func (*MethodDeclaration) sealed() {}
func (*Other) sealed()             {}

// HasModifier reports whether the field carries the given modifier.
func (f *FieldDeclaration) HasModifier(m string) bool {
	for _, mod := range f.Modifiers {
		if mod == m {
			return true
		}
	}
	return false
}
