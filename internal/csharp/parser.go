// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package csharp parses C# source with tree-sitter and exposes the result
// as a syntax.Tree.
package csharp

import (
	"context"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/petar-djukic/ctorgen/internal/syntax"
)

// ErrInvalidContent is returned when the source cannot be parsed as text.
var ErrInvalidContent = errors.New("invalid content")

// typeKeywords maps type declaration node types to their C# keyword.
var typeKeywords = map[string]string{
	"class_declaration":         "class",
	"struct_declaration":        "struct",
	"interface_declaration":     "interface",
	"record_declaration":        "record",
	"record_struct_declaration": "record struct",
}

// methodTypes are the member node types reported as MethodDeclaration.
var methodTypes = map[string]bool{
	"method_declaration":              true,
	"constructor_declaration":         true,
	"destructor_declaration":          true,
	"operator_declaration":            true,
	"conversion_operator_declaration": true,
	"local_function_statement":        true,
}

// headerParts are the direct children of a type declaration that still
// count as "inside the declaration" rather than inside one of its members.
var headerParts = map[string]bool{
	"identifier":                        true,
	"modifier":                          true,
	"attribute_list":                    true,
	"base_list":                         true,
	"type_parameter_list":               true,
	"type_parameter_constraints_clause": true,
	"declaration_list":                  true,
}

// Tree is a parsed C# compilation unit. It is read-only after Parse and
// safe for concurrent NodeAt calls.
type Tree struct {
	src        []byte
	tree       *sitter.Tree
	root       *sitter.Node
	lineStarts []int // byte offset of each line start
}

var _ syntax.Tree = (*Tree)(nil)

// Parse parses src as C#. Syntax errors do not fail the parse; tree-sitter
// recovers and HasErrors reports them.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	if !utf8.Valid(src) {
		return nil, errors.Wrap(ErrInvalidContent, "source is not valid UTF-8")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(err, "tree-sitter parse failed")
	}
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, errors.Wrap(ErrInvalidContent, "tree-sitter returned nil root node")
	}

	return &Tree{
		src:        src,
		tree:       tree,
		root:       root,
		lineStarts: lineStarts(src),
	}, nil
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// Source returns the parsed text.
func (t *Tree) Source() []byte {
	return t.src
}

// HasErrors reports whether tree-sitter had to recover from syntax errors.
func (t *Tree) HasErrors() bool {
	return t.root.HasError()
}

// NodeAt returns the innermost node at the 1-based cursor. A cursor on a
// type's name, modifiers, base list or on blank space inside its body
// resolves to the type declaration itself. Lines outside the source
// resolve to the compilation unit.
func (t *Tree) NodeAt(line, column int) syntax.Node {
	offset, ok := t.Offset(line, column)
	if !ok {
		return t.convert(t.root)
	}
	pt := t.point(offset)
	n := t.root.NamedDescendantForPointRange(pt, pt)
	if n == nil {
		n = t.root
	}
	if decl := enclosingType(n); decl != nil {
		n = decl
	}
	return t.convert(n)
}

// Offset converts a 1-based line and column (in characters) to a byte
// offset. Columns past the end of the line clamp to the line end.
func (t *Tree) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(t.lineStarts) {
		return 0, false
	}
	start := t.lineStarts[line-1]
	end := len(t.src)
	if line < len(t.lineStarts) {
		end = t.lineStarts[line] - 1
	}
	if end > start && t.src[end-1] == '\r' {
		end--
	}

	offset := start
	for col := 1; col < column && offset < end; col++ {
		_, size := utf8.DecodeRune(t.src[offset:end])
		offset += size
	}
	return offset, true
}

// Types returns every type declaration in the file, nested ones included,
// in source order.
func (t *Tree) Types() []*syntax.TypeDeclaration {
	var decls []*syntax.TypeDeclaration
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if _, ok := typeKeywords[n.Type()]; ok {
			decls = append(decls, t.typeDeclaration(n))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(t.root)
	return decls
}

// enclosingType returns n when it is a type declaration, or n's parent
// when n is a header part or the body of that parent. Otherwise nil.
func enclosingType(n *sitter.Node) *sitter.Node {
	if _, ok := typeKeywords[n.Type()]; ok {
		return n
	}
	if !headerParts[n.Type()] {
		return nil
	}
	p := n.Parent()
	if p == nil {
		return nil
	}
	if _, ok := typeKeywords[p.Type()]; ok {
		return p
	}
	return nil
}

// convert maps a tree-sitter node onto the syntax variants.
func (t *Tree) convert(n *sitter.Node) syntax.Node {
	switch typ := n.Type(); {
	case typeKeywords[typ] != "":
		return t.typeDeclaration(n)
	case typ == "field_declaration":
		return t.fieldDeclaration(n)
	case methodTypes[typ]:
		m := &syntax.MethodDeclaration{Loc: t.span(n)}
		if name := n.ChildByFieldName("name"); name != nil {
			m.Name = name.Content(t.src)
		}
		return m
	default:
		return &syntax.Other{Type: typ, Loc: t.span(n)}
	}
}

func (t *Tree) typeDeclaration(n *sitter.Node) *syntax.TypeDeclaration {
	decl := &syntax.TypeDeclaration{
		Keyword:   typeKeywords[n.Type()],
		BodyStart: -1,
		Loc:       t.span(n),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		decl.Name = name.Content(t.src)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		body = namedChildOfType(n, "declaration_list")
	}
	if body == nil {
		return decl
	}

	decl.BodyStart = int(body.StartByte()) + 1
	for i := 0; i < int(body.NamedChildCount()); i++ {
		decl.Members = append(decl.Members, t.convert(body.NamedChild(i)))
	}
	return decl
}

func (t *Tree) fieldDeclaration(n *sitter.Node) *syntax.FieldDeclaration {
	f := &syntax.FieldDeclaration{Loc: t.span(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "modifier":
			f.Modifiers = append(f.Modifiers, c.Content(t.src))
		case "variable_declaration":
			f.Type = declaredType(c, t.src)
			for j := 0; j < int(c.NamedChildCount()); j++ {
				d := c.NamedChild(j)
				if d.Type() != "variable_declarator" {
					continue
				}
				if name := declaratorName(d); name != nil {
					f.Names = append(f.Names, name.Content(t.src))
				}
			}
		}
	}
	return f
}

// declaredType returns the verbatim type text of a variable_declaration.
func declaredType(n *sitter.Node, src []byte) string {
	if typ := n.ChildByFieldName("type"); typ != nil {
		return typ.Content(src)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "variable_declarator" {
			return c.Content(src)
		}
	}
	return ""
}

// declaratorName handles grammars with and without a "name" field on
// variable_declarator.
func declaratorName(n *sitter.Node) *sitter.Node {
	if name := n.ChildByFieldName("name"); name != nil {
		return name
	}
	return namedChildOfType(n, "identifier")
}

func namedChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func (t *Tree) span(n *sitter.Node) syntax.Span {
	start := int(n.StartByte())
	row := int(n.StartPoint().Row)
	col := 1
	if row < len(t.lineStarts) && t.lineStarts[row] <= start {
		col = utf8.RuneCount(t.src[t.lineStarts[row]:start]) + 1
	}
	return syntax.Span{
		StartByte:   start,
		EndByte:     int(n.EndByte()),
		StartLine:   row + 1, // 0-based to 1-based
		StartColumn: col,
	}
}

// point converts a byte offset to a tree-sitter point (0-based row, byte
// column).
func (t *Tree) point(offset int) sitter.Point {
	row := 0
	for row+1 < len(t.lineStarts) && t.lineStarts[row+1] <= offset {
		row++
	}
	return sitter.Point{
		Row:    uint32(row),
		Column: uint32(offset - t.lineStarts[row]),
	}
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
