// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package synth

import (
	"strings"

	"github.com/cockroachdb/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/petar-djukic/ctorgen/internal/syntax"
)

// Line terminators accepted by WithNewline.
const (
	CRLF = "\r\n"
	LF   = "\n"
)

// ErrMalformedInput is returned when generation is requested at a cursor
// that does not resolve to a type declaration.
var ErrMalformedInput = errors.New("cursor does not resolve to a type declaration")

// Field is one constructor parameter.
type Field struct {
	Name string
	Type string // declared type text, verbatim
}

type options struct {
	newline string
}

// Option configures rendering.
type Option func(*options)

// WithNewline sets the line terminator. The default is CRLF.
func WithNewline(nl string) Option {
	return func(o *options) {
		if nl != "" {
			o.newline = nl
		}
	}
}

// Generate resolves the type declaration at the cursor and renders its
// constructor. It returns ErrMalformedInput when the cursor is not on a
// type declaration.
func Generate(tree syntax.Tree, line, column int, opts ...Option) (string, error) {
	decl, err := Resolve(tree, line, column)
	if err != nil {
		return "", err
	}
	return Render(decl, opts...), nil
}

// Resolve returns the innermost type declaration at the cursor.
func Resolve(tree syntax.Tree, line, column int) (*syntax.TypeDeclaration, error) {
	decl, ok := locate(tree, line, column)
	if !ok {
		err := errors.Wrapf(ErrMalformedInput, "line %d, column %d", line, column)
		return nil, errors.WithHint(err, "place the cursor on a class, struct, interface or record declaration")
	}
	return decl, nil
}

// Fields collects the direct field declarations of decl. Names keep the
// position of their first declaration; a repeated name takes the type of
// its last declaration. Constants and non-field members are skipped.
func Fields(decl *syntax.TypeDeclaration) []Field {
	fieldMap := orderedmap.New[string, string]()
	for _, member := range decl.Members {
		field, ok := member.(*syntax.FieldDeclaration)
		if !ok || field.HasModifier("const") {
			continue
		}
		for _, name := range field.Names {
			fieldMap.Set(name, field.Type)
		}
	}

	fields := make([]Field, 0, fieldMap.Len())
	for pair := fieldMap.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, Field{Name: pair.Key, Type: pair.Value})
	}
	return fields
}

// Render produces the constructor text for decl:
//
//	public Name(
//	T a,
//	U b)
//	{
//	this.a = a;
//	this.b = b;
//	}
//
// Indentation is left to the caller's formatter.
func Render(decl *syntax.TypeDeclaration, opts ...Option) string {
	o := options{newline: CRLF}
	for _, opt := range opts {
		opt(&o)
	}
	nl := o.newline
	fields := Fields(decl)

	params := make([]string, len(fields))
	for i, f := range fields {
		params[i] = f.Type + " " + f.Name
	}

	var b strings.Builder
	b.WriteString("public " + decl.Name + "(" + nl)
	b.WriteString(strings.Join(params, ","+nl))
	b.WriteString(")" + nl)

	b.WriteString("{" + nl)
	for _, f := range fields {
		b.WriteString("this." + f.Name + " = " + f.Name + ";" + nl)
	}
	b.WriteString("}" + nl)

	return b.String()
}
