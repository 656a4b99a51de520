// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import "strings"

// Reindent re-indents generated code. Every non-blank line gets base plus
// one unit per open paren or brace level; a line starting with a closer is
// dedented first. Line terminators are kept as they are.
func Reindent(text, base, unit string) string {
	var b strings.Builder
	level := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		body, eol := splitEOL(raw)
		trimmed := strings.TrimSpace(body)
		if trimmed == "" {
			b.WriteString(eol)
			continue
		}

		lineLevel := max(level-leadingClosers(trimmed), 0)
		b.WriteString(base)
		b.WriteString(strings.Repeat(unit, lineLevel))
		b.WriteString(trimmed)
		b.WriteString(eol)

		level = max(level+depthDelta(trimmed), 0)
	}
	return b.String()
}

func splitEOL(line string) (string, string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

func leadingClosers(s string) int {
	n := 0
	for _, r := range s {
		if r != '}' && r != ')' {
			break
		}
		n++
	}
	return n
}

func depthDelta(s string) int {
	d := 0
	for _, r := range s {
		switch r {
		case '{', '(':
			d++
		case '}', ')':
			d--
		}
	}
	return d
}
