// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 2

// Preview renders a line-oriented diff between before and after. Unchanged
// runs are collapsed to contextLines lines on each side of a change.
// Returns "" when nothing changed.
func Preview(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var buf strings.Builder
	fmt.Fprintf(&buf, "--- %s\n+++ %s\n", path, path)
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writeLines(&buf, "+", ls)
		case diffmatchpatch.DiffDelete:
			writeLines(&buf, "-", ls)
		case diffmatchpatch.DiffEqual:
			writeLines(&buf, " ", collapse(ls, i > 0, i < len(diffs)-1))
		}
	}
	return buf.String()
}

// collapse keeps the context next to the neighbouring changes.
func collapse(ls []string, hasBefore, hasAfter bool) []string {
	var head, tail []string
	if hasBefore {
		head = ls[:min(contextLines, len(ls))]
	}
	if hasAfter {
		tail = ls[max(len(ls)-contextLines, 0):]
	}
	if len(head)+len(tail) >= len(ls) {
		return ls
	}
	out := append([]string{}, head...)
	out = append(out, "...")
	return append(out, tail...)
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func writeLines(buf *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		buf.WriteString(prefix)
		buf.WriteString(strings.TrimSuffix(l, "\r"))
		buf.WriteString("\n")
	}
}
