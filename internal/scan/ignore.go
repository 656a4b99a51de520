// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ignorer matches slash-separated relative paths against .gitignore-style
// patterns. Negated patterns are not supported and are dropped.
type ignorer struct {
	patterns []string
}

// newIgnorer combines root/.gitignore with extra exclude patterns. A missing
// .gitignore contributes nothing.
func newIgnorer(root string, extra []string) ignorer {
	var lines []string
	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		lines = strings.Split(string(data), "\n")
	}
	lines = append(lines, extra...)

	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		patterns = append(patterns, strings.TrimSuffix(line, "/"))
	}
	return ignorer{patterns: patterns}
}

// isIgnored reports whether rel matches any pattern. Patterns without a
// slash match any path component; anchored patterns match from the root
// and cover everything beneath a matched directory.
func (g ignorer) isIgnored(rel string) bool {
	for _, pattern := range g.patterns {
		if !strings.Contains(pattern, "/") {
			for _, part := range strings.Split(rel, "/") {
				if ok, _ := doublestar.Match(pattern, part); ok {
					return true
				}
			}
			continue
		}
		anchored := strings.TrimPrefix(pattern, "/")
		if ok, _ := doublestar.Match(anchored, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(anchored+"/**", rel); ok {
			return true
		}
	}
	return false
}
