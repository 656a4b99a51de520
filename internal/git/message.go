// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"strings"
)

const maxSubjectLength = 72

// GenerateMessage builds a conventional commit message for a generated
// constructor: a "feat:" subject, the modified files and the ctorgen trailer.
func GenerateMessage(typeName string, modifiedFiles []string) string {
	msg := buildSubject(typeName)
	if body := buildBody(modifiedFiles); body != "" {
		msg += "\n\n" + body
	}
	return msg + "\n\n" + generatedTrailer
}

// buildSubject formats "feat: generate constructor for <type>", truncated
// to maxSubjectLength.
func buildSubject(typeName string) string {
	name := strings.TrimSpace(typeName)
	if name == "" {
		name = "type"
	}
	subject := fmt.Sprintf("feat: generate constructor for %s", name)
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}
	return subject
}

func buildBody(modifiedFiles []string) string {
	if len(modifiedFiles) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString("Modified files:\n")
	for _, f := range modifiedFiles {
		fmt.Fprintf(&buf, "- %s\n", f)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
