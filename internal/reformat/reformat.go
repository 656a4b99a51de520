// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package reformat runs an external C# formatter over a file after a
// constructor has been inserted.
package reformat

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kballard/go-shellquote"

	"github.com/petar-djukic/ctorgen/internal/logger"
)

const (
	defaultTimeout = 60 * time.Second

	// FilePlaceholder in a command line is replaced by the formatted file's
	// path. Without it the path is appended as the last argument.
	FilePlaceholder = "{file}"
)

// Diagnostic is one MSBuild-style message from formatter output.
type Diagnostic struct {
	FilePath string
	Line     int
	Column   int // 0 if not available
	Severity string
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%s(%d)", d.FilePath, d.Line)
	if d.Column > 0 {
		loc = fmt.Sprintf("%s(%d,%d)", d.FilePath, d.Line, d.Column)
	}
	if d.Code != "" {
		return fmt.Sprintf("%s: %s %s: %s", loc, d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
}

// Error is returned when the formatter exits unsuccessfully.
type Error struct {
	Command     string
	Output      string
	Diagnostics []Diagnostic
	Err         error
}

func (e *Error) Error() string {
	if len(e.Diagnostics) > 0 {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Diagnostics[0])
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Command runs a formatter command line such as "dotnet csharpier {file}".
// It implements editor.Formatter.
type Command struct {
	Line    string        // Command line, split with shell quoting rules
	Dir     string        // Working directory (empty for current)
	Timeout time.Duration // Defaults to 60s
}

// Format runs the command for path and captures combined output.
func (c *Command) Format(ctx context.Context, path string) error {
	args, err := c.args(path)
	if err != nil {
		return err
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	start := time.Now()
	out, err := runCommand(ctx, c.Dir, timeout, args[0], args[1:]...)
	logger.ComponentLogger("reformat").Debugw("formatter finished",
		logger.FieldCommand, args[0],
		logger.FieldFile, path,
		logger.FieldDuration, time.Since(start).Milliseconds(),
		"failed", err != nil)
	if err != nil {
		return &Error{
			Command:     args[0],
			Output:      out,
			Diagnostics: parseDiagnostics(out),
			Err:         err,
		}
	}
	return nil
}

func (c *Command) args(path string) ([]string, error) {
	args, err := shellquote.Split(c.Line)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing format command %q", c.Line)
	}
	if len(args) == 0 {
		return nil, errors.New("empty format command")
	}

	substituted := false
	for i, a := range args {
		if strings.Contains(a, FilePlaceholder) {
			args[i] = strings.ReplaceAll(a, FilePlaceholder, path)
			substituted = true
		}
	}
	if !substituted {
		args = append(args, path)
	}
	return args, nil
}

// runCommand executes a command with a timeout and captures combined output.
func runCommand(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) (string, error) {
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, name, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	return buf.String(), err
}

// msbuildRegex matches MSBuild-style diagnostics:
// File.cs(10,5): error CS1002: ; expected
// File.cs(10): warning: message
var msbuildRegex = regexp.MustCompile(`^(.+?\.cs)\((\d+)(?:,(\d+))?\): (error|warning|info)(?: ([A-Z]+\d+))?: (.+)$`)

// parseDiagnostics extracts diagnostics from formatter output.
func parseDiagnostics(output string) []Diagnostic {
	var diags []Diagnostic
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := msbuildRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		lineNum, _ := strconv.Atoi(matches[2])
		colNum := 0
		if matches[3] != "" {
			colNum, _ = strconv.Atoi(matches[3])
		}

		diags = append(diags, Diagnostic{
			FilePath: matches[1],
			Line:     lineNum,
			Column:   colNum,
			Severity: matches[4],
			Code:     matches[5],
			Message:  matches[6],
		})
	}
	return diags
}
