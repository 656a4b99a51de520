// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/ctorgen/internal/driver"
	gitpkg "github.com/petar-djukic/ctorgen/internal/git"
	"github.com/petar-djukic/ctorgen/pkg/ctorgen"
)

// newGenerateCmd creates the "generate" command.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [path:line:column]",
		Short: "Insert a constructor for the type at a cursor",
		Long: "Generate resolves the type declaration at the cursor, builds a constructor " +
			"from its fields and inserts it into the file. The cursor is given as " +
			"path:line:column (as printed by scan) or with --file, --line and --column.",
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringP("file", "f", "", "Source file")
	cmd.Flags().IntP("line", "l", 0, "Cursor line (1-based)")
	cmd.Flags().IntP("column", "c", 1, "Cursor column (1-based)")
	cmd.Flags().Bool("dry-run", false, "Print a diff instead of writing")

	return cmd
}

// runGenerate executes a single generation.
func runGenerate(cmd *cobra.Command, args []string) error {
	src, err := cursorFromArgs(cmd, args)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	g, err := ctorgen.New(ctorgen.Config{
		WorkDir:       viper.GetString("workdir"),
		Newline:       viper.GetString("newline"),
		InsertAt:      viper.GetString("insert-at"),
		Indent:        viper.GetString("indent"),
		FormatCmd:     viper.GetString("format-cmd"),
		FormatTimeout: viper.GetDuration("format-timeout"),
		NoGit:         viper.GetBool("no-git"),
		DryRun:        dryRun,
	})
	if err != nil {
		return errors.Wrap(err, "initialization failed")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := g.Generate(ctx, src.Path, src.Line, src.Column)
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
		return err
	}

	if dryRun && result.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Diff)
		return nil
	}
	return printJSON(cmd.OutOrStdout(), result)
}

// cursorFromArgs reads the cursor from a path:line:column argument or from
// the --file, --line and --column flags.
func cursorFromArgs(cmd *cobra.Command, args []string) (*driver.FileSource, error) {
	if len(args) == 1 {
		return driver.ParseCursor(args[0])
	}

	file, _ := cmd.Flags().GetString("file")
	line, _ := cmd.Flags().GetInt("line")
	column, _ := cmd.Flags().GetInt("column")
	if file == "" || line < 1 || column < 1 {
		return nil, errors.WithHint(
			errors.New("a cursor is required"),
			"pass path:line:column or --file with --line and --column",
		)
	}
	return &driver.FileSource{Path: file, Line: line, Column: column}, nil
}

// printError writes the error and any hints to w.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// printJSON outputs v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling result")
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// newUndoCmd creates the "undo" command.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last ctorgen commit",
		Long:  "Undo soft-resets the last commit if ctorgen made it. The generated code stays staged.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctorgen.Undo(viper.GetString("workdir")); err != nil {
				if errors.Is(err, gitpkg.ErrNotCtorgenCommit) {
					err = errors.WithHint(err, "undo only reverts commits carrying the ctorgen trailer")
				}
				printError(cmd.ErrOrStderr(), err)
				return errors.Wrap(err, "undo failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Successfully reverted last ctorgen commit.")
			return nil
		},
	}
}
