// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/ctorgen/pkg/ctorgen"
)

// newScanCmd creates the "scan" command.
func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "List type declarations a constructor can be generated for",
		Long: "Scan parses every .cs file under dir (default: workdir) and prints the cursor, " +
			"keyword, name and field count of each type declaration.",
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringSlice("exclude", nil, "Glob patterns to skip, matched like .gitignore entries")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	viper.BindPFlag("exclude", cmd.Flags().Lookup("exclude"))

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := viper.GetString("workdir")
	if len(args) == 1 {
		dir = args[0]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := ctorgen.Scan(ctx, dir, viper.GetInt("concurrency"), viper.GetStringSlice("exclude"))
	if err != nil {
		printError(cmd.ErrOrStderr(), err)
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	printScan(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
	return nil
}

// printScan writes one line per type and the per-file errors.
func printScan(out, errOut io.Writer, result *ctorgen.ScanResult) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, s := range result.Symbols {
		fmt.Fprintf(tw, "%s\t%s %s\t%d fields\n", s.Cursor(), s.Keyword, s.Name, s.FieldCount)
	}
	tw.Flush()

	for _, e := range result.Errors {
		fmt.Fprintf(errOut, "warning: %s\n", e)
	}
}
