// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command ctorgen generates C# constructors from field declarations.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/ctorgen/internal/logger"
)

const version = "0.1.0"

var envKeyReplacer = strings.NewReplacer("-", "_")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ctorgen",
		Short: "Generate C# constructors from field declarations",
		Long: "ctorgen finds the class, struct, interface or record declaration at a cursor " +
			"and inserts a public constructor that takes and assigns every field.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(viper.GetBool("log-json"), viper.GetBool("verbose"))
		},
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("workdir", ".", "Repository root directory")
	flags.String("newline", "crlf", "Line terminator of rendered code (crlf or lf); inserted code follows the file")
	flags.String("insert-at", "body", "Insertion point (body or cursor)")
	flags.String("indent", "    ", "One indentation level")
	flags.String("format-cmd", "", "Formatter run after insertion, {file} is the edited path")
	flags.Duration("format-timeout", 0, "Formatter timeout (default 60s)")
	flags.Bool("no-git", false, "Disable git operations")
	flags.Int("concurrency", 0, "Parallel parsers for scan (default NumCPU)")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	for _, name := range []string{
		"workdir", "newline", "insert-at", "indent", "format-cmd", "format-timeout",
		"no-git", "concurrency", "log-json", "verbose",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: CTORGEN_NEWLINE, CTORGEN_FORMAT_CMD, etc.
	viper.SetEnvPrefix("CTORGEN")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".ctorgen")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print ctorgen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ctorgen %s\n", version)
		},
	}
}
