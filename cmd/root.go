/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for figmagen.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"bennypowers.dev/figmagen/cmd/generate"
	"bennypowers.dev/figmagen/cmd/list"
	"bennypowers.dev/figmagen/cmd/mcp"
	"bennypowers.dev/figmagen/cmd/validate"
	"bennypowers.dev/figmagen/cmd/version"
	"bennypowers.dev/figmagen/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "figmagen",
	Short: "Generate TypeScript modules from design tool exports",
	Long: `figmagen turns a design tool export of variables, text styles and effect styles
into one TypeScript module per theme plus a shared reference module.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(generate.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
