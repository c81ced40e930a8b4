/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validate provides the validate command for figmagen.
package validate

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/figmagen/config"
	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/parser"
	"bennypowers.dev/figmagen/resolver"
	"bennypowers.dev/figmagen/token"
	"bennypowers.dev/figmagen/validator"
)

// ErrValidationFailed is returned when any file has problems.
var ErrValidationFailed = errors.New("validation failed")

// Cmd is the validate cobra command.
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate design tool exports",
	Long: `Validate design tool exports: document shape, alias targets, scope
violations, alias cycles and top-level identifiers. Without files, the
configured input is used.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("quiet", false, "Only output errors")
	Cmd.Flags().StringP("separator", "s", "", "Name separator (default from config or \"/\")")
}

func run(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	separator, _ := cmd.Flags().GetString("separator")

	filesystem := fs.NewOSFileSystem()

	// Load config from .config/figmagen.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, ".")
	if separator == "" {
		separator = cfg.SeparatorOrDefault()
	}

	files := args
	if len(files) == 0 {
		input, err := config.ExpandInput(filesystem, ".", cfg.Input)
		if err != nil {
			return fmt.Errorf("no files specified and no input found in config: %w", err)
		}
		files = []string{input}
	}

	opts, err := cfg.GenerateOptions()
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	hasErrors := false

	for _, file := range files {
		if !quiet {
			fmt.Fprintf(stdout, "Validating %s...\n", file)
		}

		export, problems, err := validateFile(filesystem, file, separator, opts.Naming)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(stderr, "  %s\n", p)
			}
			hasErrors = true
			continue
		}

		if !quiet {
			printCounts(stdout, export)
		}
	}

	if hasErrors {
		return ErrValidationFailed
	}

	if !quiet {
		fmt.Fprintln(stdout, "All files valid.")
	}
	return nil
}

// validateFile parses and checks one export. The error is only set when the
// file could not be read or parsed; problems with its content are returned
// as messages.
func validateFile(filesystem fs.FileSystem, path, separator string, convention *naming.Convention) (*figma.Export, []string, error) {
	root, err := parser.NewDocumentParser().ParseFile(filesystem, path)
	if err != nil {
		return nil, nil, err
	}

	export, errs := validator.Validate(root, validator.Options{
		FilePath:   path,
		NameParser: parser.SeparatorNameParser(separator),
	})
	if len(errs) > 0 {
		problems := make([]string, 0, len(errs))
		for i := range errs {
			problems = append(problems, errs[i].Error())
		}
		return nil, problems, nil
	}

	return export, checkExport(export, convention), nil
}

// checkExport reports alias, cycle and identifier problems of a valid export.
func checkExport(export *figma.Export, convention *naming.Convention) []string {
	var problems []string

	res := resolver.New(export.Variables)
	tokens := token.Tokenize(export)
	for _, tok := range tokens {
		alias, ok := tok.Value.(figma.Alias)
		if !ok {
			continue
		}
		if _, err := res.Resolve(tok, alias); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", location(tok), err))
		}
	}

	if err := resolver.BuildDependencyGraph(export.Variables).CheckCycles(); err != nil {
		problems = append(problems, err.Error())
	}

	seen := make(map[string]bool)
	for _, tok := range tokens {
		if len(tok.NamePath) == 0 {
			continue
		}
		key := tok.NamePath[0]
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, err := convention.Identifier(key); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", tok.DotPath(), err))
		}
	}

	return problems
}

func location(tok *token.Token) string {
	if tok.IsShared() {
		return tok.DotPath()
	}
	return tok.Theme + ": " + tok.DotPath()
}

func printCounts(w io.Writer, export *figma.Export) {
	fmt.Fprintf(w, "  %d variables, %d text styles, %d effect styles\n",
		len(export.Variables), len(export.TextStyles), len(export.EffectStyles))
}
