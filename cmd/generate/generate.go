/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package generate provides the generate command for figmagen.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/figmagen/config"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/generate"
	"bennypowers.dev/figmagen/internal/logger"
	"bennypowers.dev/figmagen/load"
	"bennypowers.dev/figmagen/parser"
)

// EnvPrefix prefixes environment variables that override config settings.
const EnvPrefix = "FIGMAGEN"

const keyDryRun = "dry-run"

// ErrGenerationFailed is returned when files have errors and
// --exit-nonzero-on-error is set.
var ErrGenerationFailed = errors.New("code generation finished with errors")

// Cmd is the generate cobra command.
var Cmd = newCommand()

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate TypeScript modules from a design tool export",
		Long: `Generate one module per theme plus a shared reference module from a design tool export.

Settings are read from flags, then FIGMAGEN_* environment variables, then
.config/figmagen.{yaml,yml,json}.`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyInput, "i", "", "Input export file, glob matching one file, or http(s) URL")
	flags.String(config.KeyReferenceOutput, generate.DefaultReferenceOutputPath, "Shared module path")
	flags.String(config.KeyThemeOutputDir, generate.DefaultThemeOutputDir, "Theme module directory")
	flags.StringP(config.KeySeparator, "s", parser.DefaultSeparator, "Name separator")
	flags.String(config.KeyHeader, generate.DefaultHeader, "Header prepended to every module")
	flags.String(config.KeyReferenceImportName, "reference", "Namespace binding for the shared module")
	flags.String(config.KeyIdentifierCase, "none", "Identifier transform (none, camel, pascal, snake, constant)")
	flags.String(config.KeyTypeCase, "", "Type alias transform (defaults to --identifier-case)")
	flags.String(config.KeyLang, "ts", "Output language: ts, js")
	flags.Bool(config.KeyVerify, false, "Syntax check every printed module")
	flags.Bool(config.KeyPrune, false, "Remove stale modules from the theme directory")
	flags.Bool(config.KeyExitNonZeroOnError, false, "Exit non-zero when any file has errors")
	flags.Bool(keyDryRun, false, "Print modules to stdout instead of writing them")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	filesystem := fs.NewOSFileSystem()

	fileCfg, err := config.Load(filesystem, ".")
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if fileCfg == nil {
		fileCfg = config.Default()
	}

	v, err := newViper(cmd, fileCfg)
	if err != nil {
		return err
	}
	cfg := resolve(v)

	cmd.SilenceUsage = true

	report, err := runGenerate(cmd.Context(), filesystem, cfg, v.GetBool(keyDryRun), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if !report.HasErrors() {
		logger.Info("%s", report.Summary())
		return nil
	}
	logger.Error("%s", report.Summary())
	if cfg.ExitNonZeroOnError {
		return ErrGenerationFailed
	}
	return nil
}

// newViper layers the command's flags over FIGMAGEN_* environment variables
// over the config file. Unchanged flags only supply defaults.
func newViper(cmd *cobra.Command, fileCfg *config.Config) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.MergeConfigMap(fileCfg.Settings()); err != nil {
		return nil, fmt.Errorf("error merging config: %w", err)
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}
	return v, nil
}

// resolve reads the effective settings. The reference output path is only
// taken when set somewhere, so generate can pick the default for the
// output language.
func resolve(v *viper.Viper) *config.Config {
	header := v.GetString(config.KeyHeader)
	cfg := &config.Config{
		Input:               v.GetString(config.KeyInput),
		ThemeOutputDir:      v.GetString(config.KeyThemeOutputDir),
		Separator:           v.GetString(config.KeySeparator),
		Header:              &header,
		ReferenceImportName: v.GetString(config.KeyReferenceImportName),
		IdentifierCase:      v.GetString(config.KeyIdentifierCase),
		TypeCase:            v.GetString(config.KeyTypeCase),
		Lang:                v.GetString(config.KeyLang),
		Verify:              v.GetBool(config.KeyVerify),
		Prune:               v.GetBool(config.KeyPrune),
		ExitNonZeroOnError:  v.GetBool(config.KeyExitNonZeroOnError),
	}
	if v.IsSet(config.KeyReferenceOutput) {
		cfg.ReferenceOutput = v.GetString(config.KeyReferenceOutput)
	}
	return cfg
}

// runGenerate loads the configured input and generates every module.
func runGenerate(ctx context.Context, filesystem fs.FileSystem, cfg *config.Config, dryRun bool, stdout io.Writer) (*generate.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := cfg.GenerateOptions()
	if err != nil {
		return nil, err
	}
	opts.FS = filesystem
	opts.DryRun = dryRun
	opts.Stdout = stdout

	logger.Debug("Reading %s", cfg.Input)
	export, err := load.Export(ctx, cfg.Input, load.Options{
		FS:        filesystem,
		Separator: cfg.SeparatorOrDefault(),
	})
	if err != nil {
		return nil, err
	}

	return generate.Run(ctx, export, opts)
}
