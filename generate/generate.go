/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package generate runs the full pipeline: it tokenizes an export, emits one
// module per theme plus the shared reference module, and writes them out.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"bennypowers.dev/figmagen/emit"
	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/internal/logger"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/parser"
	"bennypowers.dev/figmagen/resolver"
	"bennypowers.dev/figmagen/token"
	"bennypowers.dev/figmagen/tsast"
	"bennypowers.dev/figmagen/validator"
	"bennypowers.dev/figmagen/verify"
)

// Defaults for Options.
const (
	DefaultReferenceOutputPath = "generated/reference.ts"
	defaultReferenceOutputBase = "generated/reference"
	DefaultThemeOutputDir      = "generated/themes"
	DefaultHeader              = "// This file was automatically generated. Do not modify it manually.\n\n"
)

// ErrOutputCollision indicates two modules would be written to the same path.
var ErrOutputCollision = errors.New("output path collision")

// Options configures a run.
type Options struct {
	// ReferenceOutputPath is where the shared module is written. Defaults to
	// DefaultReferenceOutputPath with the extension of Lang.
	ReferenceOutputPath string

	// ThemeOutputDir is the directory theme modules are written to.
	ThemeOutputDir string

	// Header is prepended verbatim to every module.
	Header string

	// Naming defaults to naming.Default().
	Naming *naming.Convention

	// Lang defaults to emit.LangTS.
	Lang emit.Lang

	// Verify parses every printed module with tree-sitter and reports syntax
	// errors as file errors.
	Verify bool

	// Prune removes modules in ThemeOutputDir that this run did not produce.
	Prune bool

	// DryRun writes modules to Stdout instead of the filesystem.
	DryRun bool

	// FS receives the modules. Defaults to the OS filesystem.
	FS fs.FileSystem

	// Stdout receives dry-run output. Defaults to os.Stdout.
	Stdout io.Writer
}

func (o Options) withDefaults() Options {
	if o.Lang == "" {
		o.Lang = emit.LangTS
	}
	if o.ReferenceOutputPath == "" {
		o.ReferenceOutputPath = defaultReferenceOutputBase + o.Lang.Extension()
	}
	if o.ThemeOutputDir == "" {
		o.ThemeOutputDir = DefaultThemeOutputDir
	}
	if o.Naming == nil {
		o.Naming = naming.Default()
	}
	if o.FS == nil {
		o.FS = fs.NewOSFileSystem()
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	return o
}

// LoadExport reads and validates an export file, splitting names on separator.
func LoadExport(filesystem fs.FileSystem, path, separator string) (*figma.Export, error) {
	root, err := parser.NewDocumentParser().ParseFile(filesystem, path)
	if err != nil {
		return nil, err
	}
	return validator.Export(root, validator.Options{
		FilePath:   path,
		NameParser: parser.SeparatorNameParser(separator),
	})
}

// bucket is one module to emit.
type bucket struct {
	theme      string
	path       string
	importPath string
	tokens     []*token.Token
}

// Run generates every module for export. The returned error is run-level:
// invalid identifiers, output collisions or cancellation. Alias, verification
// and save failures are collected per file in the report instead.
func Run(ctx context.Context, export *figma.Export, opts Options) (*Report, error) {
	opts = opts.withDefaults()

	tokens, tokenReport := token.TokenizeWithReport(export)
	for _, path := range tokenReport.Dropped {
		logger.Debug("dropped style property %s: not a value", strings.Join(path, "."))
	}

	cycle := resolver.BuildDependencyGraph(export.Variables).FindCycle()
	switch {
	case cycle == nil:
	case cycle.Theme == "":
		logger.Warn("alias cycle between variables %s", strings.Join(cycle.Path, " -> "))
	default:
		logger.Warn("alias cycle between variables %s in theme %s", strings.Join(cycle.Path, " -> "), cycle.Theme)
	}

	buckets, err := planBuckets(tokens, opts)
	if err != nil {
		return nil, err
	}

	emitter := emit.New(emit.Options{
		Resolver: resolver.New(export.Variables),
		Naming:   opts.Naming,
		Lang:     opts.Lang,
	})

	files := make([]FileReport, len(buckets))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range buckets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			file, err := b.generate(emitter, opts)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Files: files, Dropped: tokenReport.Dropped, Cycle: cycle}

	if opts.DryRun {
		for _, file := range files {
			fmt.Fprintf(opts.Stdout, "==> %s <==\n%s\n", file.Path, file.Source)
		}
		return report, nil
	}

	for i := range report.Files {
		file := &report.Files[i]
		if err := save(opts.FS, file.Path, []byte(file.Source)); err != nil {
			file.Errors = append(file.Errors, "Failed to save:\n"+err.Error())
		}
	}

	if opts.Prune {
		keep := make(map[string]bool, len(files))
		for _, file := range files {
			keep[filepath.Clean(file.Path)] = true
		}
		pruned, err := prune(opts.FS, opts.ThemeOutputDir, PrunePattern(opts.Lang), keep)
		report.Pruned = pruned
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// planBuckets orders the shared module first, then one module per theme in
// first-seen order. The shared module is always planned, so theme imports
// resolve even when no token is shared.
func planBuckets(tokens []*token.Token, opts Options) ([]bucket, error) {
	themes, byTheme := token.GroupByTheme(tokens)

	buckets := []bucket{{path: opts.ReferenceOutputPath, tokens: byTheme[""]}}
	owners := map[string]string{filepath.Clean(opts.ReferenceOutputPath): "the shared module"}

	for _, theme := range themes {
		if theme == "" {
			continue
		}
		path := filepath.Join(opts.ThemeOutputDir, sanitizeFileName(theme)+opts.Lang.Extension())
		if owner, taken := owners[filepath.Clean(path)]; taken {
			return nil, fmt.Errorf("%w: theme %q and %s both map to %s", ErrOutputCollision, theme, owner, path)
		}
		owners[filepath.Clean(path)] = fmt.Sprintf("theme %q", theme)

		importPath, err := emit.ImportPath(path, opts.ReferenceOutputPath)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, bucket{
			theme:      theme,
			path:       path,
			importPath: importPath,
			tokens:     byTheme[theme],
		})
	}
	return buckets, nil
}

func (b bucket) generate(emitter *emit.Emitter, opts Options) (FileReport, error) {
	logger.Info("Generating %s", b.path)

	graph := token.BuildGraph(b.tokens)
	for _, ow := range graph.Overwrites() {
		logger.Warn("%s: %s replaces an earlier token at %s", b.path, ow.Token.DotPath(), strings.Join(ow.Path, "."))
	}

	result, err := emitter.EmitFile(graph, b.importPath)
	if err != nil {
		return FileReport{}, fmt.Errorf("%s: %w", b.path, err)
	}

	file := FileReport{
		Path:       b.path,
		Theme:      b.theme,
		Overwrites: graph.Overwrites(),
	}
	for _, d := range result.Diagnostics {
		file.Errors = append(file.Errors, "Skipped alias at "+d.Error())
	}

	code := tsast.Print(result.File)
	if opts.Verify {
		if err := verify.Source([]byte(code), opts.Lang); err != nil {
			file.Errors = append(file.Errors, "Failed to verify:\n"+err.Error())
		}
	}
	file.Source = opts.Header + code

	return file, nil
}

func save(filesystem fs.FileSystem, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := filesystem.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return filesystem.WriteFile(path, data, 0644)
}

// sanitizeFileName sanitizes a theme name for use in file paths.
// It prevents path traversal by replacing unsafe characters.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.',
			r == '-',
			r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
