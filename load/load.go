/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package load reads a design tool export from a local file or a URL.
package load

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bennypowers.dev/figmagen/config"
	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/fs"
	"bennypowers.dev/figmagen/generate"
	"bennypowers.dev/figmagen/parser"
	"bennypowers.dev/figmagen/validator"
)

// Options configures how an export is loaded.
type Options struct {
	// Root is the directory local inputs are relative to. Defaults to ".".
	Root string

	// FS is the filesystem to use. Defaults to OS filesystem if nil.
	FS fs.FileSystem

	// Separator splits variable and style names. Defaults to parser.DefaultSeparator.
	Separator string

	// Fetcher fetches http and https inputs. Defaults to an HTTPFetcher
	// limited to DefaultMaxSize.
	Fetcher Fetcher

	// FetchTimeout is the maximum time to wait for a network fetch.
	// Defaults to DefaultTimeout when zero.
	FetchTimeout time.Duration
}

// IsURL reports whether input names a remote export.
func IsURL(input string) bool {
	return strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://")
}

// Export loads and validates the export named by input.
//
// The input can be:
//   - Local file path: "export.json" or "/path/to/export.yaml"
//   - Glob matching exactly one file: "design/*.json"
//   - URL: "https://example.com/export.json"
func Export(ctx context.Context, input string, opts Options) (*figma.Export, error) {
	filesystem := opts.FS
	if filesystem == nil {
		filesystem = fs.NewOSFileSystem()
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	separator := opts.Separator
	if separator == "" {
		separator = parser.DefaultSeparator
	}

	if !IsURL(input) {
		path, err := config.ExpandInput(filesystem, root, input)
		if err != nil {
			return nil, err
		}
		return generate.LoadExport(filesystem, path, separator)
	}

	content, err := fetch(ctx, input, opts)
	if err != nil {
		return nil, err
	}

	doc, err := parser.NewDocumentParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", input, err)
	}
	return validator.Export(doc, validator.Options{
		FilePath:   input,
		NameParser: parser.SeparatorNameParser(separator),
	})
}

func fetch(ctx context.Context, url string, opts Options) ([]byte, error) {
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(DefaultMaxSize)
	}
	timeout := opts.FetchTimeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	content, err := fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &FetchError{URL: url, Err: err}
	}
	return content, nil
}
