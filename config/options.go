/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"

	"bennypowers.dev/figmagen/emit"
	"bennypowers.dev/figmagen/generate"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/parser"
)

// SeparatorOrDefault returns the configured name separator.
func (c *Config) SeparatorOrDefault() string {
	if c.Separator == "" {
		return parser.DefaultSeparator
	}
	return c.Separator
}

// GenerateOptions builds generation options. Unset paths are left empty so
// generate applies its defaults for the chosen language.
func (c *Config) GenerateOptions() (generate.Options, error) {
	lang, err := emit.ParseLang(c.Lang)
	if err != nil {
		return generate.Options{}, err
	}

	transform, err := naming.TransformByName(c.IdentifierCase)
	if err != nil {
		return generate.Options{}, fmt.Errorf("identifier case: %w", err)
	}
	typeTransform, err := naming.TransformByName(c.TypeCase)
	if err != nil {
		return generate.Options{}, fmt.Errorf("type case: %w", err)
	}

	convention, err := naming.New(naming.Options{
		ReferenceImportName: c.ReferenceImportName,
		Transform:           transform,
		TypeTransform:       typeTransform,
	})
	if err != nil {
		return generate.Options{}, err
	}

	header := generate.DefaultHeader
	if c.Header != nil {
		header = *c.Header
	}

	return generate.Options{
		ReferenceOutputPath: c.ReferenceOutput,
		ThemeOutputDir:      c.ThemeOutputDir,
		Header:              header,
		Naming:              convention,
		Lang:                lang,
		Verify:              c.Verify,
		Prune:               c.Prune,
	}, nil
}
