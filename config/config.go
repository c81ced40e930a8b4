/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for figmagen.
package config

// Setting keys. They double as CLI flag names and, upper-cased with dashes
// replaced by underscores, as FIGMAGEN_ environment variable suffixes.
const (
	KeyInput               = "input"
	KeyReferenceOutput     = "reference-output"
	KeyThemeOutputDir      = "theme-output-dir"
	KeySeparator           = "separator"
	KeyHeader              = "header"
	KeyReferenceImportName = "reference-import-name"
	KeyIdentifierCase      = "identifier-case"
	KeyTypeCase            = "type-case"
	KeyLang                = "lang"
	KeyVerify              = "verify"
	KeyPrune               = "prune"
	KeyExitNonZeroOnError  = "exit-nonzero-on-error"
)

// Config represents the figmagen configuration file.
type Config struct {
	// Input is the export file to read. May be a glob matching exactly one file.
	Input string `yaml:"input" json:"input"`

	// ReferenceOutput is the path of the shared module.
	ReferenceOutput string `yaml:"referenceOutput" json:"referenceOutput"`

	// ThemeOutputDir is the directory theme modules are written to.
	ThemeOutputDir string `yaml:"themeOutputDir" json:"themeOutputDir"`

	// Separator splits variable and style names into name paths.
	Separator string `yaml:"separator" json:"separator"`

	// Header is prepended to every module. Nil means unset, so an empty
	// string can disable the header.
	Header *string `yaml:"header" json:"header"`

	// ReferenceImportName is the namespace binding of the shared module.
	ReferenceImportName string `yaml:"referenceImportName" json:"referenceImportName"`

	// IdentifierCase names the identifier transform (none, camel, pascal, snake, constant).
	IdentifierCase string `yaml:"identifierCase" json:"identifierCase"`

	// TypeCase names the type alias transform. Empty falls back to IdentifierCase.
	TypeCase string `yaml:"typeCase" json:"typeCase"`

	// Lang is the output language: ts or js.
	Lang string `yaml:"lang" json:"lang"`

	Verify             bool `yaml:"verify" json:"verify"`
	Prune              bool `yaml:"prune" json:"prune"`
	ExitNonZeroOnError bool `yaml:"exitNonZeroOnError" json:"exitNonZeroOnError"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{}
}

// Settings returns the values set in the config keyed by setting key.
// Unset values are left out so lower-precedence defaults apply.
func (c *Config) Settings() map[string]any {
	settings := make(map[string]any)
	setString := func(key, value string) {
		if value != "" {
			settings[key] = value
		}
	}
	setBool := func(key string, value bool) {
		if value {
			settings[key] = value
		}
	}

	setString(KeyInput, c.Input)
	setString(KeyReferenceOutput, c.ReferenceOutput)
	setString(KeyThemeOutputDir, c.ThemeOutputDir)
	setString(KeySeparator, c.Separator)
	if c.Header != nil {
		settings[KeyHeader] = *c.Header
	}
	setString(KeyReferenceImportName, c.ReferenceImportName)
	setString(KeyIdentifierCase, c.IdentifierCase)
	setString(KeyTypeCase, c.TypeCase)
	setString(KeyLang, c.Lang)
	setBool(KeyVerify, c.Verify)
	setBool(KeyPrune, c.Prune)
	setBool(KeyExitNonZeroOnError, c.ExitNonZeroOnError)

	return settings
}
