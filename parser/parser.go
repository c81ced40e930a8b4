/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package parser reads design-tool export files into an ordered document tree.
package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/fs"
)

// DefaultSeparator is the name separator used when none is configured.
const DefaultSeparator = "/"

// Parser parses export files.
type Parser interface {
	// Parse parses export data and returns the document's root mapping node.
	Parse(data []byte) (*yaml.Node, error)

	// ParseFile parses an export file and returns the document's root mapping node.
	ParseFile(filesystem fs.FileSystem, path string) (*yaml.Node, error)
}

// SeparatorNameParser returns a name parser that splits raw names on sep.
// An empty separator leaves names unsplit.
func SeparatorNameParser(sep string) figma.NameParser {
	return func(name string) []string {
		if sep == "" {
			return []string{name}
		}
		return strings.Split(name, sep)
	}
}
