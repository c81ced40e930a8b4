/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"bytes"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/figmagen/fs"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// DocumentParser parses JSON (with comments) or YAML export files into
// an ordered yaml.Node tree so that mapping key order is preserved.
type DocumentParser struct{}

// NewDocumentParser creates a new export document parser.
func NewDocumentParser() *DocumentParser {
	return &DocumentParser{}
}

// Parse parses JSON or YAML export data and returns the root mapping node.
func (p *DocumentParser) Parse(data []byte) (*yaml.Node, error) {
	if isLikelyJSON(data) {
		// Comments and trailing commas become whitespace, so offsets still match the input.
		root, err := decodeJSON(jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		if root.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("JSON root must be an object")
		}
		return root, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("YAML document is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML root must be an object")
	}

	return root, nil
}

// ParseFile parses an export file and returns the root mapping node.
func (p *DocumentParser) ParseFile(filesystem fs.FileSystem, path string) (*yaml.Node, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	root, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", path, err)
	}

	return root, nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
// JSON typically starts with '{' (optionally preceded by whitespace/BOM).
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
