/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token flattens a design-tool export into leaf tokens and re-nests
// them into per-bucket token graphs.
package token

import (
	"strings"

	"bennypowers.dev/figmagen/figma"
)

// Origin records where a token came from.
type Origin interface {
	isOrigin()
}

// VariableOrigin marks a token produced from a variable.
type VariableOrigin struct {
	Variable *figma.Variable
}

// StyleOrigin marks a token produced from a text or effect style.
type StyleOrigin struct{}

func (VariableOrigin) isOrigin() {}
func (StyleOrigin) isOrigin()    {}

// Token is a single name-path-to-value leaf destined for emission.
type Token struct {
	// NamePath is the hierarchical name (e.g., ["color", "primary"]).
	NamePath []string

	// Theme is the theme bucket; empty for the shared bucket.
	Theme string

	// Value is the token's value.
	Value figma.Value

	// Origin is the variable or style the token was produced from.
	Origin Origin
}

// IsShared reports whether the token belongs to the shared bucket.
func (t *Token) IsShared() bool {
	return t.Theme == ""
}

// DotPath returns the dot-separated name path.
func (t *Token) DotPath() string {
	return strings.Join(t.NamePath, ".")
}

// GroupByTheme splits tokens into buckets keyed by theme, preserving token
// order within each bucket. The returned theme list is in first-seen order;
// the shared bucket, if any, is keyed by "".
func GroupByTheme(tokens []*Token) ([]string, map[string][]*Token) {
	var themes []string
	buckets := make(map[string][]*Token)
	for _, tok := range tokens {
		if _, seen := buckets[tok.Theme]; !seen {
			themes = append(themes, tok.Theme)
		}
		buckets[tok.Theme] = append(buckets[tok.Theme], tok)
	}
	return themes, buckets
}
