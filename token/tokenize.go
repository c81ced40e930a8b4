/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"slices"

	"bennypowers.dev/figmagen/figma"
)

// Report describes what tokenization left out.
type Report struct {
	// Dropped lists the name paths of style properties that were absent or
	// not a supported value, e.g. blur effects.
	Dropped [][]string
}

// Tokenize flattens an export into tokens: variables first, then text
// styles, then effect styles, each in input order.
func Tokenize(export *figma.Export) []*Token {
	tokens, _ := TokenizeWithReport(export)
	return tokens
}

// TokenizeWithReport is Tokenize that also reports dropped style properties.
func TokenizeWithReport(export *figma.Export) ([]*Token, Report) {
	var tokens []*Token
	var report Report

	for _, variable := range export.Variables {
		origin := VariableOrigin{Variable: variable}
		if variable.IsShared() {
			tokens = append(tokens, &Token{
				NamePath: variable.NamePath,
				Value:    variable.Value(),
				Origin:   origin,
			})
			continue
		}
		for _, tv := range variable.ThemeValues() {
			tokens = append(tokens, &Token{
				NamePath: variable.NamePath,
				Theme:    tv.Theme,
				Value:    tv.Value,
				Origin:   origin,
			})
		}
	}

	for _, style := range export.TextStyles {
		tokens = walkStyle(style.NamePath, style.Properties, tokens, &report)
	}

	for _, style := range export.EffectStyles {
		for _, effect := range style.Effects {
			tokens = walkStyle(style.NamePath, effect, tokens, &report)
		}
	}

	return tokens, report
}

// walkStyle appends a leaf token for every value reachable in node.
func walkStyle(path []string, node figma.ValueNode, tokens []*Token, report *Report) []*Token {
	switch n := node.(type) {
	case figma.Value:
		return append(tokens, &Token{
			NamePath: slices.Clone(path),
			Value:    n,
			Origin:   StyleOrigin{},
		})
	case *figma.ValueRecord:
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			tokens = walkStyle(append(slices.Clip(path), key), child, tokens, report)
		}
		return tokens
	default:
		report.Dropped = append(report.Dropped, slices.Clone(path))
		return tokens
	}
}
