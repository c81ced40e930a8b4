/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package verify checks printed modules for syntax errors with tree-sitter.
package verify

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"bennypowers.dev/figmagen/emit"
)

// ErrSyntax indicates printed source that does not parse.
var ErrSyntax = errors.New("syntax error")

var (
	tsLang = sitter.NewLanguage(ts_typescript.LanguageTypescript())
	jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())
)

// SyntaxError locates the first error node of a failed parse.
// Line and Column are 1-based.
type SyntaxError struct {
	Line    int
	Column  int
	Missing string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("%v: missing %q at %d:%d", ErrSyntax, e.Missing, e.Line, e.Column)
	}
	return fmt.Sprintf("%v at %d:%d", ErrSyntax, e.Line, e.Column)
}

// Unwrap returns ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Source parses source in the given language and returns a *SyntaxError for
// the first error node, or nil when the source parses cleanly.
// Each call uses its own parser, so Source is safe for concurrent use.
func Source(source []byte, lang emit.Lang) error {
	parser := sitter.NewParser()
	defer parser.Close()

	language := tsLang
	if lang == emit.LangJS {
		language = jsLang
	}
	if err := parser.SetLanguage(language); err != nil {
		return fmt.Errorf("failed to set %s language: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return fmt.Errorf("failed to parse %s source", lang)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	node := firstError(root)
	pos := node.StartPosition()
	syntaxErr := &SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
	if node.IsMissing() {
		syntaxErr.Missing = node.Kind()
	}
	return syntaxErr
}

// firstError returns the first ERROR or MISSING node in document order,
// falling back to node itself.
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		return firstError(child)
	}
	return node
}
