/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package emit turns a token graph into the syntax tree of a generated module.
package emit

import (
	"fmt"
	"math"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/naming"
	"bennypowers.dev/figmagen/resolver"
	"bennypowers.dev/figmagen/token"
	"bennypowers.dev/figmagen/tsast"
)

// Lang selects the output language.
type Lang string

const (
	// LangTS emits TypeScript, with a keyof typeof alias per export.
	LangTS Lang = "ts"
	// LangJS emits JavaScript: the same module without type aliases.
	LangJS Lang = "js"
)

// ParseLang validates a language name.
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(s)) {
	case "", LangTS:
		return LangTS, nil
	case LangJS:
		return LangJS, nil
	default:
		return "", fmt.Errorf("unsupported language %q (want ts or js)", s)
	}
}

// Extension returns the file extension for the language.
func (l Lang) Extension() string {
	if l == LangJS {
		return ".js"
	}
	return ".ts"
}

// Diagnostic is a recoverable, token-local error. The token is still emitted,
// as null with an explanatory comment.
type Diagnostic struct {
	// Path is the name path of the token that failed.
	Path []string
	Err  error
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %v", strings.Join(d.Path, "."), d.Err)
}

// Unwrap returns the underlying error.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Result is an emitted module and the diagnostics collected while emitting it.
type Result struct {
	File        *tsast.SourceFile
	Diagnostics []Diagnostic
}

// Options configures an Emitter.
type Options struct {
	Resolver *resolver.Resolver
	// Naming defaults to naming.Default().
	Naming *naming.Convention
	// Lang defaults to LangTS.
	Lang Lang
}

// Emitter builds module syntax trees. It holds no per-file state and is safe
// for concurrent use.
type Emitter struct {
	resolver *resolver.Resolver
	naming   *naming.Convention
	lang     Lang
}

// New creates an emitter.
func New(opts Options) *Emitter {
	e := &Emitter{resolver: opts.Resolver, naming: opts.Naming, lang: opts.Lang}
	if e.resolver == nil {
		e.resolver = resolver.New(nil)
	}
	if e.naming == nil {
		e.naming = naming.Default()
	}
	if e.lang == "" {
		e.lang = LangTS
	}
	return e
}

// EmitFile emits one module for graph. When referenceImportPath is non-empty
// the module starts with a namespace import of the shared module from that
// path. The returned error is structural (naming.ErrInvalidIdentifier) and
// means no module can be produced; alias failures are reported as
// diagnostics instead.
func (e *Emitter) EmitFile(graph *token.Graph, referenceImportPath string) (*Result, error) {
	f := &fileEmitter{Emitter: e}
	var statements []tsast.Statement

	if referenceImportPath != "" {
		ref, err := e.naming.Identifier(e.naming.ReferenceImportName())
		if err != nil {
			return nil, err
		}
		statements = append(statements, &tsast.ImportNamespace{Name: ref, From: referenceImportPath})
	}

	for _, key := range graph.Keys() {
		node, _ := graph.Get(key)

		ident, err := e.naming.Identifier(key)
		if err != nil {
			return nil, fmt.Errorf("top-level token %q: %w", key, err)
		}

		if e.lang == LangTS {
			typeName, err := e.naming.TypeName(key)
			if err != nil {
				return nil, fmt.Errorf("type for top-level token %q: %w", key, err)
			}
			statements = append(statements, &tsast.KeyofTypeofAlias{Name: typeName, Target: ident})
		}

		value, err := f.node(node)
		if err != nil {
			return nil, err
		}
		statements = append(statements, &tsast.ConstDeclaration{Name: ident, Initializer: value.expr})
	}

	return &Result{
		File:        &tsast.SourceFile{Statements: statements},
		Diagnostics: f.diagnostics,
	}, nil
}

type fileEmitter struct {
	*Emitter
	diagnostics []Diagnostic
}

// emitted is an expression and whether it must be wrapped in a get accessor.
type emitted struct {
	expr   tsast.Expression
	getter bool
}

func (f *fileEmitter) node(n token.Node) (emitted, error) {
	switch n := n.(type) {
	case *token.Leaf:
		return f.leaf(n.Token)
	case *token.Interior:
		obj, err := f.graph(n.Graph)
		return emitted{expr: obj}, err
	default:
		panic(fmt.Sprintf("emit: unknown token node %T", n))
	}
}

func (f *fileEmitter) graph(g *token.Graph) (*tsast.ObjectLiteral, error) {
	obj := &tsast.ObjectLiteral{Members: make([]tsast.ObjectMember, 0, g.Len())}
	for _, key := range g.Keys() {
		node, _ := g.Get(key)
		value, err := f.node(node)
		if err != nil {
			return nil, err
		}
		name := f.naming.Accessor(key)
		if value.getter {
			obj.Members = append(obj.Members, &tsast.GetAccessor{Name: name, Return: value.expr})
		} else {
			obj.Members = append(obj.Members, &tsast.PropertyAssignment{Name: name, Value: value.expr})
		}
	}
	return obj, nil
}

func (f *fileEmitter) leaf(tok *token.Token) (emitted, error) {
	switch v := tok.Value.(type) {
	case figma.Boolean:
		return emitted{expr: &tsast.BooleanLiteral{Value: v.V}}, nil
	case figma.Number:
		return emitted{expr: tsast.Number(v.V)}, nil
	case figma.String:
		return emitted{expr: &tsast.StringLiteral{Value: v.V}}, nil
	case figma.Color:
		return emitted{expr: &tsast.StringLiteral{Value: SerializeColor(v)}}, nil
	case figma.Alias:
		return f.alias(tok, v)
	default:
		panic(fmt.Sprintf("emit: unknown value %T", tok.Value))
	}
}

func (f *fileEmitter) alias(tok *token.Token, alias figma.Alias) (emitted, error) {
	resolved, err := f.resolver.Resolve(tok, alias)
	if err != nil {
		f.diagnostics = append(f.diagnostics, Diagnostic{Path: tok.NamePath, Err: err})
		return emitted{expr: &tsast.Commented{
			Expression: &tsast.NullLiteral{},
			Comment:    "Error: Skipped alias. " + err.Error(),
		}}, nil
	}

	if !resolved.IsLocal {
		chain := append([]string{f.naming.ReferenceImportName()}, resolved.Path...)
		expr, err := f.naming.AccessorChain(chain)
		if err != nil {
			return emitted{}, fmt.Errorf("alias at %s: %w", tok.DotPath(), err)
		}
		return emitted{expr: expr}, nil
	}

	expr, err := f.naming.AccessorChain(resolved.Path)
	if err != nil {
		return emitted{}, fmt.Errorf("alias at %s: %w", tok.DotPath(), err)
	}
	return emitted{expr: expr, getter: true}, nil
}

// SerializeColor renders a color as a CSS rgb() or rgba() string. Channels
// are scaled to 0-255 and rounded half up without clamping, so values outside
// 0-1 pass through. The alpha form is used only when alpha is present and
// not 1, with two decimals.
func SerializeColor(c figma.Color) string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if c.A != nil && *c.A != 1 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, tsast.ToFixed(*c.A, 2))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

func channel(v float64) int {
	return int(math.Floor(v*255 + 0.5))
}

// ImportPath returns the module specifier a file at fromFile uses to import
// the module at toFile: forward slashes, no extension, and a "./" prefix
// when the relative path does not already start with ".".
func ImportPath(fromFile, toFile string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(fromFile), toFile)
	if err != nil {
		return "", fmt.Errorf("relative path from %s to %s: %w", fromFile, toFile, err)
	}
	return NormalizeImportPath(rel), nil
}

// NormalizeImportPath converts a relative file path into a module specifier.
func NormalizeImportPath(rel string) string {
	p := strings.ReplaceAll(rel, `\`, "/")
	p = strings.TrimSuffix(p, path.Ext(p))
	if !strings.HasPrefix(p, ".") {
		p = "./" + p
	}
	return p
}
