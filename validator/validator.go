/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package validator checks the raw shape of a design-tool export and builds
// the typed figma.Export the generator consumes.
package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/parser"
)

// ErrInvalidExport is returned by Export when validation produced errors.
var ErrInvalidExport = errors.New("invalid export")

// ValidationError represents a shape error in the export.
type ValidationError struct {
	// FilePath is the path to the file containing the error.
	FilePath string
	// Path is the location of the problematic element, e.g. variables[2].valuesByMode.
	Path string
	// Line is the 1-based line of the element, 0 when unknown.
	Line int
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		if e.Line > 0 {
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(e.Line))
		}
		sb.WriteString(": ")
	}
	if e.Path != "" {
		sb.WriteString(e.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Options configures validation.
type Options struct {
	// FilePath is included in errors.
	FilePath string

	// NameParser splits raw names into name paths.
	// Defaults to splitting on parser.DefaultSeparator.
	NameParser figma.NameParser
}

// Validate checks the export document and returns the typed export.
// The export is nil whenever errors are returned.
func Validate(root *yaml.Node, opts Options) (*figma.Export, []ValidationError) {
	if opts.NameParser == nil {
		opts.NameParser = parser.SeparatorNameParser(parser.DefaultSeparator)
	}
	v := &validation{opts: opts}
	export := v.export(root)
	if len(v.errors) > 0 {
		return nil, v.errors
	}
	return export, nil
}

// Export is Validate folded into a single error, for callers that only need
// to know whether the input is usable.
func Export(root *yaml.Node, opts Options) (*figma.Export, error) {
	export, errs := Validate(root, opts)
	if len(errs) == 0 {
		return export, nil
	}
	msgs := make([]string, 0, len(errs))
	for i := range errs {
		msgs = append(msgs, errs[i].Error())
	}
	return nil, fmt.Errorf("%w:\n  %s", ErrInvalidExport, strings.Join(msgs, "\n  "))
}

type validation struct {
	opts   Options
	errors []ValidationError
}

func (v *validation) fail(node *yaml.Node, path, format string, args ...any) {
	line := 0
	if node != nil {
		line = node.Line
	}
	v.errors = append(v.errors, ValidationError{
		FilePath: v.opts.FilePath,
		Path:     path,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validation) export(root *yaml.Node) *figma.Export {
	root = deref(root)
	if root == nil || root.Kind != yaml.MappingNode {
		v.fail(root, "", "export root must be an object")
		return nil
	}

	export := &figma.Export{}

	if vars, ok := v.requireSequence(root, "variables"); ok {
		for i, item := range vars.Content {
			if variable := v.variable(deref(item), fmt.Sprintf("variables[%d]", i)); variable != nil {
				export.Variables = append(export.Variables, variable)
			}
		}
	}

	if styles, ok := v.requireSequence(root, "textStyles"); ok {
		for i, item := range styles.Content {
			if style := v.textStyle(deref(item), fmt.Sprintf("textStyles[%d]", i)); style != nil {
				export.TextStyles = append(export.TextStyles, style)
			}
		}
	}

	if styles, ok := v.requireSequence(root, "effectStyles"); ok {
		for i, item := range styles.Content {
			if style := v.effectStyle(deref(item), fmt.Sprintf("effectStyles[%d]", i)); style != nil {
				export.EffectStyles = append(export.EffectStyles, style)
			}
		}
	}

	return export
}

func (v *validation) requireSequence(parent *yaml.Node, key string) (*yaml.Node, bool) {
	node := lookup(parent, key)
	if node == nil {
		v.errors = append(v.errors, ValidationError{
			FilePath:   v.opts.FilePath,
			Path:       key,
			Line:       parent.Line,
			Message:    "missing required field",
			Suggestion: fmt.Sprintf("add an empty %q array if the export has none", key),
		})
		return nil, false
	}
	if node.Kind != yaml.SequenceNode {
		v.fail(node, key, "expected an array")
		return nil, false
	}
	return node, true
}

func (v *validation) requireString(parent *yaml.Node, key, path string) (string, bool) {
	node := lookup(parent, key)
	if node == nil {
		v.fail(parent, path+"."+key, "missing required field")
		return "", false
	}
	s, ok := stringScalar(node)
	if !ok {
		v.fail(node, path+"."+key, "expected a string")
		return "", false
	}
	return s, true
}

func (v *validation) name(parent *yaml.Node, path string) ([]string, bool) {
	raw, ok := v.requireString(parent, "name", path)
	if !ok {
		return nil, false
	}
	namePath := v.opts.NameParser(raw)
	if len(namePath) == 0 {
		v.fail(parent, path+".name", "%v: %q", figma.ErrEmptyName, raw)
		return nil, false
	}
	return namePath, true
}

func (v *validation) variable(node *yaml.Node, path string) *figma.Variable {
	if node == nil || node.Kind != yaml.MappingNode {
		v.fail(node, path, "expected a variable object")
		return nil
	}

	id, idOK := v.requireString(node, "id", path)
	namePath, nameOK := v.name(node, path)
	collection, collectionOK := v.requireString(node, "collection", path)

	modes := deref(lookup(node, "valuesByMode"))
	if modes == nil {
		v.fail(node, path+".valuesByMode", "missing required field")
		return nil
	}
	if modes.Kind != yaml.MappingNode {
		v.fail(modes, path+".valuesByMode", "expected an object")
		return nil
	}

	var values []figma.ThemeValue
	valuesOK := true
	perTheme := len(modes.Content) > 2
	for i := 0; i+1 < len(modes.Content); i += 2 {
		theme := modes.Content[i].Value
		if perTheme && theme == "" {
			// An empty theme name would land in the shared module.
			v.fail(modes.Content[i], path+".valuesByMode", "mode name must not be empty")
			valuesOK = false
			continue
		}
		value, err := ParseValue(modes.Content[i+1])
		if err != nil {
			v.fail(modes.Content[i+1], path+".valuesByMode."+theme, "%v", err)
			valuesOK = false
			continue
		}
		values = append(values, figma.ThemeValue{Theme: theme, Value: value})
	}

	if !idOK || !nameOK || !collectionOK || !valuesOK {
		return nil
	}

	if len(values) == 1 {
		variable := figma.NewSharedVariable(id, namePath, values[0].Value)
		variable.Collection = collection
		return variable
	}

	variable, err := figma.NewPerThemeVariable(id, namePath, values)
	if err != nil {
		v.fail(modes, path+".valuesByMode", "%v", err)
		return nil
	}
	variable.Collection = collection
	return variable
}

func (v *validation) textStyle(node *yaml.Node, path string) *figma.TextStyle {
	if node == nil || node.Kind != yaml.MappingNode {
		v.fail(node, path, "expected a text style object")
		return nil
	}

	namePath, ok := v.name(node, path)
	if !ok {
		return nil
	}

	props := figma.NewValueRecord()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key == "name" {
			continue
		}
		props.Set(key, ParseValueNode(node.Content[i+1]))
	}

	return &figma.TextStyle{NamePath: namePath, Properties: props}
}

func (v *validation) effectStyle(node *yaml.Node, path string) *figma.EffectStyle {
	if node == nil || node.Kind != yaml.MappingNode {
		v.fail(node, path, "expected an effect style object")
		return nil
	}

	namePath, nameOK := v.name(node, path)

	effects := deref(lookup(node, "effects"))
	if effects == nil {
		v.fail(node, path+".effects", "missing required field")
		return nil
	}
	if effects.Kind != yaml.SequenceNode {
		v.fail(effects, path+".effects", "expected an array")
		return nil
	}

	style := &figma.EffectStyle{NamePath: namePath}
	effectsOK := true
	for i, item := range effects.Content {
		record, ok := ParseValueNode(item).(*figma.ValueRecord)
		if !ok {
			v.fail(item, fmt.Sprintf("%s.effects[%d]", path, i), "expected an effect object")
			effectsOK = false
			continue
		}
		style.Effects = append(style.Effects, record)
	}

	if !nameOK || !effectsOK {
		return nil
	}
	return style
}

// lookup returns the value node stored under key in a mapping node.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return deref(mapping.Content[i+1])
		}
	}
	return nil
}

// deref follows YAML aliases (*anchor) to their target node.
func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func stringScalar(node *yaml.Node) (string, bool) {
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
		return "", false
	}
	return node.Value, true
}
