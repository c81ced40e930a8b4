/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/figmagen/figma"
	"bennypowers.dev/figmagen/parser"
	"bennypowers.dev/figmagen/validator"
)

func validate(t *testing.T, data string, sep string) (*figma.Export, []validator.ValidationError) {
	t.Helper()
	root, err := parser.NewDocumentParser().Parse([]byte(data))
	require.NoError(t, err)
	return validator.Validate(root, validator.Options{
		FilePath:   "export.json",
		NameParser: parser.SeparatorNameParser(sep),
	})
}

func TestValidate_Variables(t *testing.T) {
	export, errs := validate(t, `{
  "variables": [
    {"id": "v1", "name": "color/bg", "collection": "Colors",
     "valuesByMode": {"default": {"type": "rgb", "r": 0, "g": 0.5, "b": 1}}},
    {"id": "v2", "name": "spacing/sm", "collection": "Spacing",
     "valuesByMode": {"dark": {"type": "number", "value": 4}, "light": {"type": "number", "value": 8}}},
    {"id": "v3", "name": "color/fg", "collection": "Colors",
     "valuesByMode": {"default": {"type": "alias", "id": "v1"}}}
  ],
  "textStyles": [],
  "effectStyles": []
}`, "/")
	require.Empty(t, errs)
	require.Len(t, export.Variables, 3)

	bg := export.Variables[0]
	assert.Equal(t, "v1", bg.ID)
	assert.Equal(t, []string{"color", "bg"}, bg.NamePath)
	assert.Equal(t, "Colors", bg.Collection)
	assert.True(t, bg.IsShared())
	assert.Equal(t, figma.RGB(0, 0.5, 1), bg.Value())

	spacing := export.Variables[1]
	assert.Equal(t, figma.PerTheme, spacing.Scope())
	assert.Equal(t, []figma.ThemeValue{
		{Theme: "dark", Value: figma.Number{V: 4}},
		{Theme: "light", Value: figma.Number{V: 8}},
	}, spacing.ThemeValues())

	assert.Equal(t, figma.Alias{TargetID: "v1"}, export.Variables[2].Value())
}

func TestValidate_VariableWithoutModes(t *testing.T) {
	_, errs := validate(t, `{
  "variables": [{"id": "v1", "name": "a", "collection": "c", "valuesByMode": {}}],
  "textStyles": [],
  "effectStyles": []
}`, "/")
	require.Len(t, errs, 1)
	assert.Equal(t, "variables[0].valuesByMode", errs[0].Path)
	assert.Contains(t, errs[0].Message, figma.ErrNoThemeValues.Error())
}

func TestValidate_EmptyModeName(t *testing.T) {
	_, errs := validate(t, `{
  "variables": [{"id": "v1", "name": "c/a", "collection": "c",
    "valuesByMode": {"": {"type": "number", "value": 1}, "dark": {"type": "number", "value": 2}}}],
  "textStyles": [],
  "effectStyles": []
}`, "/")
	require.Len(t, errs, 1)
	assert.Equal(t, "variables[0].valuesByMode", errs[0].Path)
	assert.Equal(t, "mode name must not be empty", errs[0].Message)
	assert.Equal(t, 3, errs[0].Line)
}

func TestValidate_SingleEmptyModeIsShared(t *testing.T) {
	export, errs := validate(t, `{
  "variables": [{"id": "v1", "name": "c/a", "collection": "c", "valuesByMode": {"": {"type": "number", "value": 1}}}],
  "textStyles": [],
  "effectStyles": []
}`, "/")
	require.Empty(t, errs)
	require.Len(t, export.Variables, 1)
	assert.True(t, export.Variables[0].IsShared())
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "unknown type", value: `{"type": "gradient"}`, want: `unknown value type "gradient"`},
		{name: "number as string", value: `{"type": "number", "value": "4"}`, want: "numeric"},
		{name: "missing channel", value: `{"type": "rgba", "r": 0, "g": 0, "b": 0}`, want: `numeric "a"`},
		{name: "alias without id", value: `{"type": "alias"}`, want: `"id"`},
		{name: "scalar", value: `true`, want: "expected a value object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := validate(t, `{
  "variables": [{"id": "v1", "name": "a", "collection": "c", "valuesByMode": {"m": `+tt.value+`}}],
  "textStyles": [],
  "effectStyles": []
}`, "/")
			require.Len(t, errs, 1)
			assert.Equal(t, "variables[0].valuesByMode.m", errs[0].Path)
			assert.Contains(t, errs[0].Message, tt.want)
			assert.Equal(t, 2, errs[0].Line)
		})
	}
}

func TestValidate_MissingSections(t *testing.T) {
	_, errs := validate(t, `{"variables": []}`, "/")
	require.Len(t, errs, 2)
	assert.Equal(t, "textStyles", errs[0].Path)
	assert.Equal(t, "effectStyles", errs[1].Path)
	assert.NotEmpty(t, errs[0].Suggestion)
}

func TestValidate_TextStylesArePermissive(t *testing.T) {
	export, errs := validate(t, `{
  "variables": [],
  "textStyles": [
    {"name": "heading.h1",
     "fontSize": {"type": "number", "value": 32},
     "fontName": {"family": {"type": "string", "value": "Inter"}, "style": "Bold"},
     "letterSpacing": [1, 2]}
  ],
  "effectStyles": []
}`, ".")
	require.Empty(t, errs)
	require.Len(t, export.TextStyles, 1)

	style := export.TextStyles[0]
	assert.Equal(t, []string{"heading", "h1"}, style.NamePath)
	assert.Equal(t, []string{"fontSize", "fontName", "letterSpacing"}, style.Properties.Keys())

	fontSize, _ := style.Properties.Get("fontSize")
	assert.Equal(t, figma.Number{V: 32}, fontSize)

	fontName, _ := style.Properties.Get("fontName")
	record, ok := fontName.(*figma.ValueRecord)
	require.True(t, ok)
	family, _ := record.Get("family")
	assert.Equal(t, figma.String{V: "Inter"}, family)
	styleNode, _ := record.Get("style")
	assert.Nil(t, styleNode)

	letterSpacing, present := style.Properties.Get("letterSpacing")
	assert.True(t, present)
	assert.Nil(t, letterSpacing)
}

func TestValidate_EffectStyles(t *testing.T) {
	export, errs := validate(t, `{
  "variables": [],
  "textStyles": [],
  "effectStyles": [
    {"name": "shadow/sm", "effects": [
      {"type": "DROP_SHADOW", "radius": {"type": "number", "value": 4},
       "color": {"type": "rgba", "r": 0, "g": 0, "b": 0, "a": 0.25}}
    ]}
  ]
}`, "/")
	require.Empty(t, errs)
	require.Len(t, export.EffectStyles, 1)
	require.Len(t, export.EffectStyles[0].Effects, 1)

	effect := export.EffectStyles[0].Effects[0]
	assert.Equal(t, []string{"type", "radius", "color"}, effect.Keys())
	typeNode, _ := effect.Get("type")
	assert.Nil(t, typeNode)
	color, _ := effect.Get("color")
	assert.Equal(t, figma.RGBA(0, 0, 0, 0.25), color)

	_, errs = validate(t, `{"variables": [], "textStyles": [], "effectStyles": [{"name": "x", "effects": [42]}]}`, "/")
	require.Len(t, errs, 1)
	assert.Equal(t, "effectStyles[0].effects[0]", errs[0].Path)
}

func TestValidate_YAMLAnchors(t *testing.T) {
	export, errs := validate(t, `
black: &black {type: rgb, r: 0, g: 0, b: 0}
variables:
  - id: v1
    name: color/ink
    collection: Colors
    valuesByMode:
      default: *black
textStyles: []
effectStyles: []
`, "/")
	require.Empty(t, errs)
	require.Len(t, export.Variables, 1)
	assert.Equal(t, figma.RGB(0, 0, 0), export.Variables[0].Value())
}

func TestExport_FoldsErrors(t *testing.T) {
	root, err := parser.NewDocumentParser().Parse([]byte(`{"variables": [{"id": 1}], "textStyles": [], "effectStyles": []}`))
	require.NoError(t, err)

	_, err = validator.Export(root, validator.Options{FilePath: "in.json"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, validator.ErrInvalidExport))
	assert.Contains(t, err.Error(), "in.json:1: variables[0].id: expected a string")
}

func TestValidationError_Error(t *testing.T) {
	e := validator.ValidationError{
		FilePath:   "a.json",
		Line:       3,
		Path:       "variables[0]",
		Message:    "bad",
		Suggestion: "fix it",
	}
	assert.Equal(t, "a.json:3: variables[0]: bad (fix it)", e.Error())
	assert.Equal(t, "bad", (&validator.ValidationError{Message: "bad"}).Error())
}
