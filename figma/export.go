/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma

import "fmt"

// Scope distinguishes shared variables from per-theme variables.
type Scope int

const (
	// Shared variables have exactly one value usable across all themes.
	Shared Scope = iota
	// PerTheme variables have one value per theme.
	PerTheme
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case Shared:
		return "shared"
	case PerTheme:
		return "per-theme"
	default:
		return "unknown"
	}
}

// ThemeValue is one theme entry of a per-theme variable.
type ThemeValue struct {
	Theme string
	Value Value
}

// Variable is a named design variable.
type Variable struct {
	// ID is the opaque identifier aliases refer to.
	ID string

	// NamePath is the hierarchical name, already split by the name parser.
	NamePath []string

	// Collection is the design-tool collection the variable belongs to.
	Collection string

	scope       Scope
	value       Value
	themeValues []ThemeValue
}

// NewSharedVariable creates a shared variable holding a single value.
func NewSharedVariable(id string, namePath []string, value Value) *Variable {
	return &Variable{ID: id, NamePath: namePath, scope: Shared, value: value}
}

// NewPerThemeVariable creates a per-theme variable. At least one theme entry
// is required and theme names must be unique.
func NewPerThemeVariable(id string, namePath []string, values []ThemeValue) (*Variable, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: variable %s", ErrNoThemeValues, id)
	}
	seen := make(map[string]bool, len(values))
	for _, tv := range values {
		if seen[tv.Theme] {
			return nil, fmt.Errorf("%w: variable %s, theme %q", ErrDuplicateTheme, id, tv.Theme)
		}
		seen[tv.Theme] = true
	}
	return &Variable{ID: id, NamePath: namePath, scope: PerTheme, themeValues: values}, nil
}

// Scope returns whether the variable is shared or per-theme.
func (v *Variable) Scope() Scope {
	return v.scope
}

// IsShared reports whether the variable has a single shared value.
func (v *Variable) IsShared() bool {
	return v.scope == Shared
}

// Value returns the value of a shared variable, or nil for per-theme variables.
func (v *Variable) Value() Value {
	return v.value
}

// ThemeValues returns the theme entries of a per-theme variable in input order.
func (v *Variable) ThemeValues() []ThemeValue {
	return v.themeValues
}

// TextStyle is a named text style and its property graph.
type TextStyle struct {
	NamePath   []string
	Properties *ValueRecord
}

// EffectStyle is a named effect style holding one property graph per effect.
type EffectStyle struct {
	NamePath []string
	Effects  []*ValueRecord
}

// Export is the validated design-tool export the pipeline consumes.
type Export struct {
	Variables    []*Variable
	TextStyles   []*TextStyle
	EffectStyles []*EffectStyle
}

// NameParser splits a raw name into a name path.
type NameParser func(name string) []string
