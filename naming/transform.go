/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownTransform indicates a transform name that is not built in.
var ErrUnknownTransform = errors.New("unknown case transform")

// Transform rewrites a single name segment.
type Transform func(name string) string

// Transform names accepted by TransformByName.
const (
	CaseNone     = "none"
	CaseCamel    = "camel"
	CasePascal   = "pascal"
	CaseSnake    = "snake"
	CaseConstant = "constant"
)

// TransformNames lists the built-in transforms.
var TransformNames = []string{CaseNone, CaseCamel, CasePascal, CaseSnake, CaseConstant}

// TransformByName returns a built-in transform. The empty name returns nil so
// callers can fall back to another transform.
func TransformByName(name string) (Transform, error) {
	switch strings.ToLower(name) {
	case "":
		return nil, nil
	case CaseNone:
		return None, nil
	case CaseCamel:
		return CamelCase, nil
	case CasePascal:
		return PascalCase, nil
	case CaseSnake:
		return SnakeCase, nil
	case CaseConstant:
		return ConstantCase, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownTransform, name, strings.Join(TransformNames, ", "))
	}
}

// None returns name unchanged.
func None(name string) string {
	return name
}

// CamelCase converts "font-size" to "fontSize".
func CamelCase(name string) string {
	words := SplitIntoWords(name)
	if len(words) == 0 {
		return ""
	}
	// Casers are stateful, so each call gets its own.
	title := cases.Title(language.Und)
	var sb strings.Builder
	sb.WriteString(cases.Lower(language.Und).String(words[0]))
	for _, word := range words[1:] {
		sb.WriteString(title.String(word))
	}
	return sb.String()
}

// PascalCase converts "font-size" to "FontSize".
func PascalCase(name string) string {
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, word := range SplitIntoWords(name) {
		sb.WriteString(title.String(word))
	}
	return sb.String()
}

// SnakeCase converts "fontSize" to "font_size".
func SnakeCase(name string) string {
	return cases.Lower(language.Und).String(strings.Join(SplitIntoWords(name), "_"))
}

// ConstantCase converts "fontSize" to "FONT_SIZE".
func ConstantCase(name string) string {
	return cases.Upper(language.Und).String(strings.Join(SplitIntoWords(name), "_"))
}

// SplitIntoWords splits a string on hyphens, underscores, dots, spaces, and
// camelCase boundaries.
func SplitIntoWords(s string) []string {
	var words []string
	var current strings.Builder

	for i, r := range s {
		if r == '-' || r == '_' || r == '.' || r == ' ' {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		} else if unicode.IsUpper(r) && i > 0 {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r)
		} else {
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}
