/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tsast

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// PrintWidth is the column an object literal must fit in to stay on one line.
	PrintWidth = 80
	indentUnit = "  "
)

// Print renders a source file with two-space indentation, double quotes,
// trailing commas in multi-line objects and a trailing newline.
// Objects stay on one line when they fit in PrintWidth and hold no accessors.
// A blank line separates statements, except between a type alias and the
// declaration it describes.
func Print(file *SourceFile) string {
	var sb strings.Builder
	for i, stmt := range file.Statements {
		if i > 0 {
			if _, ok := file.Statements[i-1].(*KeyofTypeofAlias); !ok {
				sb.WriteByte('\n')
			}
		}
		sb.WriteString(printStatement(stmt))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PrintExpression renders a single expression at column zero.
func PrintExpression(expr Expression) string {
	return printExpression(expr, 0, 0, 0)
}

func printStatement(stmt Statement) string {
	switch s := stmt.(type) {
	case *ImportNamespace:
		return fmt.Sprintf("import * as %s from %s;", s.Name.Name, quote(s.From))
	case *KeyofTypeofAlias:
		return fmt.Sprintf("export type %s = keyof typeof %s;", s.Name.Name, s.Target.Name)
	case *ConstDeclaration:
		prefix := "export const " + s.Name.Name + " = "
		return prefix + printExpression(s.Initializer, 0, width(prefix), 1) + ";"
	default:
		panic(fmt.Sprintf("tsast: unknown statement %T", stmt))
	}
}

// printExpression renders expr starting at column, where suffix is the width
// of the text that must follow it on the same line.
func printExpression(expr Expression, depth, column, suffix int) string {
	obj, ok := expr.(*ObjectLiteral)
	if !ok {
		if c, isComment := expr.(*Commented); isComment {
			inner := printExpression(c.Expression, depth, column, suffix)
			return inner + " " + comment(c.Comment)
		}
		flat, _ := printFlat(expr)
		return flat
	}

	if len(obj.Members) == 0 {
		return "{}"
	}
	if flat, ok := printFlat(obj); ok && column+width(flat)+suffix <= PrintWidth {
		return flat
	}

	inner := strings.Repeat(indentUnit, depth+1)
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, member := range obj.Members {
		sb.WriteString(inner)
		sb.WriteString(printMember(member, depth+1))
		sb.WriteString(",\n")
	}
	sb.WriteString(strings.Repeat(indentUnit, depth))
	sb.WriteByte('}')
	return sb.String()
}

func printMember(member ObjectMember, depth int) string {
	indent := width(strings.Repeat(indentUnit, depth))
	switch m := member.(type) {
	case *PropertyAssignment:
		prefix := printPropertyName(m.Name) + ": "
		return prefix + printExpression(m.Value, depth, indent+width(prefix), 1)
	case *GetAccessor:
		body := strings.Repeat(indentUnit, depth+1)
		ret := "return "
		return "get " + printPropertyName(m.Name) + "() {\n" +
			body + ret + printExpression(m.Return, depth+1, width(body)+width(ret), 1) + ";\n" +
			strings.Repeat(indentUnit, depth) + "}"
	default:
		panic(fmt.Sprintf("tsast: unknown object member %T", member))
	}
}

// printFlat renders expr on a single line. It reports false when expr
// contains a get accessor, which never fits on one line.
func printFlat(expr Expression) (string, bool) {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name, true
	case *StringLiteral:
		return quote(e.Value), true
	case *NumericLiteral:
		return FormatNumber(e.Value), true
	case *BooleanLiteral:
		if e.Value {
			return "true", true
		}
		return "false", true
	case *NullLiteral:
		return "null", true
	case *PrefixUnary:
		operand, ok := printFlat(e.Operand)
		return e.Operator + operand, ok
	case *PropertyAccess:
		obj, ok := printFlat(e.Object)
		return obj + "." + e.Name, ok
	case *ElementAccess:
		obj, ok := printFlat(e.Object)
		index, indexOK := printFlat(e.Index)
		return obj + "[" + index + "]", ok && indexOK
	case *Commented:
		inner, ok := printFlat(e.Expression)
		return inner + " " + comment(e.Comment), ok
	case *ObjectLiteral:
		if len(e.Members) == 0 {
			return "{}", true
		}
		parts := make([]string, 0, len(e.Members))
		for _, member := range e.Members {
			assignment, ok := member.(*PropertyAssignment)
			if !ok {
				return "", false
			}
			value, ok := printFlat(assignment.Value)
			if !ok {
				return "", false
			}
			parts = append(parts, printPropertyName(assignment.Name)+": "+value)
		}
		return "{ " + strings.Join(parts, ", ") + " }", true
	default:
		panic(fmt.Sprintf("tsast: unknown expression %T", expr))
	}
}

func printPropertyName(name PropertyName) string {
	switch n := name.(type) {
	case *Identifier:
		return n.Name
	case *StringLiteral:
		return quote(n.Value)
	default:
		panic(fmt.Sprintf("tsast: unknown property name %T", name))
	}
}

func comment(text string) string {
	return "/* " + strings.ReplaceAll(text, "*/", "* /") + " */"
}

// quote renders s as a string literal, preferring double quotes unless
// single quotes need fewer escapes.
func quote(s string) string {
	q := '"'
	if strings.Count(s, `"`) > strings.Count(s, "'") {
		q = '\''
	}

	var sb strings.Builder
	sb.WriteRune(q)
	for _, r := range s {
		switch r {
		case q:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04X`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteRune(q)
	return sb.String()
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}
