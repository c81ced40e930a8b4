/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package tsast provides the small subset of the TypeScript syntax tree that
// generated token modules are made of, and a printer for it.
package tsast

// Node is any syntax tree node.
type Node interface {
	isNode()
}

// Expression is a node that can appear in value position.
type Expression interface {
	Node
	isExpression()
}

// PropertyName is an object member key: an *Identifier or a *StringLiteral.
type PropertyName interface {
	Node
	isPropertyName()
}

// ObjectMember is a member of an object literal: a *PropertyAssignment or a
// *GetAccessor.
type ObjectMember interface {
	Node
	isObjectMember()
}

// Statement is a top-level statement of a source file.
type Statement interface {
	Node
	isStatement()
}

// Identifier is a bare name. It is both an expression and a property name.
type Identifier struct {
	Name string
}

// StringLiteral is a quoted string. It is both an expression and a property name.
type StringLiteral struct {
	Value string
}

// NumericLiteral is a non-negative number literal. Negative numbers are a
// PrefixUnary minus around a NumericLiteral.
type NumericLiteral struct {
	Value float64
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
}

// NullLiteral is null.
type NullLiteral struct{}

// PrefixUnary applies a prefix operator such as "-" to its operand.
type PrefixUnary struct {
	Operator string
	Operand  Expression
}

// PropertyAccess is obj.name.
type PropertyAccess struct {
	Object Expression
	Name   string
}

// ElementAccess is obj[index].
type ElementAccess struct {
	Object Expression
	Index  Expression
}

// ObjectLiteral is { members }.
type ObjectLiteral struct {
	Members []ObjectMember
}

// Commented is an expression followed by a trailing block comment.
type Commented struct {
	Expression Expression
	Comment    string
}

// PropertyAssignment is name: value.
type PropertyAssignment struct {
	Name  PropertyName
	Value Expression
}

// GetAccessor is get name() { return value; }.
type GetAccessor struct {
	Name   PropertyName
	Return Expression
}

// ImportNamespace is import * as Name from "From";.
type ImportNamespace struct {
	Name *Identifier
	From string
}

// KeyofTypeofAlias is export type Name = keyof typeof Target;.
type KeyofTypeofAlias struct {
	Name   *Identifier
	Target *Identifier
}

// ConstDeclaration is export const Name = Initializer;.
type ConstDeclaration struct {
	Name        *Identifier
	Initializer Expression
}

// SourceFile is an ordered list of statements.
type SourceFile struct {
	Statements []Statement
}

func (*Identifier) isNode()         {}
func (*StringLiteral) isNode()      {}
func (*NumericLiteral) isNode()     {}
func (*BooleanLiteral) isNode()     {}
func (*NullLiteral) isNode()        {}
func (*PrefixUnary) isNode()        {}
func (*PropertyAccess) isNode()     {}
func (*ElementAccess) isNode()      {}
func (*ObjectLiteral) isNode()      {}
func (*Commented) isNode()          {}
func (*PropertyAssignment) isNode() {}
func (*GetAccessor) isNode()        {}
func (*ImportNamespace) isNode()    {}
func (*KeyofTypeofAlias) isNode()   {}
func (*ConstDeclaration) isNode()   {}
func (*SourceFile) isNode()         {}

func (*Identifier) isExpression()     {}
func (*StringLiteral) isExpression()  {}
func (*NumericLiteral) isExpression() {}
func (*BooleanLiteral) isExpression() {}
func (*NullLiteral) isExpression()    {}
func (*PrefixUnary) isExpression()    {}
func (*PropertyAccess) isExpression() {}
func (*ElementAccess) isExpression()  {}
func (*ObjectLiteral) isExpression()  {}
func (*Commented) isExpression()      {}

func (*Identifier) isPropertyName()    {}
func (*StringLiteral) isPropertyName() {}

func (*PropertyAssignment) isObjectMember() {}
func (*GetAccessor) isObjectMember()        {}

func (*ImportNamespace) isStatement()  {}
func (*KeyofTypeofAlias) isStatement() {}
func (*ConstDeclaration) isStatement() {}

// Number returns a literal for v, wrapping negative values in a unary minus.
func Number(v float64) Expression {
	if v < 0 {
		return &PrefixUnary{Operator: "-", Operand: &NumericLiteral{Value: -v}}
	}
	return &NumericLiteral{Value: v}
}
