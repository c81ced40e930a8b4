/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package figma provides the typed model of a validated design-tool export:
// leaf values, value graphs, variables and styles.
package figma

import "fmt"

// Value is a leaf value. The concrete types are Boolean, Number, String,
// Color and Alias.
type Value interface {
	ValueNode
	// Kind returns the discriminator used in the export format.
	Kind() string
	isValue()
}

// ValueNode is a node of a value graph: either a Value or a *ValueRecord.
// A nil ValueNode means the property is absent.
type ValueNode interface {
	isValueNode()
}

// Boolean is a boolean value.
type Boolean struct {
	V bool
}

// Number is a numeric value.
type Number struct {
	V float64
}

// String is a string value.
type String struct {
	V string
}

// Color is an RGB color with channels in the 0-1 range.
// A is nil for colors exported without an alpha channel.
type Color struct {
	R, G, B float64
	A       *float64
}

// Alias references another variable by its id.
type Alias struct {
	TargetID string
}

func (Boolean) Kind() string { return "boolean" }
func (Number) Kind() string  { return "number" }
func (String) Kind() string  { return "string" }
func (Alias) Kind() string   { return "alias" }

// Kind returns "rgba" when the color carries an alpha channel, "rgb" otherwise.
func (c Color) Kind() string {
	if c.A != nil {
		return "rgba"
	}
	return "rgb"
}

func (Boolean) isValue() {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (Color) isValue()   {}
func (Alias) isValue()   {}

func (Boolean) isValueNode() {}
func (Number) isValueNode()  {}
func (String) isValueNode()  {}
func (Color) isValueNode()   {}
func (Alias) isValueNode()   {}

// RGB returns an opaque color without an alpha channel.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA returns a color with an explicit alpha channel.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: &a}
}

// Alpha returns the alpha channel, defaulting to 1.
func (c Color) Alpha() float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

// Describe returns a short human readable form of a value, for listings and logs.
func Describe(v Value) string {
	switch x := v.(type) {
	case Boolean:
		return fmt.Sprintf("%t", x.V)
	case Number:
		return fmt.Sprintf("%g", x.V)
	case String:
		return fmt.Sprintf("%q", x.V)
	case Color:
		if x.A != nil {
			return fmt.Sprintf("rgba(%g, %g, %g, %g)", x.R, x.G, x.B, *x.A)
		}
		return fmt.Sprintf("rgb(%g, %g, %g)", x.R, x.G, x.B)
	case Alias:
		return "alias(" + x.TargetID + ")"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ValueRecord is an ordered mapping from property name to value node.
// Key order is the order of the input document.
type ValueRecord struct {
	keys    []string
	entries map[string]ValueNode
}

func (*ValueRecord) isValueNode() {}

// NewValueRecord creates an empty record.
func NewValueRecord() *ValueRecord {
	return &ValueRecord{entries: make(map[string]ValueNode)}
}

// Set stores a node under key. Re-setting an existing key keeps its position.
func (r *ValueRecord) Set(key string, node ValueNode) {
	if _, exists := r.entries[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = node
}

// Get returns the node stored under key.
func (r *ValueRecord) Get(key string) (ValueNode, bool) {
	node, ok := r.entries[key]
	return node, ok
}

// Keys returns the record's keys in insertion order.
func (r *ValueRecord) Keys() []string {
	return r.keys
}

// Len returns the number of keys.
func (r *ValueRecord) Len() int {
	return len(r.keys)
}
