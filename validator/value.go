/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validator

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/figmagen/figma"
)

// ParseValue parses a strict leaf value:
//
//	{"type": "boolean" | "number" | "string", "value": ...}
//	{"type": "rgb", "r", "g", "b"}
//	{"type": "rgba", "r", "g", "b", "a"}
//	{"type": "alias", "id": ...}
//
// Unknown keys are ignored.
func ParseValue(node *yaml.Node) (figma.Value, error) {
	node = deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a value object")
	}

	typeNode := lookup(node, "type")
	kind, ok := stringScalar(typeNode)
	if !ok {
		return nil, fmt.Errorf("value is missing a string \"type\"")
	}

	switch kind {
	case "alias":
		id, ok := stringScalar(lookup(node, "id"))
		if !ok {
			return nil, fmt.Errorf("alias value requires a string \"id\"")
		}
		return figma.Alias{TargetID: id}, nil

	case "boolean":
		b, ok := boolScalar(lookup(node, "value"))
		if !ok {
			return nil, fmt.Errorf("boolean value requires a boolean \"value\"")
		}
		return figma.Boolean{V: b}, nil

	case "string":
		s, ok := stringScalar(lookup(node, "value"))
		if !ok {
			return nil, fmt.Errorf("string value requires a string \"value\"")
		}
		return figma.String{V: s}, nil

	case "number":
		n, ok := numberScalar(lookup(node, "value"))
		if !ok {
			return nil, fmt.Errorf("number value requires a numeric \"value\"")
		}
		return figma.Number{V: n}, nil

	case "rgb", "rgba":
		channels := []string{"r", "g", "b"}
		if kind == "rgba" {
			channels = append(channels, "a")
		}
		parsed := make([]float64, len(channels))
		for i, ch := range channels {
			n, ok := numberScalar(lookup(node, ch))
			if !ok {
				return nil, fmt.Errorf("%s value requires a numeric %q", kind, ch)
			}
			parsed[i] = n
		}
		if kind == "rgba" {
			return figma.RGBA(parsed[0], parsed[1], parsed[2], parsed[3]), nil
		}
		return figma.RGB(parsed[0], parsed[1], parsed[2]), nil

	default:
		return nil, fmt.Errorf("unknown value type %q", kind)
	}
}

// ParseValueNode parses a permissive value graph node. Valid values become
// leaves, other mappings become records, and everything else is absent (nil).
func ParseValueNode(node *yaml.Node) figma.ValueNode {
	node = deref(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	if value, err := ParseValue(node); err == nil {
		return value
	}

	record := figma.NewValueRecord()
	for i := 0; i+1 < len(node.Content); i += 2 {
		record.Set(node.Content[i].Value, ParseValueNode(node.Content[i+1]))
	}
	return record
}

func boolScalar(node *yaml.Node) (bool, bool) {
	if node == nil || node.Kind != yaml.ScalarNode || node.ShortTag() != "!!bool" {
		return false, false
	}
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

func numberScalar(node *yaml.Node) (float64, bool) {
	if node == nil || node.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
	default:
		return 0, false
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		n, perr := strconv.ParseFloat(node.Value, 64)
		if perr != nil {
			return 0, false
		}
		return n, true
	}
	return f, true
}
