/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonTree decodes JSON with encoding/json and builds the same ordered
// yaml.Node tree the YAML path produces, including line and column.
type jsonTree struct {
	dec   *json.Decoder
	data  []byte
	lines []int
}

func decodeJSON(data []byte) (*yaml.Node, error) {
	t := &jsonTree{
		dec:   json.NewDecoder(bytes.NewReader(data)),
		data:  data,
		lines: lineStarts(data),
	}
	t.dec.UseNumber()

	root, err := t.value()
	if err != nil {
		return nil, err
	}
	if _, err := t.dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected data after top-level value")
	}
	return root, nil
}

func (t *jsonTree) value() (*yaml.Node, error) {
	line, col := t.position()
	tok, err := t.dec.Token()
	if err != nil {
		return nil, err
	}

	node := &yaml.Node{Line: line, Column: col}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node.Kind, node.Tag = yaml.MappingNode, "!!map"
			for t.dec.More() {
				kline, kcol := t.position()
				k, err := t.dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("line %d: object key must be a string", kline)
				}
				val, err := t.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, stringNode(key, kline, kcol), val)
			}
		case '[':
			node.Kind, node.Tag = yaml.SequenceNode, "!!seq"
			for t.dec.More() {
				val, err := t.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, val)
			}
		default:
			return nil, fmt.Errorf("line %d: unexpected %q", line, v)
		}
		// closing delimiter
		if _, err := t.dec.Token(); err != nil {
			return nil, err
		}
	case string:
		return stringNode(v, line, col), nil
	case json.Number:
		node.Kind, node.Value = yaml.ScalarNode, v.String()
		node.Tag = "!!float"
		if _, err := v.Int64(); err == nil {
			node.Tag = "!!int"
		}
	case bool:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!bool", strconv.FormatBool(v)
	case nil:
		node.Kind, node.Tag, node.Value = yaml.ScalarNode, "!!null", "null"
	}
	return node, nil
}

// position reports the 1-based line and column of the next token.
func (t *jsonTree) position() (int, int) {
	off := int(t.dec.InputOffset())
	for off < len(t.data) && strings.IndexByte(" \t\r\n,:", t.data[off]) >= 0 {
		off++
	}
	i := sort.SearchInts(t.lines, off+1) - 1
	return i + 1, off - t.lines[i] + 1
}

func stringNode(s string, line, col int) *yaml.Node {
	return &yaml.Node{
		Kind:   yaml.ScalarNode,
		Tag:    "!!str",
		Style:  yaml.DoubleQuotedStyle,
		Value:  s,
		Line:   line,
		Column: col,
	}
}

func lineStarts(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
