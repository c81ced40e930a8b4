/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import "slices"

// Node is a token graph node: either a *Leaf or an *Interior.
type Node interface {
	isNode()
}

// Leaf holds a token at the end of its name path.
type Leaf struct {
	Token *Token
}

// Interior holds a nested graph.
type Interior struct {
	Graph *Graph
}

func (*Leaf) isNode()     {}
func (*Interior) isNode() {}

// Overwrite records a collision where a later token replaced an existing node.
type Overwrite struct {
	// Path is the name path of the replaced node.
	Path []string
	// Previous is the node that was replaced.
	Previous Node
	// Token is the token whose placement replaced it.
	Token *Token
}

// Graph is an ordered mapping from name segment to node.
type Graph struct {
	keys       []string
	nodes      map[string]Node
	overwrites []Overwrite
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// BuildGraph nests tokens by name path. On colliding paths the later token
// wins: a leaf met on the way down is replaced by an interior node, and any
// node at the final segment is replaced by the leaf. Replaced keys keep their
// original position. Every replacement is recorded in Overwrites.
func BuildGraph(tokens []*Token) *Graph {
	root := NewGraph()
	for _, tok := range tokens {
		n := len(tok.NamePath)
		if n == 0 {
			continue
		}

		target := root
		for i, step := range tok.NamePath[:n-1] {
			existing, exists := target.nodes[step]
			interior, ok := existing.(*Interior)
			if !ok {
				if exists {
					root.overwrites = append(root.overwrites, Overwrite{
						Path:     slices.Clone(tok.NamePath[:i+1]),
						Previous: existing,
						Token:    tok,
					})
				}
				interior = &Interior{Graph: NewGraph()}
				target.set(step, interior)
			}
			target = interior.Graph
		}

		last := tok.NamePath[n-1]
		if existing, exists := target.nodes[last]; exists {
			root.overwrites = append(root.overwrites, Overwrite{
				Path:     slices.Clone(tok.NamePath),
				Previous: existing,
				Token:    tok,
			})
		}
		target.set(last, &Leaf{Token: tok})
	}
	return root
}

func (g *Graph) set(key string, node Node) {
	if _, exists := g.nodes[key]; !exists {
		g.keys = append(g.keys, key)
	}
	g.nodes[key] = node
}

// Keys returns the graph's keys in insertion order.
func (g *Graph) Keys() []string {
	return g.keys
}

// Get returns the node stored under key.
func (g *Graph) Get(key string) (Node, bool) {
	node, ok := g.nodes[key]
	return node, ok
}

// Len returns the number of keys.
func (g *Graph) Len() int {
	return len(g.keys)
}

// Overwrites returns the collisions recorded while building the graph.
// Only the root graph returned by BuildGraph carries them.
func (g *Graph) Overwrites() []Overwrite {
	return g.overwrites
}

// Leaves returns every token in the graph, depth first in key order.
func (g *Graph) Leaves() []*Token {
	var tokens []*Token
	for _, key := range g.keys {
		switch n := g.nodes[key].(type) {
		case *Leaf:
			tokens = append(tokens, n.Token)
		case *Interior:
			tokens = append(tokens, n.Graph.Leaves()...)
		}
	}
	return tokens
}
