/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"errors"
	"fmt"
	"slices"

	"bennypowers.dev/figmagen/figma"
)

// ErrCircularReference indicates an alias cycle between variables.
// Generated get-accessors on such a cycle would recurse forever when read.
var ErrCircularReference = errors.New("circular reference detected")

// DependencyGraph holds one directed alias graph per theme. A theme module
// only ever follows that theme's values, so edges of different themes never
// combine into a cycle. Shared variables contribute edges to every theme.
// Iteration follows input order so results are stable.
type DependencyGraph struct {
	themes []string
	edges  map[string]map[string][]string
	nodes  []string
}

// Cycle is an alias cycle found in the graph of one theme. Theme is empty
// when the export has no per-theme variables. The first id is repeated at
// the end of Path.
type Cycle struct {
	Theme string
	Path  []string
}

// BuildDependencyGraph builds the per-theme dependency graphs of variables.
func BuildDependencyGraph(variables []*figma.Variable) *DependencyGraph {
	graph := &DependencyGraph{edges: make(map[string]map[string][]string)}

	seen := make(map[string]bool, len(variables))
	for _, v := range variables {
		if !seen[v.ID] {
			seen[v.ID] = true
			graph.nodes = append(graph.nodes, v.ID)
		}
		for _, tv := range v.ThemeValues() {
			if !slices.Contains(graph.themes, tv.Theme) {
				graph.themes = append(graph.themes, tv.Theme)
			}
		}
	}
	if len(graph.themes) == 0 {
		graph.themes = []string{""}
	}

	for _, theme := range graph.themes {
		edges := make(map[string][]string)
		for _, v := range variables {
			target, ok := aliasIn(v, theme)
			if !ok || slices.Contains(edges[v.ID], target) {
				continue
			}
			edges[v.ID] = append(edges[v.ID], target)
		}
		graph.edges[theme] = edges
	}

	return graph
}

// aliasIn returns the id aliased by v's value in theme.
func aliasIn(v *figma.Variable, theme string) (string, bool) {
	var value figma.Value
	if v.IsShared() {
		value = v.Value()
	} else {
		for _, tv := range v.ThemeValues() {
			if tv.Theme == theme {
				value = tv.Value
			}
		}
	}
	alias, ok := value.(figma.Alias)
	return alias.TargetID, ok
}

// FindCycle returns the first cycle found, checking themes in first-seen
// order, or nil if no theme has one.
func (g *DependencyGraph) FindCycle() *Cycle {
	for _, theme := range g.themes {
		visited := make(map[string]bool)
		recStack := make(map[string]bool)
		for _, node := range g.nodes {
			if path := g.findCycleDFS(g.edges[theme], node, visited, recStack, nil); path != nil {
				return &Cycle{Theme: theme, Path: path}
			}
		}
	}
	return nil
}

func (g *DependencyGraph) findCycleDFS(edges map[string][]string, node string, visited, recStack map[string]bool, path []string) []string {
	if recStack[node] {
		cycleStart := slices.Index(path, node)
		if cycleStart == -1 {
			panic(fmt.Sprintf("cycle detection invariant violated: node %q in recStack but not in path %v", node, path))
		}
		return append(slices.Clone(path[cycleStart:]), node)
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	recStack[node] = true
	path = append(path, node)

	for _, dep := range edges[node] {
		if cycle := g.findCycleDFS(edges, dep, visited, recStack, path); cycle != nil {
			return cycle
		}
	}

	recStack[node] = false
	return nil
}

// CheckCycles returns an error wrapping ErrCircularReference if any theme has a cycle.
func (g *DependencyGraph) CheckCycles() error {
	cycle := g.FindCycle()
	if cycle == nil {
		return nil
	}
	if cycle.Theme == "" {
		return fmt.Errorf("%w: %v", ErrCircularReference, cycle.Path)
	}
	return fmt.Errorf("%w in theme %s: %v", ErrCircularReference, cycle.Theme, cycle.Path)
}
