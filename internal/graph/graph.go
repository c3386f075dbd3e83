// SPDX-License-Identifier: MPL-2.0

// Package graph provides dependency graph resolution with deterministic
// ordering and cycle detection. It is shared by the assignment resolver
// (evaluation order of variable assignments) and the recipe resolver
// (execution order of requested recipes and their dependencies).
package graph

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a dependency cycle.
	CycleError struct {
		// Cycle contains the nodes forming the cycle, in the order they
		// were encountered during traversal. The first node is repeated
		// implicitly: Cycle[len-1] depends on Cycle[0].
		Cycle []string
	}

	// Graph is a directed dependency graph. Nodes are identified by string
	// keys. An edge from A to B means "A depends on B": B must be emitted
	// before A. Outgoing edges are kept in insertion order so traversal is
	// deterministic.
	Graph struct {
		// dependencies maps each node to the nodes it depends on, in the
		// order the edges were added.
		dependencies map[string][]string
		// nodes tracks all nodes in insertion order.
		nodes []string
		// nodeSet provides O(1) lookup for node existence.
		nodeSet map[string]bool
	}

	// DFS traversal colors.
	mark int
)

const (
	white mark = iota // not yet visited
	grey              // visit in progress, on the traversal stack
	black             // visit complete, already emitted
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		dependencies: make(map[string][]string),
		nodeSet:      make(map[string]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge records that node depends on dep. Both nodes are implicitly added
// if they don't exist.
func (g *Graph) AddEdge(node, dep string) {
	g.AddNode(node)
	g.AddNode(dep)
	g.dependencies[node] = append(g.dependencies[node], dep)
}

// Contains reports whether the graph has a node with the given name.
func (g *Graph) Contains(name string) bool {
	return g.nodeSet[name]
}

// Sort returns an order in which every node appears after all of its
// dependencies, built by a depth-first walk from the given roots in root
// order, visiting each node's dependencies in edge-insertion order. A node
// reachable from more than one root is emitted exactly once, at the position
// of its first discovery. Returns CycleError naming the cycle path if a node
// is reached again while its own visit is still in progress.
func (g *Graph) Sort(roots []string) ([]string, error) {
	marks := make(map[string]mark, len(g.nodes))
	var order []string
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch marks[name] {
		case black:
			return nil
		case grey:
			// Slice the traversal stack from the first occurrence of name
			// so the reported cycle starts at its point of entry.
			for i, n := range stack {
				if n == name {
					return &CycleError{Cycle: append(append([]string{}, stack[i:]...), name)}
				}
			}
			return &CycleError{Cycle: []string{name, name}}
		}
		marks[name] = grey
		stack = append(stack, name)
		for _, dep := range g.dependencies[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		marks[name] = black
		order = append(order, name)
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// SortAll is Sort with every node as a root, in node-insertion order.
func (g *Graph) SortAll() ([]string, error) {
	return g.Sort(g.nodes)
}
