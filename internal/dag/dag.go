// Package dag provides directed graph operations for syllable rule variables.
// Nodes are rule names and an edge parent -> child means the parent rule
// references the child through a Variable leaf. It supports reachability,
// cycle detection and dangling-reference detection.
//
// Despite the package name the graph may contain cycles: a variable is allowed
// to reference itself (directly or indirectly), and HasCycle reports it.
package dag

import (
	"fmt"
	"sort"
)

// Node represents a node in the graph.
type Node struct {
	// ID is the rule name
	ID string
	// Defined is false for names referenced by a leaf but never given a rule
	Defined bool
}

// Graph represents a directed reference graph.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string][]string // referrer -> referenced
	parents map[string][]string // referenced -> referrers
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph. Adding an existing node only upgrades
// its Defined flag.
func (g *Graph) AddNode(id string, defined bool) {
	if n, exists := g.nodes[id]; exists {
		n.Defined = n.Defined || defined
		return
	}
	g.nodes[id] = &Node{ID: id, Defined: defined}
	g.edges[id] = []string{}
	g.parents[id] = []string{}
}

// AddEdge adds a directed edge from parent to child. Self loops are allowed.
func (g *Graph) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// GetParents returns the rules that reference id.
func (g *Graph) GetParents(id string) []string {
	return g.parents[id]
}

// GetChildren returns the rules referenced by id.
func (g *Graph) GetChildren(id string) []string {
	return g.edges[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// sortedIDs returns node IDs in lexical order for deterministic traversal.
func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasCycle returns true if the graph contains a cycle, along with the cycle path.
// A self reference is reported as [id id].
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range g.sortedIDs() {
		if !visited[id] && dfs(id) {
			return true, cyclePath
		}
	}
	return false, nil
}

// Reachable returns every node reachable from the given start nodes through
// at least one edge, sorted. A start node is included only if some path leads
// back to it.
func (g *Graph) Reachable(startIDs []string) []string {
	reached := make(map[string]bool)
	stack := make([]string, 0, len(startIDs))
	for _, id := range startIDs {
		stack = append(stack, g.edges[id]...)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[id] {
			continue
		}
		reached[id] = true
		stack = append(stack, g.edges[id]...)
	}

	result := make([]string, 0, len(reached))
	for id := range reached {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

// Levels groups nodes by their shortest distance from the start nodes.
// Level 0 holds the start nodes themselves; unreachable nodes are left out.
// Each level is sorted.
func (g *Graph) Levels(startIDs []string) [][]string {
	seen := make(map[string]bool, len(startIDs))
	var current []string
	for _, id := range startIDs {
		if _, ok := g.nodes[id]; ok && !seen[id] {
			seen[id] = true
			current = append(current, id)
		}
	}

	var levels [][]string
	for len(current) > 0 {
		sort.Strings(current)
		levels = append(levels, current)
		var next []string
		for _, id := range current {
			for _, child := range g.edges[id] {
				if !seen[child] {
					seen[child] = true
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return levels
}

// Undefined returns referenced nodes that have no rule of their own, sorted.
func (g *Graph) Undefined() []string {
	var out []string
	for _, id := range g.sortedIDs() {
		if !g.nodes[id].Defined {
			out = append(out, id)
		}
	}
	return out
}

// GetOrphans returns defined nodes with no referrers, excluding the given
// roots, sorted.
func (g *Graph) GetOrphans(roots []string) []string {
	isRoot := make(map[string]bool, len(roots))
	for _, r := range roots {
		isRoot[r] = true
	}
	var out []string
	for _, id := range g.sortedIDs() {
		if !isRoot[id] && g.nodes[id].Defined && len(g.parents[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
