// Package graph provides the dependency graph and the score diffusion
// algorithm behind impact analysis.
package graph

import (
	"radius/internal/structure"
)

// DefaultEdgeWeight is the weight assigned to declared dependency edges.
const DefaultEdgeWeight = 1.0

// Graph is a sparse directed dependency graph. Nodes live in an arena and
// are addressed by integer index; a name lookup map is kept alongside.
// Parallel edges between the same pair are preserved — each contributes
// independently to propagation.
type Graph struct {
	nodes   []string
	nodeIdx map[string]int

	// Adjacency list: outEdges[i] = list of (target index, weight)
	outEdges [][]edgeEntry
}

type edgeEntry struct {
	target int
	weight float64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:   make([]string, 0),
		nodeIdx: make(map[string]int),
	}
}

// AddNode adds a node if it doesn't exist, returns its index.
func (g *Graph) AddNode(name string) int {
	if idx, ok := g.nodeIdx[name]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, name)
	g.nodeIdx[name] = idx
	g.outEdges = append(g.outEdges, nil)
	return idx
}

// AddEdge adds a directed edge from src to dst, implicitly adding both
// endpoints as nodes.
func (g *Graph) AddEdge(src, dst string, weight float64) {
	srcIdx := g.AddNode(src)
	dstIdx := g.AddNode(dst)
	g.outEdges[srcIdx] = append(g.outEdges[srcIdx], edgeEntry{target: dstIdx, weight: weight})
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the total number of edges.
func (g *Graph) NumEdges() int {
	total := 0
	for _, edges := range g.outEdges {
		total += len(edges)
	}
	return total
}

// HasNode checks if a node exists in the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodeIdx[name]
	return ok
}

// Nodes returns all node names in insertion order.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// Neighbors returns the outgoing neighbors of a node.
func (g *Graph) Neighbors(name string) []string {
	idx, ok := g.nodeIdx[name]
	if !ok {
		return nil
	}
	neighbors := make([]string, len(g.outEdges[idx]))
	for i, e := range g.outEdges[idx] {
		neighbors[i] = g.nodes[e.target]
	}
	return neighbors
}

// OutDegree returns the number of outgoing edges of a node.
func (g *Graph) OutDegree(name string) int {
	idx, ok := g.nodeIdx[name]
	if !ok {
		return 0
	}
	return len(g.outEdges[idx])
}

// Build constructs the dependency graph for one analysis call. Every
// component becomes a node even with zero dependencies; every declared
// dependency becomes an edge component→dependency with the default weight.
// Dependency names that are not first-class components still become nodes
// (dangling sinks).
func Build(components []structure.Component) *Graph {
	g := New()
	for _, c := range components {
		g.AddNode(c.Name)
		for _, dep := range c.Dependencies {
			g.AddEdge(c.Name, dep, DefaultEdgeWeight)
		}
	}
	return g
}
