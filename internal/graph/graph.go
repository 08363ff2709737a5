// Package graph provides a directed graph stored as an arena of nodes that
// are referenced by string identifiers, with optional entry and exit nodes.
package graph

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNodeNotFound is returned when a node identifier is not part of the graph.
var ErrNodeNotFound = errors.New("node not found")

// EdgeAttribute marks the branch condition that an edge represents.
type EdgeAttribute uint8

// Edge attributes.
const (
	TrueBranch EdgeAttribute = 1 << iota
	FalseBranch
)

// Edge is a directed edge between two nodes.
type Edge struct {
	From       string
	To         string
	Attributes EdgeAttribute
}

// Node is a graph node carrying a payload.
type Node[T any] struct {
	ID   string
	Data T

	index int
	succs []int // indices into the edge arena
	preds []int
}

// Graph is a directed graph. Nodes and edges are stored in arenas and
// referenced by index, node identifiers map to arena indices.
type Graph[T any] struct {
	nodes []*Node[T]
	index map[string]int
	edges []Edge

	entry int
	exit  int
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{
		index: make(map[string]int),
		entry: -1,
		exit:  -1,
	}
}

// AddNode returns the node with the given identifier, creating it if it does
// not exist. The returned bool is true if the node was created.
func (g *Graph[T]) AddNode(id string) (*Node[T], bool) {
	if i, ok := g.index[id]; ok {
		return g.nodes[i], false
	}

	n := &Node[T]{
		ID:    id,
		index: len(g.nodes),
	}
	g.nodes = append(g.nodes, n)
	g.index[id] = n.index
	return n, true
}

// HasNode returns whether a node with the identifier exists.
func (g *Graph[T]) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given identifier.
func (g *Graph[T]) Node(id string) (*Node[T], error) {
	i, ok := g.index[id]
	if !ok {
		return nil, fmt.Errorf("node '%s': %w", id, ErrNodeNotFound)
	}
	return g.nodes[i], nil
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes in insertion order.
func (g *Graph[T]) Nodes() []*Node[T] {
	nodes := make([]*Node[T], len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// SortedNodes returns all nodes sorted by identifier.
func (g *Graph[T]) SortedNodes() []*Node[T] {
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].ID < nodes[j].ID
	})
	return nodes
}

// AddEdge adds an edge between two existing nodes.
func (g *Graph[T]) AddEdge(from, to string, attributes EdgeAttribute) error {
	src, err := g.Node(from)
	if err != nil {
		return fmt.Errorf("adding edge source: %w", err)
	}
	dst, err := g.Node(to)
	if err != nil {
		return fmt.Errorf("adding edge destination: %w", err)
	}

	i := len(g.edges)
	g.edges = append(g.edges, Edge{
		From:       from,
		To:         to,
		Attributes: attributes,
	})
	src.succs = append(src.succs, i)
	dst.preds = append(dst.preds, i)
	return nil
}

// Edges returns all edges in insertion order.
func (g *Graph[T]) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Successors returns the outgoing edges of a node.
func (g *Graph[T]) Successors(n *Node[T]) []Edge {
	return g.collect(n.succs)
}

// Predecessors returns the incoming edges of a node.
func (g *Graph[T]) Predecessors(n *Node[T]) []Edge {
	return g.collect(n.preds)
}

// SuccessorNodes returns the destination nodes of the outgoing edges.
func (g *Graph[T]) SuccessorNodes(n *Node[T]) []*Node[T] {
	nodes := make([]*Node[T], 0, len(n.succs))
	for _, i := range n.succs {
		nodes = append(nodes, g.nodes[g.index[g.edges[i].To]])
	}
	return nodes
}

// PredecessorNodes returns the source nodes of the incoming edges.
func (g *Graph[T]) PredecessorNodes(n *Node[T]) []*Node[T] {
	nodes := make([]*Node[T], 0, len(n.preds))
	for _, i := range n.preds {
		nodes = append(nodes, g.nodes[g.index[g.edges[i].From]])
	}
	return nodes
}

// HasSuccessor returns whether an edge from the node to the given identifier exists.
func (g *Graph[T]) HasSuccessor(n *Node[T], id string) bool {
	for _, i := range n.succs {
		if g.edges[i].To == id {
			return true
		}
	}
	return false
}

// SuccessorCount returns the number of outgoing edges of a node.
func (n *Node[T]) SuccessorCount() int {
	return len(n.succs)
}

// PredecessorCount returns the number of incoming edges of a node.
func (n *Node[T]) PredecessorCount() int {
	return len(n.preds)
}

// SetEntry sets the entry node.
func (g *Graph[T]) SetEntry(id string) error {
	n, err := g.Node(id)
	if err != nil {
		return fmt.Errorf("setting entry: %w", err)
	}
	g.entry = n.index
	return nil
}

// Entry returns the entry node or nil if none is set.
func (g *Graph[T]) Entry() *Node[T] {
	if g.entry < 0 {
		return nil
	}
	return g.nodes[g.entry]
}

// SetExit sets the exit node.
func (g *Graph[T]) SetExit(id string) error {
	n, err := g.Node(id)
	if err != nil {
		return fmt.Errorf("setting exit: %w", err)
	}
	g.exit = n.index
	return nil
}

// Exit returns the exit node or nil if none is set.
func (g *Graph[T]) Exit() *Node[T] {
	if g.exit < 0 {
		return nil
	}
	return g.nodes[g.exit]
}

func (g *Graph[T]) collect(indices []int) []Edge {
	edges := make([]Edge, 0, len(indices))
	for _, i := range indices {
		edges = append(edges, g.edges[i])
	}
	return edges
}
