// Package loop finds the natural loops of a control flow graph.
package loop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/graph"
)

// Loop is a set of nodes of the control flow graph that form a loop.
type Loop struct {
	Header string // target of the back edge
	Tail   string // source of the back edge
	nodes  []string
}

// Nodes returns the node identifiers in discovery order.
func (l Loop) Nodes() []string {
	nodes := make([]string, len(l.nodes))
	copy(nodes, l.nodes)
	return nodes
}

// Contains returns whether the node is part of the loop.
func (l Loop) Contains(id string) bool {
	for _, n := range l.nodes {
		if n == id {
			return true
		}
	}
	return false
}

// Len returns the number of nodes of the loop.
func (l Loop) Len() int {
	return len(l.nodes)
}

// String returns the sorted node identifiers separated by commas.
func (l Loop) String() string {
	nodes := l.Nodes()
	sort.Slice(nodes, func(i, j int) bool {
		if len(nodes[i]) != len(nodes[j]) {
			return len(nodes[i]) < len(nodes[j])
		}
		return nodes[i] < nodes[j]
	})
	return strings.Join(nodes, ", ")
}

// Find returns all loops of the graph. Nodes with an edge to themselves are
// returned first as single node loops, followed by one natural loop for every
// back edge, an edge whose target dominates its source.
func Find[T any](g, tree *graph.Graph[T]) ([]Loop, error) {
	var loops []Loop

	for _, node := range g.Nodes() {
		if g.HasSuccessor(node, node.ID) {
			loops = append(loops, Loop{
				Header: node.ID,
				Tail:   node.ID,
				nodes:  []string{node.ID},
			})
		}
	}

	for _, edge := range g.Edges() {
		if edge.From == edge.To {
			continue
		}
		back, err := dominator.Dominates(tree, edge.To, edge.From)
		if err != nil {
			return nil, fmt.Errorf("checking edge %s -> %s: %w", edge.From, edge.To, err)
		}
		if !back {
			continue
		}

		l, err := naturalLoop(g, edge.From, edge.To)
		if err != nil {
			return nil, err
		}
		loops = append(loops, l)
	}

	return loops, nil
}

// naturalLoop collects all nodes that reach the tail of the back edge
// without passing through the header.
func naturalLoop[T any](g *graph.Graph[T], tail, header string) (Loop, error) {
	l := Loop{
		Header: header,
		Tail:   tail,
		nodes:  []string{tail, header},
	}

	start, err := g.Node(tail)
	if err != nil {
		return Loop{}, err
	}

	stack := []*graph.Node[T]{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, pred := range g.PredecessorNodes(node) {
			if l.Contains(pred.ID) {
				continue
			}
			l.nodes = append(l.nodes, pred.ID)
			stack = append(stack, pred)
		}
	}
	return l, nil
}
