// Package dominator computes the dominator tree of a control flow graph.
package dominator

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"github.com/retroenv/snescfa/internal/graph"
)

var (
	// ErrPassLimit is returned when the dominator sets are not stable after
	// the configured number of passes.
	ErrPassLimit = errors.New("dominator sets did not stabilize within the pass limit")
	// ErrUnreachableNode is returned for a non-entry node without predecessors.
	ErrUnreachableNode = errors.New("node has no predecessors")
	// ErrNoEntry is returned for a graph without entry node.
	ErrNoEntry = errors.New("graph has no entry node")
)

// Option configures the dominator tree builder.
type Option func(*options)

type options struct {
	logger    *log.Logger
	maxPasses int
}

// WithLogger sets the logger that traces the dominator set computation.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxPasses limits the number of fixpoint iterations, 0 means unlimited.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		o.maxPasses = n
	}
}

type builder[T any] struct {
	options

	graph *graph.Graph[T]
	nodes []*graph.Node[T] // entry first, remaining nodes sorted by id
	order map[string]int   // node id to position in nodes
}

// Build returns the dominator tree of the graph. The tree contains the same
// node identifiers and payloads as the graph and an edge from every immediate
// dominator to the nodes it dominates.
func Build[T any](g *graph.Graph[T], opts ...Option) (*graph.Graph[T], error) {
	entry := g.Entry()
	if entry == nil {
		return nil, ErrNoEntry
	}

	b := newBuilder(g, entry, opts...)
	dominators, err := b.dominatorSets()
	if err != nil {
		return nil, err
	}
	return b.buildTree(dominators)
}

func newBuilder[T any](g *graph.Graph[T], entry *graph.Node[T], opts ...Option) *builder[T] {
	b := &builder[T]{
		graph: g,
		order: map[string]int{},
	}
	for _, opt := range opts {
		opt(&b.options)
	}

	b.nodes = append(b.nodes, entry)
	for _, node := range g.SortedNodes() {
		if node != entry {
			b.nodes = append(b.nodes, node)
		}
	}
	for i, node := range b.nodes {
		b.order[node.ID] = i
	}
	return b
}

// dominatorSets iterates the dominator sets until no set changes anymore.
// The returned sets do not contain the node itself.
func (b *builder[T]) dominatorSets() ([]set.Set[int], error) {
	dominators, err := b.initialSets()
	if err != nil {
		return nil, err
	}

	for pass := 1; b.step(dominators); pass++ {
		if b.maxPasses > 0 && pass >= b.maxPasses {
			return nil, fmt.Errorf("%d passes: %w", b.maxPasses, ErrPassLimit)
		}
	}

	for i := range dominators {
		delete(dominators[i], i)
	}
	return dominators, nil
}

// initialSets returns the entry set containing only the entry and full sets
// for all other nodes.
func (b *builder[T]) initialSets() ([]set.Set[int], error) {
	dominators := make([]set.Set[int], len(b.nodes))
	dominators[0] = set.New[int]()
	dominators[0].Add(0)
	for i := 1; i < len(b.nodes); i++ {
		if b.nodes[i].PredecessorCount() == 0 {
			return nil, fmt.Errorf("node %s: %w", b.nodes[i].ID, ErrUnreachableNode)
		}
		all := set.New[int]()
		for j := range b.nodes {
			all.Add(j)
		}
		dominators[i] = all
	}
	return dominators, nil
}

// step runs one fixpoint pass over all non-entry nodes and returns whether
// any set changed.
func (b *builder[T]) step(dominators []set.Set[int]) bool {
	changed := false
	for i := 1; i < len(b.nodes); i++ {
		doms := b.intersectPredecessors(b.nodes[i], dominators)
		doms.Add(i)
		if !equal(doms, dominators[i]) {
			dominators[i] = doms
			changed = true
		}
	}
	return changed
}

func (b *builder[T]) intersectPredecessors(node *graph.Node[T], dominators []set.Set[int]) set.Set[int] {
	var result set.Set[int]
	for _, pred := range b.graph.PredecessorNodes(node) {
		predDoms := dominators[b.order[pred.ID]]
		if b.logger != nil {
			b.logger.Debug("Node has predecessor",
				log.String("node", node.ID),
				log.String("predecessor", pred.ID),
				log.Int("dominators", len(predDoms)))
		}

		if result == nil {
			result = set.New[int]()
			for i := range predDoms {
				result.Add(i)
			}
			continue
		}
		for i := range result {
			if !predDoms.Contains(i) {
				delete(result, i)
			}
		}
	}
	return result
}

// buildTree links every node to its immediate dominator, the strict dominator
// with the shortest distance to the node.
func (b *builder[T]) buildTree(dominators []set.Set[int]) (*graph.Graph[T], error) {
	tree := graph.New[T]()
	for _, node := range b.nodes {
		n, _ := tree.AddNode(node.ID)
		n.Data = node.Data
	}

	for i := 1; i < len(b.nodes); i++ {
		node := b.nodes[i]
		idom := -1
		best := graph.Infinite
		for j := range b.nodes {
			if !dominators[i].Contains(j) {
				continue
			}
			dist, err := graph.ShortestPath(b.graph, b.nodes[j].ID, node.ID)
			if err != nil {
				return nil, err
			}
			if idom < 0 || dist < best {
				idom = j
				best = dist
			}
		}
		if idom < 0 {
			return nil, fmt.Errorf("node %s has no dominator: %w", node.ID, ErrUnreachableNode)
		}
		if err := tree.AddEdge(b.nodes[idom].ID, node.ID, 0); err != nil {
			return nil, err
		}
	}

	if err := tree.SetEntry(b.nodes[0].ID); err != nil {
		return nil, err
	}
	return tree, nil
}

// Dominates returns whether node a dominates node b in the dominator tree.
// Every node dominates itself.
func Dominates[T any](tree *graph.Graph[T], a, b string) (bool, error) {
	if _, err := tree.Node(b); err != nil {
		return false, fmt.Errorf("dominated node: %w", err)
	}
	if a == b {
		if _, err := tree.Node(a); err != nil {
			return false, fmt.Errorf("dominator node: %w", err)
		}
		return true, nil
	}
	reachable, err := graph.Reachable(tree, a, b)
	if err != nil {
		return false, fmt.Errorf("dominator node: %w", err)
	}
	return reachable, nil
}

func equal(a, b set.Set[int]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !b.Contains(i) {
			return false
		}
	}
	return true
}
