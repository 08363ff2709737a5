package graph

import (
	"fmt"
	"math"

	"github.com/retroenv/retrogolib/set"
)

// Infinite is the distance between unconnected nodes.
const Infinite = math.MaxInt

// ShortestPath returns the number of edges of the shortest path between two
// nodes, or Infinite if dst is not reachable from src. Self loops are ignored.
func ShortestPath[T any](g *Graph[T], src, dst string) (int, error) {
	from, err := g.Node(src)
	if err != nil {
		return 0, fmt.Errorf("shortest path source: %w", err)
	}
	to, err := g.Node(dst)
	if err != nil {
		return 0, fmt.Errorf("shortest path destination: %w", err)
	}

	dist := make([]int, len(g.nodes))
	for i := range dist {
		dist[i] = Infinite
	}
	dist[from.index] = 0

	unvisited := set.New[int]()
	for i := range g.nodes {
		unvisited.Add(i)
	}

	current := from.index
	for {
		if dist[current] != Infinite {
			for _, succ := range g.SuccessorNodes(g.nodes[current]) {
				if succ.index == current {
					continue
				}
				if d := dist[current] + 1; d < dist[succ.index] {
					dist[succ.index] = d
				}
			}
		}

		if current == to.index {
			break
		}
		delete(unvisited, current)
		if len(unvisited) == 0 {
			break
		}

		// first unvisited node with the minimal distance in insertion order
		next := -1
		for i := range g.nodes {
			if !unvisited.Contains(i) {
				continue
			}
			if next < 0 || dist[i] < dist[next] {
				next = i
			}
		}
		current = next
	}

	return dist[to.index], nil
}

// Reachable returns whether dst can be reached from src by following at least
// one edge.
func Reachable[T any](g *Graph[T], src, dst string) (bool, error) {
	from, err := g.Node(src)
	if err != nil {
		return false, fmt.Errorf("reachability source: %w", err)
	}
	if _, err := g.Node(dst); err != nil {
		return false, fmt.Errorf("reachability destination: %w", err)
	}

	visited := set.New[string]()
	queue := g.SuccessorNodes(from)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.ID == dst {
			return true, nil
		}
		if visited.Contains(n.ID) {
			continue
		}
		visited.Add(n.ID)
		queue = append(queue, g.SuccessorNodes(n)...)
	}
	return false, nil
}
