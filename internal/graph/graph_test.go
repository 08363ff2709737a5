package graph

import (
	"errors"
	"strconv"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestGraph creates a graph with nodes "1".."n" and the given edges.
func newTestGraph(t *testing.T, n int, edges [][2]string) *Graph[int] {
	t.Helper()

	g := New[int]()
	for i := 1; i <= n; i++ {
		node, created := g.AddNode(strconv.Itoa(i))
		assert.True(t, created)
		node.Data = i
	}
	for _, e := range edges {
		assert.NoError(t, g.AddEdge(e[0], e[1], 0))
	}
	return g
}

func nodeIDs(nodes []*Node[int]) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestGraphNodes(t *testing.T) {
	g := New[string]()

	n, created := g.AddNode("B")
	assert.True(t, created)
	n.Data = "first"

	n, created = g.AddNode("B")
	assert.False(t, created)
	assert.Equal(t, "first", n.Data)

	g.AddNode("A")
	g.AddNode("10")
	assert.Equal(t, 3, g.Len())
	assert.True(t, g.HasNode("A"))
	assert.False(t, g.HasNode("C"))

	_, err := g.Node("C")
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"B", "A", "10"}, ids)

	ids = nil
	for _, n := range g.SortedNodes() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"10", "A", "B"}, ids)
}

func TestGraphEdges(t *testing.T) {
	g := newTestGraph(t, 3, nil)
	assert.NoError(t, g.AddEdge("1", "2", TrueBranch))
	assert.NoError(t, g.AddEdge("1", "3", FalseBranch))
	assert.NoError(t, g.AddEdge("2", "2", 0))

	err := g.AddEdge("1", "4", 0)
	assert.True(t, errors.Is(err, ErrNodeNotFound))

	n1, err := g.Node("1")
	assert.NoError(t, err)
	n2, err := g.Node("2")
	assert.NoError(t, err)

	assert.Equal(t, 2, n1.SuccessorCount())
	assert.Equal(t, 0, n1.PredecessorCount())
	assert.True(t, g.HasSuccessor(n1, "3"))
	assert.False(t, g.HasSuccessor(n1, "1"))
	assert.True(t, g.HasSuccessor(n2, "2"))
	assert.Equal(t, []string{"2", "3"}, nodeIDs(g.SuccessorNodes(n1)))
	assert.Equal(t, []string{"1", "2"}, nodeIDs(g.PredecessorNodes(n2)))

	succs := g.Successors(n1)
	assert.Equal(t, Edge{From: "1", To: "2", Attributes: TrueBranch}, succs[0])
	assert.Equal(t, Edge{From: "1", To: "3", Attributes: FalseBranch}, succs[1])
	assert.Len(t, g.Predecessors(n2), 2)
	assert.Len(t, g.Edges(), 3)
}

func TestGraphEntryExit(t *testing.T) {
	g := newTestGraph(t, 2, nil)
	assert.Nil(t, g.Entry())
	assert.Nil(t, g.Exit())

	assert.NoError(t, g.SetEntry("1"))
	assert.NoError(t, g.SetExit("2"))
	assert.Equal(t, "1", g.Entry().ID)
	assert.Equal(t, "2", g.Exit().ID)

	assert.True(t, errors.Is(g.SetEntry("3"), ErrNodeNotFound))
}
