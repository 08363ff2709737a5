package loop

import (
	"strconv"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/snescfa/internal/dominator"
	"github.com/retroenv/snescfa/internal/graph"
)

var loopGraphEdges = [][2]string{
	{"1", "2"}, {"1", "3"},
	{"2", "3"},
	{"3", "4"},
	{"4", "3"}, {"4", "5"}, {"4", "6"},
	{"5", "7"},
	{"6", "7"},
	{"7", "3"}, {"7", "8"},
	{"8", "9"}, {"8", "10"},
	{"9", "11"},
	{"10", "3"}, {"10", "7"}, {"10", "11"},
	{"11", "1"},
}

func findLoops(t *testing.T, n int, edges [][2]string) []Loop {
	t.Helper()

	g := graph.New[int]()
	for i := 1; i <= n; i++ {
		node, _ := g.AddNode(strconv.Itoa(i))
		node.Data = i
	}
	for _, e := range edges {
		assert.NoError(t, g.AddEdge(e[0], e[1], 0))
	}
	assert.NoError(t, g.SetEntry("1"))

	tree, err := dominator.Build(g)
	assert.NoError(t, err)

	loops, err := Find(g, tree)
	assert.NoError(t, err)
	return loops
}

func loopStrings(loops []Loop) []string {
	var s []string
	for _, l := range loops {
		s = append(s, l.String())
	}
	return s
}

func TestFind(t *testing.T) {
	loops := findLoops(t, 11, loopGraphEdges)

	assert.Equal(t, []string{
		"3, 4",
		"3, 4, 5, 6, 7, 8, 10",
		"3, 4, 5, 6, 7, 8, 10",
		"7, 8, 10",
		"1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11",
	}, loopStrings(loops))

	assert.Equal(t, "3", loops[0].Header)
	assert.Equal(t, "4", loops[0].Tail)
	assert.Equal(t, "7", loops[3].Header)
	assert.Equal(t, "10", loops[3].Tail)
}

func TestFindClosedUnderPredecessors(t *testing.T) {
	edges := loopGraphEdges
	loops := findLoops(t, 11, edges)

	for _, l := range loops {
		for _, e := range edges {
			if l.Contains(e[1]) && e[1] != l.Header {
				assert.True(t, l.Contains(e[0]), "loop "+l.String()+" misses predecessor "+e[0])
			}
		}
	}
}

func TestFindSelfLoop(t *testing.T) {
	loops := findLoops(t, 4, [][2]string{
		{"1", "2"},
		{"2", "3"},
		{"2", "2"},
		{"3", "4"},
	})

	assert.Len(t, loops, 1)
	assert.Equal(t, []string{"2"}, loops[0].Nodes())
	assert.Equal(t, 1, loops[0].Len())
}

func TestFindWithoutLoops(t *testing.T) {
	loops := findLoops(t, 4, [][2]string{
		{"1", "2"},
		{"1", "3"},
		{"2", "4"},
		{"3", "4"},
	})
	assert.Empty(t, loops)
}

func TestLoopString(t *testing.T) {
	l := Loop{nodes: []string{"10", "A", "3", "C0"}}
	assert.Equal(t, "3, A, 10, C0", l.String())
	assert.True(t, l.Contains("A"))
	assert.False(t, l.Contains("B"))
}
