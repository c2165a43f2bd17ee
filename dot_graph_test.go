package rangetree

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderDotGraph(t *testing.T) {
	tree := NewRangeTree[int](Options{})
	for i := 1; i <= 3; i++ {
		tree.Insert(i)
	}

	graph := &bytes.Buffer{}
	require.NoError(t, tree.RenderDotGraph(graph))
	out := graph.String()
	t.Logf("tree graph:\n%s", out)

	require.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph"))
	require.Contains(t, out, "K:2 H:1 S:3")
	require.Contains(t, out, "K:1 H:0 S:1")
	require.Contains(t, out, "K:3 H:0 S:1")
	require.Equal(t, 2, strings.Count(out, "->"))
}

func TestRenderDotGraphEmpty(t *testing.T) {
	graph := &bytes.Buffer{}
	require.NoError(t, NewTree[string](Options{}).RenderDotGraph(graph))
	require.NotContains(t, graph.String(), "->")
	require.Contains(t, graph.String(), "digraph")
}

func TestDebugTraverse(t *testing.T) {
	tree := NewTree[int](Options{})
	for i := 1; i <= 7; i++ {
		tree.Insert(i)
	}
	var visited []string
	err := tree.debugTraverse(func(id, parent NodeID, direction string) error {
		var p int
		if parent != nilNode {
			p = tree.nodes[parent].key
		}
		visited = append(visited, fmt.Sprintf("%s%d%d", direction, tree.nodes[id].key, p))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"40", "l24", "l12", "r32", "r64", "l56", "r76"}, visited)
}
