package rangetree

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

// debugTraverse visits every node in pre-order, passing the node, its parent and
// the side ("l" or "r") it hangs from. The root is visited with parent nilNode.
func (t *Tree[K]) debugTraverse(onNode func(id, parent NodeID, direction string) error) error {
	var traverse func(id, parent NodeID, direction string) error
	traverse = func(id, parent NodeID, direction string) error {
		if id == nilNode {
			return nil
		}
		if err := onNode(id, parent, direction); err != nil {
			return err
		}
		if err := traverse(t.nodes[id].left, id, "l"); err != nil {
			return err
		}
		return traverse(t.nodes[id].right, id, "r")
	}
	return traverse(t.root, nilNode, "")
}

// RenderDotGraph writes the tree to w in Graphviz dot format. Each node is labelled
// with its key, cached height and cached size.
func (t *Tree[K]) RenderDotGraph(w io.Writer) error {
	graph := dot.NewGraph(dot.Directed)

	err := t.debugTraverse(func(id, parent NodeID, direction string) error {
		n := graph.Node(fmt.Sprintf("n%d", id)).Label(t.snapshot(id).String())
		if parent != nilNode {
			graph.Node(fmt.Sprintf("n%d", parent)).Edge(n, direction)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, graph.String())
	return err
}
