package rangetree

import "fmt"

// NodeID addresses a node record in a tree's arena.
// The zero NodeID is the absent node: arena slot 0 is a sentinel whose height is -1
// and whose size is 0, so the aggregates of a missing child can be read directly.
type NodeID uint32

const nilNode NodeID = 0

// node is the arena record shared by every tree flavour. size is only maintained by
// trees built with updateHeightSize.
type node[K any] struct {
	key    K
	parent NodeID
	left   NodeID
	right  NodeID
	height int8
	size   int64
}

// Node is a snapshot of a tree node taken when it was returned.
// It is never updated by later mutations; the Node returned by Delete is the
// authoritative record of what was removed.
type Node[K any] struct {
	key    K
	height int8
	size   int64
}

// Key returns the node's key.
func (n Node[K]) Key() K {
	return n.key
}

// Height returns the cached height of the node's subtree. A leaf has height 0.
func (n Node[K]) Height() int {
	return int(n.height)
}

// Size returns the cached number of nodes in the node's subtree, or 0 when the tree
// does not track subtree sizes.
func (n Node[K]) Size() int64 {
	return n.size
}

func (n Node[K]) String() string {
	return fmt.Sprintf("K:%v H:%d S:%d", n.key, n.height, n.size)
}

// updateFunc recomputes the cached aggregates of nodes[id] from its children.
// Children must already be up to date.
type updateFunc[K any] func(nodes []node[K], id NodeID)

func updateHeight[K any](nodes []node[K], id NodeID) {
	n := &nodes[id]
	n.height = max(nodes[n.left].height, nodes[n.right].height) + 1
}

func updateHeightSize[K any](nodes []node[K], id NodeID) {
	updateHeight(nodes, id)
	n := &nodes[id]
	n.size = nodes[n.left].size + nodes[n.right].size + 1
}

func newArena[K any](capacity int) []node[K] {
	nodes := make([]node[K], 1, capacity+1)
	nodes[0].height = -1
	return nodes
}

// newNode allocates a detached single-node subtree holding key, reusing a freed
// slot when one is available. Pointers into t.nodes are invalid after this call.
func (t *Tree[K]) newNode(key K) NodeID {
	var id NodeID
	if k := len(t.free); k > 0 {
		id = t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = node[K]{key: key}
	} else {
		t.nodes = append(t.nodes, node[K]{key: key})
		id = NodeID(len(t.nodes) - 1)
	}
	t.update(t.nodes, id)
	return id
}

// dropNode clears a detached record and returns its slot to the free list.
func (t *Tree[K]) dropNode(id NodeID) {
	t.nodes[id] = node[K]{}
	t.free = append(t.free, id)
}

func (t *Tree[K]) snapshot(id NodeID) Node[K] {
	n := &t.nodes[id]
	return Node[K]{key: n.key, height: n.height, size: n.size}
}

func (t *Tree[K]) height(id NodeID) int {
	return int(t.nodes[id].height)
}
