// Package rangetree implements an in-memory ordered index: an AVL tree whose nodes
// cache their subtree height and, for range trees, their subtree size.
//
// Trees are not safe for concurrent mutation. Read-only methods never write to the
// tree and may run concurrently with each other, but not with Insert or Delete.
package rangetree

import (
	"cmp"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Tree is a self-balancing binary search tree over keys of type K.
type Tree[K any] struct {
	nodes   []node[K]
	free    []NodeID
	root    NodeID
	count   int
	compare func(a, b K) int
	update  updateFunc[K]
	sized   bool

	opts    Options
	logger  zerolog.Logger
	metrics *Metrics
}

// NewTree returns an empty tree ordered by cmp.Compare.
func NewTree[K cmp.Ordered](opts Options) *Tree[K] {
	return newTree(cmp.Compare[K], false, opts)
}

// NewTreeFunc returns an empty tree ordered by compare, which must define a total
// order and return a negative number, zero or a positive number when a < b, a == b
// or a > b.
func NewTreeFunc[K any](compare func(a, b K) int, opts Options) *Tree[K] {
	return newTree(compare, false, opts)
}

func newTree[K any](compare func(a, b K) int, sized bool, opts Options) *Tree[K] {
	update := updateHeight[K]
	if sized {
		update = updateHeightSize[K]
	}
	return &Tree[K]{
		nodes:   newArena[K](opts.GetInitialCapacity()),
		compare: compare,
		update:  update,
		sized:   sized,
		opts:    opts,
		logger:  opts.GetLogger(),
		metrics: opts.Metrics,
	}
}

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int {
	return t.count
}

// Height returns the height of the root, or -1 for an empty tree.
func (t *Tree[K]) Height() int {
	return t.height(t.root)
}

// Insert adds key to the tree. If an equal key is already present the tree is left
// unchanged, the existing node is returned and inserted is false.
func (t *Tree[K]) Insert(key K) (n Node[K], inserted bool) {
	id, inserted := t.insertNode(key)
	if !inserted {
		return t.snapshot(id), false
	}
	t.count++
	// a fresh leaf is balanced and its aggregates are already correct
	t.rebalance(t.nodes[id].parent)
	t.logger.Trace().Interface("key", key).Int("height", t.Height()).Msg("insert")
	if t.metrics != nil {
		t.metrics.Inserts.Inc()
	}
	t.afterMutation("insert")
	return t.snapshot(id), true
}

// Delete removes key from the tree and returns a snapshot of the removed node.
//
// When the node holding key has two children, it takes over its successor's key and
// the successor's node is removed instead. Snapshots are values, so a Node obtained
// before the call is unaffected, but it no longer describes the tree.
func (t *Tree[K]) Delete(key K) (Node[K], error) {
	id := t.find(key)
	if id == nilNode {
		return Node[K]{}, errors.Wrapf(ErrNotFound, "delete %v", key)
	}
	removed, parent := t.removeNode(id)
	deleted := t.snapshot(removed)
	t.dropNode(removed)
	t.count--
	t.rebalance(parent)
	t.logger.Trace().Interface("key", key).Int("height", t.Height()).Msg("delete")
	if t.metrics != nil {
		t.metrics.Deletes.Inc()
	}
	t.afterMutation("delete")
	return deleted, nil
}

// Find returns the node holding key.
func (t *Tree[K]) Find(key K) (Node[K], error) {
	id := t.find(key)
	if id == nilNode {
		return Node[K]{}, errors.Wrapf(ErrNotFound, "find %v", key)
	}
	return t.snapshot(id), nil
}

// Has reports whether key is in the tree.
func (t *Tree[K]) Has(key K) bool {
	return t.find(key) != nilNode
}

// Min returns the node with the smallest key.
func (t *Tree[K]) Min() (Node[K], error) {
	if t.root == nilNode {
		return Node[K]{}, ErrEmpty
	}
	return t.snapshot(t.minNode(t.root)), nil
}

// Max returns the node with the largest key.
func (t *Tree[K]) Max() (Node[K], error) {
	if t.root == nilNode {
		return Node[K]{}, ErrEmpty
	}
	return t.snapshot(t.maxNode(t.root)), nil
}

// Successor returns the node with the smallest key greater than key. key itself
// must be in the tree.
func (t *Tree[K]) Successor(key K) (Node[K], error) {
	id := t.find(key)
	if id == nilNode {
		return Node[K]{}, errors.Wrapf(ErrNotFound, "successor of %v", key)
	}
	next := t.successorNode(id)
	if next == nilNode {
		return Node[K]{}, errors.Wrapf(ErrNoSuccessor, "successor of %v", key)
	}
	return t.snapshot(next), nil
}

func (t *Tree[K]) afterMutation(op string) {
	if t.metrics != nil {
		t.metrics.Nodes.Set(float64(t.count))
		t.metrics.Height.Set(float64(t.Height()))
	}
	if !t.opts.CheckInvariants {
		return
	}
	if err := t.CheckInvariants(); err != nil {
		t.logger.Error().Err(err).Str("op", op).Msg("tree invariant violated")
		panic(err)
	}
}
