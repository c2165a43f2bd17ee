package rangetree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// RangeTree is a Tree whose nodes also cache their subtree size, which enables rank,
// range and order-statistic queries in O(log n).
type RangeTree[K any] struct {
	*Tree[K]
}

// NewRangeTree returns an empty range tree ordered by cmp.Compare.
func NewRangeTree[K cmp.Ordered](opts Options) *RangeTree[K] {
	return &RangeTree[K]{Tree: newTree(cmp.Compare[K], true, opts)}
}

// NewRangeTreeFunc returns an empty range tree ordered by compare. See NewTreeFunc.
func NewRangeTreeFunc[K any](compare func(a, b K) int, opts Options) *RangeTree[K] {
	return &RangeTree[K]{Tree: newTree(compare, true, opts)}
}

// Rank returns the number of keys in the tree that are <= key. key does not have to
// be present.
func (t *RangeTree[K]) Rank(key K) int {
	return t.rank(key)
}

// LCA returns the lowest common ancestor of all nodes whose keys lie in [low, high].
// low and high do not have to be present. ErrEmpty is returned when no key is in
// range.
func (t *RangeTree[K]) LCA(low, high K) (Node[K], error) {
	if err := t.checkRange(low, high); err != nil {
		return Node[K]{}, err
	}
	id := t.lca(low, high)
	if id == nilNode {
		return Node[K]{}, errors.Wrapf(ErrEmpty, "no key in [%v, %v]", low, high)
	}
	return t.snapshot(id), nil
}

// List returns the nodes whose keys lie in [low, high] in ascending key order.
func (t *RangeTree[K]) List(low, high K) ([]Node[K], error) {
	if err := t.checkRange(low, high); err != nil {
		return nil, err
	}
	id := t.lca(low, high)
	if id == nilNode {
		return []Node[K]{}, nil
	}
	result := make([]Node[K], 0, t.rank(high)-t.rankBelow(low))
	return t.list(id, low, high, result), nil
}

// Count returns the number of keys in [low, high].
func (t *RangeTree[K]) Count(low, high K) (int, error) {
	if err := t.checkRange(low, high); err != nil {
		return 0, err
	}
	return t.rank(high) - t.rankBelow(low), nil
}

// Select returns the node whose key has in-order index i, counting from 0.
func (t *RangeTree[K]) Select(i int) (Node[K], error) {
	if i < 0 || i >= t.count {
		return Node[K]{}, errors.Wrapf(ErrOutOfRange, "select %d of %d", i, t.count)
	}
	return t.snapshot(t.selectNode(i)), nil
}

func (t *RangeTree[K]) checkRange(low, high K) error {
	if t.compare(low, high) > 0 {
		return errors.Wrapf(ErrInvalidRange, "[%v, %v]", low, high)
	}
	return nil
}
