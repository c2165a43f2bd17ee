package rangetree

// Query algorithms over the cached subtree sizes. They read child links and cached
// aggregates only; nothing is recomputed or written.

// rank returns the number of keys <= key.
func (t *Tree[K]) rank(key K) int {
	rank := 0
	id := t.root
	for id != nilNode {
		n := &t.nodes[id]
		c := t.compare(key, n.key)
		if c < 0 {
			id = n.left
			continue
		}
		// n and its whole left subtree are <= key
		rank += int(t.nodes[n.left].size) + 1
		if c == 0 {
			break
		}
		id = n.right
	}
	return rank
}

// rankBelow returns the number of keys < key.
func (t *Tree[K]) rankBelow(key K) int {
	rank := 0
	id := t.root
	for id != nilNode {
		n := &t.nodes[id]
		if t.compare(key, n.key) <= 0 {
			id = n.left
			continue
		}
		rank += int(t.nodes[n.left].size) + 1
		id = n.right
	}
	return rank
}

// lca returns the first node on the path from the root whose key lies in
// [low, high]: the point where the search paths for low and high split. Every key in
// the range lives in its subtree. It returns nilNode when no key is in range.
func (t *Tree[K]) lca(low, high K) NodeID {
	id := t.root
	for id != nilNode {
		n := &t.nodes[id]
		switch {
		case t.compare(n.key, low) < 0:
			id = n.right
		case t.compare(n.key, high) > 0:
			id = n.left
		default:
			return id
		}
	}
	return nilNode
}

// list appends, in ascending order, the nodes of the subtree rooted at id whose keys
// lie in [low, high]. Subtrees that cannot hold such keys are skipped.
func (t *Tree[K]) list(id NodeID, low, high K, result []Node[K]) []Node[K] {
	if id == nilNode {
		return result
	}
	n := &t.nodes[id]
	atLeastLow := t.compare(low, n.key) <= 0
	atMostHigh := t.compare(n.key, high) <= 0
	if atLeastLow {
		result = t.list(n.left, low, high, result)
	}
	if atLeastLow && atMostHigh {
		result = append(result, t.snapshot(id))
	}
	if atMostHigh {
		result = t.list(n.right, low, high, result)
	}
	return result
}

// selectNode returns the node with in-order index i, or nilNode.
func (t *Tree[K]) selectNode(i int) NodeID {
	id := t.root
	for id != nilNode {
		n := &t.nodes[id]
		leftSize := int(t.nodes[n.left].size)
		switch {
		case i < leftSize:
			id = n.left
		case i == leftSize:
			return id
		default:
			i -= leftSize + 1
			id = n.right
		}
	}
	return nilNode
}
