package rangetree

// The functions in this file are the plain binary search tree operations. None of
// them rebalance or refresh cached aggregates; callers follow structural changes
// with rebalance.

// find returns the node holding key, or nilNode.
func (t *Tree[K]) find(key K) NodeID {
	id := t.root
	for id != nilNode {
		n := &t.nodes[id]
		switch c := t.compare(key, n.key); {
		case c < 0:
			id = n.left
		case c > 0:
			id = n.right
		default:
			return id
		}
	}
	return nilNode
}

// minNode returns the node with the smallest key in the subtree rooted at id.
func (t *Tree[K]) minNode(id NodeID) NodeID {
	for t.nodes[id].left != nilNode {
		id = t.nodes[id].left
	}
	return id
}

// maxNode returns the node with the largest key in the subtree rooted at id.
func (t *Tree[K]) maxNode(id NodeID) NodeID {
	for t.nodes[id].right != nilNode {
		id = t.nodes[id].right
	}
	return id
}

// successorNode returns the node with the next larger key, or nilNode if id holds
// the largest key.
func (t *Tree[K]) successorNode(id NodeID) NodeID {
	if right := t.nodes[id].right; right != nilNode {
		return t.minNode(right)
	}
	parent := t.nodes[id].parent
	for parent != nilNode && id == t.nodes[parent].right {
		id = parent
		parent = t.nodes[parent].parent
	}
	return parent
}

// insertNode links a new leaf holding key at its search position.
// If key is already present the existing node is returned and inserted is false.
func (t *Tree[K]) insertNode(key K) (id NodeID, inserted bool) {
	var (
		parent = nilNode
		cur    = t.root
		c      int
	)
	for cur != nilNode {
		c = t.compare(key, t.nodes[cur].key)
		if c == 0 {
			return cur, false
		}
		parent = cur
		if c < 0 {
			cur = t.nodes[cur].left
		} else {
			cur = t.nodes[cur].right
		}
	}

	id = t.newNode(key)
	t.nodes[id].parent = parent
	switch {
	case parent == nilNode:
		t.root = id
	case c < 0:
		t.nodes[parent].left = id
	default:
		t.nodes[parent].right = id
	}
	return id, true
}

// removeNode unlinks the node id from the tree.
//
// A node with two children takes over its in-order successor's key and the
// successor's record is unlinked instead, so removed may differ from id. removed
// always carries id's original key and keeps its former parent link, which is
// returned as parent: the lowest node whose subtree changed shape.
func (t *Tree[K]) removeNode(id NodeID) (removed, parent NodeID) {
	n := &t.nodes[id]
	if n.left != nilNode && n.right != nilNode {
		s := t.minNode(n.right)
		t.spliceOut(s)
		n.key, t.nodes[s].key = t.nodes[s].key, n.key
		return s, t.nodes[s].parent
	}
	t.spliceOut(id)
	return id, n.parent
}

// spliceOut replaces a node that has at most one child with that child.
func (t *Tree[K]) spliceOut(id NodeID) {
	n := &t.nodes[id]
	child := n.left
	if child == nilNode {
		child = n.right
	}
	if child != nilNode {
		t.nodes[child].parent = n.parent
	}
	t.replaceChild(n.parent, id, child)
}

// replaceChild points parent's link to old at repl. An absent parent means old is
// the root.
func (t *Tree[K]) replaceChild(parent, old, repl NodeID) {
	switch {
	case parent == nilNode:
		t.root = repl
	case t.nodes[parent].left == old:
		t.nodes[parent].left = repl
	default:
		t.nodes[parent].right = repl
	}
}
