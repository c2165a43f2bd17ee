package rangetree

// rebalance walks from id to the root. Every visited node has its cached
// aggregates refreshed before its balance is checked, so the walk must start at the
// lowest node whose subtree changed.
func (t *Tree[K]) rebalance(id NodeID) {
	for id != nilNode {
		t.update(t.nodes, id)

		left, right := t.nodes[id].left, t.nodes[id].right
		switch {
		case t.height(left) >= t.height(right)+2:
			if t.height(t.nodes[left].left) < t.height(t.nodes[left].right) {
				// left right
				t.rotateLeft(left)
			}
			t.rotateRight(id)
		case t.height(right) >= t.height(left)+2:
			if t.height(t.nodes[right].right) < t.height(t.nodes[right].left) {
				// right left
				t.rotateRight(right)
			}
			t.rotateLeft(id)
		}

		// after a rotation id is a child of the subtree's new root, which is
		// visited next and is already up to date.
		id = t.nodes[id].parent
	}
}

// rotateLeft lifts x's right child y into x's place and makes x y's left child.
// y's left subtree moves across to become x's right subtree.
func (t *Tree[K]) rotateLeft(x NodeID) {
	nodes := t.nodes
	y := nodes[x].right
	parent := nodes[x].parent

	nodes[y].parent = parent
	t.replaceChild(parent, x, y)

	inner := nodes[y].left
	nodes[x].right = inner
	if inner != nilNode {
		nodes[inner].parent = x
	}

	nodes[y].left = x
	nodes[x].parent = y

	// x is now below y, so it must be refreshed first.
	t.update(nodes, x)
	t.update(nodes, y)

	if t.metrics != nil {
		t.metrics.rotateLeft.Inc()
	}
	t.logger.Trace().Uint32("x", uint32(x)).Uint32("y", uint32(y)).Msg("rotate left")
}

// rotateRight is the mirror image of rotateLeft.
func (t *Tree[K]) rotateRight(x NodeID) {
	nodes := t.nodes
	y := nodes[x].left
	parent := nodes[x].parent

	nodes[y].parent = parent
	t.replaceChild(parent, x, y)

	inner := nodes[y].right
	nodes[x].left = inner
	if inner != nilNode {
		nodes[inner].parent = x
	}

	nodes[y].right = x
	nodes[x].parent = y

	t.update(nodes, x)
	t.update(nodes, y)

	if t.metrics != nil {
		t.metrics.rotateRight.Inc()
	}
	t.logger.Trace().Uint32("x", uint32(x)).Uint32("y", uint32(y)).Msg("rotate right")
}
