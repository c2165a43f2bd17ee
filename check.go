package rangetree

import "github.com/cockroachdb/errors"

// CheckInvariants walks the whole tree and verifies search order, parent links, AVL
// balance and the cached heights and sizes. A failure is reported as an assertion
// error; see IsInvariantViolation.
func (t *Tree[K]) CheckInvariants() error {
	if s := t.nodes[nilNode]; s.height != -1 || s.size != 0 || s.parent|s.left|s.right != nilNode {
		return errors.AssertionFailedf("sentinel record modified: %+v", s)
	}
	if t.root != nilNode && t.nodes[t.root].parent != nilNode {
		return errors.AssertionFailedf("root %d has parent %d", t.root, t.nodes[t.root].parent)
	}
	count, err := t.checkNode(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.count {
		return errors.AssertionFailedf("tree holds %d nodes but counts %d", count, t.count)
	}
	return nil
}

// checkNode verifies the subtree rooted at id, whose keys must lie strictly between
// low and high when those are set, and returns its node count.
func (t *Tree[K]) checkNode(id NodeID, low, high *K) (int, error) {
	if id == nilNode {
		return 0, nil
	}
	n := &t.nodes[id]
	if low != nil && t.compare(n.key, *low) <= 0 {
		return 0, errors.AssertionFailedf("node %d key %v not above %v", id, n.key, *low)
	}
	if high != nil && t.compare(n.key, *high) >= 0 {
		return 0, errors.AssertionFailedf("node %d key %v not below %v", id, n.key, *high)
	}
	for _, child := range [2]NodeID{n.left, n.right} {
		if child != nilNode && t.nodes[child].parent != id {
			return 0, errors.AssertionFailedf("node %d has parent %d, want %d", child, t.nodes[child].parent, id)
		}
	}

	leftCount, err := t.checkNode(n.left, low, &n.key)
	if err != nil {
		return 0, err
	}
	rightCount, err := t.checkNode(n.right, &n.key, high)
	if err != nil {
		return 0, err
	}

	lh, rh := t.height(n.left), t.height(n.right)
	if want := max(lh, rh) + 1; int(n.height) != want {
		return 0, errors.AssertionFailedf("node %d key %v height %d, want %d", id, n.key, n.height, want)
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, errors.AssertionFailedf("node %d key %v unbalanced: left height %d right height %d", id, n.key, lh, rh)
	}
	count := leftCount + rightCount + 1
	if t.sized && n.size != int64(count) {
		return 0, errors.AssertionFailedf("node %d key %v size %d, want %d", id, n.key, n.size, count)
	}
	return count, nil
}
