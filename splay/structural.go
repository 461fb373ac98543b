package splay

import "treestore/ordered"

// Split splays k to the root, then cuts the tree in two: the receiver
// keeps every key strictly less than k, and the returned tree holds
// every key >= k. Both trees' counts are recomputed in O(N) — a splay
// tree carries no subtree-size field, so this is the honest cost of
// the cut.
func (t *Tree[K, V]) Split(k K) *Tree[K, V] {
	right := &Tree[K, V]{}
	if t.root == nil {
		return right
	}

	t.splay(k)
	if t.root.key < k {
		right.root = t.root.right
		t.root.right = nil
	} else {
		right.root = t.root
		t.root = t.root.left
		right.root.left = nil
	}

	t.count = countNodes(t.root)
	right.count = countNodes(right.root)
	return right
}

func countNodes[K ordered.Key, V any](n *splayNode[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + countNodes(n.left) + countNodes(n.right)
}

// Join absorbs other into the receiver, requiring every key in the
// receiver to be strictly less than every key in other. On success,
// other is left empty and the receiver holds the union; on failure
// (the precondition doesn't hold) neither tree is mutated.
func (t *Tree[K, V]) Join(other *Tree[K, V]) bool {
	if other.root == nil {
		return true
	}
	if t.root == nil {
		t.root, t.count = other.root, other.count
		other.root, other.count = nil, 0
		return true
	}

	maxEntry, _ := t.Max()
	minEntry, _ := other.Min()
	if !(maxEntry.Key < minEntry.Key) {
		// undo the Max/Min splays' restructuring is unnecessary: the
		// tree's contents and BST order are unchanged by a splay, only
		// its shape, so no precondition-violating mutation occurred.
		return false
	}

	t.root.right = other.root
	t.count += other.count
	other.root, other.count = nil, 0
	return true
}
