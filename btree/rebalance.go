package btree

// borrowFromLeft rotates one key through the parent: n's separator at
// i-1 moves down to the head of child i, and the left sibling's last
// key/value (and, if internal, its last child) moves up to become the
// new separator.
func (t *Tree[K, V]) borrowFromLeft(n *node[K, V], i int) {
	child := n.children[i]
	left := n.children[i-1]

	child.keys = insertAt(child.keys, 0, n.keys[i-1])
	child.values = insertAt(child.values, 0, n.values[i-1])

	lastIdx := len(left.keys) - 1
	n.keys[i-1] = left.keys[lastIdx]
	n.values[i-1] = left.values[lastIdx]
	left.keys = left.keys[:lastIdx]
	left.values = left.values[:lastIdx]

	if !child.isLeaf() {
		lastChild := left.children[len(left.children)-1]
		left.children = left.children[:len(left.children)-1]
		child.children = insertAt(child.children, 0, lastChild)
	}
}

// borrowFromRight mirrors borrowFromLeft using the right sibling.
func (t *Tree[K, V]) borrowFromRight(n *node[K, V], i int) {
	child := n.children[i]
	right := n.children[i+1]

	child.keys = append(child.keys, n.keys[i])
	child.values = append(child.values, n.values[i])

	n.keys[i] = right.keys[0]
	n.values[i] = right.values[0]
	right.keys = removeAt(right.keys, 0)
	right.values = removeAt(right.values, 0)

	if !child.isLeaf() {
		firstChild := right.children[0]
		right.children = removeAt(right.children, 0)
		child.children = append(child.children, firstChild)
	}
}

// mergeChildren fuses n.children[i] and n.children[i+1] through n's
// separator key at i, leaving the fused node at index i and removing
// the separator and the now-empty slot from n.
//
// Two minimum-size siblings (MIN_KEYS each) plus one separator can, for
// an odd order, total exactly one key more than MAX_KEYS allows (the
// parity only works out evenly for even orders). When that happens the
// fused node is immediately re-split so every node still satisfies
// MIN_KEYS/MAX_KEYS; n's key count is unaffected by this corrective
// split since the promoted key replaces the one just removed.
func (t *Tree[K, V]) mergeChildren(n *node[K, V], i int) {
	left := n.children[i]
	right := n.children[i+1]

	left.keys = append(left.keys, n.keys[i])
	left.values = append(left.values, n.values[i])
	left.keys = append(left.keys, right.keys...)
	left.values = append(left.values, right.values...)
	if !left.isLeaf() {
		left.children = append(left.children, right.children...)
	}

	n.keys = removeAt(n.keys, i)
	n.values = removeAt(n.values, i)
	n.children = removeAt(n.children, i+1)

	if len(left.keys) >= t.order {
		sr := t.split(left)
		n.keys = insertAt(n.keys, i, sr.key)
		n.values = insertAt(n.values, i, sr.value)
		n.children = insertAt(n.children, i+1, sr.right)
	}
}

// ensureChild guarantees n.children[i] has more than MIN_KEYS keys
// before the caller descends into it, borrowing from a sibling or
// merging as a last resort (policy: left-borrow, right-borrow,
// left-merge, right-merge). Returns the index to descend into, which
// shifts by one when a left-merge absorbs the target into its left
// sibling, or changes further if a merge's corrective split moved k to
// the other half.
func (t *Tree[K, V]) ensureChild(n *node[K, V], i int, k K) int {
	child := n.children[i]
	if len(child.keys) > t.minKeys() {
		return i
	}
	if i > 0 && len(n.children[i-1].keys) > t.minKeys() {
		t.borrowFromLeft(n, i)
		return i
	}
	if i < len(n.children)-1 && len(n.children[i+1].keys) > t.minKeys() {
		t.borrowFromRight(n, i)
		return i
	}
	mergeIdx := i
	if i > 0 {
		mergeIdx = i - 1
	}
	t.mergeChildren(n, mergeIdx)
	return n.lowerBound(k)
}

// ensureRightmostChild is ensureChild specialized for descents that
// always continue into the last child (used while locating an in-order
// predecessor), so no search key is needed to resolve post-merge
// ambiguity.
func (t *Tree[K, V]) ensureRightmostChild(n *node[K, V]) int {
	i := len(n.children) - 1
	child := n.children[i]
	if len(child.keys) > t.minKeys() {
		return i
	}
	if i > 0 && len(n.children[i-1].keys) > t.minKeys() {
		t.borrowFromLeft(n, i)
		return i
	}
	t.mergeChildren(n, i-1)
	return len(n.children) - 1
}

// ensureLeftmostChild mirrors ensureRightmostChild for the in-order
// successor descent.
func (t *Tree[K, V]) ensureLeftmostChild(n *node[K, V]) int {
	child := n.children[0]
	if len(child.keys) > t.minKeys() {
		return 0
	}
	if len(n.children) > 1 && len(n.children[1].keys) > t.minKeys() {
		t.borrowFromRight(n, 0)
		return 0
	}
	t.mergeChildren(n, 0)
	return 0
}
