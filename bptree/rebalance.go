package bptree

// borrowFromLeftChild rotates one entry through the parent from
// n.children[i-1] into n.children[i]. Leaf and internal levels use
// different conventions: at the leaf level the separator
// is copied to match the leaf's new first key; at the internal level
// the sibling's edge key becomes the new separator and its edge child
// crosses over.
func (t *Tree[K, V]) borrowFromLeftChild(n *internalNode[K, V], i int) {
	switch c := n.children[i].(type) {
	case *leafNode[K, V]:
		l := n.children[i-1].(*leafNode[K, V])
		last := len(l.keys) - 1
		c.keys = insertAt(c.keys, 0, l.keys[last])
		c.values = insertAt(c.values, 0, l.values[last])
		l.keys = l.keys[:last]
		l.values = l.values[:last]
		n.keys[i-1] = c.keys[0]
	case *internalNode[K, V]:
		l := n.children[i-1].(*internalNode[K, V])
		lastKey := l.keys[len(l.keys)-1]
		lastChild := l.children[len(l.children)-1]
		l.keys = l.keys[:len(l.keys)-1]
		l.children = l.children[:len(l.children)-1]

		c.keys = insertAt(c.keys, 0, n.keys[i-1])
		c.children = insertAt(c.children, 0, lastChild)
		n.keys[i-1] = lastKey
	}
}

// borrowFromRightChild mirrors borrowFromLeftChild using the right
// sibling.
func (t *Tree[K, V]) borrowFromRightChild(n *internalNode[K, V], i int) {
	switch c := n.children[i].(type) {
	case *leafNode[K, V]:
		r := n.children[i+1].(*leafNode[K, V])
		c.keys = append(c.keys, r.keys[0])
		c.values = append(c.values, r.values[0])
		r.keys = removeAt(r.keys, 0)
		r.values = removeAt(r.values, 0)
		n.keys[i] = r.keys[0]
	case *internalNode[K, V]:
		r := n.children[i+1].(*internalNode[K, V])
		firstKey := r.keys[0]
		firstChild := r.children[0]
		r.keys = removeAt(r.keys, 0)
		r.children = removeAt(r.children, 0)

		c.keys = append(c.keys, n.keys[i])
		c.children = append(c.children, firstChild)
		n.keys[i] = firstKey
	}
}

// mergeChildren fuses n.children[i] and n.children[i+1], removing the
// separator and slot from n. Leaf merges splice the chain together
// with no separator, repairing the leaf chain in the process; internal
// merges slot the parent's separator between
// the two children's key lists, which — exactly as in the B-Tree, and
// for the same odd-order arithmetic — can overflow the fused node by
// one key, corrected with an immediate re-split.
func (t *Tree[K, V]) mergeChildren(n *internalNode[K, V], i int) {
	switch l := n.children[i].(type) {
	case *leafNode[K, V]:
		r := n.children[i+1].(*leafNode[K, V])
		l.keys = append(l.keys, r.keys...)
		l.values = append(l.values, r.values...)
		l.next = r.next
		if r.next != nil {
			r.next.prev = l
		}
		t.freeLeaf(r)
	case *internalNode[K, V]:
		r := n.children[i+1].(*internalNode[K, V])
		l.keys = append(l.keys, n.keys[i])
		l.keys = append(l.keys, r.keys...)
		l.children = append(l.children, r.children...)
		if len(l.keys) > t.maxKeys() {
			right2, sep2 := splitInternal(l)
			n.keys[i] = sep2
			n.children[i+1] = right2
			return
		}
	}
	n.keys = removeAt(n.keys, i)
	n.children = removeAt(n.children, i+1)
}

// ensureChild guarantees n.children[i] has more than MIN_KEYS keys
// before the caller descends into it (policy: left-borrow, then
// right-borrow, then left-merge, then right-merge —
// Deletion). Returns the index to descend into, which shifts after a
// left-merge and is recomputed via upperBound after any merge since a
// corrective re-split can change which child holds k.
func (t *Tree[K, V]) ensureChild(n *internalNode[K, V], i int, k K) int {
	child := n.children[i]
	if child.keyCount() > t.minKeys() {
		return i
	}
	if i > 0 && n.children[i-1].keyCount() > t.minKeys() {
		t.borrowFromLeftChild(n, i)
		return i
	}
	if i < len(n.children)-1 && n.children[i+1].keyCount() > t.minKeys() {
		t.borrowFromRightChild(n, i)
		return i
	}
	mergeIdx := i
	if i > 0 {
		mergeIdx = i - 1
	}
	t.mergeChildren(n, mergeIdx)
	return upperBound(n.keys, k)
}
