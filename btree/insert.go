package btree

import "treestore/ordered"

// splitResult carries the key/value promoted to the parent and the new
// right sibling produced by a node split.
type splitResult[K ordered.Key, V any] struct {
	key   K
	value V
	right *node[K, V]
}

// split splits an overflowing node n in place: the left SPLIT_INDEX
// portion stays in n, the promoted key/value moves to the parent, and
// everything right of it becomes a new sibling.
func (t *Tree[K, V]) split(n *node[K, V]) *splitResult[K, V] {
	splitIdx := t.splitIndex()
	promotedKey := n.keys[splitIdx]
	promotedValue := n.values[splitIdx]

	right := newNode[K, V](t.order)
	right.keys = append(right.keys, n.keys[splitIdx+1:]...)
	right.values = append(right.values, n.values[splitIdx+1:]...)
	if !n.isLeaf() {
		right.children = append(right.children, n.children[splitIdx+1:]...)
		n.children = n.children[:splitIdx+1]
	}
	n.keys = n.keys[:splitIdx]
	n.values = n.values[:splitIdx]

	return &splitResult[K, V]{key: promotedKey, value: promotedValue, right: right}
}

func (t *Tree[K, V]) splitIndex() int { return (t.order+1)/2 - 1 }

// Insert adds k->v if k is absent, using the default bottom-up
// algorithm: descend to a leaf, insert, then split back up the
// ancestor path as needed. Returns false without changing the value if
// k is already present.
func (t *Tree[K, V]) Insert(k K, v V) bool {
	inserted, sr := t.insertBottomUp(t.root, k, v)
	if !inserted {
		return false
	}
	if sr != nil {
		newRoot := newNode[K, V](t.order)
		newRoot.keys = append(newRoot.keys, sr.key)
		newRoot.values = append(newRoot.values, sr.value)
		newRoot.children = append(newRoot.children, t.root, sr.right)
		t.root = newRoot
	}
	t.count++
	return true
}

func (t *Tree[K, V]) insertBottomUp(n *node[K, V], k K, v V) (bool, *splitResult[K, V]) {
	i := n.lowerBound(k)
	if i < len(n.keys) && n.keys[i] == k {
		return false, nil
	}
	if n.isLeaf() {
		n.keys = insertAt(n.keys, i, k)
		n.values = insertAt(n.values, i, v)
		if len(n.keys) >= t.order {
			return true, t.split(n)
		}
		return true, nil
	}
	inserted, sr := t.insertBottomUp(n.children[i], k, v)
	if !inserted {
		return false, nil
	}
	if sr != nil {
		n.keys = insertAt(n.keys, i, sr.key)
		n.values = insertAt(n.values, i, sr.value)
		n.children = insertAt(n.children, i+1, sr.right)
		if len(n.keys) >= t.order {
			return true, t.split(n)
		}
	}
	return true, nil
}

// InsertTopDown is the alternate top-down insertion algorithm: every
// full node on the descent path is pre-split before
// stepping into it, so the leaf insertion itself never triggers further
// work. Produces the same element set as Insert but may leave a
// differently shaped tree.
func (t *Tree[K, V]) InsertTopDown(k K, v V) bool {
	if len(t.root.keys) >= t.maxKeys() {
		sr := t.split(t.root)
		newRoot := newNode[K, V](t.order)
		newRoot.keys = append(newRoot.keys, sr.key)
		newRoot.values = append(newRoot.values, sr.value)
		newRoot.children = append(newRoot.children, t.root, sr.right)
		t.root = newRoot
	}
	n := t.root
	for {
		i := n.lowerBound(k)
		if i < len(n.keys) && n.keys[i] == k {
			return false
		}
		if n.isLeaf() {
			n.keys = insertAt(n.keys, i, k)
			n.values = insertAt(n.values, i, v)
			t.count++
			return true
		}
		child := n.children[i]
		if len(child.keys) >= t.maxKeys() {
			sr := t.split(child)
			n.keys = insertAt(n.keys, i, sr.key)
			n.values = insertAt(n.values, i, sr.value)
			n.children = insertAt(n.children, i+1, sr.right)
			if k == sr.key {
				return false
			}
			if k > sr.key {
				i++
			}
		}
		n = n.children[i]
	}
}
