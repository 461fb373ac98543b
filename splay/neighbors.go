package splay

import "treestore/ordered"

func entryOf[K ordered.Key, V any](n *splayNode[K, V]) ordered.Entry[K, V] {
	return ordered.Entry[K, V]{Key: n.key, Value: n.value}
}

func minNode[K ordered.Key, V any](n *splayNode[K, V]) *splayNode[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func maxNode[K ordered.Key, V any](n *splayNode[K, V]) *splayNode[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

func (t *Tree[K, V]) Min() (ordered.Entry[K, V], bool) {
	if t.root == nil {
		var zero ordered.Entry[K, V]
		return zero, false
	}
	t.splay(minNode(t.root).key)
	return entryOf(t.root), true
}

func (t *Tree[K, V]) Max() (ordered.Entry[K, V], bool) {
	if t.root == nil {
		var zero ordered.Entry[K, V]
		return zero, false
	}
	t.splay(maxNode(t.root).key)
	return entryOf(t.root), true
}

// Floor returns the greatest entry with key <= k. BST search-miss
// theory guarantees that splaying k brings exactly this node to the
// root whenever root.key <= k; otherwise it is the max of the left
// subtree, which is then splayed up in turn.
func (t *Tree[K, V]) Floor(k K) (ordered.Entry[K, V], bool) {
	var zero ordered.Entry[K, V]
	if t.root == nil {
		return zero, false
	}
	t.splay(k)
	if t.root.key <= k {
		return entryOf(t.root), true
	}
	if t.root.left == nil {
		return zero, false
	}
	fk := maxNode(t.root.left).key
	t.splay(fk)
	return entryOf(t.root), true
}

// Ceiling returns the least entry with key >= k.
func (t *Tree[K, V]) Ceiling(k K) (ordered.Entry[K, V], bool) {
	var zero ordered.Entry[K, V]
	if t.root == nil {
		return zero, false
	}
	t.splay(k)
	if t.root.key >= k {
		return entryOf(t.root), true
	}
	if t.root.right == nil {
		return zero, false
	}
	ck := minNode(t.root.right).key
	t.splay(ck)
	return entryOf(t.root), true
}

// Predecessor returns the greatest entry with key strictly < k.
func (t *Tree[K, V]) Predecessor(k K) (ordered.Entry[K, V], bool) {
	var zero ordered.Entry[K, V]
	if t.root == nil {
		return zero, false
	}
	t.splay(k)
	if t.root.key < k {
		return entryOf(t.root), true
	}
	if t.root.left == nil {
		return zero, false
	}
	pk := maxNode(t.root.left).key
	t.splay(pk)
	return entryOf(t.root), true
}

// Successor returns the least entry with key strictly > k.
func (t *Tree[K, V]) Successor(k K) (ordered.Entry[K, V], bool) {
	var zero ordered.Entry[K, V]
	if t.root == nil {
		return zero, false
	}
	t.splay(k)
	if t.root.key > k {
		return entryOf(t.root), true
	}
	if t.root.right == nil {
		return zero, false
	}
	sk := minNode(t.root.right).key
	t.splay(sk)
	return entryOf(t.root), true
}
