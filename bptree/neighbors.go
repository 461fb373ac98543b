package bptree

import "treestore/ordered"

// Min returns the least entry, or false if the tree is empty.
func (t *Tree[K, V]) Min() (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.firstLeaf()
	return ordered.Entry[K, V]{Key: l.keys[0], Value: l.values[0]}, true
}

// Max returns the greatest entry, or false if the tree is empty.
func (t *Tree[K, V]) Max() (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.lastLeaf()
	last := len(l.keys) - 1
	return ordered.Entry[K, V]{Key: l.keys[last], Value: l.values[last]}, true
}

// Floor returns the greatest entry with key <= k, descending to the
// leaf containing k and consulting the previous leaf only at the
// boundary.
func (t *Tree[K, V]) Floor(k K) (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.descendToLeaf(k)
	i := lowerBound(l.keys, k)
	if i < len(l.keys) && l.keys[i] == k {
		return ordered.Entry[K, V]{Key: k, Value: l.values[i]}, true
	}
	if i > 0 {
		return ordered.Entry[K, V]{Key: l.keys[i-1], Value: l.values[i-1]}, true
	}
	if l.prev != nil && len(l.prev.keys) > 0 {
		last := len(l.prev.keys) - 1
		return ordered.Entry[K, V]{Key: l.prev.keys[last], Value: l.prev.values[last]}, true
	}
	return ordered.Entry[K, V]{}, false
}

// Ceiling returns the least entry with key >= k.
func (t *Tree[K, V]) Ceiling(k K) (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.descendToLeaf(k)
	i := lowerBound(l.keys, k)
	if i < len(l.keys) {
		return ordered.Entry[K, V]{Key: l.keys[i], Value: l.values[i]}, true
	}
	if l.next != nil && len(l.next.keys) > 0 {
		return ordered.Entry[K, V]{Key: l.next.keys[0], Value: l.next.values[0]}, true
	}
	return ordered.Entry[K, V]{}, false
}

// Predecessor returns the greatest entry with key strictly < k.
func (t *Tree[K, V]) Predecessor(k K) (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.descendToLeaf(k)
	i := lowerBound(l.keys, k)
	if i > 0 {
		return ordered.Entry[K, V]{Key: l.keys[i-1], Value: l.values[i-1]}, true
	}
	if l.prev != nil && len(l.prev.keys) > 0 {
		last := len(l.prev.keys) - 1
		return ordered.Entry[K, V]{Key: l.prev.keys[last], Value: l.prev.values[last]}, true
	}
	return ordered.Entry[K, V]{}, false
}

// Successor returns the least entry with key strictly > k.
func (t *Tree[K, V]) Successor(k K) (ordered.Entry[K, V], bool) {
	if t.IsEmpty() {
		return ordered.Entry[K, V]{}, false
	}
	l := t.descendToLeaf(k)
	i := lowerBound(l.keys, k)
	if i < len(l.keys) && l.keys[i] == k {
		i++
	}
	if i < len(l.keys) {
		return ordered.Entry[K, V]{Key: l.keys[i], Value: l.values[i]}, true
	}
	if l.next != nil && len(l.next.keys) > 0 {
		return ordered.Entry[K, V]{Key: l.next.keys[0], Value: l.next.values[0]}, true
	}
	return ordered.Entry[K, V]{}, false
}
