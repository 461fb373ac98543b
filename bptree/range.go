package bptree

import "treestore/ordered"

// Range returns every entry with key in [lo, hi], ascending. Descends
// to the leaf containing lo, then walks the leaf chain via next,
// emitting elements until a key exceeds hi (
// queries): O(log N + k).
func (t *Tree[K, V]) Range(lo, hi K) []ordered.Entry[K, V] {
	var out []ordered.Entry[K, V]
	if lo > hi || t.IsEmpty() {
		return out
	}
	l := t.descendToLeaf(lo)
	i := lowerBound(l.keys, lo)
	for l != nil {
		for ; i < len(l.keys); i++ {
			if l.keys[i] > hi {
				return out
			}
			out = append(out, ordered.Entry[K, V]{Key: l.keys[i], Value: l.values[i]})
		}
		l = l.next
		i = 0
	}
	return out
}
