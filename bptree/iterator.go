package bptree

import (
	"iter"

	"treestore/ordered"
)

// Traverse applies visit to every entry in ascending key order by
// walking the leaf chain, stopping early if visit returns false.
func (t *Tree[K, V]) Traverse(visit func(K, V) bool) {
	if t.IsEmpty() {
		return
	}
	for l := t.firstLeaf(); l != nil; l = l.next {
		for i := range l.keys {
			if !visit(l.keys[i], l.values[i]) {
				return
			}
		}
	}
}

// ReversedTraverse applies visit to every entry in descending key
// order by walking the leaf chain backward.
func (t *Tree[K, V]) ReversedTraverse(visit func(K, V) bool) {
	if t.IsEmpty() {
		return
	}
	for l := t.lastLeaf(); l != nil; l = l.prev {
		for i := len(l.keys) - 1; i >= 0; i-- {
			if !visit(l.keys[i], l.values[i]) {
				return
			}
		}
	}
}

// Keys materializes every key in ascending order.
func (t *Tree[K, V]) Keys() []K {
	out := make([]K, 0, t.count)
	t.Traverse(func(k K, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Values materializes every value in ascending key order.
func (t *Tree[K, V]) Values() []V {
	out := make([]V, 0, t.count)
	t.Traverse(func(_ K, v V) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Elements materializes every entry in ascending key order.
func (t *Tree[K, V]) Elements() []ordered.Entry[K, V] {
	out := make([]ordered.Entry[K, V], 0, t.count)
	t.Traverse(func(k K, v V) bool {
		out = append(out, ordered.Entry[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// Reversed materializes every entry in descending key order.
func (t *Tree[K, V]) Reversed() []ordered.Entry[K, V] {
	out := make([]ordered.Entry[K, V], 0, t.count)
	t.ReversedTraverse(func(k K, v V) bool {
		out = append(out, ordered.Entry[K, V]{Key: k, Value: v})
		return true
	})
	return out
}

// ElementsSeq returns a lazy ascending iterator driven by the leaf
// chain; mutating the tree while iterating is undefined.
func (t *Tree[K, V]) ElementsSeq() iter.Seq[ordered.Entry[K, V]] {
	return func(yield func(ordered.Entry[K, V]) bool) {
		if t.IsEmpty() {
			return
		}
		for l := t.firstLeaf(); l != nil; l = l.next {
			for i := range l.keys {
				if !yield(ordered.Entry[K, V]{Key: l.keys[i], Value: l.values[i]}) {
					return
				}
			}
		}
	}
}

// ReversedSeq is the descending counterpart of ElementsSeq.
func (t *Tree[K, V]) ReversedSeq() iter.Seq[ordered.Entry[K, V]] {
	return func(yield func(ordered.Entry[K, V]) bool) {
		if t.IsEmpty() {
			return
		}
		for l := t.lastLeaf(); l != nil; l = l.prev {
			for i := len(l.keys) - 1; i >= 0; i-- {
				if !yield(ordered.Entry[K, V]{Key: l.keys[i], Value: l.values[i]}) {
					return
				}
			}
		}
	}
}
