package btree

import "treestore/ordered"

// Remove deletes k if present, using the top-down algorithm (
// default): every under-filled child on the descent path is borrowed
// into or merged before the descent steps into it, so no upward
// rebalancing pass is needed afterward.
func (t *Tree[K, V]) Remove(k K) (V, bool) {
	v, ok := t.removeTopDown(t.root, k)
	if !ok {
		return v, false
	}
	t.count--
	t.collapseRoot()
	return v, true
}

func (t *Tree[K, V]) collapseRoot() {
	if !t.root.isLeaf() && len(t.root.keys) == 0 {
		t.root = t.root.children[0]
	}
}

func (t *Tree[K, V]) removeTopDown(n *node[K, V], k K) (V, bool) {
	i := n.lowerBound(k)
	if n.isLeaf() {
		if i < len(n.keys) && n.keys[i] == k {
			v := n.values[i]
			n.keys = removeAt(n.keys, i)
			n.values = removeAt(n.values, i)
			return v, true
		}
		var zero V
		return zero, false
	}

	if i < len(n.keys) && n.keys[i] == k {
		origVal := n.values[i]
		left, right := n.children[i], n.children[i+1]
		switch {
		case len(left.keys) > t.minKeys():
			pk, pv := t.removeMax(left)
			n.keys[i], n.values[i] = pk, pv
		case len(right.keys) > t.minKeys():
			sk, sv := t.removeMin(right)
			n.keys[i], n.values[i] = sk, sv
		default:
			// Both children are at MIN_KEYS: fold the separator into a
			// merge and delete k directly from the fused node instead of
			// hunting for a predecessor/successor we'd have to rebalance
			// our way down to anyway.
			t.mergeChildren(n, i)
			return t.removeTopDown(n, k)
		}
		return origVal, true
	}

	j := t.ensureChild(n, i, k)
	return t.removeTopDown(n.children[j], k)
}

func (t *Tree[K, V]) removeMax(n *node[K, V]) (K, V) {
	for !n.isLeaf() {
		i := t.ensureRightmostChild(n)
		n = n.children[i]
	}
	last := len(n.keys) - 1
	k, v := n.keys[last], n.values[last]
	n.keys = n.keys[:last]
	n.values = n.values[:last]
	return k, v
}

func (t *Tree[K, V]) removeMin(n *node[K, V]) (K, V) {
	for !n.isLeaf() {
		i := t.ensureLeftmostChild(n)
		n = n.children[i]
	}
	k, v := n.keys[0], n.values[0]
	n.keys = removeAt(n.keys, 0)
	n.values = removeAt(n.values, 0)
	return k, v
}

// ancestorFrame records the node and child index visited while
// descending, so RemoveBottomUp can unwind and rebalance afterward.
type ancestorFrame[K ordered.Key, V any] struct {
	node *node[K, V]
	idx  int
}

// RemoveBottomUp is the alternate bottom-up deletion algorithm:
// restructuring propagates upward after the leaf deletion,
// rather than pre-emptively during descent. Produces the same element
// set as Remove but may leave a differently shaped tree.
func (t *Tree[K, V]) RemoveBottomUp(k K) (V, bool) {
	path := make([]ancestorFrame[K, V], 0, t.Height())
	n := t.root
	for {
		i := n.lowerBound(k)
		if i < len(n.keys) && n.keys[i] == k {
			origVal := n.values[i]
			if n.isLeaf() {
				n.keys = removeAt(n.keys, i)
				n.values = removeAt(n.values, i)
			} else {
				left, right := n.children[i], n.children[i+1]
				if len(left.keys) >= len(right.keys) {
					path = append(path, ancestorFrame[K, V]{node: n, idx: i})
					pk, pv, extra := t.descendMax(left)
					n.keys[i], n.values[i] = pk, pv
					path = append(path, extra...)
				} else {
					path = append(path, ancestorFrame[K, V]{node: n, idx: i + 1})
					sk, sv, extra := t.descendMin(right)
					n.keys[i], n.values[i] = sk, sv
					path = append(path, extra...)
				}
			}
			t.fixupPath(path)
			t.count--
			t.collapseRoot()
			return origVal, true
		}
		if n.isLeaf() {
			var zero V
			return zero, false
		}
		path = append(path, ancestorFrame[K, V]{node: n, idx: i})
		n = n.children[i]
	}
}

func (t *Tree[K, V]) descendMax(n *node[K, V]) (K, V, []ancestorFrame[K, V]) {
	var path []ancestorFrame[K, V]
	for !n.isLeaf() {
		i := len(n.children) - 1
		path = append(path, ancestorFrame[K, V]{node: n, idx: i})
		n = n.children[i]
	}
	last := len(n.keys) - 1
	k, v := n.keys[last], n.values[last]
	n.keys = n.keys[:last]
	n.values = n.values[:last]
	return k, v, path
}

func (t *Tree[K, V]) descendMin(n *node[K, V]) (K, V, []ancestorFrame[K, V]) {
	var path []ancestorFrame[K, V]
	for !n.isLeaf() {
		path = append(path, ancestorFrame[K, V]{node: n, idx: 0})
		n = n.children[0]
	}
	k, v := n.keys[0], n.values[0]
	n.keys = removeAt(n.keys, 0)
	n.values = removeAt(n.values, 0)
	return k, v, path
}

// fixupPath walks the recorded descent path from deepest to shallowest,
// restoring MIN_KEYS at each level exactly where the just-removed key
// may have broken it.
func (t *Tree[K, V]) fixupPath(path []ancestorFrame[K, V]) {
	for idx := len(path) - 1; idx >= 0; idx-- {
		n, i := path[idx].node, path[idx].idx
		child := n.children[i]
		if len(child.keys) >= t.minKeys() {
			continue
		}
		switch {
		case i > 0 && len(n.children[i-1].keys) > t.minKeys():
			t.borrowFromLeft(n, i)
		case i < len(n.children)-1 && len(n.children[i+1].keys) > t.minKeys():
			t.borrowFromRight(n, i)
		case i > 0:
			t.mergeChildren(n, i-1)
		default:
			t.mergeChildren(n, i)
		}
	}
}
