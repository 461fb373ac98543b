package btree

import "treestore/ordered"

// BulkLoad constructs a B-Tree from a pre-sorted, strictly ascending
// sequence in linear time. Unordered input is a programmer
// error; every adjacent pair is checked and a violation panics.
func BulkLoad[K ordered.Key, V any](entries []ordered.Entry[K, V], order int) *Tree[K, V] {
	if order < 3 {
		panic("btree: order must be >= 3")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			panic("btree: BulkLoad requires strictly ascending input")
		}
	}

	t := &Tree[K, V]{order: order, count: len(entries)}
	maxKeys := order - 1
	minKeys := (order+1)/2 - 1

	if len(entries) == 0 {
		t.root = newNode[K, V](order)
		t.count = 0
		return t
	}
	if len(entries) <= maxKeys {
		leaf := newNode[K, V](order)
		for _, e := range entries {
			leaf.keys = append(leaf.keys, e.Key)
			leaf.values = append(leaf.values, e.Value)
		}
		t.root = leaf
		return t
	}

	children, seps := buildLeafLevel(entries, order, minKeys, maxKeys)
	for len(children) > order {
		children, seps = buildInternalLevel(children, seps, order, minKeys, maxKeys)
	}

	root := newNode[K, V](order)
	root.children = append(root.children, children...)
	for _, e := range seps {
		root.keys = append(root.keys, e.Key)
		root.values = append(root.values, e.Value)
	}
	t.root = root
	return t
}

// buildLeafLevel groups entries into leaves of exactly `order` items,
// reserving the last item of each group as the separator promoted to
// the parent level, then redistributes the final
// leaf with its predecessor if it came up short (step 3).
func buildLeafLevel[K ordered.Key, V any](entries []ordered.Entry[K, V], order, minKeys, maxKeys int) ([]*node[K, V], []ordered.Entry[K, V]) {
	var leaves []*node[K, V]
	var seps []ordered.Entry[K, V]

	pos := 0
	for len(entries)-pos >= order {
		group := entries[pos : pos+order]
		leaf := newNode[K, V](order)
		for _, e := range group[:order-1] {
			leaf.keys = append(leaf.keys, e.Key)
			leaf.values = append(leaf.values, e.Value)
		}
		leaves = append(leaves, leaf)
		seps = append(seps, group[order-1])
		pos += order
	}

	final := newNode[K, V](order)
	for _, e := range entries[pos:] {
		final.keys = append(final.keys, e.Key)
		final.values = append(final.values, e.Value)
	}
	leaves = append(leaves, final)

	if len(leaves) >= 2 && len(final.keys) < minKeys {
		redistributeTailLeaves(leaves, seps, minKeys, maxKeys)
	}
	return leaves, seps
}

// redistributeTailLeaves pools the last two leaves with their
// connecting separator and splits the pool back into two leaves, each
// within [minKeys, maxKeys], picking a fresh separator from the pool.
func redistributeTailLeaves[K ordered.Key, V any](leaves []*node[K, V], seps []ordered.Entry[K, V], minKeys, maxKeys int) {
	prev := leaves[len(leaves)-2]
	last := leaves[len(leaves)-1]
	sep := seps[len(seps)-1]

	poolKeys := append(append(append([]K{}, prev.keys...), sep.Key), last.keys...)
	poolValues := append(append(append([]V{}, prev.values...), sep.Value), last.values...)

	left := splitPoint(len(poolKeys), minKeys, maxKeys)
	prev.keys = append([]K{}, poolKeys[:left]...)
	prev.values = append([]V{}, poolValues[:left]...)
	last.keys = append([]K{}, poolKeys[left+1:]...)
	last.values = append([]V{}, poolValues[left+1:]...)
	seps[len(seps)-1] = ordered.Entry[K, V]{Key: poolKeys[left], Value: poolValues[left]}
}

// splitPoint picks how many of a pooled set of keys should go to the
// left half so that both halves (left, and pool-left-1 on the right)
// land within [minKeys, maxKeys].
func splitPoint(poolSize, minKeys, maxKeys int) int {
	left := poolSize / 2
	if left < minKeys {
		left = minKeys
	}
	if left > maxKeys {
		left = maxKeys
	}
	right := poolSize - left - 1
	if right < minKeys {
		left -= minKeys - right
	} else if right > maxKeys {
		left += right - maxKeys
	}
	return left
}

// buildInternalLevel groups a level's children and connecting
// separators into parent nodes of exactly `order` children each,
// promoting the boundary separator between consecutive groups, then
// redistributes an underfull final group with its predecessor.
func buildInternalLevel[K ordered.Key, V any](children []*node[K, V], seps []ordered.Entry[K, V], order, minKeys, maxKeys int) ([]*node[K, V], []ordered.Entry[K, V]) {
	var parents []*node[K, V]
	var newSeps []ordered.Entry[K, V]

	pos := 0
	for len(children)-pos >= order {
		p := newNode[K, V](order)
		p.children = append(p.children, children[pos:pos+order]...)
		for j := pos; j < pos+order-1; j++ {
			p.keys = append(p.keys, seps[j].Key)
			p.values = append(p.values, seps[j].Value)
		}
		parents = append(parents, p)
		boundary := pos + order - 1
		if boundary < len(seps) {
			newSeps = append(newSeps, seps[boundary])
		}
		pos += order
	}

	remaining := children[pos:]
	if len(remaining) == 0 {
		return parents, newSeps
	}
	final := newNode[K, V](order)
	final.children = append(final.children, remaining...)
	for j := pos; j < pos+len(remaining)-1; j++ {
		final.keys = append(final.keys, seps[j].Key)
		final.values = append(final.values, seps[j].Value)
	}
	parents = append(parents, final)

	if len(parents) >= 2 && len(final.keys) < minKeys {
		redistributeTailInternal(parents, newSeps, minKeys, maxKeys)
	}
	return parents, newSeps
}

func redistributeTailInternal[K ordered.Key, V any](parents []*node[K, V], newSeps []ordered.Entry[K, V], minKeys, maxKeys int) {
	prev := parents[len(parents)-2]
	last := parents[len(parents)-1]
	sep := newSeps[len(newSeps)-1]

	poolKeys := append(append(append([]K{}, prev.keys...), sep.Key), last.keys...)
	poolValues := append(append(append([]V{}, prev.values...), sep.Value), last.values...)
	poolChildren := append(append([]*node[K, V]{}, prev.children...), last.children...)

	left := splitPoint(len(poolKeys), minKeys, maxKeys)
	prev.keys = append([]K{}, poolKeys[:left]...)
	prev.values = append([]V{}, poolValues[:left]...)
	prev.children = append([]*node[K, V]{}, poolChildren[:left+1]...)
	last.keys = append([]K{}, poolKeys[left+1:]...)
	last.values = append([]V{}, poolValues[left+1:]...)
	last.children = append([]*node[K, V]{}, poolChildren[left+1:]...)
	newSeps[len(newSeps)-1] = ordered.Entry[K, V]{Key: poolKeys[left], Value: poolValues[left]}
}
