package bptree

import "treestore/ordered"

// BulkLoad constructs a B+Tree from a pre-sorted, strictly ascending
// sequence in linear time. Unordered input is a
// programmer error.
func BulkLoad[K ordered.Key, V any](entries []ordered.Entry[K, V], order int) *Tree[K, V] {
	if order < 3 {
		panic("bptree: order must be >= 3")
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			panic("bptree: BulkLoad requires strictly ascending input")
		}
	}

	t := &Tree[K, V]{order: order, count: len(entries)}
	maxKeys := order - 1
	minKeys := (order+1)/2 - 1

	if len(entries) == 0 {
		t.root = newLeaf[K, V]()
		t.count = 0
		return t
	}

	leaves := buildLeafChain(entries, order, minKeys)
	if len(leaves) == 1 {
		t.root = leaves[0]
		return t
	}

	children := make([]bnode[K, V], len(leaves))
	seps := make([]K, len(leaves)-1)
	for i, l := range leaves {
		children[i] = l
		if i > 0 {
			seps[i-1] = l.keys[0]
		}
	}

	for len(children) > order {
		children, seps = buildInternalLevelBulk(children, seps, order, minKeys, maxKeys)
	}

	root := newInternal[K, V](order)
	root.children = append(root.children, children...)
	root.keys = append(root.keys, seps...)
	t.root = root
	return t
}

// buildLeafChain groups entries into leaves of exactly `order` items
// — a bulk-loaded leaf is allowed to pack up to a full m rather than
// m-1, since bulk-loading [1..16] at m=4 is expected to yield leaves
// of 4, not 3 — redistributes an
// underfull final leaf with its predecessor, and links the chain.
func buildLeafChain[K ordered.Key, V any](entries []ordered.Entry[K, V], order, minKeys int) []*leafNode[K, V] {
	var leaves []*leafNode[K, V]
	pos := 0
	for pos < len(entries) {
		end := pos + order
		if end > len(entries) {
			end = len(entries)
		}
		l := newLeaf[K, V]()
		for _, e := range entries[pos:end] {
			l.keys = append(l.keys, e.Key)
			l.values = append(l.values, e.Value)
		}
		leaves = append(leaves, l)
		pos = end
	}

	if len(leaves) >= 2 {
		last := leaves[len(leaves)-1]
		if len(last.keys) < minKeys {
			prev := leaves[len(leaves)-2]
			poolKeys := append(append([]K{}, prev.keys...), last.keys...)
			poolValues := append(append([]V{}, prev.values...), last.values...)
			left := leafSplitPoint(len(poolKeys), minKeys, order)
			prev.keys = append([]K{}, poolKeys[:left]...)
			prev.values = append([]V{}, poolValues[:left]...)
			last.keys = append([]K{}, poolKeys[left:]...)
			last.values = append([]V{}, poolValues[left:]...)
		}
	}

	for i := 0; i+1 < len(leaves); i++ {
		leaves[i].next = leaves[i+1]
		leaves[i+1].prev = leaves[i]
	}
	return leaves
}

// leafSplitPoint balances a pooled pair of leaves with no separator
// slot to reserve (unlike the internal-level split, a B+Tree leaf pair
// doesn't give up a key to the parent — separators there are copies).
func leafSplitPoint(poolSize, minKeys, maxKeys int) int {
	left := poolSize / 2
	if left < minKeys {
		left = minKeys
	}
	if left > maxKeys {
		left = maxKeys
	}
	right := poolSize - left
	if right < minKeys {
		left -= minKeys - right
	} else if right > maxKeys {
		left += right - maxKeys
	}
	return left
}

// buildInternalLevelBulk groups a level's children and their copied
// separators into parent nodes of exactly `order` children each — the
// first child of every internal node contributes no separator of its
// own — then redistributes an underfull final group with its
// predecessor.
func buildInternalLevelBulk[K ordered.Key, V any](children []bnode[K, V], seps []K, order, minKeys, maxKeys int) ([]bnode[K, V], []K) {
	var parents []bnode[K, V]
	var newSeps []K

	pos := 0
	for len(children)-pos >= order {
		p := newInternal[K, V](order)
		p.children = append(p.children, children[pos:pos+order]...)
		p.keys = append(p.keys, seps[pos:pos+order-1]...)
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
	final := newInternal[K, V](order)
	final.children = append(final.children, remaining...)
	final.keys = append(final.keys, seps[pos:pos+len(remaining)-1]...)
	parents = append(parents, final)

	if len(parents) >= 2 && len(final.keys) < minKeys {
		redistributeTailInternalBulk(parents, newSeps, minKeys, maxKeys)
	}
	return parents, newSeps
}

func redistributeTailInternalBulk[K ordered.Key, V any](parents []bnode[K, V], newSeps []K, minKeys, maxKeys int) {
	prev := parents[len(parents)-2].(*internalNode[K, V])
	last := parents[len(parents)-1].(*internalNode[K, V])
	sep := newSeps[len(newSeps)-1]

	poolKeys := append(append(append([]K{}, prev.keys...), sep), last.keys...)
	poolChildren := append(append([]bnode[K, V]{}, prev.children...), last.children...)

	left := splitPointReserving(len(poolKeys), minKeys, maxKeys)
	prev.keys = append([]K{}, poolKeys[:left]...)
	prev.children = append([]bnode[K, V]{}, poolChildren[:left+1]...)
	last.keys = append([]K{}, poolKeys[left+1:]...)
	last.children = append([]bnode[K, V]{}, poolChildren[left+1:]...)
	newSeps[len(newSeps)-1] = poolKeys[left]
}

// splitPointReserving is leafSplitPoint's counterpart for levels where
// one pooled key is consumed as the new connecting separator.
func splitPointReserving(poolSize, minKeys, maxKeys int) int {
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
