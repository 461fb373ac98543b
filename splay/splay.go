package splay

import "treestore/ordered"

// splay brings the node with key k to the root, using the classic
// top-down construction: a sentinel node whose left/right
// children serve as the heads of two accumulator chains, plus
// leftTail/rightTail pointers to their current attachment points.
//
// Heading right past a node smaller than k peels it off into the
// chain that becomes the new root's left subtree (threaded through
// leftTail.right); heading left past a node larger than k peels it
// into the chain that becomes the right subtree (threaded through
// rightTail.left). A zig-zig or zag-zag (two consecutive steps in the
// same direction) is first collapsed with a single rotation before the
// generic attach-and-descend step — the reason splaying amortizes to
// logarithmic cost instead of degrading to a linked list.
func (t *Tree[K, V]) splay(k K) {
	if t.root == nil {
		return
	}

	var sentinel splayNode[K, V]
	leftTail := &sentinel
	rightTail := &sentinel
	current := t.root

loop:
	for {
		switch {
		case k < current.key:
			if current.left == nil {
				break loop
			}
			if k < current.left.key {
				current = rotateRight(current)
				if current.left == nil {
					break loop
				}
			}
			rightTail.left = current
			rightTail = current
			current = current.left

		case k > current.key:
			if current.right == nil {
				break loop
			}
			if k > current.right.key {
				current = rotateLeft(current)
				if current.right == nil {
					break loop
				}
			}
			leftTail.right = current
			leftTail = current
			current = current.right

		default:
			break loop
		}
	}

	leftTail.right = current.left
	rightTail.left = current.right
	current.left = sentinel.right
	current.right = sentinel.left
	t.root = current
}

// rotateRight promotes n.left above n: n.left.right becomes n's new
// left child, then n hangs off the promoted node's right.
func rotateRight[K ordered.Key, V any](n *splayNode[K, V]) *splayNode[K, V] {
	y := n.left
	n.left = y.right
	y.right = n
	return y
}

// rotateLeft is rotateRight's mirror image.
func rotateLeft[K ordered.Key, V any](n *splayNode[K, V]) *splayNode[K, V] {
	y := n.right
	n.right = y.left
	y.left = n
	return y
}
