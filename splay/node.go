// Package splay implements a top-down splay tree: a self-adjusting
// binary search tree that moves the most recently accessed key to the
// root on every operation, including reads.
package splay

import "treestore/ordered"

type splayNode[K ordered.Key, V any] struct {
	key         K
	value       V
	left, right *splayNode[K, V]
}
