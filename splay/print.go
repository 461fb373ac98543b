package splay

import (
	"fmt"

	"treestore/internal/printer"
	"treestore/ordered"
)

// printNode adapts a splayNode to printer.BinaryNode.
type printNode[K ordered.Key, V any] struct {
	n *splayNode[K, V]
}

func (p printNode[K, V]) DisplayName() string {
	return fmt.Sprintf("%v", p.n.key)
}

func (p printNode[K, V]) Left() (printer.BinaryNode, bool) {
	if p.n.left == nil {
		return nil, false
	}
	return printNode[K, V]{p.n.left}, true
}

func (p printNode[K, V]) Right() (printer.BinaryNode, bool) {
	if p.n.right == nil {
		return nil, false
	}
	return printNode[K, V]{p.n.right}, true
}

// PrintNode exposes the tree to internal/printer for the REPL's PRINT
// command.
func (t *Tree[K, V]) PrintNode() printer.BinaryNode {
	if t.root == nil {
		return nil
	}
	return printNode[K, V]{t.root}
}
