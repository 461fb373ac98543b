package bptree

import (
	"fmt"

	"treestore/internal/printer"
	"treestore/ordered"
)

type printNode[K ordered.Key, V any] struct{ n bnode[K, V] }

func (p printNode[K, V]) DisplayName() string {
	switch n := p.n.(type) {
	case *leafNode[K, V]:
		return fmt.Sprint(n.keys)
	case *internalNode[K, V]:
		return fmt.Sprint(n.keys)
	default:
		return "?"
	}
}

func (p printNode[K, V]) Children() []printer.MultiwayNode {
	in, ok := p.n.(*internalNode[K, V])
	if !ok {
		return nil
	}
	out := make([]printer.MultiwayNode, len(in.children))
	for i, c := range in.children {
		out[i] = printNode[K, V]{n: c}
	}
	return out
}

// PrintNode exposes the tree's root to the printer collaborator.
func (t *Tree[K, V]) PrintNode() printer.MultiwayNode {
	return printNode[K, V]{n: t.root}
}
