package bptree

import (
	"testing"

	"treestore/internal/arena"
)

// This file lives in package bptree (not bptree_test) because
// NewPooled's pool type names the unexported leafNode type.

func TestNewPooledSharesLeafAllocations(t *testing.T) {
	pool := arena.New[leafNode[int, string]]()
	tr := NewPooled[int, string](4, pool)

	for i := 1; i <= 50; i++ {
		tr.Insert(i, "v")
	}
	if tr.Count() != 50 {
		t.Fatalf("got count %d, want 50", tr.Count())
	}
	for i := 1; i <= 50; i++ {
		if _, ok := tr.Search(i); !ok {
			t.Fatalf("missing key %d after pooled inserts", i)
		}
	}

	for i := 1; i <= 50; i++ {
		if _, ok := tr.Remove(i); !ok {
			t.Fatalf("Remove(%d) failed", i)
		}
	}
	if !tr.IsEmpty() {
		t.Fatalf("tree should be empty after removing every key")
	}
	// Deletions that merge/free leaves should have returned at least one
	// leaf to the pool for Insert's splits to reuse.
	if pool.Len() == 0 {
		t.Fatalf("expected the free list to hold reclaimed leaves")
	}
}

func TestNewPooledReusesFreedLeaves(t *testing.T) {
	pool := arena.New[leafNode[int, string]]()
	tr := NewPooled[int, string](4, pool)
	for i := 1; i <= 20; i++ {
		tr.Insert(i, "v")
	}
	for i := 1; i <= 15; i++ {
		tr.Remove(i)
	}
	before := pool.Len()
	if before == 0 {
		t.Fatalf("expected freed leaves on the pool before reinserting")
	}

	for i := 100; i <= 110; i++ {
		tr.Insert(i, "v")
	}
	// The pool should have been drawn down by subsequent splits/allocs,
	// not grown unboundedly — some reuse must have happened.
	if pool.Len() >= before {
		t.Fatalf("pool did not shrink (%d -> %d); no freed leaf was reused", before, pool.Len())
	}
}
