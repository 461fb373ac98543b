package splay_test

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"treestore/ordered"
	"treestore/splay"
)

func TestInsertSearchContains(t *testing.T) {
	tr := splay.New[int, string]()
	for i := 1; i <= 20; i++ {
		tr.Insert(i, "v")
	}
	for i := 1; i <= 20; i++ {
		if _, ok := tr.Search(i); !ok {
			t.Fatalf("Search(%d) missing after insert", i)
		}
		if !tr.Contains(i) {
			t.Fatalf("Contains(%d) false after insert", i)
		}
	}
	if tr.Contains(21) {
		t.Fatal("Contains(21) true but never inserted")
	}
	assertInvariants(t, tr)
}

// S4: insert 2, then 3; search(2) moves 2 to the root with 3 as its
// right child; a subsequent search(3) rotates 3 back to the root with
// 2 as its left child.
func TestScenarioS4(t *testing.T) {
	tr := splay.New[int, int]()
	tr.Insert(2, 2)
	tr.Insert(3, 3)

	tr.Search(2)
	root := tr.PrintNode()
	if root.DisplayName() != "2" {
		t.Fatalf("after search(2), root = %s, want 2", root.DisplayName())
	}
	right, ok := root.Right()
	if !ok || right.DisplayName() != "3" {
		t.Fatalf("after search(2), root.right = %v, want 3", right)
	}
	if _, ok := root.Left(); ok {
		t.Fatal("after search(2), root should have no left child")
	}

	tr.Search(3)
	root = tr.PrintNode()
	if root.DisplayName() != "3" {
		t.Fatalf("after search(3), root = %s, want 3", root.DisplayName())
	}
	left, ok := root.Left()
	if !ok || left.DisplayName() != "2" {
		t.Fatalf("after search(3), root.left = %v, want 2", left)
	}
}

// S5: A={1,2,3}, B={4,5,6,7}; A.Join(B) succeeds, leaving A=[1..7] and
// B empty; a subsequent join against an overlapping set fails without
// mutating either side.
func TestScenarioS5(t *testing.T) {
	a := splay.New[int, int]()
	for _, k := range []int{1, 2, 3} {
		a.Insert(k, k)
	}
	b := splay.New[int, int]()
	for _, k := range []int{4, 5, 6, 7} {
		b.Insert(k, k)
	}

	if !a.Join(b) {
		t.Fatal("Join on disjoint, correctly-ordered trees should succeed")
	}
	if !b.IsEmpty() {
		t.Fatal("Join should drain the absorbed tree")
	}
	if a.Count() != 7 {
		t.Fatalf("Count() after join = %d, want 7", a.Count())
	}
	gotKeys := a.Keys()
	wantKeys := []int{1, 2, 3, 4, 5, 6, 7}
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Fatalf("Keys() after join = %v, want %v", gotKeys, wantKeys)
	}

	c := splay.New[int, int]()
	for _, k := range []int{3, 4, 5} {
		c.Insert(k, k)
	}
	countBefore := a.Count()
	cKeysBefore := c.Keys()
	if a.Join(c) {
		t.Fatal("Join across overlapping ranges should fail")
	}
	if a.Count() != countBefore {
		t.Fatalf("failed Join mutated receiver count: %d, want %d", a.Count(), countBefore)
	}
	if !reflect.DeepEqual(c.Keys(), cKeysBefore) {
		t.Fatal("failed Join mutated the argument's contents")
	}
}

func TestSplitPartitionsCorrectly(t *testing.T) {
	tr := splay.New[int, int]()
	for i := 1; i <= 20; i++ {
		tr.Insert(i, i*i)
	}
	right := tr.Split(10)

	if tr.Count() != 9 || right.Count() != 11 {
		t.Fatalf("Split(10) counts = %d/%d, want 9/11", tr.Count(), right.Count())
	}
	for _, k := range tr.Keys() {
		if k >= 10 {
			t.Fatalf("left half contains key %d >= 10", k)
		}
	}
	for _, k := range right.Keys() {
		if k < 10 {
			t.Fatalf("right half contains key %d < 10", k)
		}
	}
	for i := 1; i <= 20; i++ {
		var v int
		var ok bool
		if i < 10 {
			v, ok = tr.Search(i)
		} else {
			v, ok = right.Search(i)
		}
		if !ok || v != i*i {
			t.Fatalf("value for %d = %v, %v, want %d, true", i, v, ok, i*i)
		}
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	tr := splay.New[int, int]()
	for i := 0; i < 200; i++ {
		tr.Insert(i, i*i)
	}
	before := tr.Elements()
	if !tr.Insert(500, 1) {
		t.Fatal("Insert(500) reported a collision on a fresh key")
	}
	if _, ok := tr.Remove(500); !ok {
		t.Fatal("Remove(500) reported absent immediately after insert")
	}
	if tr.Count() != 200 {
		t.Fatalf("Count() = %d, want 200", tr.Count())
	}
	after := tr.Elements()
	if !reflect.DeepEqual(before, after) {
		t.Fatal("element set changed across insert/remove round trip")
	}
	assertInvariants(t, tr)
}

func TestUpsertEquivalence(t *testing.T) {
	tr := splay.New[int, int]()
	if _, existed := tr.Upsert(1, 10); existed {
		t.Fatal("Upsert on absent key reported existed=true")
	}
	old, existed := tr.Upsert(1, 20)
	if !existed || old != 10 {
		t.Fatalf("Upsert on present key = %v, %v, want 10, true", old, existed)
	}
	if v, _ := tr.Search(1); v != 20 {
		t.Fatalf("Search(1) after second Upsert = %v, want 20", v)
	}
}

func TestSubscriptEquivalence(t *testing.T) {
	tr := splay.New[int, int]()
	tr.Set(1, 100)
	if v, ok := tr.Get(1); !ok || v != 100 {
		t.Fatalf("Get(1) = %v, %v, want 100, true", v, ok)
	}
	tr.Delete(1)
	if tr.Contains(1) {
		t.Fatal("Contains(1) true after Delete")
	}
}

func TestNeighborLaws(t *testing.T) {
	tr := splay.New[int, int]()
	for _, k := range []int{10, 20, 30, 40, 50} {
		tr.Insert(k, k)
	}
	if e, ok := tr.Floor(30); !ok || e.Key != 30 {
		t.Fatalf("Floor(30) = %+v, %v, want key 30", e, ok)
	}
	if e, ok := tr.Floor(25); !ok || e.Key != 20 {
		t.Fatalf("Floor(25) = %+v, %v, want key 20", e, ok)
	}
	if e, ok := tr.Ceiling(30); !ok || e.Key != 30 {
		t.Fatalf("Ceiling(30) = %+v, %v, want key 30", e, ok)
	}
	if e, ok := tr.Ceiling(31); !ok || e.Key != 40 {
		t.Fatalf("Ceiling(31) = %+v, %v, want key 40", e, ok)
	}
	if _, ok := tr.Ceiling(51); ok {
		t.Fatal("Ceiling(51) should be absent")
	}
	if _, ok := tr.Floor(5); ok {
		t.Fatal("Floor(5) should be absent")
	}
	if e, ok := tr.Predecessor(30); !ok || e.Key != 20 {
		t.Fatalf("Predecessor(30) = %+v, %v, want key 20", e, ok)
	}
	if e, ok := tr.Successor(30); !ok || e.Key != 40 {
		t.Fatalf("Successor(30) = %+v, %v, want key 40", e, ok)
	}
	if _, ok := tr.Predecessor(10); ok {
		t.Fatal("Predecessor(10) should be absent")
	}
	if _, ok := tr.Successor(50); ok {
		t.Fatal("Successor(50) should be absent")
	}
}

func TestRangeCorrectness(t *testing.T) {
	tr := splay.New[int, int]()
	for i := 1; i <= 50; i++ {
		tr.Insert(i, i)
	}
	got := tr.Range(10, 20)
	var want []ordered.Entry[int, int]
	for _, e := range tr.Elements() {
		if e.Key >= 10 && e.Key <= 20 {
			want = append(want, e)
		}
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Range(10,20) = %v, want %v", got, want)
	}
}

func TestReversedIsReverseOfElements(t *testing.T) {
	tr := splay.New[int, int]()
	for i := 0; i < 40; i++ {
		tr.Insert(i, i)
	}
	fwd := tr.Elements()
	rev := tr.Reversed()
	if len(fwd) != len(rev) {
		t.Fatalf("len mismatch: %d vs %d", len(fwd), len(rev))
	}
	for i := range fwd {
		if fwd[i] != rev[len(rev)-1-i] {
			t.Fatalf("Reversed() is not the reverse of Elements() at %d", i)
		}
	}
}

func TestElementsSeqMatchesElements(t *testing.T) {
	tr := splay.New[int, int]()
	for i := 0; i < 40; i++ {
		tr.Insert(i*7%97, i)
	}
	want := tr.Elements()
	var got []ordered.Entry[int, int]
	for e := range tr.ElementsSeq() {
		got = append(got, e)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ElementsSeq() = %v, want %v", got, want)
	}
}

func TestRandomizedAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	tr := splay.New[int, int]()
	reference := map[int]int{}

	for round := 0; round < 2000; round++ {
		k := rng.Intn(300)
		if rng.Intn(3) == 0 {
			_, wantExisted := reference[k]
			if _, existed := tr.Remove(k); existed != wantExisted {
				t.Fatalf("round %d: Remove(%d) existed=%v, want %v", round, k, existed, wantExisted)
			}
			delete(reference, k)
		} else {
			v := rng.Intn(1_000_000)
			tr.Upsert(k, v)
			reference[k] = v
		}

		if round%200 == 0 {
			assertInvariants(t, tr)
			if tr.Count() != len(reference) {
				t.Fatalf("round %d: Count() = %d, want %d", round, tr.Count(), len(reference))
			}
			for _, e := range tr.Elements() {
				if reference[e.Key] != e.Value {
					t.Fatalf("round %d: key %d has value %d, reference says %d", round, e.Key, e.Value, reference[e.Key])
				}
			}
		}
	}
}

// assertInvariants checks the universal ordering/count invariants plus
// the splay-to-root property: searching any present key leaves it at
// the root.
func assertInvariants[V comparable](t *testing.T, tr *splay.Tree[int, V]) {
	t.Helper()

	elems := tr.Elements()
	for i := 1; i < len(elems); i++ {
		if elems[i-1].Key >= elems[i].Key {
			t.Fatalf("elements not strictly ascending at %d: %v >= %v", i, elems[i-1].Key, elems[i].Key)
		}
	}
	if tr.Count() != len(elems) || tr.Count() != len(tr.Keys()) || tr.Count() != len(tr.Values()) {
		t.Fatalf("count disagreement: Count()=%d len(Elements())=%d", tr.Count(), len(elems))
	}
	if tr.Count() > 0 {
		mn, _ := tr.Min()
		mx, _ := tr.Max()
		if mn != elems[0] {
			t.Fatalf("Min() = %+v, want %+v", mn, elems[0])
		}
		if mx != elems[len(elems)-1] {
			t.Fatalf("Max() = %+v, want %+v", mx, elems[len(elems)-1])
		}
	}
	for _, e := range elems {
		tr.Search(e.Key)
		if root := tr.PrintNode(); root == nil || root.DisplayName() != fmt.Sprint(e.Key) {
			t.Fatalf("Search(%v) did not splay it to the root", e.Key)
		}
	}
}
