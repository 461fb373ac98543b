package arena

import "testing"

func TestGetAllocatesWhenEmpty(t *testing.T) {
	p := New[int]()
	if p.Len() != 0 {
		t.Fatalf("fresh pool should be empty, got len %d", p.Len())
	}
	v := p.Get()
	if v == nil {
		t.Fatalf("Get returned nil")
	}
	if *v != 0 {
		t.Fatalf("allocated value should be zeroed, got %d", *v)
	}
}

func TestPutThenGetReusesValue(t *testing.T) {
	p := New[int]()
	v := p.Get()
	*v = 42
	p.Put(v)
	if p.Len() != 1 {
		t.Fatalf("pool should hold 1 free value, got %d", p.Len())
	}

	reused := p.Get()
	if reused != v {
		t.Fatalf("Get should return the same pointer just Put back")
	}
	if *reused != 0 {
		t.Fatalf("reused value should be re-zeroed, got %d", *reused)
	}
	if p.Len() != 0 {
		t.Fatalf("pool should be drained after Get, got len %d", p.Len())
	}
}

func TestPutThenGetManyFollowsLifoOrder(t *testing.T) {
	p := New[int]()
	a, b := new(int), new(int)
	p.Put(a)
	p.Put(b)
	if p.Len() != 2 {
		t.Fatalf("expected 2 free values, got %d", p.Len())
	}
	first := p.Get()
	if first != b {
		t.Fatalf("Get should return the most recently Put value first")
	}
}
