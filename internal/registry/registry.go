// Package registry maps table names to ordered collections, choosing
// the backing engine (B-Tree, B+Tree, or splay tree) at creation time.
// Adapted from the table-name-to-id mapping in the original catalog,
// minus the on-disk blob persistence: every table here lives entirely
// in memory.
package registry

import (
	"fmt"
	"sync"

	"treestore/bptree"
	"treestore/btree"
	"treestore/ordered"
	"treestore/splay"
)

// Kind names the engine backing a table.
type Kind string

const (
	KindBTree  Kind = "btree"
	KindBPTree Kind = "bptree"
	KindSplay  Kind = "splay"
)

const defaultOrder = 16

// Registry holds every named table for one running instance of the
// demonstrator. V is shared across all tables; the server/HTTP layers
// instantiate Registry[string].
//
// Registry's own methods perform no locking: every access — one
// command or a whole multi-command transaction — must happen while a
// Tx is held. This replaces a separate writer-only mutex with the
// registry's own RWMutex, so a read-only Tx can run concurrently with
// other readers and a write Tx excludes both.
type Registry[V any] struct {
	mu     sync.RWMutex
	tables map[string]ordered.Collection[string, V]
	kinds  map[string]Kind
}

func New[V any]() *Registry[V] {
	return &Registry[V]{
		tables: make(map[string]ordered.Collection[string, V]),
		kinds:  make(map[string]Kind),
	}
}

// Tx holds the registry's lock for the duration of one command or one
// explicit multi-command transaction. Begin it with Registry.Begin and
// release it with exactly one of Commit or Abort.
type Tx[V any] struct {
	reg      *Registry[V]
	readOnly bool
	released bool
}

// Begin acquires the registry's lock: a write lock when readOnly is
// false, a read lock otherwise. Every table lookup and mutation must
// happen while the returned Tx is held.
func (r *Registry[V]) Begin(readOnly bool) *Tx[V] {
	if readOnly {
		r.mu.RLock()
	} else {
		r.mu.Lock()
	}
	return &Tx[V]{reg: r, readOnly: readOnly}
}

// Commit releases the lock. Since the registry keeps no undo log,
// Commit and Abort differ only in intent, not effect — any mutation
// already applied during the Tx stays applied either way.
func (t *Tx[V]) Commit() { t.release() }

// Abort releases the lock without retracting any work already done
// under it.
func (t *Tx[V]) Abort() { t.release() }

func (t *Tx[V]) release() {
	if t.released {
		return
	}
	t.released = true
	if t.readOnly {
		t.reg.mu.RUnlock()
	} else {
		t.reg.mu.Unlock()
	}
}

// Create adds a new, empty table of the given kind. order is ignored
// for splay trees; an order below 3 for btree/bptree falls back to
// the default of 16. Caller must hold a write Tx.
func (r *Registry[V]) Create(name string, kind Kind, order int) error {
	if _, exists := r.tables[name]; exists {
		return fmt.Errorf("table %s already exists", name)
	}

	var c ordered.Collection[string, V]
	switch kind {
	case KindBTree:
		c = btree.New[string, V](normalizeOrder(order))
	case KindBPTree:
		c = bptree.New[string, V](normalizeOrder(order))
	case KindSplay:
		c = splay.New[string, V]()
	default:
		return fmt.Errorf("unknown table kind %q", kind)
	}

	r.tables[name] = c
	r.kinds[name] = kind
	return nil
}

func normalizeOrder(order int) int {
	if order < 3 {
		return defaultOrder
	}
	return order
}

// Drop removes a table entirely. Caller must hold a write Tx.
func (r *Registry[V]) Drop(name string) error {
	if _, ok := r.tables[name]; !ok {
		return fmt.Errorf("table %s not found", name)
	}
	delete(r.tables, name)
	delete(r.kinds, name)
	return nil
}

// Rename moves a table to a new name, failing if old is absent or
// newName is already taken. Caller must hold a write Tx.
func (r *Registry[V]) Rename(old, newName string) error {
	c, ok := r.tables[old]
	if !ok {
		return fmt.Errorf("table %s not found", old)
	}
	if _, exists := r.tables[newName]; exists {
		return fmt.Errorf("table %s already exists", newName)
	}
	r.tables[newName] = c
	r.kinds[newName] = r.kinds[old]
	delete(r.tables, old)
	delete(r.kinds, old)
	return nil
}

// Truncate empties a table in place without changing its engine kind.
// Caller must hold a write Tx.
func (r *Registry[V]) Truncate(name string) error {
	c, ok := r.tables[name]
	if !ok {
		return fmt.Errorf("table %s not found", name)
	}
	c.Clear()
	return nil
}

// Put registers an already-constructed collection under name, failing
// if the name is taken. Used by SPLIT to install the new table
// produced by splitting an existing splay tree. Caller must hold a
// write Tx.
func (r *Registry[V]) Put(name string, kind Kind, c ordered.Collection[string, V]) error {
	if _, exists := r.tables[name]; exists {
		return fmt.Errorf("table %s already exists", name)
	}
	r.tables[name] = c
	r.kinds[name] = kind
	return nil
}

// Get returns the named table's collection, or false if it does not
// exist. Caller must hold a Tx (read-only is sufficient).
func (r *Registry[V]) Get(name string) (ordered.Collection[string, V], bool) {
	c, ok := r.tables[name]
	return c, ok
}

// Kind reports the engine kind a table was created with. Caller must
// hold a Tx (read-only is sufficient).
func (r *Registry[V]) Kind(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// List returns every table name, unordered. Caller must hold a Tx
// (read-only is sufficient).
func (r *Registry[V]) List() []string {
	out := make([]string, 0, len(r.tables))
	for name := range r.tables {
		out = append(out, name)
	}
	return out
}
