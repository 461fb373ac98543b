// Package dispatch executes parsed commands against a registry,
// wrapping every command in an implicit transaction — write for
// mutating commands, read-only otherwise — when the caller hasn't
// opened one explicitly. It is the single place the REPL and the TCP
// server both route through, so the two line-protocol front ends can't
// drift on command semantics. The HTTP server does not use it; it
// calls the registry directly.
package dispatch

import (
	"fmt"
	"strconv"
	"strings"

	"treestore/internal/command"
	"treestore/internal/printer"
	"treestore/internal/registry"
	"treestore/ordered"
	"treestore/splay"
)

// mutating lists every command that changes a table or the registry
// itself and therefore needs a write transaction around it.
var mutating = map[string]bool{
	"CREATE": true, "DROP": true, "RENAME": true, "TRUNCATE": true,
	"INSERT": true, "UPDATE": true, "UPSERT": true, "REMOVE": true,
	"CLEAR": true, "SPLIT": true, "JOIN": true,
}

// Session tracks one client's (or the REPL's) transaction state across
// a sequence of dispatched commands. Every command, implicit or
// explicit, runs while a registry.Tx is held: a single-command
// dispatch begins and releases its own Tx, while an explicit
// BEGIN/COMMIT/ABORT block holds one Tx across several commands.
type Session struct {
	reg      *registry.Registry[string]
	tx       *registry.Tx[string]
	inTx     bool
	readOnly bool
}

func NewSession(reg *registry.Registry[string]) *Session {
	return &Session{reg: reg}
}

// InTx reports whether an explicit transaction is open.
func (s *Session) InTx() bool { return s.inTx }

// Close aborts any transaction left open when a connection or REPL
// exits without an explicit COMMIT/ABORT.
func (s *Session) Close() {
	if s.inTx && s.tx != nil {
		s.tx.Abort()
	}
	s.tx, s.inTx, s.readOnly = nil, false, false
}

// Dispatch runs one parsed command and returns the output lines to
// send back to the caller.
func (s *Session) Dispatch(cmd command.Command) []string {
	switch cmd.Name {
	case "BEGIN":
		return s.begin(cmd)
	case "COMMIT":
		return s.commit()
	case "ABORT":
		return s.abort()
	}

	if s.inTx && s.readOnly && mutating[cmd.Name] {
		return []string{"ERR: read-only transaction"}
	}

	implicit := !s.inTx
	if implicit {
		s.tx = s.reg.Begin(!mutating[cmd.Name])
	}
	out := s.execute(cmd)
	if implicit {
		s.tx.Commit()
		s.tx = nil
	}
	return out
}

func (s *Session) begin(cmd command.Command) []string {
	if s.inTx {
		return []string{"ERR: already in transaction"}
	}
	readOnly := len(cmd.Args) == 1 && cmd.Args[0] == "READONLY"
	s.tx = s.reg.Begin(readOnly)
	s.inTx = true
	s.readOnly = readOnly
	return []string{"OK"}
}

func (s *Session) commit() []string {
	if !s.inTx {
		return []string{"ERR: not in transaction"}
	}
	s.tx.Commit()
	s.tx, s.inTx, s.readOnly = nil, false, false
	return []string{"OK"}
}

func (s *Session) abort() []string {
	if !s.inTx {
		return []string{"ERR: not in transaction"}
	}
	s.tx.Abort()
	s.tx, s.inTx, s.readOnly = nil, false, false
	return []string{"OK"}
}

func errLine(err error) []string { return []string{"ERR: " + err.Error()} }

// execute runs every command except BEGIN/COMMIT/ABORT, which Dispatch
// handles directly since they touch Session state rather than a table.
func (s *Session) execute(cmd command.Command) []string {
	switch cmd.Name {
	case "CREATE":
		return s.create(cmd.Args)
	case "DROP":
		if err := s.reg.Drop(cmd.Args[0]); err != nil {
			return errLine(err)
		}
		return []string{"OK"}
	case "RENAME":
		if err := s.reg.Rename(cmd.Args[0], cmd.Args[1]); err != nil {
			return errLine(err)
		}
		return []string{"OK"}
	case "TRUNCATE":
		if err := s.reg.Truncate(cmd.Args[0]); err != nil {
			return errLine(err)
		}
		return []string{"OK"}
	case "TABLES":
		return s.reg.List()
	case "INSERT":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			if !c.Insert(cmd.Args[1], cmd.Args[2]) {
				return []string{"ERR: key already exists"}
			}
			return []string{"OK"}
		})
	case "UPDATE":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			if _, ok := c.Update(cmd.Args[1], cmd.Args[2]); !ok {
				return []string{"ERR: key not found"}
			}
			return []string{"OK"}
		})
	case "UPSERT":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			c.Upsert(cmd.Args[1], cmd.Args[2])
			return []string{"OK"}
		})
	case "REMOVE":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			if _, ok := c.Remove(cmd.Args[1]); !ok {
				return []string{"ERR: key not found"}
			}
			return []string{"OK"}
		})
	case "SEARCH":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			if v, ok := c.Search(cmd.Args[1]); ok {
				return []string{v}
			}
			return []string{"ERR: key not found"}
		})
	case "CLEAR":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			c.Clear()
			return []string{"OK"}
		})
	case "COUNT":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			return []string{strconv.Itoa(c.Count())}
		})
	case "MIN":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Min()
		})
	case "MAX":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Max()
		})
	case "FLOOR":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Floor(cmd.Args[1])
		})
	case "CEILING":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Ceiling(cmd.Args[1])
		})
	case "PREDECESSOR":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Predecessor(cmd.Args[1])
		})
	case "SUCCESSOR":
		return s.entryLookup(cmd.Args[0], func(c ordered.Collection[string, string]) (ordered.Entry[string, string], bool) {
			return c.Successor(cmd.Args[1])
		})
	case "RANGE":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			entries := c.Range(cmd.Args[1], cmd.Args[2])
			return entryLines(entries)
		})
	case "KEYS":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			return c.Keys()
		})
	case "VALUES":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			return c.Values()
		})
	case "ELEMENTS":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			return entryLines(c.Elements())
		})
	case "REVERSED":
		return s.withTable(cmd.Args[0], func(c ordered.Collection[string, string]) []string {
			return entryLines(c.Reversed())
		})
	case "SPLIT":
		return s.split(cmd.Args)
	case "JOIN":
		return s.join(cmd.Args)
	case "PRINT":
		return s.print(cmd.Args[0])
	default:
		return []string{"ERR: unknown command: " + cmd.Name}
	}
}

func (s *Session) create(args []string) []string {
	name, kindArg := args[0], strings.ToLower(args[1])
	var kind registry.Kind
	switch kindArg {
	case "btree":
		kind = registry.KindBTree
	case "bptree":
		kind = registry.KindBPTree
	case "splay":
		kind = registry.KindSplay
	default:
		return []string{"ERR: unknown table kind " + args[1]}
	}
	order := 0
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return []string{"ERR: bad order: " + args[2]}
		}
		order = n
	}
	if err := s.reg.Create(name, kind, order); err != nil {
		return errLine(err)
	}
	return []string{"OK"}
}

func (s *Session) withTable(name string, fn func(ordered.Collection[string, string]) []string) []string {
	c, ok := s.reg.Get(name)
	if !ok {
		return []string{"ERR: table " + name + " not found"}
	}
	return fn(c)
}

func (s *Session) entryLookup(name string, fn func(ordered.Collection[string, string]) (ordered.Entry[string, string], bool)) []string {
	return s.withTable(name, func(c ordered.Collection[string, string]) []string {
		e, ok := fn(c)
		if !ok {
			return []string{"ERR: not found"}
		}
		return []string{e.Key + "\t" + e.Value}
	})
}

func entryLines(entries []ordered.Entry[string, string]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key + "\t" + e.Value
	}
	return out
}

// split cuts the splay table name at key, registering the upper
// partition under newName. Only splay tables support SPLIT: the
// B-Tree and B+Tree engines don't expose a structural cut operation.
func (s *Session) split(args []string) []string {
	name, key, newName := args[0], args[1], args[2]
	c, ok := s.reg.Get(name)
	if !ok {
		return []string{"ERR: table " + name + " not found"}
	}
	tree, ok := c.(*splay.Tree[string, string])
	if !ok {
		return []string{"ERR: SPLIT requires a splay table"}
	}
	upper := tree.Split(key)
	if err := s.reg.Put(newName, registry.KindSplay, upper); err != nil {
		return errLine(err)
	}
	return []string{"OK"}
}

// join grafts otherName's table onto the end of name, draining
// otherName's table and dropping it on success.
func (s *Session) join(args []string) []string {
	name, otherName := args[0], args[1]
	c, ok := s.reg.Get(name)
	if !ok {
		return []string{"ERR: table " + name + " not found"}
	}
	tree, ok := c.(*splay.Tree[string, string])
	if !ok {
		return []string{"ERR: JOIN requires a splay table"}
	}
	otherC, ok := s.reg.Get(otherName)
	if !ok {
		return []string{"ERR: table " + otherName + " not found"}
	}
	other, ok := otherC.(*splay.Tree[string, string])
	if !ok {
		return []string{"ERR: JOIN requires a splay table"}
	}
	if !tree.Join(other) {
		return []string{"ERR: keys overlap or are out of order"}
	}
	_ = s.reg.Drop(otherName)
	return []string{"OK"}
}

func (s *Session) print(name string) []string {
	c, ok := s.reg.Get(name)
	if !ok {
		return []string{"ERR: table " + name + " not found"}
	}
	var rendered string
	switch t := c.(type) {
	case interface{ PrintNode() printer.MultiwayNode }:
		rendered = printer.Render(t.PrintNode())
	case interface{ PrintNode() printer.BinaryNode }:
		rendered = printer.RenderBinary(t.PrintNode())
	default:
		return []string{fmt.Sprintf("ERR: table %s does not support PRINT", name)}
	}
	return strings.Split(strings.TrimRight(rendered, "\n"), "\n")
}
