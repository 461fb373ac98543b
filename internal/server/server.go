// Package server runs a plain TCP line server over a registry: one
// goroutine per connection, one Session per connection, one line in
// and one or more lines out per command.
package server

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"strings"

	"treestore/internal/command"
	"treestore/internal/dispatch"
	"treestore/internal/registry"
)

type Options struct {
	RequireToken string
	ReadOnly     bool
}

func Serve(addr string, reg *registry.Registry[string], opts Options) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("treedb server listening on %s", addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("accept error: %v", err)
			continue
		}
		go handleConn(conn, reg, opts)
	}
}

func handleConn(conn net.Conn, reg *registry.Registry[string], opts Options) {
	defer conn.Close()
	wr := bufio.NewWriter(conn)
	_, _ = fmt.Fprintln(wr, "treedb server ready. Send commands; close socket to exit.")
	_ = wr.Flush()

	sess := dispatch.NewSession(reg)
	defer sess.Close()
	authed := opts.RequireToken == ""

	in := bufio.NewScanner(conn)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Fprintln(wr, "ERR:", err)
			wr.Flush()
			continue
		}

		switch cmd.Name {
		case "AUTH":
			if len(cmd.Args) != 1 {
				fmt.Fprintln(wr, "ERR: AUTH <token>")
			} else if opts.RequireToken == "" {
				fmt.Fprintln(wr, "OK")
			} else if cmd.Args[0] == opts.RequireToken {
				authed = true
				fmt.Fprintln(wr, "OK")
			} else {
				fmt.Fprintln(wr, "ERR: unauthorized")
			}
			wr.Flush()
			continue
		case "HELP":
			for _, l := range helpText {
				fmt.Fprintln(wr, l)
			}
			wr.Flush()
			continue
		case "EXIT", "QUIT":
			fmt.Fprintln(wr, "Bye")
			wr.Flush()
			return
		}

		if !authed && mutatingCommand(cmd.Name) {
			fmt.Fprintln(wr, "ERR: unauthorized")
			wr.Flush()
			continue
		}
		if opts.ReadOnly && mutatingCommand(cmd.Name) {
			fmt.Fprintln(wr, "ERR: read-only")
			wr.Flush()
			continue
		}

		for _, out := range sess.Dispatch(cmd) {
			fmt.Fprintln(wr, out)
		}
		wr.Flush()
	}
}

func mutatingCommand(name string) bool {
	switch name {
	case "CREATE", "DROP", "RENAME", "TRUNCATE",
		"INSERT", "UPDATE", "UPSERT", "REMOVE", "CLEAR", "SPLIT", "JOIN":
		return true
	}
	return false
}

var helpText = []string{
	"Commands:",
	"  BEGIN [READONLY] | COMMIT | ABORT",
	"  CREATE <table> <btree|bptree|splay> [order] | DROP <table> | RENAME <old> <new> | TRUNCATE <table>",
	"  INSERT <table> <key> <value> | UPDATE <table> <key> <value> | UPSERT <table> <key> <value> | REMOVE <table> <key>",
	"  SEARCH <table> <key> | COUNT <table> | CLEAR <table> | TABLES",
	"  MIN <table> | MAX <table> | FLOOR <table> <key> | CEILING <table> <key>",
	"  PREDECESSOR <table> <key> | SUCCESSOR <table> <key> | RANGE <table> <lo> <hi>",
	"  KEYS <table> | VALUES <table> | ELEMENTS <table> | REVERSED <table>",
	"  SPLIT <table> <key> <newTable> | JOIN <table> <otherTable>  (splay only)",
	"  PRINT <table>",
	"  HELP | EXIT | QUIT",
}
