// Command treedb is an in-memory REPL and network front end for the
// B-Tree, B+Tree, and splay tree engines. With no flags it reads
// commands from stdin; -serve starts the TCP front end instead, and
// -http starts the HTTP front end. Only one mode runs per process: when
// both -serve and -http are given, -serve wins and -http is ignored.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"treestore/internal/command"
	"treestore/internal/dispatch"
	"treestore/internal/httpserver"
	"treestore/internal/registry"
	"treestore/internal/server"
)

func main() {
	serve := flag.String("serve", "", "listen address for TCP server, e.g. :8080 (empty = CLI mode)")
	httpAddr := flag.String("http", "", "listen address for HTTP server, e.g. :8090 (empty = off)")
	auth := flag.String("auth", "", "require this token for TCP writes (AUTH <token>)")
	readonly := flag.Bool("readonly", false, "start TCP server in read-only mode (blocks writes)")
	httpAuth := flag.String("httpauth", "", "require this bearer token for HTTP writes")
	httpReadonly := flag.Bool("httpreadonly", false, "start HTTP server in read-only mode (blocks writes)")
	flag.Parse()

	reg := registry.New[string]()

	if *serve != "" {
		log.Printf("starting server on %s", *serve)
		opts := server.Options{RequireToken: *auth, ReadOnly: *readonly}
		if err := server.Serve(*serve, reg, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *httpAddr != "" {
		log.Printf("starting HTTP server on %s", *httpAddr)
		opts := httpserver.Options{RequireToken: *httpAuth, ReadOnly: *httpReadonly}
		if err := httpserver.Start(*httpAddr, reg, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	runRepl(reg)
}

func runRepl(reg *registry.Registry[string]) {
	fmt.Println("treedb ready. Commands: CREATE/INSERT/SEARCH/UPDATE/REMOVE/BEGIN/COMMIT/ABORT. Ctrl+C to exit.")
	sess := dispatch.NewSession(reg)
	defer sess.Close()

	in := bufio.NewScanner(os.Stdin)
	for {
		if sess.InTx() {
			fmt.Print("treedb(tx)> ")
		} else {
			fmt.Print("treedb> ")
		}
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		switch strings.ToUpper(strings.Fields(line)[0]) {
		case "HELP":
			printHelp()
			continue
		case "EXIT", "QUIT":
			fmt.Println("Bye")
			return
		}

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Println("ERR:", err)
			continue
		}
		for _, out := range sess.Dispatch(cmd) {
			fmt.Println(out)
		}
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  BEGIN [READONLY] | COMMIT | ABORT")
	fmt.Println("  CREATE <table> <btree|bptree|splay> [order] | DROP <table> | RENAME <old> <new> | TRUNCATE <table>")
	fmt.Println("  INSERT <table> <key> <value> | UPDATE <table> <key> <value> | UPSERT <table> <key> <value> | REMOVE <table> <key>")
	fmt.Println("  SEARCH <table> <key> | COUNT <table> | CLEAR <table> | TABLES")
	fmt.Println("  MIN <table> | MAX <table> | FLOOR <table> <key> | CEILING <table> <key>")
	fmt.Println("  PREDECESSOR <table> <key> | SUCCESSOR <table> <key> | RANGE <table> <lo> <hi>")
	fmt.Println("  KEYS <table> | VALUES <table> | ELEMENTS <table> | REVERSED <table>")
	fmt.Println("  SPLIT <table> <key> <newTable> | JOIN <table> <otherTable>  (splay only)")
	fmt.Println("  PRINT <table>")
	fmt.Println("  HELP | EXIT | QUIT")
}
