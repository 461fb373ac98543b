// Package httpserver exposes the registry over plain-text HTTP
// endpoints for clients that would rather speak HTTP than a line
// protocol. It covers a subset of the TCP server's commands: listing,
// creating and dropping tables, listing a table's entries, and getting,
// upserting or removing a single key.
package httpserver

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"treestore/internal/registry"
)

type Options struct {
	RequireToken string
	ReadOnly     bool
}

// Start launches an HTTP server on addr over reg. Every request holds
// a registry.Tx for its whole handler body — a write Tx for mutating
// verbs, a read Tx otherwise — so concurrent HTTP requests see the
// same reader/writer exclusion as the TCP server and the REPL.
func Start(addr string, reg *registry.Registry[string], opts Options) error {
	mux := http.NewServeMux()

	// GET /tables           -> list table names, one per line
	// POST /tables?name=&kind=&order= -> create a table
	mux.HandleFunc("/tables", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			tx := reg.Begin(true)
			defer tx.Commit()
			for _, n := range reg.List() {
				_, _ = io.WriteString(w, n+"\n")
			}
		case http.MethodPost:
			if !authorizeWrite(w, r, opts) {
				return
			}
			name := r.URL.Query().Get("name")
			kind := registry.Kind(strings.ToLower(r.URL.Query().Get("kind")))
			order := 0
			if s := r.URL.Query().Get("order"); s != "" {
				if n, err := strconv.Atoi(s); err == nil {
					order = n
				}
			}
			tx := reg.Begin(false)
			defer tx.Commit()
			if err := reg.Create(name, kind, order); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			_, _ = io.WriteString(w, "OK\n")
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// GET /tables/{name}    -> every entry, "key\tvalue" per line
	// DELETE /tables/{name} -> drop the table
	mux.HandleFunc("/tables/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/tables/")
		table, key, hasKey := splitOnce(rest)
		if table == "" {
			http.Error(w, "missing table", http.StatusBadRequest)
			return
		}
		if hasKey {
			serveKey(w, r, reg, opts, table, key)
			return
		}

		switch r.Method {
		case http.MethodGet:
			tx := reg.Begin(true)
			defer tx.Commit()
			c, ok := reg.Get(table)
			if !ok {
				http.Error(w, "table not found", http.StatusNotFound)
				return
			}
			for _, e := range c.Elements() {
				_, _ = io.WriteString(w, e.Key+"\t"+e.Value+"\n")
			}
		case http.MethodDelete:
			if !authorizeWrite(w, r, opts) {
				return
			}
			tx := reg.Begin(false)
			defer tx.Commit()
			if err := reg.Drop(table); err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			_, _ = io.WriteString(w, "OK\n")
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	return http.ListenAndServe(addr, mux)
}

// serveKey handles GET/PUT/DELETE on /tables/{table}/{key}.
func serveKey(w http.ResponseWriter, r *http.Request, reg *registry.Registry[string], opts Options, table, key string) {
	switch r.Method {
	case http.MethodGet:
		tx := reg.Begin(true)
		defer tx.Commit()
		c, ok := reg.Get(table)
		if !ok {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		v, ok := c.Search(key)
		if !ok {
			http.Error(w, "key not found", http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, v)
	case http.MethodPut:
		if !authorizeWrite(w, r, opts) {
			return
		}
		b, _ := io.ReadAll(r.Body)
		tx := reg.Begin(false)
		defer tx.Commit()
		c, ok := reg.Get(table)
		if !ok {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		c.Upsert(key, string(b))
		_, _ = io.WriteString(w, "OK\n")
	case http.MethodDelete:
		if !authorizeWrite(w, r, opts) {
			return
		}
		tx := reg.Begin(false)
		defer tx.Commit()
		c, ok := reg.Get(table)
		if !ok {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}
		if _, ok := c.Remove(key); !ok {
			http.Error(w, "key not found", http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, "OK\n")
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func authorizeWrite(w http.ResponseWriter, r *http.Request, opts Options) bool {
	if opts.ReadOnly {
		http.Error(w, "read-only", http.StatusForbidden)
		return false
	}
	if opts.RequireToken != "" && r.Header.Get("Authorization") != "Bearer "+opts.RequireToken {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// splitOnce splits "table" or "table/key" into its parts, reporting
// whether a key component was present.
func splitOnce(path string) (table, key string, hasKey bool) {
	i := strings.IndexByte(path, '/')
	if i < 0 {
		return path, "", false
	}
	return path[:i], path[i+1:], true
}
