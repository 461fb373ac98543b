// Package command parses the line-oriented command language shared by
// the REPL and the TCP server.
package command

import (
	"errors"
	"fmt"
	"strings"
)

type Command struct {
	Name string
	Args []string
}

var ErrParse = errors.New("parse error")

// argCounts gives the exact argument count each fixed-arity command
// requires. INSERT/UPDATE/UPSERT and CREATE are checked separately in
// Parse since their arity varies or their trailing value may itself
// contain spaces.
var argCounts = map[string]int{
	"DROP": 1, "TRUNCATE": 1, "TABLES": 0,
	"SEARCH": 2, "REMOVE": 2,
	"MIN": 1, "MAX": 1, "COUNT": 1, "CLEAR": 1,
	"FLOOR": 2, "CEILING": 2, "PREDECESSOR": 2, "SUCCESSOR": 2,
	"RANGE": 3,
	"KEYS": 1, "VALUES": 1, "ELEMENTS": 1, "REVERSED": 1,
	"RENAME": 2,
	"SPLIT": 3, "JOIN": 2,
	"PRINT": 1,
	"COMMIT": 0, "ABORT": 0,
	"HELP": 0, "EXIT": 0, "QUIT": 0,
	"AUTH": 1,
}

// Parse reads one line of the command grammar:
//
//	CREATE <name> <btree|bptree|splay> [order]
//	DROP <name> | RENAME <old> <new> | TRUNCATE <name> | TABLES
//	SEARCH <name> <key>   INSERT <name> <key> <value>
//	UPDATE <name> <key> <value>   UPSERT <name> <key> <value>
//	REMOVE <name> <key>
//	MIN <name> | MAX <name> | COUNT <name>
//	FLOOR <name> <key> | CEILING <name> <key>
//	PREDECESSOR <name> <key> | SUCCESSOR <name> <key>
//	RANGE <name> <lo> <hi>
//	KEYS <name> | VALUES <name> | ELEMENTS <name> | REVERSED <name>
//	CLEAR <name>
//	SPLIT <name> <key> <newName>        (splay only)
//	JOIN <name> <otherName>             (splay only)
//	PRINT <name>
//	BEGIN [READONLY] | COMMIT | ABORT
//	AUTH <token> | HELP | EXIT | QUIT
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrParse
	}
	fields := strings.Fields(line)
	name := strings.ToUpper(fields[0])
	args := fields[1:]

	switch name {
	case "CREATE":
		if len(args) != 2 && len(args) != 3 {
			return Command{}, fmt.Errorf("CREATE requires 2 or 3 args")
		}
	case "INSERT", "UPDATE", "UPSERT":
		if len(args) < 3 {
			return Command{}, fmt.Errorf("%s requires 3 args", name)
		}
		args = []string{args[0], args[1], strings.Join(args[2:], " ")}
	case "BEGIN":
		if len(args) > 1 {
			return Command{}, fmt.Errorf("BEGIN takes an optional READONLY")
		}
		if len(args) == 1 {
			args[0] = strings.ToUpper(args[0])
		}
	default:
		want, known := argCounts[name]
		if !known {
			return Command{}, fmt.Errorf("unknown command: %s", name)
		}
		if want >= 0 && len(args) != want {
			return Command{}, fmt.Errorf("%s requires %d args", name, want)
		}
	}
	return Command{Name: name, Args: args}, nil
}
