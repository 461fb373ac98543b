package command

import "testing"

func TestParseBasic(t *testing.T) {
	cmd, err := Parse("search users alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Name != "SEARCH" {
		t.Fatalf("got name %q, want SEARCH", cmd.Name)
	}
	if len(cmd.Args) != 2 || cmd.Args[0] != "users" || cmd.Args[1] != "alice" {
		t.Fatalf("got args %v, want [users alice]", cmd.Args)
	}
}

func TestParseInsertJoinsTrailingValue(t *testing.T) {
	cmd, err := Parse("INSERT users alice hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"users", "alice", "hello world"}
	for i, w := range want {
		if cmd.Args[i] != w {
			t.Fatalf("args[%d] = %q, want %q", i, cmd.Args[i], w)
		}
	}
}

func TestParseCreateAcceptsOptionalOrder(t *testing.T) {
	cmd, err := Parse("CREATE users btree")
	if err != nil || len(cmd.Args) != 2 {
		t.Fatalf("2-arg CREATE: got %+v, err %v", cmd, err)
	}
	cmd, err = Parse("CREATE users btree 8")
	if err != nil || len(cmd.Args) != 3 {
		t.Fatalf("3-arg CREATE: got %+v, err %v", cmd, err)
	}
	if _, err := Parse("CREATE users"); err == nil {
		t.Fatalf("expected error for CREATE with 1 arg")
	}
}

func TestParseBeginUppercasesReadonly(t *testing.T) {
	cmd, err := Parse("begin readonly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "READONLY" {
		t.Fatalf("got args %v, want [READONLY]", cmd.Args)
	}
	cmd, err = Parse("begin")
	if err != nil || len(cmd.Args) != 0 {
		t.Fatalf("bare BEGIN: got %+v, err %v", cmd, err)
	}
	if _, err := Parse("begin readonly extra"); err == nil {
		t.Fatalf("expected error for BEGIN with 2 args")
	}
}

func TestParseArityChecking(t *testing.T) {
	if _, err := Parse("RANGE users a"); err == nil {
		t.Fatalf("expected arity error for RANGE with 2 args")
	}
	if _, err := Parse("TABLES extra"); err == nil {
		t.Fatalf("expected arity error for TABLES with an arg")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	if _, err := Parse("FROBNICATE users"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestParseEmptyLine(t *testing.T) {
	if _, err := Parse("   "); err != ErrParse {
		t.Fatalf("got err %v, want ErrParse", err)
	}
}

func TestParseIsCaseInsensitiveOnCommandName(t *testing.T) {
	cmd, err := Parse("CoUnT users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Name != "COUNT" {
		t.Fatalf("got name %q, want COUNT", cmd.Name)
	}
}
