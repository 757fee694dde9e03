package shell

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		line    string
		name    string
		literal string
		args    []string
	}{
		{"", "", "", nil},
		{"   \t ", "", "", nil},
		{"pwd", "pwd", "pwd", []string{}},
		{"  GIT   Status ", "git", "GIT", []string{"Status"}},
		{"echo a|b > c && d", "echo", "echo", []string{"a|b", ">", "c", "&&", "d"}},
		{`echo "two words"`, "echo", "echo", []string{`"two`, `words"`}},
		{"npm\tinstall\nLodash", "npm", "npm", []string{"install", "Lodash"}},
	}
	for _, tt := range tests {
		cmd := Tokenize(tt.line)
		if cmd.Name != tt.name || cmd.Literal != tt.literal {
			t.Fatalf("Tokenize(%q) name=%q literal=%q, want %q %q", tt.line, cmd.Name, cmd.Literal, tt.name, tt.literal)
		}
		if !slices.Equal(cmd.Args, tt.args) {
			t.Fatalf("Tokenize(%q) args=%q, want %q", tt.line, cmd.Args, tt.args)
		}
	}
}

func TestCommandEmptyAndArg(t *testing.T) {
	if !Tokenize(" ").IsEmpty() {
		t.Fatalf("whitespace line should be empty")
	}
	cmd := Tokenize("git commit -m msg")
	if cmd.IsEmpty() {
		t.Fatalf("unexpected empty command")
	}
	if got := cmd.Arg(1); got != "-m" {
		t.Fatalf("Arg(1)=%q", got)
	}
	if got := cmd.Arg(5); got != "" {
		t.Fatalf("Arg(5)=%q, want empty", got)
	}
	if got := cmd.Arg(-1); got != "" {
		t.Fatalf("Arg(-1)=%q, want empty", got)
	}
}
