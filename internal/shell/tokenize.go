package shell

import "strings"

// Command is a tokenized command line.
type Command struct {
	// Name is the command word lower-cased for lookup.
	Name string
	// Literal is the command word as typed.
	Literal string
	Args    []string
}

func (c Command) IsEmpty() bool { return c.Name == "" }

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Tokenize splits a line on runs of whitespace. There is no quoting or
// escaping, and shell operators are plain characters inside tokens.
func Tokenize(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{
		Name:    strings.ToLower(fields[0]),
		Literal: fields[0],
		Args:    fields[1:],
	}
}
