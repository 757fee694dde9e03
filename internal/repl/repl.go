// Package repl runs the interpreter as a local terminal program.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"devstation/internal/shell"
	"devstation/util"

	"github.com/charmbracelet/glamour"
	"github.com/chzyer/readline"
)

// Prompt is printed before every line.
const Prompt = "nabila@station:~$ "

const (
	ansiReset       = "\033[0m"
	ansiClearScreen = "\033[H\033[2J"
)

var kindColours = map[shell.Kind]string{
	shell.KindSuccess: "\033[32m",
	shell.KindError:   "\033[31m",
	shell.KindInfo:    "\033[36m",
	shell.KindWarning: "\033[33m",
}

// lineReader is the part of *readline.Instance the loop uses.
type lineReader interface {
	Readline() (string, error)
}

// docRenderer turns Markdown into terminal text.
type docRenderer func(markdown string) (string, error)

// REPL reads lines, runs them through one interpreter and prints the tagged
// output.
type REPL struct {
	in     *shell.Interpreter
	out    io.Writer
	colour bool
	render docRenderer
	log    *slog.Logger
}

type Option func(*REPL)

// WithoutColour prints plain text.
func WithoutColour() Option { return func(r *REPL) { r.colour = false } }

func WithLogger(l *slog.Logger) Option { return func(r *REPL) { r.log = l } }

func withRenderer(fn docRenderer) Option { return func(r *REPL) { r.render = fn } }

func New(in *shell.Interpreter, out io.Writer, opts ...Option) *REPL {
	r := &REPL{in: in, out: out, colour: true, render: glamourRender, log: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func glamourRender(md string) (string, error) {
	tr, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(80))
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

// Run opens a readline prompt with tab completion and loops until exit,
// EOF or ctx is done.
func (r *REPL) Run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     historyFile,
		AutoComplete:    completer{in: r.in},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.out,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()
	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()
	return r.Loop(ctx, rl)
}

// Loop prints the banner and processes lines from lr.
func (r *REPL) Loop(ctx context.Context, lr lineReader) error {
	r.printLines(shell.Banner())
	for {
		line, err := lr.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if r.Handle(ctx, line) {
			return nil
		}
	}
}

// Handle runs one line and prints its output. It reports whether the session
// should end.
func (r *REPL) Handle(ctx context.Context, line string) (done bool) {
	res := r.in.Process(ctx, line)
	if res.IsClear() {
		fmt.Fprint(r.out, ansiClearScreen)
		r.printLines(shell.Banner())
		return false
	}
	r.printLines(res.Lines())

	cmd := shell.Tokenize(line)
	entry, ok := r.in.Registry().Resolve(cmd.Name)
	if !ok || res.Kind() == shell.KindError {
		return false
	}
	switch entry.Name {
	case "view":
		r.printDocument(cmd.Arg(0))
	case "exit":
		return true
	}
	return false
}

func (r *REPL) printDocument(name string) {
	content, ok := r.in.Environment().ReadFile(name)
	if !ok {
		return
	}
	text, err := r.render(util.DocumentMarkdown(name, content))
	if err != nil {
		r.log.Warn("render document", "name", name, "err", err)
		text = content + "\n"
	}
	fmt.Fprint(r.out, text)
}

func (r *REPL) printLines(lines []shell.Line) {
	for _, l := range lines {
		colour, ok := kindColours[l.Kind]
		if !r.colour || !ok {
			fmt.Fprintln(r.out, l.Text)
			continue
		}
		fmt.Fprintln(r.out, colour+l.Text+ansiReset)
	}
}

// completer adapts Interpreter.Complete to readline. Only the command word
// is completed.
type completer struct {
	in *shell.Interpreter
}

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	if strings.ContainsAny(strings.TrimLeft(typed, " "), " \t") {
		return nil, 0
	}
	prefix := strings.TrimLeft(typed, " ")
	matches := c.in.Complete(prefix)
	out := make([][]rune, 0, len(matches))
	for _, m := range matches {
		out = append(out, []rune(m[len(prefix):]+" "))
	}
	return out, len([]rune(prefix))
}
