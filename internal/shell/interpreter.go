package shell

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultShellName prefixes command-not-found errors.
const DefaultShellName = "bash"

// Interpreter runs command lines against one Environment. It is not safe for
// concurrent use; callers serialise commands per session.
type Interpreter struct {
	registry  *Registry
	env       *Environment
	shellName string
	log       *slog.Logger
}

type Option func(*Interpreter)

func WithLogger(l *slog.Logger) Option {
	return func(in *Interpreter) { in.log = l }
}

// WithEnvironment starts the interpreter on existing state, e.g. a restored
// snapshot.
func WithEnvironment(env *Environment) Option {
	return func(in *Interpreter) { in.env = env }
}

func WithShellName(name string) Option {
	return func(in *Interpreter) { in.shellName = name }
}

// New builds an interpreter with the full command table registered.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		registry:  NewRegistry(),
		shellName: DefaultShellName,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.env == nil {
		in.env = NewEnvironment()
	}
	if in.log == nil {
		in.log = slog.Default()
	}
	in.registry.MustRegister(builtins(in.registry)...)
	return in
}

// Process runs one command line. Every failure is reported as an error line;
// Process itself never panics.
func (in *Interpreter) Process(ctx context.Context, line string) (res Result) {
	cmd := Tokenize(line)
	if cmd.IsEmpty() {
		return Empty()
	}
	defer func() {
		if r := recover(); r != nil {
			in.log.Error("shell: handler panic", "cmd", cmd.Name, "panic", r)
			res = Errorf("%s: %s: internal error", in.shellName, cmd.Literal)
		}
	}()
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return Errorf("%s: %s: %v", in.shellName, cmd.Literal, err)
		}
	}

	entry, ok := in.registry.Resolve(cmd.Name)
	if !ok {
		if knownTool(cmd.Name) {
			return Single(KindSuccess, fmt.Sprintf("%s: executed successfully", cmd.Literal))
		}
		in.log.Debug("shell: command not found", "cmd", cmd.Literal)
		return Errorf("%s: %s: command not found", in.shellName, cmd.Literal)
	}
	return entry.Handler(cmd, in.env)
}

// Complete lists registered command names starting with partial.
func (in *Interpreter) Complete(partial string) []string {
	return in.registry.Complete(partial)
}

func (in *Interpreter) Environment() *Environment { return in.env }

func (in *Interpreter) Registry() *Registry { return in.registry }
