package shell

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateCommand = errors.New("command already registered")
	ErrInvalidEntry     = errors.New("invalid command entry")
)

// Handler simulates one tool. Handlers may read and mutate the environment
// but never perform real I/O.
type Handler func(cmd Command, env *Environment) Result

// Group is the help section a command is listed under.
type Group string

const (
	GroupFiles  Group = "📁 File Operations"
	GroupDev    Group = "🔧 Development Tools"
	GroupCloud  Group = "☁️  Cloud Services"
	GroupFun    Group = "🎲 Fun"
	GroupSystem Group = "🖥️  System"
)

// Entry is one registered command.
type Entry struct {
	Name    string
	Aliases []string
	Group   Group
	Usage   string
	Summary string
	Handler Handler
}

// Registry maps command names and aliases to entries.
type Registry struct {
	entries []*Entry
	index   map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*Entry)}
}

// Register adds an entry. Names and aliases share one case-insensitive
// namespace.
func (r *Registry) Register(e Entry) error {
	name := strings.ToLower(strings.TrimSpace(e.Name))
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidEntry)
	}
	if e.Handler == nil {
		return fmt.Errorf("%s: nil handler: %w", name, ErrInvalidEntry)
	}
	keys := []string{name}
	for _, a := range e.Aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			return fmt.Errorf("%s: empty alias: %w", name, ErrInvalidEntry)
		}
		keys = append(keys, a)
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := r.index[k]; ok {
			return fmt.Errorf("%s: %w", k, ErrDuplicateCommand)
		}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("%s: %w", k, ErrDuplicateCommand)
		}
		seen[k] = struct{}{}
	}
	entry := e
	entry.Name = name
	entry.Aliases = keys[1:]
	r.entries = append(r.entries, &entry)
	for _, k := range keys {
		r.index[k] = &entry
	}
	return nil
}

// MustRegister is Register for static tables built at construction.
func (r *Registry) MustRegister(entries ...Entry) {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
}

// Resolve finds the entry for a name or alias.
func (r *Registry) Resolve(name string) (*Entry, bool) {
	e, ok := r.index[strings.ToLower(name)]
	return e, ok
}

// Complete returns the canonical names starting with prefix, in registration
// order.
func (r *Registry) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	matches := []string{}
	for _, e := range r.entries {
		if strings.HasPrefix(e.Name, prefix) {
			matches = append(matches, e.Name)
		}
	}
	return matches
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []*Entry {
	return append([]*Entry(nil), r.entries...)
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}
