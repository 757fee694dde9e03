package shell

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind tags a line of output so a renderer can pick its presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindOutput  Kind = "output"
)

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning, KindOutput:
		return true
	}
	return false
}

// Line is a single tagged line of output.
type Line struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Result is what the interpreter hands back for one command line. It is either
// an ordered list of lines or the clear variant, which asks the caller to reset
// its display to the banner instead of appending.
type Result struct {
	lines []Line
	clear bool
}

// Single returns a one-line result.
func Single(kind Kind, text string) Result {
	return Result{lines: []Line{{Kind: kind, Text: text}}}
}

// Lines returns a multi-line result. Order is preserved.
func Lines(lines ...Line) Result {
	return Result{lines: append([]Line(nil), lines...)}
}

// Empty returns a result with no lines.
func Empty() Result { return Result{} }

// Clear returns the clear variant.
func Clear() Result { return Result{clear: true} }

// Errorf is shorthand for a one-line error result.
func Errorf(format string, args ...any) Result {
	return Single(KindError, fmt.Sprintf(format, args...))
}

// block turns a newline separated text block into lines of one kind.
func block(kind Kind, text string) Result {
	rows := strings.Split(text, "\n")
	lines := make([]Line, len(rows))
	for i, row := range rows {
		lines[i] = Line{Kind: kind, Text: row}
	}
	return Result{lines: lines}
}

func (r Result) IsClear() bool { return r.clear }

func (r Result) IsEmpty() bool { return !r.clear && len(r.lines) == 0 }

func (r Result) Len() int { return len(r.lines) }

// Lines returns a copy of the result lines.
func (r Result) Lines() []Line {
	return append([]Line(nil), r.lines...)
}

// Kind summarises the result: error if any line is an error, otherwise the
// kind of the first line. Clear and empty results report info.
func (r Result) Kind() Kind {
	if len(r.lines) == 0 {
		return KindInfo
	}
	for _, l := range r.lines {
		if l.Kind == KindError {
			return KindError
		}
	}
	return r.lines[0].Kind
}

// Text joins all line texts with newlines.
func (r Result) Text() string {
	parts := make([]string, len(r.lines))
	for i, l := range r.lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

type resultJSON struct {
	Type  string `json:"type"`
	Lines []Line `json:"lines,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.clear {
		return json.Marshal(resultJSON{Type: "clear"})
	}
	lines := r.lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		Lines []Line `json:"lines"`
	}{Type: "lines", Lines: lines})
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case "clear":
		*r = Clear()
	case "lines":
		for _, l := range raw.Lines {
			if !l.Kind.Valid() {
				return fmt.Errorf("result: unknown line kind %q", l.Kind)
			}
		}
		*r = Result{lines: raw.Lines}
	default:
		return fmt.Errorf("result: unknown type %q", raw.Type)
	}
	return nil
}

// Banner is the welcome text a terminal shows on start and after clear.
func Banner() []Line {
	return []Line{
		{Kind: KindSuccess, Text: "Welcome to Nabila Ahmad Station Development Emulator v1.0.0"},
		{Kind: KindInfo, Text: "Ubuntu 22.04.3 LTS (GNU/Linux 5.15.0-91-generic x86_64)"},
		{Kind: KindInfo, Text: `Type "help" for available commands.`},
	}
}
