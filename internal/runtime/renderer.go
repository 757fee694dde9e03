package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"devstation/util"

	"github.com/a-h/templ"
	"github.com/nats-io/nats.go/jetstream"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// RenderFunc turns one event into datastar fragment merges.
type RenderFunc func(ctx context.Context, msg jetstream.Msg, sse *datastar.ServerSentEventGenerator) error

// Renderer handles the events whose subject matches Pattern.
type Renderer struct {
	Pattern    string
	MatchFunc  func(string) bool
	RenderFunc RenderFunc
}

// RendererSpec is a catalogue entry: a wildcard pattern and a factory that
// builds a Renderer for a concrete subject matching it.
type RendererSpec struct {
	Pattern string
	Build   func(subj string) Renderer
}

// Specs is filled by renderers.go during init and treated as read-only.
var Specs []RendererSpec

// ForSubjects builds the renderers for the subjects one UI stream follows,
// one per matching (subject, pattern) pair. The fallback always comes last.
func ForSubjects(subjects []string) []Renderer {
	type pair struct{ pattern, subject string }
	built := make(map[pair]bool)
	var out []Renderer
	for _, subj := range subjects {
		for _, rs := range Specs {
			p := pair{rs.Pattern, subj}
			if built[p] || !util.SubjectMatches(rs.Pattern, subj) {
				continue
			}
			built[p] = true
			out = append(out, rs.Build(subj))
		}
	}
	return append(out, fallback)
}

// Dispatch renders msg with the first renderer that claims its subject.
func Dispatch(ctx context.Context, renderers []Renderer, msg jetstream.Msg, sse *datastar.ServerSentEventGenerator) error {
	for _, r := range renderers {
		if r.MatchFunc(msg.Subject()) {
			return r.RenderFunc(ctx, msg, sse)
		}
	}
	return nil
}

func newRenderer(pattern string, fn RenderFunc) Renderer {
	return Renderer{
		Pattern:    pattern,
		MatchFunc:  func(subj string) bool { return util.SubjectMatches(pattern, subj) },
		RenderFunc: fn,
	}
}

// newTypedRenderer decodes the event into T before calling handler. Unknown
// fields are rejected so schema drift shows up as render errors.
func newTypedRenderer[T any](pattern string, handler func(context.Context, jetstream.Msg, *datastar.ServerSentEventGenerator, T) error) Renderer {
	return newRenderer(pattern, func(ctx context.Context, msg jetstream.Msg, sse *datastar.ServerSentEventGenerator) error {
		evt, err := decodeStrict[T](msg.Data())
		if err != nil {
			return fmt.Errorf("%s: %w", msg.Subject(), err)
		}
		return handler(ctx, msg, sse, evt)
	})
}

func decodeStrict[T any](data []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode %T: %w", v, err)
	}
	return v, nil
}

// fallback appends events nobody claimed to the log as raw text.
var fallback = newRenderer(">", func(_ context.Context, msg jetstream.Msg, sse *datastar.ServerSentEventGenerator) error {
	raw := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<pre class=\"line kind-info\">%s\n%s</pre>",
			templ.EscapeString(msg.Subject()), templ.EscapeString(string(msg.Data())))
		return err
	})
	return sse.MergeFragmentTempl(raw, datastar.WithSelectorID("terminal-log"), datastar.WithMergeAppend())
})
