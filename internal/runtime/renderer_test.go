package runtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"devstation/internal/messages"
	"devstation/internal/shell"

	"github.com/nats-io/nats.go/jetstream"
	datastar "github.com/starfederation/datastar/sdk/go"
)

type stubMsg struct {
	jetstream.Msg
	subject string
	data    []byte
}

func (m stubMsg) Subject() string { return m.subject }
func (m stubMsg) Data() []byte    { return m.data }

func TestForSubjects(t *testing.T) {
	rs := ForSubjects(messages.TerminalEventSubjects("s1"))
	if len(rs) != 5 {
		t.Fatalf("got %d renderers", len(rs))
	}
	if rs[len(rs)-1].Pattern != ">" {
		t.Fatalf("fallback not last")
	}
	if rs[0].MatchFunc("event.terminal.session.s2.output") {
		t.Fatalf("renderer for s1 matched s2")
	}
	if got := ForSubjects(nil); len(got) != 1 {
		t.Fatalf("expected only the fallback, got %d", len(got))
	}
}

func renderEvent(t *testing.T, evt messages.Event) string {
	t.Helper()
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rec := httptest.NewRecorder()
	sse := datastar.NewSSE(rec, httptest.NewRequest("GET", "/ui", nil))
	rs := ForSubjects(messages.TerminalEventSubjects("s1"))
	if err := Dispatch(context.Background(), rs, stubMsg{subject: evt.Subject(), data: data}, sse); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	return rec.Body.String()
}

func TestRenderers(t *testing.T) {
	out := renderEvent(t, messages.NewTerminalOutputEvent("s1", "echo <hi>", []shell.Line{{Kind: shell.KindOutput, Text: "<hi>"}}))
	for _, want := range []string{"terminal-log", "live-prompt", "kind-output", "&lt;hi&gt;"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output render missing %q:\n%s", want, out)
		}
	}

	clr := renderEvent(t, messages.NewTerminalClearEvent("s1", "clear"))
	if !strings.Contains(clr, "Welcome to Nabila Ahmad Station") {
		t.Fatalf("clear render:\n%s", clr)
	}

	doc := renderEvent(t, messages.NewTerminalViewDocEvent("s1", "README.md", "<h1>x</h1>"))
	if !strings.Contains(doc, "doc-panel") || !strings.Contains(doc, "<h1>x</h1>") {
		t.Fatalf("doc render:\n%s", doc)
	}

	env := renderEvent(t, messages.NewTerminalEnvEvent("s1", []byte(`{"packages":["zod"]}`), []string{"zod"}))
	if !strings.Contains(env, "status-bar") || !strings.Contains(env, "1 packages") {
		t.Fatalf("env render:\n%s", env)
	}
}

func TestFallbackEscapes(t *testing.T) {
	rec := httptest.NewRecorder()
	sse := datastar.NewSSE(rec, httptest.NewRequest("GET", "/ui", nil))
	msg := stubMsg{subject: "event.other", data: []byte("<script>")}
	if err := Dispatch(context.Background(), ForSubjects(nil), msg, sse); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Fatalf("fallback did not escape:\n%s", rec.Body.String())
	}
}
