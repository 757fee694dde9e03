package runtime

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"devstation/internal/messages"

	"github.com/nats-io/nats.go/jetstream"
)

type fakePublisher struct {
	events []messages.Event
	err    error

	// failOnce makes the first publish to a subject ending in it fail.
	failOnce string
}

func (f *fakePublisher) PublishEvent(_ context.Context, evt messages.Event) error {
	if f.err != nil {
		return f.err
	}
	if f.failOnce != "" && strings.HasSuffix(evt.Subject(), f.failOnce) {
		f.failOnce = ""
		return errors.New("publish timeout")
	}
	if err := evt.Validate(); err != nil {
		return err
	}
	f.events = append(f.events, evt)
	return nil
}

type fakeMsg struct {
	subject string
	data    string
	seq     uint64
	acked   string
}

func (m *fakeMsg) Subject() string { return m.subject }
func (m *fakeMsg) Data() []byte    { return []byte(m.data) }
func (m *fakeMsg) Ack() error      { m.acked = "ack"; return nil }
func (m *fakeMsg) Nak() error      { m.acked = "nak"; return nil }
func (m *fakeMsg) Term() error     { m.acked = "term"; return nil }
func (m *fakeMsg) Metadata() (*jetstream.MsgMetadata, error) {
	return &jetstream.MsgMetadata{Sequence: jetstream.SequencePair{Stream: m.seq}}, nil
}

func newTestEngine(pub *fakePublisher) *TerminalEngine {
	return &TerminalEngine{
		sessions:  NewSessionManager(NewMemoryStore(), discardLogger()),
		publisher: pub,
		log:       discardLogger(),
	}
}

func subjects(events []messages.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Subject()
	}
	return out
}

func TestExecuteEvents(t *testing.T) {
	te := newTestEngine(&fakePublisher{})
	ctx := context.Background()
	tests := []struct {
		line string
		want []string
	}{
		{"pwd", []string{"output"}},
		{"frobnicate", []string{"output"}},
		{"clear", []string{"clear"}},
		{"view README.md", []string{"output", "viewdoc"}},
		{"view missing.md", []string{"output"}},
		{"npm install zod", []string{"output", "env"}},
		{"npm install zod", []string{"output"}},
	}
	for _, tt := range tests {
		out, err := te.Execute(ctx, "s1", tt.line, "")
		if err != nil {
			t.Fatalf("%s: %v", tt.line, err)
		}
		got := subjects(out.Events)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: events %v, want %v", tt.line, got, tt.want)
		}
		for i, suffix := range tt.want {
			if !strings.HasSuffix(got[i], "."+suffix) {
				t.Fatalf("%s: event %d is %s, want %s", tt.line, i, got[i], suffix)
			}
		}
	}
}

func TestExecuteViewRendersHTML(t *testing.T) {
	te := newTestEngine(&fakePublisher{})
	out, err := te.Execute(context.Background(), "s1", "view README.md", "")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	doc, ok := out.Events[1].(*messages.TerminalViewDocEvent)
	if !ok {
		t.Fatalf("event %T", out.Events[1])
	}
	if doc.Name != "README.md" || !strings.Contains(doc.HTML, "<h1>") {
		t.Fatalf("doc %+v", doc)
	}
}

func TestExecuteCorrelation(t *testing.T) {
	te := newTestEngine(&fakePublisher{})
	out, _ := te.Execute(context.Background(), "s1", "whoami", "c-42")
	evt := out.Events[0].(*messages.TerminalOutputEvent)
	if evt.CorrelationID != "c-42" || evt.Lines[0].Text != "nabila-developer" {
		t.Fatalf("event %+v", evt)
	}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name    string
		msg     *fakeMsg
		pubErr  error
		want    string
		publish int
	}{
		{
			name:    "ok",
			msg:     &fakeMsg{subject: "terminal.session.s1.command", data: `{"session_id":"s1","cmd":"yarn add lodash"}`},
			want:    "ack",
			publish: 2,
		},
		{
			name: "malformed",
			msg:  &fakeMsg{subject: "terminal.session.s1.command", data: `{"cmd":1}`},
			want: "term",
		},
		{
			name: "session mismatch",
			msg:  &fakeMsg{subject: "terminal.session.s2.command", data: `{"session_id":"s1","cmd":"ls"}`},
			want: "term",
		},
		{
			name:   "publish failure",
			msg:    &fakeMsg{subject: "terminal.session.s1.command", data: `{"session_id":"s1","cmd":"ls"}`},
			pubErr: errors.New("stream unavailable"),
			want:   "nak",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{err: tt.pubErr}
			te := newTestEngine(pub)
			te.handleCommand(context.Background(), tt.msg)
			if tt.msg.acked != tt.want {
				t.Fatalf("acked %q, want %q", tt.msg.acked, tt.want)
			}
			if len(pub.events) != tt.publish {
				t.Fatalf("published %v", subjects(pub.events))
			}
		})
	}
}

func TestHandleCommandRedeliveryPublishesOutstandingEvents(t *testing.T) {
	tests := []struct {
		line     string
		failOnce string
		want     []string
	}{
		{"npm install zod", ".env", []string{"output", "env"}},
		{"npm install zod", ".output", []string{"output", "env"}},
		{`git commit -m "ship it"`, ".output", []string{"output"}},
	}
	for _, tt := range tests {
		t.Run(tt.line+" "+tt.failOnce, func(t *testing.T) {
			pub := &fakePublisher{failOnce: tt.failOnce}
			te := newTestEngine(pub)
			data := `{"session_id":"s1","cmd":` + strconv.Quote(tt.line) + `}`

			first := &fakeMsg{subject: "terminal.session.s1.command", data: data, seq: 7}
			te.handleCommand(context.Background(), first)
			if first.acked != "nak" {
				t.Fatalf("first delivery %q, want nak", first.acked)
			}

			again := &fakeMsg{subject: "terminal.session.s1.command", data: data, seq: 7}
			te.handleCommand(context.Background(), again)
			if again.acked != "ack" {
				t.Fatalf("redelivery %q, want ack", again.acked)
			}

			got := subjects(pub.events)
			if len(got) != len(tt.want) {
				t.Fatalf("published %v, want %v", got, tt.want)
			}
			for i, suffix := range tt.want {
				if !strings.HasSuffix(got[i], "."+suffix) {
					t.Fatalf("event %d is %s, want %s", i, got[i], suffix)
				}
			}
			if len(te.pending) != 0 {
				t.Fatalf("pending not cleared: %v", te.pending)
			}
		})
	}
}
