package messages

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"devstation/internal/shell"

	"github.com/nats-io/nats.go/jetstream"
)

type published struct {
	subject string
	data    []byte
}

type fakeJS struct {
	msgs []published
	err  error
}

func (f *fakeJS) Publish(_ context.Context, subject string, payload []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.msgs = append(f.msgs, published{subject, payload})
	return &jetstream.PubAck{Stream: EventStream}, nil
}

func TestSubjects(t *testing.T) {
	sid := "abc-123"
	tests := []struct {
		got, want string
	}{
		{TerminalCommandSubject(sid), "terminal.session.abc-123.command"},
		{TerminalOutputSubject(sid), "event.terminal.session.abc-123.output"},
		{TerminalClearSubject(sid), "event.terminal.session.abc-123.clear"},
		{TerminalViewDocSubject(sid), "event.terminal.session.abc-123.viewdoc"},
		{TerminalEnvSubject(sid), "event.terminal.session.abc-123.env"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("got %q, want %q", tt.got, tt.want)
		}
	}
	if got := TerminalEventSubjects(sid); len(got) != 4 || got[3] != TerminalEnvSubject(sid) {
		t.Fatalf("TerminalEventSubjects=%v", got)
	}
	for _, s := range []string{TerminalCommandSubject(sid), TerminalOutputSubject(sid)} {
		if got := SessionFromSubject(s); got != sid {
			t.Fatalf("SessionFromSubject(%q)=%q", s, got)
		}
	}
	if got := SessionFromSubject("command.script.x.run"); got != "" {
		t.Fatalf("unexpected session %q", got)
	}
}

func TestCommandValidate(t *testing.T) {
	tests := []struct {
		msg TerminalCommandMessage
		ok  bool
	}{
		{TerminalCommandMessage{SessionID: "s1", Cmd: "ls"}, true},
		{TerminalCommandMessage{SessionID: "", Cmd: "ls"}, false},
		{TerminalCommandMessage{SessionID: "a.b", Cmd: "ls"}, false},
		{TerminalCommandMessage{SessionID: "a*", Cmd: "ls"}, false},
		{TerminalCommandMessage{SessionID: "s1", Cmd: ""}, false},
		{TerminalCommandMessage{SessionID: "s1", Cmd: strings.Repeat("x", MaxCommandLength+1)}, false},
	}
	for _, tt := range tests {
		if err := tt.msg.Validate(); (err == nil) != tt.ok {
			t.Fatalf("%+v: err=%v", tt.msg.SessionID, err)
		}
	}
}

func TestDecodeTerminalCommand(t *testing.T) {
	msg, err := DecodeTerminalCommand("terminal.session.s1.command", []byte(`{"session_id":"s1","cmd":"git status","correlation_id":"c1"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.SessionID != "s1" || msg.Cmd != "git status" || msg.CorrelationID != "c1" {
		t.Fatalf("decoded %+v", msg)
	}

	bad := []struct {
		subject string
		data    string
	}{
		{"", `not json`},
		{"", `{"cmd":"ls"}`},
		{"", `{"session_id":"s1","cmd":""}`},
		{"", `{"session_id":"s1","cmd":42}`},
		{"", `{"session_id":"s.1","cmd":"ls"}`},
		{"", `{"session_id":"s1","cmd":"ls","extra":true}`},
		{"terminal.session.other.command", `{"session_id":"s1","cmd":"ls"}`},
	}
	for _, tt := range bad {
		if _, err := DecodeTerminalCommand(tt.subject, []byte(tt.data)); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload, got %v", tt.data, err)
		}
	}
}

func TestPublisher(t *testing.T) {
	js := &fakeJS{}
	p := NewPublisher(js)
	ctx := context.Background()

	if err := p.PublishCommand(ctx, NewTerminalCommandMessage("s1", "pwd").WithCorrelation("c9")); err != nil {
		t.Fatalf("publish command: %v", err)
	}
	lines := []shell.Line{{Kind: shell.KindOutput, Text: "/workspace"}}
	if err := p.PublishEvent(ctx, NewTerminalOutputEvent("s1", "pwd", lines)); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if len(js.msgs) != 2 {
		t.Fatalf("published %d messages", len(js.msgs))
	}
	if js.msgs[0].subject != "terminal.session.s1.command" {
		t.Fatalf("subject %q", js.msgs[0].subject)
	}
	// What the publisher writes must pass the consumer's schema check.
	if _, err := DecodeTerminalCommand(js.msgs[0].subject, js.msgs[0].data); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	var evt TerminalOutputEvent
	if err := json.Unmarshal(js.msgs[1].data, &evt); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	if evt.Lines[0].Text != "/workspace" || evt.EmittedAt.IsZero() {
		t.Fatalf("event %+v", evt)
	}
}

func TestPublisherRejectsInvalid(t *testing.T) {
	js := &fakeJS{}
	p := NewPublisher(js)
	if err := p.PublishCommand(context.Background(), NewTerminalCommandMessage("", "ls")); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := p.PublishEvent(context.Background(), NewTerminalEnvEvent("s1", nil, nil)); err == nil {
		t.Fatalf("expected validation error for empty patch")
	}
	bad := NewTerminalOutputEvent("s1", "x", []shell.Line{{Kind: "loud", Text: "x"}})
	if err := p.PublishEvent(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error for unknown kind")
	}
	if len(js.msgs) != 0 {
		t.Fatalf("invalid messages were published")
	}

	js.err = errors.New("nats down")
	if err := p.PublishEvent(context.Background(), NewTerminalClearEvent("s1", "clear")); err == nil || !strings.Contains(err.Error(), "nats down") {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestBuildCommand(t *testing.T) {
	cmd, err := BuildCommand("TerminalCommandMessage", map[string]any{"session_id": "s1", "cmd": "ls", "correlation_id": "c"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	tc := cmd.(*TerminalCommandMessage)
	if tc.Cmd != "ls" || tc.CorrelationID != "c" {
		t.Fatalf("built %+v", tc)
	}
	if _, err := BuildCommand("ScriptRunCommand", nil); err == nil {
		t.Fatalf("expected unknown type error")
	}
}
