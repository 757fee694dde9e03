package messages

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devstation/internal/shell"

	"github.com/nats-io/nats.go/jetstream"
)

// ─────────────────── CONSTRUCTORS ───────────────────

func NewTerminalCommandMessage(sessionID, cmd string) *TerminalCommandMessage {
	return &TerminalCommandMessage{SessionID: sessionID, Cmd: cmd}
}

// WithCorrelation tags the command so its output event can be matched to it.
func (c *TerminalCommandMessage) WithCorrelation(id string) *TerminalCommandMessage {
	c.CorrelationID = id
	return c
}

// NewTerminalOutputEvent never carries nil lines, so the payload always has
// a lines array.
func NewTerminalOutputEvent(sessionID, cmd string, lines []shell.Line) *TerminalOutputEvent {
	if lines == nil {
		lines = []shell.Line{}
	}
	return &TerminalOutputEvent{SessionID: sessionID, Cmd: cmd, Lines: lines, EmittedAt: time.Now()}
}

func (e *TerminalOutputEvent) WithCorrelation(id string) *TerminalOutputEvent {
	e.CorrelationID = id
	return e
}

// NewTerminalClearEvent carries the banner the log resets to.
func NewTerminalClearEvent(sessionID, cmd string) *TerminalClearEvent {
	return &TerminalClearEvent{SessionID: sessionID, Cmd: cmd, Banner: shell.Banner(), ClearedAt: time.Now()}
}

func NewTerminalViewDocEvent(sessionID, name, html string) *TerminalViewDocEvent {
	return &TerminalViewDocEvent{SessionID: sessionID, Name: name, HTML: html, ViewedAt: time.Now()}
}

// NewTerminalEnvEvent wraps a merge patch of the session snapshot.
func NewTerminalEnvEvent(sessionID string, patch []byte, packages []string) *TerminalEnvEvent {
	return &TerminalEnvEvent{
		SessionID: sessionID,
		Patch:     json.RawMessage(patch),
		Packages:  packages,
		ChangedAt: time.Now(),
	}
}

// ─────────────────── PUBLISHER ───────────────────

// streamPublisher is the slice of jetstream.JetStream the publisher needs.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// Publisher validates messages and publishes them as JSON on their own
// subject.
type Publisher struct {
	js streamPublisher
}

func NewPublisher(js streamPublisher) *Publisher {
	return &Publisher{js: js}
}

func (p *Publisher) PublishCommand(ctx context.Context, cmd Command) error {
	return p.publish(ctx, "command", cmd)
}

func (p *Publisher) PublishEvent(ctx context.Context, evt Event) error {
	return p.publish(ctx, "event", evt)
}

func (p *Publisher) publish(ctx context.Context, what string, msg Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%s validation failed: %w", what, err)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", what, err)
	}
	if _, err := p.js.Publish(ctx, msg.Subject(), data); err != nil {
		return fmt.Errorf("publish %s %s: %w", what, msg.Subject(), err)
	}
	return nil
}

// ─────────────────── FORM BUILDERS ───────────────────

// BuildCommand turns decoded form fields into a typed command.
func BuildCommand(messageType string, data map[string]any) (Command, error) {
	str := func(key string) string {
		v, _ := data[key].(string)
		return v
	}
	switch messageType {
	case "TerminalCommandMessage":
		cmd := NewTerminalCommandMessage(str("session_id"), str("cmd"))
		if id := str("correlation_id"); id != "" {
			cmd.WithCorrelation(id)
		}
		return cmd, nil
	}
	return nil, fmt.Errorf("unknown command type: %s", messageType)
}
