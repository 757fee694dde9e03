package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"devstation/internal/messages"
	"devstation/internal/metrics"
	"devstation/internal/shell"
	"devstation/util"

	"github.com/nats-io/nats.go/jetstream"
)

// TerminalEngine interprets terminal.session.*.command messages and publishes
// what each command did to event.terminal.session.*.{output,clear,viewdoc,env}.
type TerminalEngine struct {
	js        jetstream.JetStream
	sessions  *SessionManager
	publisher eventPublisher
	log       *slog.Logger

	// pending holds events a delivery executed but could not publish, keyed
	// by stream sequence. A redelivery publishes these instead of running
	// the command again.
	mu      sync.Mutex
	pending map[uint64][]messages.Event
}

// eventPublisher is the part of messages.Publisher the engine needs.
type eventPublisher interface {
	PublishEvent(ctx context.Context, evt messages.Event) error
}

// ackMsg is the part of jetstream.Msg handleCommand touches.
type ackMsg interface {
	Subject() string
	Data() []byte
	Ack() error
	Nak() error
	Term() error
	Metadata() (*jetstream.MsgMetadata, error)
}

func NewTerminalEngine(js jetstream.JetStream, sessions *SessionManager) *TerminalEngine {
	return &TerminalEngine{
		js:        js,
		sessions:  sessions,
		publisher: messages.NewPublisher(js),
		log:       slog.Default().With("component", "terminal"),
		pending:   make(map[uint64][]messages.Event),
	}
}

// Sessions exposes the session manager for completion and direct execution.
func (te *TerminalEngine) Sessions() *SessionManager { return te.sessions }

// Outcome is one executed command line and the events describing it.
type Outcome struct {
	Result shell.Result
	Events []messages.Event
}

// Execute runs line in the session and derives its events without
// publishing them.
func (te *TerminalEngine) Execute(ctx context.Context, sid, line, correlationID string) (Outcome, error) {
	start := time.Now()
	exec, err := te.sessions.Exec(ctx, sid, line)
	if err != nil {
		return Outcome{}, err
	}
	res := exec.Result
	cmd := shell.Tokenize(line)

	name := te.sessions.Canonical(cmd.Name)
	label := name
	if label == "" {
		label = "unknown"
	}
	metrics.CommandsTotal.WithLabelValues(label, string(res.Kind())).Inc()

	out := Outcome{Result: res}
	if res.IsClear() {
		out.Events = append(out.Events, messages.NewTerminalClearEvent(sid, line))
	} else {
		out.Events = append(out.Events, messages.NewTerminalOutputEvent(sid, line, res.Lines()).WithCorrelation(correlationID))
	}

	if name == "view" && res.Kind() != shell.KindError {
		if evt := te.viewEvent(sid, cmd.Arg(0)); evt != nil {
			out.Events = append(out.Events, evt)
		}
	}
	if exec.Patch != nil {
		out.Events = append(out.Events, messages.NewTerminalEnvEvent(sid, exec.Patch, exec.Packages))
	}

	te.log.Debug("command executed", "sid", sid, "command", label, "kind", res.Kind(), "events", len(out.Events), "took", time.Since(start))
	return out, nil
}

func (te *TerminalEngine) viewEvent(sid, name string) messages.Event {
	content, ok := te.sessions.Document(name)
	if !ok {
		return nil
	}
	html, err := util.DocumentToHTML(name, content)
	if err != nil {
		te.log.Warn("render document", "name", name, "err", err)
		return nil
	}
	return messages.NewTerminalViewDocEvent(sid, name, html)
}

// Publish sends every event of an outcome, stopping at the first failure.
func (te *TerminalEngine) Publish(ctx context.Context, out Outcome) error {
	_, err := te.publish(ctx, out.Events)
	return err
}

// publish returns how many events went out before the first failure.
func (te *TerminalEngine) publish(ctx context.Context, events []messages.Event) (int, error) {
	for i, evt := range events {
		if err := te.publisher.PublishEvent(ctx, evt); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

func (te *TerminalEngine) takePending(seq uint64) ([]messages.Event, bool) {
	te.mu.Lock()
	defer te.mu.Unlock()
	events, ok := te.pending[seq]
	delete(te.pending, seq)
	return events, ok
}

func (te *TerminalEngine) keepPending(seq uint64, events []messages.Event) {
	te.mu.Lock()
	defer te.mu.Unlock()
	if te.pending == nil {
		te.pending = make(map[uint64][]messages.Event)
	}
	te.pending[seq] = events
}

// Start creates the TERMINAL stream and its durable consumer, then consumes
// until ctx is done.
func (te *TerminalEngine) Start(ctx context.Context) error {
	if _, err := te.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     messages.TerminalStream,
		Subjects: []string{messages.TerminalCommandSubjectPattern},
		Storage:  jetstream.FileStorage,
	}); err != nil {
		return fmt.Errorf("create %s stream: %w", messages.TerminalStream, err)
	}

	cons, err := te.js.CreateOrUpdateConsumer(ctx, messages.TerminalStream, jetstream.ConsumerConfig{
		Durable:        "TERMINAL_CMD",
		AckPolicy:      jetstream.AckExplicitPolicy,
		FilterSubjects: []string{messages.TerminalCommandSubjectPattern},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		te.handleCommand(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	go func() {
		<-ctx.Done()
		cc.Stop()
	}()
	return nil
}

// handleCommand terminates malformed payloads, naks when events could not be
// published and acks otherwise. A command runs at most once per stream
// sequence: after a failed publish the redelivery only sends the events
// still outstanding.
func (te *TerminalEngine) handleCommand(ctx context.Context, msg ackMsg) {
	in, err := messages.DecodeTerminalCommand(msg.Subject(), msg.Data())
	if err != nil {
		te.log.Warn("bad command payload", "subject", msg.Subject(), "err", err)
		_ = msg.Term()
		return
	}

	var seq uint64
	if md, err := msg.Metadata(); err == nil {
		seq = md.Sequence.Stream
	}
	events, retry := te.takePending(seq)
	if !retry {
		out, err := te.Execute(ctx, in.SessionID, in.Cmd, in.CorrelationID)
		if err != nil {
			te.log.Error("execute", "sid", in.SessionID, "err", err)
			_ = msg.Nak()
			return
		}
		events = out.Events
	}

	sent, err := te.publish(ctx, events)
	if err != nil {
		te.log.Warn("publish events", "sid", in.SessionID, "seq", seq, "sent", sent, "err", err)
		if seq != 0 {
			te.keepPending(seq, events[sent:])
		}
		_ = msg.Nak()
		return
	}
	_ = msg.Ack()
}
