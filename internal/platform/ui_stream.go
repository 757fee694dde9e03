package platform

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"devstation/internal/messages"
	"devstation/internal/runtime"
	"devstation/internal/shell"
	components "devstation/ui/components"

	"github.com/a-h/templ"
	"github.com/nats-io/nats.go/jetstream"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// minimal interface for the SSE helper we need
type sseWriter interface {
	MergeFragmentTempl(t templ.Component, opts ...datastar.MergeFragmentOption) error
}

// renderInitial draws the banner, the prompt and the session's status bar.
func renderInitial(sse sseWriter, packages []string) error {
	frags := []struct {
		comp templ.Component
		id   string
	}{
		{components.TerminalLog(shell.Banner()), "terminal-log"},
		{components.Prompt(), "live-prompt"},
		{components.StatusBar(packages), "status-bar"},
	}
	for _, f := range frags {
		if err := sse.MergeFragmentTempl(f.comp, datastar.WithSelectorID(f.id)); err != nil {
			return err
		}
	}
	return nil
}

// UIStream is the SSE handler for /ui. It renders the initial terminal, then
// replays and follows the session's events from the EVENT stream.
func UIStream(js jetstream.JetStream, te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		sid := SessionID(r)
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		packages, err := te.Sessions().Packages(ctx, sid)
		if err != nil {
			slog.Warn("UIStream: session restore failed", "sid", sid, "err", err)
		}
		if err := renderInitial(sse, packages); err != nil {
			slog.Warn("UIStream: initial render", "sid", sid, "err", err)
			return
		}

		subs := messages.TerminalEventSubjects(sid)
		renderers := runtime.ForSubjects(subs)
		cons, err := js.CreateConsumer(ctx, messages.EventStream, jetstream.ConsumerConfig{
			AckPolicy:         jetstream.AckNonePolicy,
			FilterSubjects:    subs,
			DeliverPolicy:     jetstream.DeliverAllPolicy, // replay history on reload
			InactiveThreshold: time.Minute,
		})
		if err != nil {
			slog.Warn("UIStream: create consumer", "sid", sid, "err", err)
			return
		}

		cc, err := cons.Consume(func(msg jetstream.Msg) {
			if err := runtime.Dispatch(ctx, renderers, msg, sse); err != nil {
				slog.Warn("render", "subj", msg.Subject(), "err", err)
			}
		})
		if err != nil {
			slog.Warn("UIStream: consume", "sid", sid, "err", err)
			return
		}
		defer cc.Stop()

		<-ctx.Done() // Wait for disconnect
		slog.Debug("UIStream: client gone", "sid", sid)
	}
}
