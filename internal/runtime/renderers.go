package runtime

import (
	"context"

	"devstation/internal/messages"
	components "devstation/ui/components"

	"github.com/nats-io/nats.go/jetstream"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// ─────────────────── TERMINAL EVENTS ───────────────────

func renderOutput(_ context.Context, _ jetstream.Msg, sse *datastar.ServerSentEventGenerator, evt messages.TerminalOutputEvent) error {
	if err := sse.MergeFragmentTempl(
		components.TerminalEntry(evt.Cmd, evt.Lines),
		datastar.WithSelectorID("terminal-log"),
		datastar.WithMergeAppend(),
	); err != nil {
		return err
	}
	return sse.MergeFragmentTempl(components.Prompt(), datastar.WithSelectorID("live-prompt"))
}

func renderClear(_ context.Context, _ jetstream.Msg, sse *datastar.ServerSentEventGenerator, evt messages.TerminalClearEvent) error {
	if err := sse.MergeFragmentTempl(components.TerminalLog(evt.Banner), datastar.WithSelectorID("terminal-log")); err != nil {
		return err
	}
	return sse.MergeFragmentTempl(components.Prompt(), datastar.WithSelectorID("live-prompt"))
}

func renderViewDoc(_ context.Context, _ jetstream.Msg, sse *datastar.ServerSentEventGenerator, evt messages.TerminalViewDocEvent) error {
	return sse.MergeFragmentTempl(components.DocPanel(evt.Name, evt.HTML), datastar.WithSelectorID("doc-panel"))
}

func renderEnv(_ context.Context, _ jetstream.Msg, sse *datastar.ServerSentEventGenerator, evt messages.TerminalEnvEvent) error {
	return sse.MergeFragmentTempl(components.StatusBar(evt.Packages), datastar.WithSelectorID("status-bar"))
}

// ─────────────────── REGISTRY ──────────────────────────

func init() {
	Specs = []RendererSpec{
		{Pattern: messages.TerminalOutputSubjectPattern, Build: func(subj string) Renderer {
			return newTypedRenderer(subj, renderOutput)
		}},
		{Pattern: messages.TerminalClearSubjectPattern, Build: func(subj string) Renderer {
			return newTypedRenderer(subj, renderClear)
		}},
		{Pattern: messages.TerminalViewDocSubjectPattern, Build: func(subj string) Renderer {
			return newTypedRenderer(subj, renderViewDoc)
		}},
		{Pattern: messages.TerminalEnvSubjectPattern, Build: func(subj string) Renderer {
			return newTypedRenderer(subj, renderEnv)
		}},
	}
}
