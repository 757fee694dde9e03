package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"devstation/internal/shell"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func TestTerminalEntryEscapes(t *testing.T) {
	html := render(t, TerminalEntry("echo <b>", []shell.Line{
		{Kind: shell.KindOutput, Text: "<b>"},
		{Kind: shell.KindError, Text: "a & b"},
	}))
	if strings.Contains(html, "<b>") {
		t.Fatalf("unescaped output: %s", html)
	}
	for _, want := range []string{"kind-output", "kind-error", "&lt;b&gt;", "a &amp; b", PromptText} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
}

func TestTerminalLogReplacesByID(t *testing.T) {
	html := render(t, TerminalLog(shell.Banner()))
	if !strings.HasPrefix(html, `<div id="terminal-log"`) || strings.Count(html, `class="line`) != 3 {
		t.Fatalf("unexpected log %s", html)
	}
}

func TestDocPanelAndStatusBar(t *testing.T) {
	doc := render(t, DocPanel("README.md", "<h1>x</h1>"))
	if !strings.Contains(doc, `id="doc-panel"`) || !strings.Contains(doc, "<h1>x</h1>") {
		t.Fatalf("doc panel %s", doc)
	}
	bar := render(t, StatusBar([]string{"react", "zod"}))
	if !strings.Contains(bar, "2 packages") || !strings.Contains(bar, "latest zod") {
		t.Fatalf("status bar %s", bar)
	}
	if got := render(t, Completions([]string{"cat", "cd"})); !strings.Contains(got, "cat  cd") {
		t.Fatalf("completions %s", got)
	}
	if got := render(t, Prompt()); !strings.Contains(got, `id="live-prompt"`) {
		t.Fatalf("prompt %s", got)
	}
}
