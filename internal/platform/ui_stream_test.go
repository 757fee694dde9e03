package platform

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	datastar "github.com/starfederation/datastar/sdk/go"
)

type recordingSSE struct {
	frags []string
}

func (r *recordingSSE) MergeFragmentTempl(c templ.Component, _ ...datastar.MergeFragmentOption) error {
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		return err
	}
	r.frags = append(r.frags, buf.String())
	return nil
}

func TestRenderInitial(t *testing.T) {
	sse := &recordingSSE{}
	if err := renderInitial(sse, []string{"react", "vite"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{`id="terminal-log"`, `id="live-prompt"`, `id="status-bar"`}
	if len(sse.frags) != len(want) {
		t.Fatalf("got %d fragments", len(sse.frags))
	}
	for i, w := range want {
		if !strings.Contains(sse.frags[i], w) {
			t.Fatalf("fragment %d missing %s: %s", i, w, sse.frags[i])
		}
	}
	if !strings.Contains(sse.frags[0], "Welcome to Nabila Ahmad Station") || !strings.Contains(sse.frags[2], "2 packages") {
		t.Fatalf("unexpected content %v", sse.frags)
	}
}
