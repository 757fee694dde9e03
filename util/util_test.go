package util

import (
	"strings"
	"testing"
)

func TestSubjectMatches(t *testing.T) {
	tests := []struct {
		pattern, subj string
		want          bool
	}{
		{"event.terminal.session.*.output", "event.terminal.session.abc.output", true},
		{"event.terminal.session.*.output", "event.terminal.session.abc.clear", false},
		{"event.terminal.session.abc.>", "event.terminal.session.abc.viewdoc", true},
		{"event.terminal.session.abc.>", "event.terminal.session.xyz.viewdoc", false},
		{">", "anything.at.all", true},
		{"a.*", "a", false},
		{"a.b", "a.b.c", false},
		{"a.b", "a.b", true},
		{"a.>", "a", false},
		{"*", "", false},
		{"terminal.session.*.command", "terminal.session.s1.command", true},
	}
	for _, tt := range tests {
		if got := SubjectMatches(tt.pattern, tt.subj); got != tt.want {
			t.Fatalf("SubjectMatches(%q, %q)=%v", tt.pattern, tt.subj, got)
		}
	}
}

func TestDocumentToHTML(t *testing.T) {
	html, err := DocumentToHTML("README.md", "# Title\n\n- one\n- two")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(html, "<h1>Title</h1>") || !strings.Contains(html, "<li>one</li>") {
		t.Fatalf("markdown not rendered: %s", html)
	}

	code, err := DocumentToHTML("package.json", `{"name": "x"}`)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(code, "<pre") || strings.Contains(code, "<h1>") {
		t.Fatalf("source not fenced: %s", code)
	}

	again, _ := DocumentToHTML("package.json", `{"name": "x"}`)
	if again != code {
		t.Fatalf("cached conversion differs")
	}
}

func TestDocLanguage(t *testing.T) {
	tests := map[string]string{
		"README.md":      "markdown",
		"vite.config.ts": "typescript",
		"server.js":      "javascript",
		"package.json":   "json",
		".env":           "bash",
		".gitignore":     "text",
	}
	for name, want := range tests {
		if got := docLanguage(name); got != want {
			t.Fatalf("docLanguage(%q)=%q, want %q", name, got, want)
		}
	}
}

func TestDocumentMarkdown(t *testing.T) {
	if got := DocumentMarkdown("README.md", "# x"); got != "# x" {
		t.Fatalf("markdown changed: %q", got)
	}
	if got := DocumentMarkdown(".env", "A=1"); got != "```bash\nA=1\n```" {
		t.Fatalf("fence: %q", got)
	}
}
