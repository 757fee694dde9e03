package components

import (
	"context"
	"fmt"
	"io"
	"strings"

	"devstation/internal/shell"

	"github.com/a-h/templ"
)

// PromptText is the prompt echoed before every command.
const PromptText = "nabila@station:~$"

// writeLine renders one tagged output line.
func writeLine(w io.Writer, l shell.Line) error {
	_, err := fmt.Fprintf(w, "<div class=\"line kind-%s\">%s</div>", templ.EscapeString(string(l.Kind)), templ.EscapeString(l.Text))
	return err
}

// TerminalEntry renders an echoed command followed by its output lines.
func TerminalEntry(cmd string, lines []shell.Line) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<div class=\"entry\"><div class=\"line command\"><span class=\"prompt\">%s</span> %s</div>",
			PromptText, templ.EscapeString(cmd)); err != nil {
			return err
		}
		for _, l := range lines {
			if err := writeLine(w, l); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// TerminalLog renders the whole log element holding only the given lines;
// merging it replaces the log.
func TerminalLog(lines []shell.Line) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<div id=\"terminal-log\" class=\"terminal-log\">"); err != nil {
			return err
		}
		for _, l := range lines {
			if err := writeLine(w, l); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}

// Prompt renders the live input line. Enter posts the command, Tab asks for
// completions. station.js adds arrow-key history on #cmd.
func Prompt() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form id="live-prompt" class="prompt-line" data-on-submit="@post('/terminal'); $cmd = ''">`+
			`<span class="prompt">%s</span>`+
			`<input id="cmd" name="cmd" autocomplete="off" autofocus data-bind-cmd `+
			`data-on-keydown="evt.key === 'Tab' && (evt.preventDefault(), @post('/terminal/complete'))"/>`+
			`</form>`, PromptText)
		return err
	})
}

// Completions lists the candidates when more than one name matches.
func Completions(names []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		escaped := make([]string, len(names))
		for i, n := range names {
			escaped[i] = templ.EscapeString(n)
		}
		_, err := fmt.Fprintf(w, "<div id=\"completions\" class=\"completions\">%s</div>", strings.Join(escaped, "  "))
		return err
	})
}

// DocPanel shows a rendered document. html must already be safe.
func DocPanel(name, html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<aside id=\"doc-panel\" class=\"doc-panel\"><header>%s</header><article class=\"doc\">%s</article></aside>",
			templ.EscapeString(name), html)
		return err
	})
}

// StatusBar summarises the session environment.
func StatusBar(packages []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		last := ""
		if len(packages) > 0 {
			last = " · latest " + templ.EscapeString(packages[len(packages)-1])
		}
		_, err := fmt.Fprintf(w, "<footer id=\"status-bar\" class=\"status-bar\">📦 %d packages%s</footer>", len(packages), last)
		return err
	})
}
