// Package ui holds the station's page shell and static assets.
package ui

import (
	"context"
	"embed"
	"io"

	components "devstation/ui/components"

	"github.com/a-h/templ"
)

//go:embed static
var StaticFS embed.FS

//go:embed static/favicon.svg
var FaviconSVG []byte

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-beta.11/bundles/datastar.js"

// Index is the page shell. Everything inside the terminal is streamed from
// /ui once the page loads.
func Index() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Nabila Ahmad Development Station</title>
<link rel="icon" href="/favicon.svg" type="image/svg+xml">
<link rel="stylesheet" href="/static/css/station.css">
<script type="module" src="`+datastarScript+`"></script>
</head>
<body data-signals="{cmd: ''}" data-on-load="@get('/ui')">
<div class="station">
<aside id="doc-panel" class="doc-panel empty"></aside>
<section class="terminal" data-on-click="document.getElementById('cmd')?.focus()">
<header class="terminal-bar"><span class="dot red"></span><span class="dot yellow"></span><span class="dot green"></span><span class="title">nabila@station: ~</span></header>
<div id="terminal-log" class="terminal-log"></div>
`); err != nil {
			return err
		}
		if err := components.Prompt().Render(ctx, w); err != nil {
			return err
		}
		if err := components.Completions(nil).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</section>\n</div>\n"); err != nil {
			return err
		}
		if err := components.StatusBar(nil).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script src="/static/js/station.js"></script>
</body>
</html>`)
		return err
	})
}
