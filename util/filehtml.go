package util

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
)

// -----------------------------------------------------------------------------
// tiny cache so each document is converted once per process
// -----------------------------------------------------------------------------
var cache sync.Map // map[string]string

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(highlighting.WithStyle("github")), // inline colours
	),
)

// DocumentToHTML converts a virtual document to ready-to-embed HTML. Non
// Markdown files are fenced so Chroma highlights them by extension.
//
//	name     – file name, used for language detection
//	content  – file body
func DocumentToHTML(name, content string) (string, error) {
	key := name + "\x00" + content
	if v, ok := cache.Load(key); ok {
		return v.(string), nil
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(DocumentMarkdown(name, content)), &buf); err != nil {
		return "", err
	}
	html := buf.String()
	cache.Store(key, html)
	return html, nil
}

// DocumentMarkdown returns the Markdown source for a document: Markdown files
// as they are, anything else as a fenced code block.
func DocumentMarkdown(name, content string) string {
	if lang := docLanguage(name); lang != "markdown" {
		return "```" + lang + "\n" + content + "\n```"
	}
	return content
}

// docLanguage maps a file name to a Chroma lexer name.
func docLanguage(name string) string {
	switch name {
	case ".env":
		return "bash"
	case ".gitignore":
		return "text"
	}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case "md", "markdown":
		return "markdown"
	case "ts", "tsx":
		return "typescript"
	case "js", "jsx", "mjs":
		return "javascript"
	case "":
		return "text"
	default:
		return ext
	}
}
