// Package render turns template sources into HTML fragments.
//
// Markdown sources are converted with goldmark. HTML sources pass through
// unchanged unless execution is enabled, in which case they run through
// html/template with the configured data.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"maps"
	"path"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for rendering.
var (
	// ErrMarkdown indicates goldmark failed to convert a source.
	ErrMarkdown = errors.New("markdown conversion failed")

	// ErrTemplateParse indicates an HTML source is not a valid template.
	ErrTemplateParse = errors.New("template parse failed")

	// ErrTemplateExec indicates template execution failed.
	ErrTemplateExec = errors.New("template execution failed")
)

// Renderer converts one template source into HTML.
type Renderer interface {
	Render(ctx context.Context, name string, src []byte) (string, error)
}

// Markdown renders Markdown to an HTML fragment using goldmark.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown renderer with GFM extensions and class-based
// syntax highlighting.
func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Markdown{md: md}
}

// Render converts src to an HTML fragment. The name is unused.
// Goldmark has no context support, so conversion runs in a goroutine and
// Render returns as soon as ctx is done.
func (m *Markdown) Render(ctx context.Context, _ string, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := m.md.Convert(src, &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdown, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HTML renders HTML sources, optionally executing them as html/template.
type HTML struct {
	execute bool
	data    map[string]any
}

// NewHTML creates an HTML renderer. When execute is false sources pass
// through byte for byte and data is ignored.
func NewHTML(execute bool, data map[string]any) *HTML {
	return &HTML{execute: execute, data: maps.Clone(data)}
}

// Render returns src, or the result of executing it as a template.
// Missing map keys are an execution error.
func (h *HTML) Render(ctx context.Context, name string, src []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !h.execute {
		return string(src), nil
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, h.data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrTemplateExec, name, err)
	}
	return buf.String(), nil
}

// Set picks a renderer by file extension.
type Set struct {
	Markdown Renderer
	HTML     Renderer
}

// NewSet returns a Set using NewMarkdown and NewHTML.
func NewSet(execute bool, data map[string]any) *Set {
	return &Set{Markdown: NewMarkdown(), HTML: NewHTML(execute, data)}
}

// For returns the renderer for name. Markdown extensions (.md, .markdown)
// select the Markdown renderer; anything else is treated as HTML.
func (s *Set) For(name string) Renderer {
	if IsMarkdown(name) {
		return s.Markdown
	}
	return s.HTML
}

// Render dispatches to the renderer selected by For.
func (s *Set) Render(ctx context.Context, name string, src []byte) (string, error) {
	return s.For(name).Render(ctx, name, src)
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// OutputName is the name a rendered template is published under.
// Markdown sources become .html; HTML sources keep their name.
//
//	OutputName("docs/intro.md")    // "docs/intro.html"
//	OutputName("views/card.html")  // "views/card.html"
func OutputName(name string) string {
	if !IsMarkdown(name) {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name)) + ".html"
}
