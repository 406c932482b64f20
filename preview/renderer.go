// Package preview renders a quiz to HTML for visual inspection before it is
// shipped to an LMS. The quiz is serialized to its canonical Markdown form
// and run through the goldmark engine, so the preview shows exactly what the
// Markdown writer produces.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/tpavlic/md2qti/markdown"
	"github.com/tpavlic/md2qti/quiz"
)

// Options controls how the HTML preview is produced.
type Options struct {
	// HardWraps renders single newlines as <br> tags.
	HardWraps bool
	// Safe suppresses raw HTML in the output. Quiz comments are HTML
	// comments, so the default keeps them visible in the preview source.
	Safe bool
	// Extensions names the goldmark extensions to enable. Empty means the
	// default set (GFM, task lists).
	Extensions []string
}

// Renderer converts quizzes to HTML. It is stateless and safe for reuse
// across goroutines.
type Renderer struct {
	defaults Options
}

// New constructs a renderer with the given default options.
func New(defaults Options) *Renderer {
	return &Renderer{defaults: defaults}
}

// Render produces HTML for the quiz using the renderer's defaults.
func (r *Renderer) Render(q *quiz.Quiz, anns quiz.Annotations) ([]byte, error) {
	return r.RenderWithOptions(q, anns, r.defaults)
}

// RenderWithOptions produces HTML for the quiz using the provided options.
func (r *Renderer) RenderWithOptions(q *quiz.Quiz, anns quiz.Annotations, opts Options) ([]byte, error) {
	source := markdown.Write(q, anns)
	engine := newEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("preview render: %w", err)
	}
	return buf.Bytes(), nil
}

func newEngine(opts Options) goldmark.Markdown {
	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.Safe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.TaskList}
	}
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
		}
	}
	if len(extenders) == 0 {
		return []goldmark.Extender{extension.GFM, extension.TaskList}
	}
	return extenders
}
