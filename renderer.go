package chatmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-chatmd/internal/pipeline"
)

// Renderer is the chat engine: it turns message text into an HTML fragment
// through the escape-first pass pipeline.
// Immutable after New, safe for concurrent use.
type Renderer struct {
	pipeline    *pipeline.Pipeline
	highlighter *pipeline.Highlighter
	verify      bool
}

// defaultRenderer serves the package-level Render.
var defaultRenderer = &Renderer{pipeline: pipeline.New()}

// New creates a Renderer.
// Returns ErrUnknownStyle if WithHighlighting names a style chroma does not know.
func New(opts ...Option) (*Renderer, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return newRenderer(cfg)
}

func newRenderer(cfg rendererConfig) (*Renderer, error) {
	var pipeOpts []pipeline.Option
	if cfg.legacyScanning {
		pipeOpts = append(pipeOpts, pipeline.WithLegacyScanning())
	}

	r := &Renderer{verify: cfg.verify}
	if cfg.highlightStyle != "" {
		h, err := pipeline.NewHighlighter(cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		r.highlighter = h
		pipeOpts = append(pipeOpts, pipeline.WithHighlighter(h))
	}

	r.pipeline = pipeline.New(pipeOpts...)
	return r, nil
}

// Render converts message text to an HTML fragment. It never fails.
// With WithVerify, a fragment that fails verification is replaced by the
// escaped text in a single paragraph.
func (r *Renderer) Render(content string) string {
	out := r.pipeline.Run(content)
	if r.verify && pipeline.Verify(out) != nil {
		return plainParagraph(content)
	}
	return out
}

// Name implements Engine.
func (r *Renderer) Name() string {
	return EngineChat
}

// RenderHTML implements Engine. The pipeline itself is synchronous, so ctx
// is only checked before rendering.
func (r *Renderer) RenderHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := r.pipeline.Run(content)
	if r.verify {
		if err := pipeline.Verify(out); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsafeOutput, err)
		}
	}
	return out, nil
}

// HighlightCSS returns the stylesheet for the configured highlight style,
// or "" when highlighting is off.
func (r *Renderer) HighlightCSS() (string, error) {
	if r.highlighter == nil {
		return "", nil
	}
	var b strings.Builder
	if err := r.highlighter.WriteCSS(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// plainParagraph is the verification fallback: all text, no structure.
func plainParagraph(content string) string {
	if content == "" {
		return ""
	}
	return "<p>" + strings.ReplaceAll(pipeline.Escape(content), "\n", "<br>") + "</p>"
}

// Render converts message text to an HTML fragment with the default chat
// engine: protected code regions, no highlighting, no verification.
//
//	chatmd.Render("**hi**") // "<p><strong>hi</strong></p>"
func Render(content string) string {
	return defaultRenderer.Render(content)
}

// Escape replaces &, <, >, " and ' with character references after
// normalizing line endings. It is the first pass of the chat engine.
func Escape(text string) string {
	return pipeline.Escape(text)
}

// Unescape reverses Escape for text content.
func Unescape(text string) string {
	return pipeline.Unescape(text)
}

// Verify reports whether fragment only uses the elements and attributes the
// chat engine emits. The returned error wraps ErrUnsafeOutput.
func Verify(fragment string) error {
	if err := pipeline.Verify(fragment); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsafeOutput, err)
	}
	return nil
}

// HighlightCSS returns the stylesheet for a chroma style name.
func HighlightCSS(style string) (string, error) {
	h, err := pipeline.NewHighlighter(style)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := h.WriteCSS(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// HighlightStyles lists the available highlight style names, sorted.
func HighlightStyles() []string {
	return pipeline.StyleNames()
}
