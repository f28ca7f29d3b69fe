// Package commonmark renders CommonMark with GitHub extensions through
// goldmark and sanitizes the result with a bluemonday allowlist.
//
// Raw HTML in the source is never passed through: goldmark omits it, and the
// policy removes anything the allowlist does not name.
package commonmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates goldmark failed to render the source.
var ErrConversion = errors.New("commonmark conversion failed")

// Option configures a Converter.
type Option func(*options)

type options struct {
	highlightStyle string
}

// WithHighlighting highlights fenced code with the named chroma style,
// using CSS classes rather than inline styles.
func WithHighlighting(style string) Option {
	return func(o *options) {
		o.highlightStyle = style
	}
}

// Converter renders Markdown to a sanitized HTML fragment.
// Safe for concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Converter with GFM extensions and hard line breaks, which
// matches how chat messages are typed.
func New(opts ...Option) *Converter {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	extensions := []goldmark.Extender{extension.GFM}
	if o.highlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(o.highlightStyle),
			highlighting.WithFormatOptions(html.WithClasses(true)),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(), // Newlines inside a paragraph become <br>
		),
	)

	return &Converter{md: md, policy: Policy()}
}

// ToHTML converts Markdown content to a sanitized fragment.
// Supports context cancellation via goroutine + select since goldmark has no
// context support of its own.
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrConversion, err)}
			return
		}
		sanitized := c.policy.SanitizeBytes(buf.Bytes())
		done <- result{html: string(bytes.TrimRight(sanitized, "\n"))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
