package pipeline

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownStyle indicates the requested highlight style is not registered.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Highlighter tokenizes fenced code with chroma and emits class-based
// <span> markup. The surrounding <pre><code> is written by the pipeline.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter creates a Highlighter for a chroma style name such as
// "github" or "monokai".
func NewHighlighter(styleName string) (*Highlighter, error) {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	return &Highlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),           // Stylesheet controls colors, see WriteCSS
			chromahtml.PreventSurroundingPre(true), // Pipeline owns the <pre><code> wrapper
		),
	}, nil
}

// Highlight returns highlighted markup for unescaped code. It reports false
// when the language has no lexer or tokenizing fails, in which case the
// caller keeps the plain escaped text.
func (h *Highlighter) Highlight(lang, code string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", false
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// WriteCSS writes the stylesheet matching the highlight classes.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// StyleNames lists the registered highlight styles in sorted order.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
