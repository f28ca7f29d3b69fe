package chatmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-chatmd/internal/commonmark"
)

// Engine names accepted by NewEngine.
const (
	EngineChat       = "chat"
	EngineCommonMark = "commonmark"
)

// Engine renders message text to a sanitized HTML fragment.
type Engine interface {
	Name() string
	RenderHTML(ctx context.Context, content string) (string, error)
}

// stylesheetProvider is implemented by engines that can highlight code.
type stylesheetProvider interface {
	HighlightCSS() (string, error)
}

// Compile-time interface checks.
var (
	_ Engine             = (*Renderer)(nil)
	_ Engine             = (*commonMarkEngine)(nil)
	_ stylesheetProvider = (*Renderer)(nil)
	_ stylesheetProvider = (*commonMarkEngine)(nil)
)

// EngineNames lists the engines NewEngine accepts.
func EngineNames() []string {
	return []string{EngineChat, EngineCommonMark}
}

// NewEngine creates an engine by name (case-insensitive). An empty name
// selects the chat engine.
// Returns ErrUnknownEngine for any other name, ErrUnknownStyle for a bad
// highlight style.
func NewEngine(name string, opts ...Option) (Engine, error) {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineChat:
		return newRenderer(cfg)
	case EngineCommonMark:
		return newCommonMarkEngine(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// commonMarkEngine renders GitHub flavored markdown through goldmark and a
// bluemonday allowlist. WithLegacyScanning and WithVerify do not apply.
type commonMarkEngine struct {
	converter      *commonmark.Converter
	highlightStyle string
}

func newCommonMarkEngine(cfg rendererConfig) (*commonMarkEngine, error) {
	var opts []commonmark.Option
	if cfg.highlightStyle != "" {
		// Fail on unknown styles here, goldmark-highlighting falls back silently.
		if _, err := HighlightCSS(cfg.highlightStyle); err != nil {
			return nil, err
		}
		opts = append(opts, commonmark.WithHighlighting(strings.ToLower(cfg.highlightStyle)))
	}

	return &commonMarkEngine{
		converter:      commonmark.New(opts...),
		highlightStyle: cfg.highlightStyle,
	}, nil
}

func (e *commonMarkEngine) Name() string {
	return EngineCommonMark
}

func (e *commonMarkEngine) RenderHTML(ctx context.Context, content string) (string, error) {
	out, err := e.converter.ToHTML(ctx, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out, nil
}

func (e *commonMarkEngine) HighlightCSS() (string, error) {
	if e.highlightStyle == "" {
		return "", nil
	}
	return HighlightCSS(e.highlightStyle)
}
