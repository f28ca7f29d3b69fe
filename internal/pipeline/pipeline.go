package pipeline

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLegacyScanning lets every pass scan code content and switches to the
// looser emphasis patterns, which may match across tags. Output is then no
// longer guaranteed to be well nested.
func WithLegacyScanning() Option {
	return func(p *Pipeline) {
		p.legacy = true
	}
}

// WithHighlighter enables syntax highlighting of fenced code.
// A nil Highlighter leaves code as plain escaped text.
func WithHighlighter(h *Highlighter) Option {
	return func(p *Pipeline) {
		p.highlighter = h
	}
}

// Pipeline renders chat message text to an HTML fragment.
// The zero value is ready to use with protected regions and no highlighting.
type Pipeline struct {
	legacy      bool
	highlighter *Highlighter
}

// New creates a Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run renders content. It never fails: input the passes do not recognize
// degrades to escaped paragraph text.
func (p *Pipeline) Run(content string) string {
	if content == "" {
		return ""
	}

	spans := &spanTable{enabled: !p.legacy}

	s := Escape(content)
	s = p.extractFences(s, spans)
	s = extractInlineCode(s, spans)
	s = detectTables(s)
	em := nestedEmphasis
	if p.legacy {
		em = legacyEmphasis
	}
	s = transformInline(s, em)
	s = groupLists(s)
	s = assembleParagraphs(s)
	return spans.restore(s)
}
