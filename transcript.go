package chatmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-chatmd/internal/assets"
	"github.com/alnah/go-chatmd/internal/dateutil"
	"github.com/alnah/go-chatmd/internal/yamlutil"
)

// MaxTranscriptSize limits transcript input (32MB).
const MaxTranscriptSize = 32 << 20

// Transcript page defaults.
const (
	DefaultModel = "GPT"
	DefaultTitle = "Conversation"
	DefaultLang  = "en"
)

// LoadTranscript decodes a conversation from YAML or JSON.
// Missing pair indexes are filled from position and missing roles from the
// message's place in the pair. Unknown fields are ignored so exports from
// other tools load as long as the shape matches.
func LoadTranscript(data []byte) (*Conversation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyTranscript
	}

	var conv Conversation
	if err := yamlutil.UnmarshalLimit(data, &conv, MaxTranscriptSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptParse, err)
	}

	if err := conv.normalize(); err != nil {
		return nil, err
	}
	return &conv, nil
}

// normalize fills defaults and rejects role mix-ups.
func (c *Conversation) normalize() error {
	if len(c.Pairs) == 0 {
		return ErrEmptyTranscript
	}

	for i := range c.Pairs {
		p := &c.Pairs[i]
		if p.Index == 0 {
			p.Index = i + 1
		}
		if p.Index < 0 {
			return fmt.Errorf("%w: pair %d has negative index %d", ErrInvalidTranscript, i+1, p.Index)
		}

		if err := fillRole(&p.Question, RoleUser); err != nil {
			return fmt.Errorf("%w: pair %d question: %v", ErrInvalidTranscript, p.Index, err)
		}
		for j := range p.Answers {
			if err := fillRole(&p.Answers[j], RoleAssistant); err != nil {
				return fmt.Errorf("%w: pair %d answer %d: %v", ErrInvalidTranscript, p.Index, j+1, err)
			}
		}
	}
	return nil
}

func fillRole(m *Message, role string) error {
	switch strings.ToLower(m.Role) {
	case "", role:
		m.Role = role
	default:
		return fmt.Errorf("role %q, want %q", m.Role, role)
	}
	if m.Timestamp < 0 {
		return fmt.Errorf("negative timestamp %d", m.Timestamp)
	}
	return nil
}

// TranscriptOptions configures RenderTranscript. The zero value renders
// every pair with the chat engine and the built-in light style.
type TranscriptOptions struct {
	Engine       Engine         // nil = default chat engine
	Title        string         // overrides Conversation.Title
	DefaultModel string         // badge for answers without a model (default: "GPT")
	DateFormat   string         // dateutil format or preset (default: "YYYY-MM-DD HH:mm")
	Location     *time.Location // nil = local time
	Style        string         // page style name (default: "default")
	Template     string         // page template name (default: "transcript")
	AssetPath    string         // custom assets directory, falls back to embedded
	Lang         string         // html lang attribute (default: "en")

	Filter      string // keep pairs whose messages contain this text, case-insensitive
	StarredOnly bool   // keep starred pairs only
}

// transcriptPage is the data passed to the page template.
type transcriptPage struct {
	Lang         string
	Title        string
	CSS          template.CSS
	HighlightCSS template.CSS
	Pairs        []pairView
}

type pairView struct {
	Index    int
	Starred  bool
	Question messageView
	Answers  []messageView
}

type messageView struct {
	Body    template.HTML
	Last    bool
	Model   string
	Time    string
	Starred bool
}

// RenderTranscript writes conv as a standalone HTML page to w. Message
// bodies go through the engine; everything else is escaped by the template.
// Nothing is written when an error is returned.
func RenderTranscript(ctx context.Context, w io.Writer, conv *Conversation, opts TranscriptOptions) error {
	if conv == nil {
		return ErrEmptyTranscript
	}

	engine := opts.Engine
	if engine == nil {
		engine = defaultRenderer
	}

	layout, err := dateutil.ResolveFormat(opts.DateFormat)
	if err != nil {
		return err
	}

	css, tmpl, err := loadPageAssets(opts)
	if err != nil {
		return err
	}

	page := transcriptPage{
		Lang:  firstNonEmpty(opts.Lang, DefaultLang),
		Title: firstNonEmpty(opts.Title, conv.Title, DefaultTitle),
		CSS:   template.CSS(css), // #nosec G203 -- stylesheet comes from embedded or operator-provided assets
	}

	if sp, ok := engine.(stylesheetProvider); ok {
		hl, err := sp.HighlightCSS()
		if err != nil {
			return fmt.Errorf("%w: highlight stylesheet: %v", ErrTemplateRender, err)
		}
		page.HighlightCSS = template.CSS(hl) // #nosec G203 -- generated by chroma
	}

	view := pageView{
		engine:       engine,
		layout:       layout,
		location:     opts.Location,
		defaultModel: firstNonEmpty(opts.DefaultModel, DefaultModel),
	}
	if view.location == nil {
		view.location = time.Local
	}

	for _, p := range FilterPairs(conv.Pairs, opts.Filter, opts.StarredOnly) {
		if err := ctx.Err(); err != nil {
			return err
		}
		pv, err := view.pair(ctx, p)
		if err != nil {
			return err
		}
		page.Pairs = append(page.Pairs, pv)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// loadPageAssets resolves the page stylesheet and parses the page template.
func loadPageAssets(opts TranscriptOptions) (string, *template.Template, error) {
	resolver, err := assets.NewAssetResolver(opts.AssetPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	css, err := resolver.LoadStyle(firstNonEmpty(opts.Style, assets.DefaultStyleName))
	if err != nil {
		return "", nil, err
	}

	src, err := resolver.LoadTemplate(firstNonEmpty(opts.Template, assets.TranscriptTemplateName))
	if err != nil {
		return "", nil, err
	}

	tmpl, err := template.New("transcript").Parse(src)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return css, tmpl, nil
}

// pageView turns pairs into template views.
type pageView struct {
	engine       Engine
	layout       string
	location     *time.Location
	defaultModel string
}

func (v pageView) pair(ctx context.Context, p Pair) (pairView, error) {
	question, err := v.engine.RenderHTML(ctx, p.Question.Content)
	if err != nil {
		return pairView{}, fmt.Errorf("pair %d question: %w", p.Index, err)
	}

	pv := pairView{
		Index:    p.Index,
		Starred:  p.Starred,
		Question: messageView{Body: template.HTML(question)}, // #nosec G203 -- engine output is sanitized
		Answers:  make([]messageView, 0, len(p.Answers)),
	}

	for i, a := range p.Answers {
		body, err := v.engine.RenderHTML(ctx, a.Content)
		if err != nil {
			return pairView{}, fmt.Errorf("pair %d answer %d: %w", p.Index, i+1, err)
		}

		mv := messageView{Body: template.HTML(body)} // #nosec G203 -- engine output is sanitized
		if i == len(p.Answers)-1 {
			mv.Last = true
			mv.Model = firstNonEmpty(a.Model, v.defaultModel)
			mv.Time = dateutil.FormatTimestamp(a.Timestamp, v.layout, v.location)
			mv.Starred = p.Starred
		}
		pv.Answers = append(pv.Answers, mv)
	}
	return pv, nil
}

// FilterPairs keeps pairs where the question or any answer contains query
// (case-insensitive), and with starredOnly, only starred pairs. An empty
// query matches every pair. The input slice is not modified.
func FilterPairs(pairs []Pair, query string, starredOnly bool) []Pair {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" && !starredOnly {
		return pairs
	}

	kept := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if starredOnly && !p.Starred {
			continue
		}
		if query != "" && !pairContains(p, query) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func pairContains(p Pair, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(p.Question.Content), lowerQuery) {
		return true
	}
	for _, a := range p.Answers {
		if strings.Contains(strings.ToLower(a.Content), lowerQuery) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// IsTranscriptError reports whether err came from loading a transcript.
func IsTranscriptError(err error) bool {
	return errors.Is(err, ErrEmptyTranscript) ||
		errors.Is(err, ErrTranscriptParse) ||
		errors.Is(err, ErrInvalidTranscript)
}
