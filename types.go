package chatmd

import "strings"

// Option configures a Renderer or an Engine.
type Option func(*rendererConfig)

// rendererConfig holds settings shared by every engine.
// Options a given engine has no use for are ignored.
type rendererConfig struct {
	legacyScanning bool
	highlightStyle string
	verify         bool
}

// WithLegacyScanning lets every pass of the chat engine scan code content,
// so "**" or "#" inside a code block is still transformed, and lets emphasis
// match across tags. Output may then be badly nested. Off by default.
func WithLegacyScanning() Option {
	return func(c *rendererConfig) {
		c.legacyScanning = true
	}
}

// WithHighlighting enables class-based syntax highlighting of fenced code
// with a chroma style such as "github" or "monokai". Use HighlightCSS for
// the matching stylesheet.
// Panics if style is empty.
func WithHighlighting(style string) Option {
	if strings.TrimSpace(style) == "" {
		panic("chatmd: WithHighlighting style must not be empty")
	}
	return func(c *rendererConfig) {
		c.highlightStyle = style
	}
}

// WithVerify checks every rendered fragment against the element allowlist.
// Render falls back to escaped text on failure, RenderHTML returns
// ErrUnsafeOutput.
func WithVerify() Option {
	return func(c *rendererConfig) {
		c.verify = true
	}
}

// Conversation is a chat transcript: an ordered list of question/answer pairs.
type Conversation struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Pairs []Pair `yaml:"pairs"`
}

// Pair is one user question and the answers it received. Only the last
// answer carries the model badge and timestamp when rendered.
type Pair struct {
	ID       string    `yaml:"id"`
	Index    int       `yaml:"index"` // 1-based, filled from position when zero
	Starred  bool      `yaml:"starred"`
	Question Message   `yaml:"question"`
	Answers  []Message `yaml:"answers"`
}

// Message is a single chat message. Content is untrusted markdown text.
type Message struct {
	ID        string `yaml:"id"`
	Role      string `yaml:"role"` // "user" or "assistant", filled when empty
	Content   string `yaml:"content"`
	Model     string `yaml:"model"`
	Timestamp int64  `yaml:"timestamp"` // unix seconds, 0 = unknown
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
