package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Span placeholders use Unicode Private Use Area characters. Escape replaces
// them in raw input, so every token in the working string was minted here.
const (
	spanOpen  = "\uE000" // U+E000: Private Use Area start
	spanClose = "\uE001" // U+E001: Private Use Area end
)

// spanKind tells block spans (whole <pre> elements) from inline spans.
type spanKind byte

const (
	spanBlock  spanKind = 'b'
	spanInline spanKind = 'i'
)

var (
	spanToken     = regexp.MustCompile(spanOpen + `([bi])([0-9]+)` + spanClose)
	blockSpanLine = regexp.MustCompile(`^[ \t]*` + spanOpen + `b[0-9]+` + spanClose + `[ \t]*$`)
)

// spanTable stores committed markup for a single Run call.
// When disabled, protect returns the markup itself (legacy scanning).
type spanTable struct {
	enabled bool
	markup  []string
}

// protect records markup and returns the token that stands in for it.
func (t *spanTable) protect(kind spanKind, markup string) string {
	if !t.enabled {
		return markup
	}
	t.markup = append(t.markup, markup)
	return spanOpen + string(rune(kind)) + strconv.Itoa(len(t.markup)-1) + spanClose
}

// restore swaps every token back for its markup.
func (t *spanTable) restore(s string) string {
	if len(t.markup) == 0 {
		return s
	}
	return spanToken.ReplaceAllStringFunc(s, func(token string) string {
		m := spanToken.FindStringSubmatch(token)
		i, err := strconv.Atoi(m[2])
		if err != nil || i >= len(t.markup) {
			return token
		}
		return t.markup[i]
	})
}

// startsWithBlockSpan reports whether s begins with a block span token.
func startsWithBlockSpan(s string) bool {
	return strings.HasPrefix(s, spanOpen+string(rune(spanBlock)))
}

// isBlockSpanLine reports whether the line holds nothing but a block token.
func isBlockSpanLine(line string) bool {
	return blockSpanLine.MatchString(line)
}
