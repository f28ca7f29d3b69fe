package pipeline

import (
	"regexp"
	"strings"
)

var (
	// ```lang\n ... ``` (non-greedy, spans lines). The closing fence may sit
	// anywhere, an unterminated fence never matches.
	fencedCode = regexp.MustCompile("(?s)```(\\w+)?[ \\t]*\\n(.*?)```")

	// `code` on a single line.
	inlineCode = regexp.MustCompile("`([^`\\n]+)`")
)

// extractFences rewrites fenced regions into <pre><code> blocks.
// The content is already escaped; it is trimmed and kept verbatim unless the
// highlighter recognizes the language.
func (p *Pipeline) extractFences(s string, spans *spanTable) string {
	return replaceAllSubmatchFunc(fencedCode, s, func(groups []string) string {
		lang, code := groups[1], strings.TrimSpace(groups[2])
		if p.highlighter != nil && lang != "" {
			if highlighted, ok := p.highlighter.Highlight(lang, Unescape(code)); ok {
				code = highlighted
			}
		}
		return spans.protect(spanBlock, `<pre><code class="language-`+lang+`">`+code+`</code></pre>`)
	})
}

// extractInlineCode rewrites single-backtick spans into <code> elements.
func extractInlineCode(s string, spans *spanTable) string {
	return replaceAllSubmatchFunc(inlineCode, s, func(groups []string) string {
		return spans.protect(spanInline, "<code>"+groups[1]+"</code>")
	})
}

// replaceAllSubmatchFunc is ReplaceAllStringFunc with access to capture
// groups. Unmatched optional groups are passed as "".
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		groups := make([]string, len(m)/2)
		for i := range groups {
			if start, end := m[2*i], m[2*i+1]; start >= 0 {
				groups[i] = s[start:end]
			}
		}
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
