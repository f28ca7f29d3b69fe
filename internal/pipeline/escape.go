package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// forgedSpanDelims neutralizes placeholder delimiters found in raw input so
// user text can never reference a protected span.
var forgedSpanDelims = strings.NewReplacer(spanOpen, "\uFFFD", spanClose, "\uFFFD")

// Escape replaces &, <, >, " and ' with character references.
//
// Line endings are normalized to \n first, and the Private Use Area
// characters reserved for protected-span tokens are replaced with U+FFFD.
// Escape is total: the empty string maps to itself and text without special
// characters is returned unchanged.
func Escape(text string) string {
	if text == "" {
		return ""
	}
	text = normalizeLineEndings(text)
	text = forgedSpanDelims.Replace(text)
	return html.EscapeString(text)
}

// Unescape reverses Escape for text content, the way a browser reads a text
// node back.
func Unescape(text string) string {
	return html.UnescapeString(text)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
