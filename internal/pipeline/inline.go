package pipeline

import "regexp"

var (
	// # to ### at the start of a line, followed by a space. Any indentation
	// keeps the line as text.
	heading = regexp.MustCompile(`(?m)^(#{1,3}) (.*)$`)

	// **text** on one line. Tags may not be crossed, which keeps the output
	// well nested when emphasis straddles table cells.
	bold = regexp.MustCompile(`\*\*([^<>\n]+?)\*\*`)

	// *text* on one line, first character not blank so "* item" survives as a
	// bullet.
	italic = regexp.MustCompile(`\*([^\s*<>][^*<>\n]*?)\*`)

	// Legacy emphasis: any run on one line, tags included, even empty.
	legacyBold   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	legacyItalic = regexp.MustCompile(`\*(.*?)\*`)

	// A line made of exactly three dashes.
	horizontalRule = regexp.MustCompile(`(?m)^---$`)
)

// emphasis holds the bold and italic patterns for one scanning mode.
type emphasis struct {
	bold, italic *regexp.Regexp
}

var (
	nestedEmphasis = emphasis{bold: bold, italic: italic}
	legacyEmphasis = emphasis{bold: legacyBold, italic: legacyItalic}
)

// transformInline applies headings, bold, italic and rules to the whole
// working string. Bold runs before italic so **x** is never half-consumed.
func transformInline(s string, em emphasis) string {
	s = replaceAllSubmatchFunc(heading, s, func(groups []string) string {
		tag := headingTag(len(groups[1]))
		return "<" + tag + ">" + groups[2] + "</" + tag + ">"
	})
	s = em.bold.ReplaceAllString(s, "<strong>$1</strong>")
	s = em.italic.ReplaceAllString(s, "<em>$1</em>")
	return horizontalRule.ReplaceAllString(s, "<hr>")
}

// headingTag maps a # run length to its element name.
func headingTag(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h2"
	default:
		return "h3"
	}
}
