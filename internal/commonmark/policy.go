package commonmark

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// classNames matches language-x and chroma token classes.
var classNames = regexp.MustCompile(`^[\w -]+$`)

// Policy returns the allowlist applied to rendered output: the element set of
// the chat renderer plus links, strikethrough, quotes, table sections, task
// list checkboxes and h4 to h6. Images are not allowed.
func Policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr", "strong", "em", "del", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"pre", "code", "span",
		"table", "thead", "tbody", "tr", "th", "td",
	)

	p.AllowAttrs("class").Matching(classNames).OnElements("pre", "code", "span")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")

	// GFM table alignment.
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("th", "td")

	// GFM task lists.
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return p
}
