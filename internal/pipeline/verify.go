package pipeline

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sentinel errors for fragment verification.
var (
	ErrDisallowedElement   = errors.New("disallowed element")
	ErrDisallowedAttribute = errors.New("disallowed attribute")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrUnbalancedMarkup    = errors.New("unbalanced markup")
)

// allowedElements is every element the pipeline can emit. span only appears
// when highlighting is enabled.
var allowedElements = map[atom.Atom]bool{
	atom.Pre: true, atom.Code: true, atom.Span: true,
	atom.Table: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.Strong: true, atom.Em: true, atom.Hr: true, atom.Br: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.P: true,
}

// voidElements never get an end tag.
var voidElements = map[atom.Atom]bool{atom.Hr: true, atom.Br: true}

var (
	languageClass  = regexp.MustCompile(`^language-\w*$`)
	highlightClass = regexp.MustCompile(`^[\w -]*$`)
)

// Verify checks that fragment only contains markup the pipeline produces:
// allowlisted elements, the attributes the pipeline writes, no comments or
// doctypes, and properly nested tags. Text content is not inspected.
func Verify(fragment string) error {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var open []atom.Atom

	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if len(open) > 0 {
					return fmt.Errorf("%w: <%s> never closed", ErrUnbalancedMarkup, open[len(open)-1])
				}
				return nil
			}
			return z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if err := checkElement(tok); err != nil {
				return err
			}
			if !voidElements[tok.DataAtom] && tok.Type == html.StartTagToken {
				open = append(open, tok.DataAtom)
			}

		case html.EndTagToken:
			tok := z.Token()
			if !allowedElements[tok.DataAtom] {
				return fmt.Errorf("%w: </%s>", ErrDisallowedElement, tok.Data)
			}
			if len(open) == 0 || open[len(open)-1] != tok.DataAtom {
				return fmt.Errorf("%w: unexpected </%s>", ErrUnbalancedMarkup, tok.Data)
			}
			open = open[:len(open)-1]

		case html.CommentToken, html.DoctypeToken:
			return fmt.Errorf("%w: %s", ErrUnexpectedToken, z.Token().Type)
		}
	}
}

// checkElement validates a start tag and its attributes.
func checkElement(tok html.Token) error {
	if !allowedElements[tok.DataAtom] {
		return fmt.Errorf("%w: <%s>", ErrDisallowedElement, tok.Data)
	}

	for _, attr := range tok.Attr {
		if !attributeAllowed(tok.DataAtom, attr) {
			return fmt.Errorf("%w: %s on <%s>", ErrDisallowedAttribute, attr.Key, tok.Data)
		}
	}
	return nil
}

func attributeAllowed(element atom.Atom, attr html.Attribute) bool {
	switch {
	case element == atom.Code && attr.Key == "class":
		return languageClass.MatchString(attr.Val)
	case element == atom.Span && attr.Key == "class":
		return highlightClass.MatchString(attr.Val)
	case element == atom.Pre && attr.Key == "style":
		return attr.Val == "white-space: pre-wrap;"
	default:
		return false
	}
}
