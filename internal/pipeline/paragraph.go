package pipeline

import (
	"regexp"
	"strings"
)

// preformattedOpen keeps the wrapping behaviour of indented text in narrow
// message bubbles.
const preformattedOpen = `<pre style="white-space: pre-wrap;">`

var (
	// Blocks that already start with block-level markup.
	structuralBlock = regexp.MustCompile(`^(<[huol]|<pre|<li|<table)`)

	// Any line indented with four spaces or a tab.
	indentedLine = regexp.MustCompile(`(?m)^(    |\t)`)

	// One level of four-space indentation.
	oneIndent = regexp.MustCompile(`(?m)^    `)
)

// segmentState tracks what kind of lines the segmenter is collecting.
type segmentState int

const (
	segmentIdle segmentState = iota
	segmentText
)

// assembleParagraphs wraps every remaining text block and joins all blocks
// with a newline. Blank blocks are dropped.
func assembleParagraphs(s string) string {
	var out []string
	for _, block := range splitBlocks(s) {
		for _, segment := range segmentBlock(block) {
			if rendered := assembleBlock(segment); rendered != "" {
				out = append(out, rendered)
			}
		}
	}
	return strings.Join(out, "\n")
}

// segmentBlock splits a block around lines that hold only a protected code
// block, so a fence written mid-paragraph is not nested inside <p>.
func segmentBlock(block string) []string {
	if !strings.Contains(block, spanOpen) {
		return []string{block}
	}

	var (
		segments []string
		text     []string
		state    = segmentIdle
	)
	flush := func() {
		if state == segmentText {
			segments = append(segments, strings.Join(text, "\n"))
			text = text[:0]
		}
		state = segmentIdle
	}

	for _, line := range strings.Split(block, "\n") {
		if isBlockSpanLine(line) {
			flush()
			segments = append(segments, strings.TrimSpace(line))
			continue
		}
		text = append(text, line)
		state = segmentText
	}
	flush()
	return segments
}

// assembleBlock renders one block: structural markup passes through,
// indented text becomes preformatted, anything else a paragraph.
func assembleBlock(block string) string {
	block = strings.Trim(block, "\n")
	switch {
	case strings.TrimSpace(block) == "":
		return ""
	case structuralBlock.MatchString(block), startsWithBlockSpan(block):
		return block
	case indentedLine.MatchString(block):
		return preformattedOpen + oneIndent.ReplaceAllString(block, "") + "</pre>"
	default:
		return "<p>" + strings.ReplaceAll(block, "\n", "<br>") + "</p>"
	}
}
