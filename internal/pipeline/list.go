package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Bullet marker: - or * followed by whitespace.
	unorderedItem = regexp.MustCompile(`^[-*]\s`)

	// Numbered marker: digits, a dot, whitespace.
	orderedItem = regexp.MustCompile(`^\d+\.\s`)

	// Blocks are separated by one or more blank lines. A run counts as one
	// separator, so no empty block yields a stray <br>.
	blockSeparator = regexp.MustCompile(`\n{2,}`)
)

// listState is the open list, if any, while scanning a block.
type listState int

const (
	listNone listState = iota
	listUnordered
	listOrdered
)

func (s listState) openTag() string {
	if s == listOrdered {
		return "<ol>"
	}
	return "<ul>"
}

func (s listState) closeTag() string {
	if s == listOrdered {
		return "</ol>"
	}
	return "</ul>"
}

// classifyListLine returns the list type a line belongs to and the item
// content with its marker removed. Non-items return listNone and the line.
func classifyListLine(line string) (listState, string) {
	if m := unorderedItem.FindString(line); m != "" {
		return listUnordered, line[len(m):]
	}
	if m := orderedItem.FindString(line); m != "" {
		return listOrdered, line[len(m):]
	}
	return listNone, line
}

// listMachine groups consecutive item lines of one block into lists.
type listMachine struct {
	state listState
	out   []string
}

// step feeds one line through the machine. A change of marker type always
// closes the open list before the next one opens.
func (m *listMachine) step(line string) {
	kind, content := classifyListLine(line)

	if kind == listNone {
		m.closeList()
		m.out = append(m.out, line)
		return
	}

	if kind != m.state {
		m.closeList()
		m.out = append(m.out, kind.openTag())
		m.state = kind
	}
	m.out = append(m.out, "<li>"+content+"</li>")
}

// closeList emits the closing tag of the open list, if any.
func (m *listMachine) closeList() {
	if m.state == listNone {
		return
	}
	m.out = append(m.out, m.state.closeTag())
	m.state = listNone
}

// groupLists runs the list machine over every block. Blocks that already
// hold a table are left alone.
func groupLists(s string) string {
	blocks := splitBlocks(s)
	for i, block := range blocks {
		if strings.Contains(block, "<table>") {
			continue
		}

		m := &listMachine{}
		for _, line := range strings.Split(block, "\n") {
			m.step(line)
		}
		m.closeList()
		blocks[i] = strings.Join(m.out, "\n")
	}
	return strings.Join(blocks, "\n\n")
}

// splitBlocks cuts s at blank lines.
func splitBlocks(s string) []string {
	return blockSeparator.Split(s, -1)
}
