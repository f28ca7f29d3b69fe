package pipeline

import (
	"regexp"
	"strings"
)

var (
	// A row starts and ends with a pipe, ignoring surrounding blanks.
	tableRow = regexp.MustCompile(`(?m)^[ \t]*\|.*\|[ \t]*$`)

	// Alignment cells such as ---, :--, --: or :-:.
	separatorCell = regexp.MustCompile(`^:?-+:?$`)

	// Rows separated only by whitespace, blank lines included, share one
	// container.
	tableRowRun = regexp.MustCompile(`<tr>.*</tr>(?:\s*<tr>.*</tr>)*`)

	renderedRow = regexp.MustCompile(`<tr>.*</tr>`)
)

// detectTables converts pipe-delimited lines into rows and wraps each run of
// rows in a single <table>. Inside a run the rows are rejoined with single
// newlines so the table stays one block for the later passes.
func detectTables(s string) string {
	s = tableRow.ReplaceAllStringFunc(s, renderRow)
	return tableRowRun.ReplaceAllStringFunc(s, func(run string) string {
		rows := renderedRow.FindAllString(run, -1)
		return "<table>" + strings.Join(rows, "\n") + "</table>"
	})
}

// renderRow emits one <tr>. Header versus data is decided per cell: a cell
// shaped like an alignment separator becomes <th>, anything else <td>.
func renderRow(line string) string {
	line = strings.TrimSpace(line)
	cells := strings.Split(line[1:len(line)-1], "|")

	var b strings.Builder
	b.WriteString("<tr>")
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		if separatorCell.MatchString(cell) {
			b.WriteString("<th>" + cell + "</th>")
		} else {
			b.WriteString("<td>" + cell + "</td>")
		}
	}
	b.WriteString("</tr>")
	return b.String()
}
