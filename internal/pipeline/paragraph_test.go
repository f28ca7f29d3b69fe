package pipeline

import "testing"

func TestAssembleParagraphs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "two paragraphs",
			input:    "a\n\nb",
			expected: "<p>a</p>\n<p>b</p>",
		},
		{
			name:     "line breaks inside paragraph",
			input:    "a\nb",
			expected: "<p>a<br>b</p>",
		},
		{
			name:     "list passes through",
			input:    "<ul>\n<li>a</li>\n</ul>",
			expected: "<ul>\n<li>a</li>\n</ul>",
		},
		{
			name:     "heading block passes through",
			input:    "<h2>x</h2>\ntext",
			expected: "<h2>x</h2>\ntext",
		},
		{
			name:     "table passes through",
			input:    "<table><tr><td>a</td></tr></table>",
			expected: "<table><tr><td>a</td></tr></table>",
		},
		{
			name:     "inline element at block start is wrapped",
			input:    "<strong>a</strong> b",
			expected: "<p><strong>a</strong> b</p>",
		},
		{
			name:     "blank blocks dropped",
			input:    "\n\n\n",
			expected: "",
		},
		{
			name:     "indented block",
			input:    "    x\n      y",
			expected: preformattedOpen + "x\n  y</pre>",
		},
		{
			name:     "tab indent kept",
			input:    "\tx",
			expected: preformattedOpen + "\tx</pre>",
		},
		{
			name:     "any indented line makes the block preformatted",
			input:    "text\n    indented",
			expected: preformattedOpen + "text\nindented</pre>",
		},
		{
			name:     "standalone block token split from text",
			input:    "before\n\uE000b0\uE001\nafter",
			expected: "<p>before</p>\n\uE000b0\uE001\n<p>after</p>",
		},
		{
			name:     "inline token stays in paragraph",
			input:    "x \uE000i0\uE001 y",
			expected: "<p>x \uE000i0\uE001 y</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := assembleParagraphs(tt.input)
			if got != tt.expected {
				t.Errorf("assembleParagraphs(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSegmentBlock(t *testing.T) {
	t.Parallel()

	got := segmentBlock("a\nb\n\uE000b0\uE001\n\uE000b1\uE001\nc")
	want := []string{"a\nb", "\uE000b0\uE001", "\uE000b1\uE001", "c"}

	if len(got) != len(want) {
		t.Fatalf("segmentBlock() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segmentBlock()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
