package pipeline

import (
	"errors"
	"testing"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", nil},
		{"text only", "a &lt; b", nil},
		{"paragraph", "<p>a<br>b</p>", nil},
		{"void elements", "<hr>\n<br>", nil},
		{"list", "<ul>\n<li><strong>a</strong></li>\n</ul>", nil},
		{"code with language", `<pre><code class="language-js">x</code></pre>`, nil},
		{"code with empty language", `<pre><code class="language-">x</code></pre>`, nil},
		{"highlight spans", `<code class="language-go"><span class="line"><span class="kd">func</span></span></code>`, nil},
		{"preformatted style", `<pre style="white-space: pre-wrap;">x</pre>`, nil},
		{"table", "<table><tr><th>-</th><td>a</td></tr></table>", nil},

		{"script element", "<script>alert(1)</script>", ErrDisallowedElement},
		{"image element", `<img src="x">`, ErrDisallowedElement},
		{"stray disallowed end tag", "</div>", ErrDisallowedElement},
		{"event handler", `<p onclick="x">a</p>`, ErrDisallowedAttribute},
		{"foreign code class", `<code class="evil x">a</code>`, ErrDisallowedAttribute},
		{"other pre style", `<pre style="color: red">a</pre>`, ErrDisallowedAttribute},
		{"class on paragraph", `<p class="x">a</p>`, ErrDisallowedAttribute},
		{"comment", "<!-- c -->", ErrUnexpectedToken},
		{"doctype", "<!DOCTYPE html>", ErrUnexpectedToken},
		{"crossed tags", "<p><em>a</p></em>", ErrUnbalancedMarkup},
		{"unclosed", "<p>a", ErrUnbalancedMarkup},
		{"stray end tag", "a</p>", ErrUnbalancedMarkup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Verify(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Verify(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
