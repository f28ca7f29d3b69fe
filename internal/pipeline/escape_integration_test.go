//go:build integration

package pipeline

// Notes:
// - Compares Escape with what a browser produces when text is assigned to
//   textContent and read back from innerHTML.
// - Browsers only escape &, < and > in text nodes, and they keep CR. Inputs
//   are therefore compared after unescaping both sides, which is the property
//   the renderer relies on: a browser reads our output back as the input text.
// - ROD_BROWSER_BIN selects a pre-installed browser (containers, CI).

import (
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const browserTimeout = 30 * time.Second

// launchBrowser starts a headless browser for the test and registers cleanup.
func launchBrowser(t *testing.T) *rod.Browser {
	t.Helper()

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		t.Skipf("browser unavailable: %v", err)
	}
	t.Cleanup(l.Kill)

	browser := rod.New().ControlURL(u).Timeout(browserTimeout)
	if err := browser.Connect(); err != nil {
		t.Fatalf("connect to browser: %v", err)
	}
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func TestEscape_BrowserParity(t *testing.T) {
	browser := launchBrowser(t)

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		t.Fatalf("open page: %v", err)
	}

	inputs := []string{
		"plain",
		"<script>alert(1)</script>",
		`"quoted" & 'single'`,
		"a\nb",
		"&amp; stays text",
		"héllo 世界",
	}

	for _, input := range inputs {
		res, err := page.Eval(`(s) => { const d = document.createElement('div'); d.textContent = s; return d.innerHTML }`, input)
		if err != nil {
			t.Fatalf("Eval(%q): %v", input, err)
		}
		fromBrowser := res.Value.Str()

		if got, want := Unescape(Escape(input)), Unescape(fromBrowser); got != want {
			t.Errorf("Escape(%q) reads back as %q, browser reads back %q", input, got, want)
		}
	}
}
