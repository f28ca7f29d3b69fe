package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		contains []string
		excludes []string
	}{
		{
			name:     "no paths",
			searched: nil,
			contains: []string{"hint:", "--config"},
			excludes: []string{"or create"},
		},
		{
			name:     "user config path suggested",
			searched: []string{"work.yaml", "/home/u/.config/go-chatmd/work.yaml"},
			contains: []string{"or create /home/u/.config/go-chatmd/work.yaml"},
		},
		{
			name:     "only local paths",
			searched: []string{"work.yaml", "work.yml"},
			excludes: []string{"or create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ForConfigNotFound(tt.searched)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ForConfigNotFound() = %q, want containing %q", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("ForConfigNotFound() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestForUnknownStyle(t *testing.T) {
	t.Parallel()

	if got := ForUnknownStyle(nil); got != "" {
		t.Errorf("ForUnknownStyle(nil) = %q, want empty", got)
	}

	got := ForUnknownStyle([]string{"github", "monokai"})
	want := "\n  hint: available styles: github, monokai"
	if got != want {
		t.Errorf("ForUnknownStyle() = %q, want %q", got, want)
	}
}

func TestForUnknownEngine(t *testing.T) {
	t.Parallel()

	if got := ForUnknownEngine(nil); got != "" {
		t.Errorf("ForUnknownEngine(nil) = %q, want empty", got)
	}

	got := ForUnknownEngine([]string{"chat", "commonmark"})
	want := "\n  hint: available engines: chat, commonmark"
	if got != want {
		t.Errorf("ForUnknownEngine() = %q, want %q", got, want)
	}
}

func TestForTranscriptFormat(t *testing.T) {
	t.Parallel()

	got := ForTranscriptFormat()
	if !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("ForTranscriptFormat() = %q, want hint prefix", got)
	}
	if strings.Count(got, "hint:") != 1 {
		t.Errorf("ForTranscriptFormat() = %q, want a single joined hint", got)
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}
