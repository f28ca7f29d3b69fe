package main

// Notes:
// - GenerateCompletion: scripts are checked for content markers only. Running
//   them needs the target shells, which these tests do not assume.

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		shell        Shell
		wantContains []string
	}{
		{
			name:  "bash",
			shell: ShellBash,
			wantContains: []string{
				"_chatmd_completions",
				"complete -F _chatmd_completions chatmd",
				"render transcript css completion version help",
				"-e|--engine)",
				"chat commonmark",
				"--page-style",
			},
		},
		{
			name:  "zsh",
			shell: ShellZsh,
			wantContains: []string{
				"#compdef chatmd",
				"_describe 'command' commands",
				"'render:Render chat messages to HTML fragments'",
				"{-e,--engine}",
				"_files -g \"*.(yaml|yml|json)\"",
				"--asset-path[custom asset directory]:asset-path:_directories",
			},
		},
		{
			name:  "fish",
			shell: ShellFish,
			wantContains: []string{
				"complete -c chatmd -n __fish_chatmd_needs_command -a transcript",
				"__fish_chatmd_using_command render",
				"-l engine -s e -x -a 'chat commonmark'",
				"-l starred",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%s) unexpected error: %v", tt.shell, err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	err := GenerateCompletion(&bytes.Buffer{}, "powershell")
	if !errors.Is(err, ErrUnsupportedShell) {
		t.Errorf("GenerateCompletion(powershell) error = %v, want %v", err, ErrUnsupportedShell)
	}
}

func TestGetCommands_FlagsMatchParsers(t *testing.T) {
	t.Parallel()

	want := map[string][]string{
		"render":     {"output", "workers", "engine", "style", "verify", "config"},
		"transcript": {"title", "page-style", "date-format", "timezone", "filter", "starred"},
		"css":        {"style", "list"},
	}

	for _, cmd := range getCommands() {
		names, ok := want[cmd.Name]
		if !ok {
			continue
		}
		have := map[string]bool{}
		for _, f := range cmd.Flags {
			have[f.Long] = true
		}
		for _, name := range names {
			if !have[name] {
				t.Errorf("%s completion missing --%s", cmd.Name, name)
			}
		}
	}
}

func TestRunCompletion(t *testing.T) {
	t.Parallel()

	env, stdout, _ := newTestEnv("")
	if err := runCompletion(nil, env); err != nil {
		t.Fatalf("runCompletion(nil) unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage: chatmd completion") {
		t.Errorf("stdout = %q, want usage", stdout.String())
	}

	env, _, _ = newTestEnv("")
	if err := runCompletion([]string{"tcsh"}, env); !errors.Is(err, ErrUsage) {
		t.Errorf("runCompletion(tcsh) error = %v, want %v", err, ErrUsage)
	}
	if err := runCompletion([]string{"bash", "zsh"}, env); !errors.Is(err, ErrUsage) {
		t.Errorf("runCompletion(bash zsh) error = %v, want %v", err, ErrUsage)
	}
}
