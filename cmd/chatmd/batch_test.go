package main

// Notes:
// - mockEngine records calls and can fail on chosen inputs; the real engines
//   are exercised end to end in main_test.go.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock engine and environment
// ---------------------------------------------------------------------------

type mockEngine struct {
	mu     sync.Mutex
	calls  []string
	failOn string
}

func (m *mockEngine) Name() string { return "mock" }

func (m *mockEngine) RenderHTML(ctx context.Context, content string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, content)
	m.mu.Unlock()

	if m.failOn != "" && strings.Contains(content, m.failOn) {
		return "", errors.New("mock failure")
	}
	return "<p>" + content + "</p>", nil
}

func (m *mockEngine) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(step)
		return current
	}
}

// newTestEnv returns an Environment writing to buffers.
func newTestEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    time.Now,
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// ---------------------------------------------------------------------------
// TestRenderBatch - Worker pool behavior
// ---------------------------------------------------------------------------

func TestRenderBatch(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"one.md":   "first",
		"two.md":   "second",
		"three.md": "bad third",
	})

	var files []FileToRender
	for _, name := range []string{"one", "two", "three"} {
		files = append(files, FileToRender{
			InputPath:  filepath.Join(dir, name+".md"),
			OutputPath: filepath.Join(dir, "out", name+".html"),
		})
	}

	engine := &mockEngine{failOn: "bad"}
	results := renderBatch(context.Background(), engine, files, 2, time.Now)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if engine.callCount() != 3 {
		t.Errorf("engine calls = %d, want 3", engine.callCount())
	}

	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want input order kept", i, r.InputPath)
		}
	}

	if results[0].Err != nil || results[1].Err != nil {
		t.Fatalf("unexpected errors: %v, %v", results[0].Err, results[1].Err)
	}
	if results[2].Err == nil {
		t.Error("results[2].Err = nil, want mock failure")
	}

	got, err := os.ReadFile(filepath.Join(dir, "out", "one.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "<p>first</p>\n" {
		t.Errorf("output = %q, want %q", got, "<p>first</p>\n")
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "three.html")); !os.IsNotExist(err) {
		t.Error("failed file should not produce output")
	}
}

func TestRenderBatch_Empty(t *testing.T) {
	t.Parallel()

	if results := renderBatch(context.Background(), &mockEngine{}, nil, 4, time.Now); results != nil {
		t.Errorf("renderBatch(nil) = %v, want nil", results)
	}
}

func TestRenderBatch_Canceled(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "a", "b.md": "b"})
	files := []FileToRender{
		{InputPath: filepath.Join(dir, "a.md"), OutputPath: filepath.Join(dir, "a.html")},
		{InputPath: filepath.Join(dir, "b.md"), OutputPath: filepath.Join(dir, "b.html")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &mockEngine{}
	for _, r := range renderBatch(ctx, engine, files, 1, time.Now) {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: Err = %v, want %v", r.InputPath, r.Err, context.Canceled)
		}
	}
	if engine.callCount() != 0 {
		t.Errorf("engine calls = %d, want 0 after cancellation", engine.callCount())
	}
}

func TestRenderBatch_UsesClock(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "a", "bad.md": "bad"})
	files := []FileToRender{
		{InputPath: filepath.Join(dir, "a.md"), OutputPath: filepath.Join(dir, "a.html")},
		{InputPath: filepath.Join(dir, "bad.md"), OutputPath: filepath.Join(dir, "bad.html")},
	}

	// Each file reads the clock once at start and once at the end.
	results := renderBatch(context.Background(), &mockEngine{failOn: "bad"}, files, 1, steppingClock(5*time.Millisecond))
	for _, r := range results {
		if r.Duration != 5*time.Millisecond {
			t.Errorf("%s: Duration = %v, want 5ms", r.InputPath, r.Duration)
		}
	}
}

func TestRenderFile_Errors(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "a", "blocker": "file"})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		r := renderFile(context.Background(), &mockEngine{}, FileToRender{
			InputPath:  filepath.Join(dir, "missing.md"),
			OutputPath: filepath.Join(dir, "missing.html"),
		}, time.Now)
		if !errors.Is(r.Err, ErrReadInput) {
			t.Errorf("Err = %v, want %v", r.Err, ErrReadInput)
		}
	})

	t.Run("output directory blocked by file", func(t *testing.T) {
		t.Parallel()

		r := renderFile(context.Background(), &mockEngine{}, FileToRender{
			InputPath:  filepath.Join(dir, "a.md"),
			OutputPath: filepath.Join(dir, "blocker", "a.html"),
		}, time.Now)
		if !errors.Is(r.Err, ErrWriteOutput) {
			t.Errorf("Err = %v, want %v", r.Err, ErrWriteOutput)
		}
		if !strings.Contains(r.Err.Error(), "hint:") {
			t.Errorf("Err = %v, want a hint", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Output format
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []RenderResult{
		{InputPath: "a.md", OutputPath: "a.html", Duration: 3 * time.Millisecond},
		{InputPath: "b.md", Err: errors.New("boom")},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		wantAbsent []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.html", "1 succeeded, 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"a.md -> a.html (3ms)"},
		},
		{
			name:       "quiet",
			quiet:      true,
			wantAbsent: []string{"Created", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv("")
			failed := printResults(results, tt.quiet, tt.verbose, env)

			if failed != 1 {
				t.Errorf("printResults() = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md: boom") {
				t.Errorf("stderr = %q, want FAILED line", stderr.String())
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout = %q, want %q", stdout.String(), want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(stdout.String(), absent) {
					t.Errorf("stdout = %q, should not contain %q", stdout.String(), absent)
				}
			}
		})
	}
}

func TestFragmentBytes(t *testing.T) {
	t.Parallel()

	if got := fragmentBytes(""); got != nil {
		t.Errorf("fragmentBytes(\"\") = %q, want nil", got)
	}
	if got := string(fragmentBytes("<p>x</p>")); got != "<p>x</p>\n" {
		t.Errorf("fragmentBytes() = %q, want trailing newline", got)
	}
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := resolvePoolSize(3); got != 3 {
		t.Errorf("resolvePoolSize(3) = %d, want 3", got)
	}
	if got := resolvePoolSize(1000); got != 32 {
		t.Errorf("resolvePoolSize(1000) = %d, want 32", got)
	}
	if got := resolvePoolSize(0); got < 1 || got > 32 {
		t.Errorf("resolvePoolSize(0) = %d, want within [1, 32]", got)
	}
}
