package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alnah/go-chatmd/internal/config"
)

var testExtensions = []string{".md", ".markdown", ".txt"}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":             "a",
		"notes/b.markdown": "b",
		"notes/c.TXT":      "c",
		"image.png":        "x",
		"d.html":           "<p>d</p>",
	})

	t.Run("directory keeps matching files", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(dir, "", testExtensions, "html")
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}

		var got []string
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.OutputPath)
			got = append(got, filepath.ToSlash(rel))
		}
		sort.Strings(got)
		want := []string{"a.html", "notes/b.html", "notes/c.html"}
		if len(got) != len(want) {
			t.Fatalf("outputs = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("outputs = %v, want %v", got, want)
				break
			}
		}
	})

	t.Run("directory mirrored under output dir", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "site")
		files, err := discoverFiles(dir, out, []string{".markdown"}, "htm")
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("len(files) = %d, want 1", len(files))
		}
		want := filepath.Join(out, "notes", "b.htm")
		if files[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
		}
	})

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(filepath.Join(dir, "a.md"), "", testExtensions, "html")
		if err != nil {
			t.Fatalf("discoverFiles() unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "a.html") {
			t.Errorf("files = %+v, want a.html next to a.md", files)
		}
	})

	t.Run("single file with wrong extension", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "image.png"), "", testExtensions, "html")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("discoverFiles() error = %v, want %v", err, ErrInvalidExtension)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "nope.md"), "", testExtensions, "html")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("discoverFiles() error = %v, want %v", err, os.ErrNotExist)
		}
	})
}

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		want      string
	}{
		{"next to input", filepath.Join("in", "msg.md"), "", "", filepath.Join("in", "msg.html")},
		{"explicit file", filepath.Join("in", "msg.md"), filepath.Join("out", "x.html"), "", filepath.Join("out", "x.html")},
		{"into directory", filepath.Join("in", "msg.md"), "out", "", filepath.Join("out", "msg.html")},
		{"relative layout", filepath.Join("in", "a", "msg.md"), "out", "in", filepath.Join("out", "a", "msg.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveOutputPath(tt.input, tt.outputDir, tt.baseDir, "html"); got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if got, err := resolveInputPath([]string{"x.md"}, cfg); err != nil || got != "x.md" {
		t.Errorf("resolveInputPath(x.md) = (%q, %v), want x.md", got, err)
	}
	if _, err := resolveInputPath(nil, cfg); !errors.Is(err, ErrNoInput) {
		t.Errorf("resolveInputPath(nil) error = %v, want %v", err, ErrNoInput)
	}
	if _, err := resolveInputPath([]string{"a", "b"}, cfg); !errors.Is(err, ErrUsage) {
		t.Errorf("resolveInputPath(a b) error = %v, want %v", err, ErrUsage)
	}

	withDefault := config.DefaultConfig()
	withDefault.Input.DefaultDir = "inbox"
	if got, err := resolveInputPath(nil, withDefault); err != nil || got != "inbox" {
		t.Errorf("resolveInputPath(default dir) = (%q, %v), want inbox", got, err)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, config.MaxWorkers} {
		if err := validateWorkers(n); err != nil {
			t.Errorf("validateWorkers(%d) = %v, want nil", n, err)
		}
	}
	for _, n := range []int{-1, config.MaxWorkers + 1} {
		if err := validateWorkers(n); !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want %v", n, err, ErrInvalidWorkerCount)
		}
	}
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.md", true},
		{"a.MD", true},
		{"a.txt", true},
		{"a.html", false},
		{"README", false},
	}

	for _, tt := range tests {
		if got := hasExtension(tt.path, testExtensions); got != tt.want {
			t.Errorf("hasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
