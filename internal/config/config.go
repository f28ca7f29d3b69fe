package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-chatmd/internal/dateutil"
	"github.com/alnah/go-chatmd/internal/fileutil"
	"github.com/alnah/go-chatmd/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxNameLength      = 64  // engine, style and template names
	MaxTitleLength     = 200 // transcript page title
	MaxModelLength     = 100 // model badge text
	MaxExtensionLength = 16
	MaxWorkers         = 32
)

// UserConfigDirName is the directory searched under os.UserConfigDir().
const UserConfigDirName = "go-chatmd"

// Config holds all configuration for rendering.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Render     RenderConfig     `yaml:"render"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"` // Empty = must specify
	Extensions []string `yaml:"extensions"` // Files picked up when rendering a directory
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
	Extension  string `yaml:"extension"`  // Without dot (default: "html")
}

// RenderConfig selects the engine and its options.
type RenderConfig struct {
	Engine         string          `yaml:"engine"`         // "chat" or "commonmark"
	LegacyScanning bool            `yaml:"legacyScanning"` // Let passes scan code content
	Verify         bool            `yaml:"verify"`         // Check output against the allowlist
	Workers        int             `yaml:"workers"`        // 0 = auto
	Highlight      HighlightConfig `yaml:"highlight"`
}

// HighlightConfig defines syntax highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: "github")
}

// TranscriptConfig defines the conversation page.
type TranscriptConfig struct {
	Title        string `yaml:"title"`        // Overrides the conversation title
	DefaultModel string `yaml:"defaultModel"` // Badge for answers without a model
	DateFormat   string `yaml:"dateFormat"`   // dateutil format or preset
	Timezone     string `yaml:"timezone"`     // IANA name, empty = local time
	Style        string `yaml:"style"`        // Page style name
	Template     string `yaml:"template"`     // Page template name
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.extension", c.Output.Extension, MaxExtensionLength},
		{"render.engine", c.Render.Engine, MaxNameLength},
		{"render.highlight.style", c.Render.Highlight.Style, MaxNameLength},
		{"transcript.title", c.Transcript.Title, MaxTitleLength},
		{"transcript.defaultModel", c.Transcript.DefaultModel, MaxModelLength},
		{"transcript.dateFormat", c.Transcript.DateFormat, dateutil.MaxDateFormatLength},
		{"transcript.timezone", c.Transcript.Timezone, MaxNameLength},
		{"transcript.style", c.Transcript.Style, MaxNameLength},
		{"transcript.template", c.Transcript.Template, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, check := range checks {
		if err := validateFieldLength(check.field, check.value, check.max); err != nil {
			return err
		}
	}

	for i, ext := range c.Input.Extensions {
		if err := validateFieldLength(fmt.Sprintf("input.extensions[%d]", i), ext, MaxExtensionLength); err != nil {
			return err
		}
	}

	if c.Output.Extension != "" {
		if err := fileutil.ValidateExtension(c.Output.Extension); err != nil {
			return fmt.Errorf("%w: output.extension: %v", ErrInvalidValue, err)
		}
	}

	switch strings.ToLower(c.Render.Engine) {
	case "", "chat", "commonmark":
	default:
		return fmt.Errorf("%w: render.engine %q (must be chat or commonmark)", ErrInvalidValue, c.Render.Engine)
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}

	if c.Transcript.DateFormat != "" {
		if _, err := dateutil.ResolveFormat(c.Transcript.DateFormat); err != nil {
			return fmt.Errorf("transcript.dateFormat: %w", err)
		}
	}

	if c.Transcript.Timezone != "" {
		if _, err := time.LoadLocation(c.Transcript.Timezone); err != nil {
			return fmt.Errorf("%w: transcript.timezone %q", ErrInvalidValue, c.Transcript.Timezone)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Extensions: []string{".md", ".markdown", ".txt"}},
		Output: OutputConfig{Extension: "html"},
		Render: RenderConfig{
			Engine:    "chat",
			Highlight: HighlightConfig{Style: "github"},
		},
		Transcript: TranscriptConfig{
			DefaultModel: "GPT",
			DateFormat:   dateutil.DefaultDateFormat,
			Style:        "default",
			Template:     "transcript",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as NAME.yaml then NAME.yml, first in the working
// directory, then in the user config directory. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists, in lookup order, the files LoadConfig tries for a name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, UserConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
