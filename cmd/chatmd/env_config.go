package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-chatmd/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CHATMD_CONFIG: config file name or path
	Engine     string // CHATMD_ENGINE: chat or commonmark
	Style      string // CHATMD_STYLE: highlight style, enables highlighting
	InputDir   string // CHATMD_INPUT_DIR: default input directory
	OutputDir  string // CHATMD_OUTPUT_DIR: default output directory
	Timezone   string // CHATMD_TIMEZONE: transcript timestamps zone
	Workers    int    // CHATMD_WORKERS: parallel workers
}

// knownEnvVars lists valid CHATMD_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CHATMD_CONFIG":     true,
	"CHATMD_ENGINE":     true,
	"CHATMD_STYLE":      true,
	"CHATMD_INPUT_DIR":  true,
	"CHATMD_OUTPUT_DIR": true,
	"CHATMD_TIMEZONE":   true,
	"CHATMD_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CHATMD_CONFIG"),
		Engine:     os.Getenv("CHATMD_ENGINE"),
		Style:      os.Getenv("CHATMD_STYLE"),
		InputDir:   os.Getenv("CHATMD_INPUT_DIR"),
		OutputDir:  os.Getenv("CHATMD_OUTPUT_DIR"),
		Timezone:   os.Getenv("CHATMD_TIMEZONE"),
	}

	if workers := os.Getenv("CHATMD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CHATMD_* variables.
// Helps catch typos like CHATMD_WORKER instead of CHATMD_WORKERS.
func warnUnknownEnvVars(log logrus.FieldLogger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CHATMD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				log.WithField("variable", name).Warn("unknown environment variable (typo?)")
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is only replaced while it still holds its default, so the config
// file wins over the environment: flags > env > config file > defaults
// (flags are applied later via the merge functions).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	def := config.DefaultConfig()

	if env.Engine != "" && cfg.Render.Engine == def.Render.Engine {
		cfg.Render.Engine = env.Engine
	}
	if env.Style != "" && !cfg.Render.Highlight.Enabled {
		cfg.Render.Highlight.Enabled = true
		cfg.Render.Highlight.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timezone != "" && cfg.Transcript.Timezone == "" {
		cfg.Transcript.Timezone = env.Timezone
	}
	if env.Workers > 0 && cfg.Render.Workers == 0 {
		cfg.Render.Workers = env.Workers
	}
}
