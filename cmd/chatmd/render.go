package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	chatmd "github.com/alnah/go-chatmd"
	"github.com/alnah/go-chatmd/internal/config"
	"github.com/alnah/go-chatmd/internal/fileutil"
	"github.com/alnah/go-chatmd/internal/hints"
)

// stdinPath reads the message from standard input.
const stdinPath = "-"

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// usageError wraps flag parsing errors, leaving --help untouched.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(args, " "))
}

// runRender renders message files to HTML fragments.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, log, func(cfg *config.Config) {
		mergeRenderFlags(flags, cfg)
	})
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinPath {
		return renderStdin(ctx, engine, flags.output, flags.common.quiet, env)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), cfg.Input.Extensions, cfg.Output.Extension)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no %s files found in %s", ErrNoInput, strings.Join(cfg.Input.Extensions, ", "), inputPath)
	}

	defer configureMaxProcs(log)()
	workers := resolvePoolSize(cfg.Render.Workers)

	log.WithFields(logrus.Fields{
		"engine":  engine.Name(),
		"files":   len(files),
		"workers": workers,
	}).Debug("rendering")

	results := renderBatch(ctx, engine, files, workers, env.Now)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrRenderFailed, failed, len(results))
	}
	return nil
}

// renderStdin renders standard input to stdout, or to output when given.
func renderStdin(ctx context.Context, engine chatmd.Engine, output string, quiet bool, env *Environment) error {
	data, err := io.ReadAll(io.LimitReader(env.Stdin, maxInputSize+1))
	if err != nil {
		return fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("%w: stdin exceeds %d bytes", ErrReadInput, maxInputSize)
	}

	html, err := engine.RenderHTML(ctx, string(data))
	if err != nil {
		return err
	}

	if output == "" || output == stdinPath {
		_, err := env.Stdout.Write(fragmentBytes(html))
		return err
	}

	// #nosec G306 -- HTML fragments are meant to be readable
	if err := fileutil.WriteFileAtomic(output, fragmentBytes(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}

// resolveConfig loads the config file, applies environment overrides, then
// lets merge apply command flags, and validates the result.
// Precedence: flags > env > config file > defaults.
func resolveConfig(common commonFlags, log logrus.FieldLogger, merge func(*config.Config)) (*config.Config, error) {
	env := loadEnvConfig()
	warnUnknownEnvVars(log)

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		log.WithField("config", name).Debug("config loaded")
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	merge(cfg)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidValue) && strings.Contains(err.Error(), "render.engine") {
			return nil, fmt.Errorf("%w%s", err, hints.ForUnknownEngine(chatmd.EngineNames()))
		}
		return nil, err
	}
	return cfg, nil
}

// buildEngine creates the engine the config selects.
func buildEngine(cfg *config.Config) (chatmd.Engine, error) {
	var opts []chatmd.Option
	if cfg.Render.LegacyScanning {
		opts = append(opts, chatmd.WithLegacyScanning())
	}
	if cfg.Render.Verify {
		opts = append(opts, chatmd.WithVerify())
	}
	if cfg.Render.Highlight.Enabled {
		style := cfg.Render.Highlight.Style
		if style == "" {
			style = config.DefaultConfig().Render.Highlight.Style
		}
		opts = append(opts, chatmd.WithHighlighting(style))
	}

	engine, err := chatmd.NewEngine(cfg.Render.Engine, opts...)
	switch {
	case errors.Is(err, chatmd.ErrUnknownStyle):
		return nil, fmt.Errorf("%w%s", err, hints.ForUnknownStyle(chatmd.HighlightStyles()))
	case errors.Is(err, chatmd.ErrUnknownEngine):
		return nil, fmt.Errorf("%w%s", err, hints.ForUnknownEngine(chatmd.EngineNames()))
	case err != nil:
		return nil, err
	}
	return engine, nil
}
