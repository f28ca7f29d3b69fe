package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	chatmd "github.com/alnah/go-chatmd"
	"github.com/alnah/go-chatmd/internal/config"
	"github.com/alnah/go-chatmd/internal/fileutil"
	"github.com/alnah/go-chatmd/internal/hints"
)

// runTranscript renders a conversation file to a standalone HTML page.
func runTranscript(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTranscriptFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	log := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	switch {
	case len(positional) == 0:
		return fmt.Errorf("%w: pass a conversation file", ErrNoInput)
	case len(positional) > 1:
		return errUnexpectedArgs(positional[1:])
	}
	inputPath := positional[0]

	cfg, err := resolveConfig(flags.common, log, func(cfg *config.Config) {
		mergeTranscriptFlags(flags, cfg)
	})
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	data, err := readInputFile(inputPath)
	if err != nil {
		return err
	}

	conv, err := chatmd.LoadTranscript([]byte(data))
	if err != nil {
		return fmt.Errorf("%s: %w%s", inputPath, err, hints.ForTranscriptFormat())
	}

	opts, err := transcriptOptions(cfg, flags, engine)
	if err != nil {
		return err
	}

	start := env.Now()
	var page bytes.Buffer
	if err := chatmd.RenderTranscript(ctx, &page, conv, opts); err != nil {
		return err
	}

	if flags.output == stdinPath {
		_, err := env.Stdout.Write(page.Bytes())
		return err
	}

	outPath, err := transcriptOutputPath(inputPath, flags.output, cfg)
	if err != nil {
		return err
	}
	// #nosec G306 -- HTML pages are meant to be readable
	if err := fileutil.WriteFileAtomic(outPath, page.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	log.WithField("pairs", len(conv.Pairs)).Debug("transcript rendered")
	switch {
	case flags.common.quiet:
	case flags.common.verbose:
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", inputPath, outPath, env.Now().Sub(start).Round(time.Millisecond))
	default:
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
	}
	return nil
}

// transcriptOptions maps the merged config onto TranscriptOptions.
func transcriptOptions(cfg *config.Config, flags *transcriptFlags, engine chatmd.Engine) (chatmd.TranscriptOptions, error) {
	opts := chatmd.TranscriptOptions{
		Engine:       engine,
		Title:        cfg.Transcript.Title,
		DefaultModel: cfg.Transcript.DefaultModel,
		DateFormat:   cfg.Transcript.DateFormat,
		Style:        cfg.Transcript.Style,
		Template:     cfg.Transcript.Template,
		AssetPath:    cfg.Assets.BasePath,
		Filter:       flags.filter,
		StarredOnly:  flags.starred,
	}

	if cfg.Transcript.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Transcript.Timezone)
		if err != nil {
			return opts, fmt.Errorf("%w: timezone %q", config.ErrInvalidValue, cfg.Transcript.Timezone)
		}
		opts.Location = loc
	}
	return opts, nil
}

// transcriptOutputPath picks --output, else the input name with the output
// extension, placed in output.defaultDir when configured.
func transcriptOutputPath(inputPath, flagOutput string, cfg *config.Config) (string, error) {
	if flagOutput != "" {
		return flagOutput, nil
	}

	outPath, err := fileutil.ReplaceExtension(inputPath, cfg.Output.Extension)
	if err != nil {
		return "", fmt.Errorf("%w: output.extension: %v", config.ErrInvalidValue, err)
	}
	if cfg.Output.DefaultDir != "" {
		outPath = filepath.Join(cfg.Output.DefaultDir, filepath.Base(outPath))
	}
	return outPath, nil
}
