package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chatmd/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags selects and configures the render engine.
type engineFlags struct {
	engine    string
	highlight bool
	style     string // Highlight style, implies --highlight
	legacy    bool
	verify    bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	engine  engineFlags
	output  string
	workers int
}

// transcriptFlags holds all flags for the transcript command.
type transcriptFlags struct {
	common     commonFlags
	engine     engineFlags
	output     string
	title      string
	pageStyle  string
	dateFormat string
	timezone   string
	assetPath  string
	filter     string
	starred    bool
}

// cssFlags holds flags for the css command.
type cssFlags struct {
	style string
	list  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addEngineFlags adds engine flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "render engine: chat, commonmark")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight fenced code")
	fs.StringVarP(&f.style, "style", "s", "", "highlight style (implies --highlight)")
	fs.BoolVar(&f.legacy, "legacy", false, "let passes scan code content (chat engine)")
	fs.BoolVar(&f.verify, "verify", false, "check output against the element allowlist")
}

// newRenderFlagSet registers the render flags into f.
func newRenderFlagSet(f *renderFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	fs.Usage = func() { printRenderUsage(usage) }
	return fs
}

// newTranscriptFlagSet registers the transcript flags into f.
func newTranscriptFlagSet(f *transcriptFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("transcript", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output file (\"-\" = stdout)")
	fs.StringVarP(&f.title, "title", "t", "", "page title")
	fs.StringVar(&f.pageStyle, "page-style", "", "page style: default, dark, or custom name")
	fs.StringVar(&f.dateFormat, "date-format", "", "timestamp format or preset")
	fs.StringVar(&f.timezone, "timezone", "", "IANA timezone for timestamps")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVarP(&f.filter, "filter", "f", "", "only pairs containing this text")
	fs.BoolVar(&f.starred, "starred", false, "only starred pairs")
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	fs.Usage = func() { printTranscriptUsage(usage) }
	return fs
}

// newCSSFlagSet registers the css flags into f.
func newCSSFlagSet(f *cssFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("css", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.style, "style", "s", config.DefaultConfig().Render.Highlight.Style, "highlight style")
	fs.BoolVarP(&f.list, "list", "l", false, "list available styles")

	fs.Usage = func() { printCSSUsage(usage) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseTranscriptFlags parses transcript command flags and returns positional args.
func parseTranscriptFlags(args []string, usage io.Writer) (*transcriptFlags, []string, error) {
	f := &transcriptFlags{}
	fs := newTranscriptFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// parseCSSFlags parses css command flags.
func parseCSSFlags(args []string, usage io.Writer) (*cssFlags, error) {
	f := &cssFlags{}
	fs := newCSSFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(errUnexpectedArgs(fs.Args()))
	}
	return f, nil
}

// mergeEngineFlags applies engine flags to config. CLI values override config values.
func mergeEngineFlags(f engineFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Render.Engine = f.engine
	}
	if f.highlight {
		cfg.Render.Highlight.Enabled = true
	}
	if f.style != "" {
		cfg.Render.Highlight.Enabled = true
		cfg.Render.Highlight.Style = f.style
	}
	if f.legacy {
		cfg.Render.LegacyScanning = true
	}
	if f.verify {
		cfg.Render.Verify = true
	}
}

// mergeRenderFlags applies render flags to config.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	mergeEngineFlags(f.engine, cfg)
	if f.workers != 0 {
		cfg.Render.Workers = f.workers
	}
}

// mergeTranscriptFlags applies transcript flags to config.
func mergeTranscriptFlags(f *transcriptFlags, cfg *config.Config) {
	mergeEngineFlags(f.engine, cfg)
	if f.title != "" {
		cfg.Transcript.Title = f.title
	}
	if f.pageStyle != "" {
		cfg.Transcript.Style = f.pageStyle
	}
	if f.dateFormat != "" {
		cfg.Transcript.DateFormat = f.dateFormat
	}
	if f.timezone != "" {
		cfg.Transcript.Timezone = f.timezone
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}
