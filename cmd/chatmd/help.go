package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chatmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render       Render chat messages to HTML fragments")
	fmt.Fprintln(w, "  transcript   Render a conversation file to an HTML page")
	fmt.Fprintln(w, "  css          Print the syntax highlighting stylesheet")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A file, directory or - as first argument runs render.")
	fmt.Fprintln(w, "Run 'chatmd help <command>' for details on a specific command.")
}

// printEngineUsage prints the flags shared by render and transcript.
func printEngineUsage(w io.Writer) {
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "  -e, --engine <name>       Engine: chat (default), commonmark")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code")
	fmt.Fprintln(w, "  -s, --style <name>        Highlight style (implies --highlight)")
	fmt.Fprintln(w, "      --legacy              Let passes scan code content (chat)")
	fmt.Fprintln(w, "      --verify              Check output against the element allowlist")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chatmd render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render chat message files to HTML fragments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File, directory, or - for stdin (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printEngineUsage(w)
}

// printTranscriptUsage prints usage for the transcript command.
func printTranscriptUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chatmd transcript <conversation> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a YAML or JSON conversation to a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (- = stdout)")
	fmt.Fprintln(w, "  -t, --title <s>           Page title")
	fmt.Fprintln(w, "      --page-style <name>   Page style: default, dark, or custom")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --date-format <s>     Timestamp format or preset")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, datetime, time")
	fmt.Fprintln(w, "      --timezone <name>     IANA timezone (default: local)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "  -f, --filter <text>       Only pairs containing text")
	fmt.Fprintln(w, "      --starred             Only starred pairs")
	fmt.Fprintln(w)
	printEngineUsage(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chatmd css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the stylesheet matching highlighted code.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -s, --style <name>        Highlight style (default: github)")
	fmt.Fprintln(w, "  -l, --list                List available styles")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "transcript":
		printTranscriptUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chatmd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chatmd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
