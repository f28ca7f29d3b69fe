package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands runMain dispatches.
var commands = []string{"render", "transcript", "css", "completion", "version", "help"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and maps its error to an exit code.
// A first argument that is not a command but looks like an input (a file
// with a known extension, a directory, or "-") runs render.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, cmdArgs := args[1], args[2:]
	if !isCommand(cmd) && looksLikeInput(cmd) {
		cmd, cmdArgs = "render", args[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, cmdArgs, env)
	case "transcript":
		err = runTranscript(ctx, cmdArgs, env)
	case "css":
		err = runCSS(cmdArgs, env)
	case "completion":
		err = runCompletion(cmdArgs, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "chatmd %s\n", Version)
	case "help", "--help", "-h":
		runHelp(cmdArgs, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// looksLikeInput reports whether arg can be rendered without naming the command.
func looksLikeInput(arg string) bool {
	if arg == stdinPath {
		return true
	}
	switch filepath.Ext(arg) {
	case ".md", ".markdown", ".txt":
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}
