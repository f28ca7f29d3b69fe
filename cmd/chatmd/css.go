package main

import (
	"fmt"

	chatmd "github.com/alnah/go-chatmd"
	"github.com/alnah/go-chatmd/internal/hints"
)

// runCSS prints the highlight stylesheet, or the style names with --list.
func runCSS(args []string, env *Environment) error {
	flags, err := parseCSSFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if flags.list {
		for _, name := range chatmd.HighlightStyles() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	css, err := chatmd.HighlightCSS(flags.style)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForUnknownStyle(chatmd.HighlightStyles()))
	}
	_, err = fmt.Fprint(env.Stdout, css)
	return err
}
