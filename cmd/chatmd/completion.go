package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	chatmd "github.com/alnah/go-chatmd"
	"github.com/alnah/go-chatmd/internal/assets"
	"github.com/alnah/go-chatmd/internal/dateutil"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Desc     string   // help text
	Bool     bool     // takes no value
	Values   []string // fixed values, if any
	FileGlob string   // file glob, if a file is expected
	IsDir    bool     // directory completion
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	FilePattern string // glob for positional files, empty when none
}

// completionMeta holds completion hints the FlagSet cannot carry.
type completionMeta struct {
	Values   func() []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine":      {Values: chatmd.EngineNames},
	"style":       {Values: chatmd.HighlightStyles},
	"page-style":  {Values: func() []string { return []string{assets.DefaultStyleName, assets.DarkStyleName} }},
	"date-format": {Values: func() []string { return slices.Sorted(maps.Keys(dateutil.DatePresets)) }},

	"config": {FileGlob: "*.yaml,*.yml"},

	"asset-path": {IsDir: true},
}

// extractFlags reads flag definitions from fs, enriched with flagCompletionMeta.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
			Bool:  f.Value.Type() == "bool",
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if meta.Values != nil {
				fd.Values = meta.Values()
			}
			fd.FileGlob = meta.FileGlob
			fd.IsDir = meta.IsDir
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags come from the same FlagSets the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "render",
			Desc:        "Render chat messages to HTML fragments",
			Flags:       extractFlags(newRenderFlagSet(&renderFlags{}, io.Discard)),
			FilePattern: "*.md,*.markdown,*.txt",
		},
		{
			Name:        "transcript",
			Desc:        "Render a conversation file to an HTML page",
			Flags:       extractFlags(newTranscriptFlagSet(&transcriptFlags{}, io.Discard)),
			FilePattern: "*.yaml,*.yml,*.json",
		},
		{
			Name:  "css",
			Desc:  "Print the syntax highlighting stylesheet",
			Flags: extractFlags(newCSSFlagSet(&cssFlags{}, io.Discard)),
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	switch len(args) {
	case 0:
		printCompletionUsage(env.Stdout)
		return nil
	case 1:
		if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	default:
		return errUnexpectedArgs(args[1:])
	}
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chatmd completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(chatmd completion bash)\" in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(chatmd completion zsh)\" in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  chatmd completion fish > ~/.config/fish/completions/chatmd.fish")
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for chatmd\n")
	b.WriteString("_chatmd_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"$prev\" in\n")
		for _, f := range c.Flags {
			if f.Bool {
				continue
			}
			fmt.Fprintf(&b, "        %s)\n", flagPatterns(f, "|"))
			switch {
			case len(f.Values) > 0:
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
			case f.IsDir:
				b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
			default:
				b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
			}
			b.WriteString("            return\n")
			b.WriteString("            ;;\n")
		}
		b.WriteString("        esac\n")
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(longFlags(c.Flags), " "))
		b.WriteString("        else\n")
		b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _chatmd_completions chatmd\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef chatmd\n\n")
	b.WriteString("_chatmd() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "            '%s' \\\n", zshFlagSpec(f))
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "            '*:file:_files -g \"%s\"'\n", zshGlob(c.FilePattern))
		} else {
			b.WriteString("            && return\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _chatmd chatmd\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec builds one _arguments spec, grouping the short and long forms.
func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	names := "--" + f.Long
	if f.Short != "" {
		names = "{-" + f.Short + ",--" + f.Long + "}"
	}

	spec := "[" + desc + "]"
	switch {
	case f.Bool:
	case len(f.Values) > 0:
		spec += ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case f.IsDir:
		spec += ":" + f.Long + ":_directories"
	case f.FileGlob != "":
		spec += ":" + f.Long + ":_files -g \"" + zshGlob(f.FileGlob) + "\""
	default:
		spec += ":" + f.Long + ":"
	}

	if f.Short != "" {
		return "'" + names + "'" + spec
	}
	return names + spec
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// zshGlob turns "*.a,*.b" into "*.(a|b)".
func zshGlob(patterns string) string {
	var exts []string
	for _, p := range strings.Split(patterns, ",") {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for chatmd\n\n")
	b.WriteString("function __fish_chatmd_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_chatmd_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c chatmd -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c chatmd -n __fish_chatmd_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := "'__fish_chatmd_using_command " + c.Name + "'"
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "complete -c chatmd -n %s -F\n", cond)
		}
		for _, f := range c.Flags {
			line := "complete -c chatmd -n " + cond + " -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case f.IsDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -r -F"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func commandNames(cmds []commandDef) []string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return names
}

func longFlags(flags []flagDef) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, "--"+f.Long)
	}
	return out
}

// flagPatterns joins the short and long spellings of f with sep.
func flagPatterns(f flagDef, sep string) string {
	if f.Short == "" {
		return "--" + f.Long
	}
	return "-" + f.Short + sep + "--" + f.Long
}
