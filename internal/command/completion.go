// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/meta"
)

const bashCompletionHead = `# bash completion for awsctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_awsctl()
{
    local cur prev opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

`

const bashCompletionTail = `
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _awsctl awsctl
`

const zshCompletionHead = `#compdef awsctl

_awsctl() {
`

const zshCompletionTail = `}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _awsctl awsctl
`

// WriteBashCompletion writes a bash completion script for the command tree
// under root.
func WriteBashCompletion(w io.Writer, root *cli.Command) {
	var b strings.Builder
	b.WriteString(bashCompletionHead)

	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"$cur\") )\n", strings.Join(append(commandNames(root), "--help", "--version"), " "))
	fmt.Fprintf(&b, "        return 0\n    fi\n\n")

	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 2 ]]; then\n        case \"${COMP_WORDS[1]}\" in\n")
	for _, group := range root.Commands {
		words := commandNames(group)
		if group.Name == "completion" {
			words = []string{"bash", "zsh"}
		}
		fmt.Fprintf(&b, "        %s) opts=%q ;;\n", group.Name, strings.Join(words, " "))
	}
	fmt.Fprintf(&b, "        *) opts=\"\" ;;\n        esac\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"$opts\" -- \"$cur\") )\n        return 0\n    fi\n\n")

	fmt.Fprintf(&b, "    case \"${COMP_WORDS[1]} ${COMP_WORDS[2]}\" in\n")
	for _, group := range root.Commands {
		for _, cmd := range group.Commands {
			fmt.Fprintf(&b, "    %q) opts=%q ;;\n", group.Name+" "+cmd.Name, strings.Join(flagNames(cmd), " "))
		}
	}
	fmt.Fprintf(&b, "    *) opts=\"\" ;;\n    esac\n")

	b.WriteString(bashCompletionTail)
	fmt.Fprint(w, b.String())
}

// WriteZshCompletion writes a zsh completion script for the command tree
// under root.
func WriteZshCompletion(w io.Writer, root *cli.Command) {
	var b strings.Builder
	b.WriteString(zshCompletionHead)

	b.WriteString("  local -a groups\n  groups=(\n")
	for _, group := range root.Commands {
		fmt.Fprintf(&b, "    %s\n", zshQuote(group.Name+":"+group.Usage))
	}
	b.WriteString("  )\n\n")

	b.WriteString("  if (( CURRENT == 2 )); then\n    _describe -t commands 'awsctl commands' groups\n    return\n  fi\n\n")

	b.WriteString("  local -a ops\n  case $words[2] in\n")
	for _, group := range root.Commands {
		fmt.Fprintf(&b, "    %s)\n      ops=(\n", group.Name)
		if group.Name == "completion" {
			b.WriteString("        'bash:bash completion script'\n        'zsh:zsh completion script'\n")
		}
		for _, cmd := range group.Commands {
			fmt.Fprintf(&b, "        %s\n", zshQuote(cmd.Name+":"+cmd.Usage))
		}
		b.WriteString("      )\n      ;;\n")
	}
	b.WriteString("  esac\n\n")

	b.WriteString("  if (( CURRENT == 3 )); then\n    _describe -t commands 'operations' ops\n    return\n  fi\n\n")

	b.WriteString("  case \"$words[2] $words[3]\" in\n")
	for _, group := range root.Commands {
		for _, cmd := range group.Commands {
			fmt.Fprintf(&b, "    %s)\n      _arguments -C \\\n", zshQuote(group.Name+" "+cmd.Name))
			for _, name := range flagNames(cmd) {
				if name == "--output" {
					b.WriteString("        '--output[output format]:format:(text json raw yaml)' \\\n")
					continue
				}
				fmt.Fprintf(&b, "        %s \\\n", zshQuote(name))
			}
			b.WriteString("        '*:value'\n      ;;\n")
		}
	}
	b.WriteString("  esac\n")

	b.WriteString(zshCompletionTail)
	fmt.Fprint(w, b.String())
}

func commandNames(cmd *cli.Command) []string {
	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// flagNames returns the dashed names and aliases of cmd's visible flags.
func flagNames(cmd *cli.Command) []string {
	var names []string
	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}
		for _, n := range f.Names() {
			if len(n) == 1 {
				names = append(names, "-"+n)
			} else {
				names = append(names, "--"+n)
			}
		}
	}
	return names
}

func zshQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	root := cmd.Root()

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		WriteBashCompletion(m.Out, root)
	case "zsh":
		WriteZshCompletion(m.Out, root)
	default:
		fmt.Fprintln(m.Err, "usage: awsctl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "awsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
