// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/meta"
)

const bashCompletionScript = `# bash completion for postctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_postctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local common="--attrs -a --filter -f --cache --base-url --timeout --output -o --color -c --titles -t"

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--cache" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "refresh post user list-posts filter-posts status completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$common" -- "$cur") )
    fi
    return 0
}

complete -F _postctl postctl
`

const zshCompletionScript = `#compdef postctl

_postctl() {
  local -a cmds
  cmds=(
    'refresh:fetch posts and users into the cache'
    'post:show a cached post by id'
    'user:show a cached user by id'
    'list-posts:list the first cached posts'
    'filter-posts:list cached posts owned by a user'
    'status:show cache location, contents and age'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--cache[cache file]:file:_files'
  '--base-url[API base URL]:url'
  '--timeout[per-request timeout]:duration'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'postctl commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    post)
      _arguments -C $common '1:post id'
      ;;
    user)
      _arguments -C $common '1:user id'
      ;;
    list-posts)
      _arguments -C $common '::limit'
      ;;
    filter-posts)
      _arguments -C $common '1:user id'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _postctl postctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := outWriter(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(errWriter(cmd), "usage: postctl completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "postctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
