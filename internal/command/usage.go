// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/output"
)

var examples = [][2]string{
	{"postctl refresh", "fetch the latest posts and users from the API"},
	{"postctl post 5", "show post 5"},
	{"postctl user 3", "show user 3"},
	{"postctl list-posts 10", "list the first 10 posts"},
	{"postctl filter-posts 1", "list the posts written by user 1"},
	{"postctl status", "show cache location and age"},
	{"postctl completion bash", "generate a shell completion script"},
}

// UsageCommandAction runs when no known command was given.
func UsageCommandAction(ctx context.Context, cmd *cli.Command) error {
	if arg := cmd.Args().First(); arg != "" {
		fmt.Fprintf(errWriter(cmd), "Unknown command: %s\n", arg)
	}

	w := outWriter(cmd)
	fmt.Fprintln(w, "Usage: postctl [global options] <command> [argument]")
	fmt.Fprintln(w)
	output.DumpExamples(w, examples)
	return nil
}
