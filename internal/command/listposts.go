// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/meta"
	"github.com/staranto/postctl/internal/output"
	"github.com/staranto/postctl/internal/query"
)

func ListPostsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	keep, err := PostFilters(cmd)
	if err != nil {
		return err
	}
	opts, err := OutputOptions(cmd)
	if err != nil {
		return err
	}

	posts, _, err := query.ListPosts(snapshot(m), cmd.Args().First(), keep...)
	if err != nil {
		return HandleQueryError(cmd, err, "")
	}

	w := outWriter(cmd)
	if isText(cmd) {
		fmt.Fprintf(w, "Showing %d posts:\n", len(posts))
	}
	return output.SpitPosts(w, posts, opts)
}

func ListPostsCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "list-posts",
		Usage:     fmt.Sprintf("list the first cached posts (default %d)", query.DefaultLimit),
		UsageText: "postctl list-posts [limit]",
		ArgsUsage: "[limit]",
		Action:    ListPostsCommandAction,
		Meta:      meta,
	}).Build()
}
