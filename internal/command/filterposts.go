// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/meta"
	"github.com/staranto/postctl/internal/output"
	"github.com/staranto/postctl/internal/query"
)

func FilterPostsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	userID := cmd.Args().First()

	keep, err := PostFilters(cmd)
	if err != nil {
		return err
	}
	opts, err := OutputOptions(cmd)
	if err != nil {
		return err
	}

	posts, err := query.FilterPostsByUser(snapshot(m), userID, keep...)
	if err != nil {
		return HandleQueryError(cmd, err, "")
	}

	w := outWriter(cmd)
	if len(posts) == 0 && isText(cmd) {
		fmt.Fprintln(w, msgNoUserPosts)
		return nil
	}

	if isText(cmd) {
		fmt.Fprintf(w, "Posts for user %s:\n", strings.TrimSpace(userID))
	}
	return output.SpitPosts(w, posts, opts)
}

func FilterPostsCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "filter-posts",
		Usage:     "list cached posts owned by a user",
		UsageText: "postctl filter-posts <userId>",
		ArgsUsage: "<userId>",
		Action:    FilterPostsCommandAction,
		Meta:      meta,
	}).Build()
}
