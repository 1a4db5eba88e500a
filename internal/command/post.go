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

func PostCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	post, err := query.GetPostByID(snapshot(m), cmd.Args().First())
	if err != nil {
		return HandleQueryError(cmd, err, msgPostNotFound)
	}

	opts, err := OutputOptions(cmd)
	if err != nil {
		return err
	}

	w := outWriter(cmd)
	if isText(cmd) && cmd.Bool("titles") {
		fmt.Fprintln(w, "Post details:")
	}
	return output.SpitPost(w, post, opts)
}

func PostCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "post",
		Usage:     "show a cached post by id",
		UsageText: "postctl post <id>",
		ArgsUsage: "<id>",
		Action:    PostCommandAction,
		Meta:      meta,
	}).Build()
}
