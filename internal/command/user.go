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

func UserCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	user, err := query.GetUserByID(snapshot(m), cmd.Args().First())
	if err != nil {
		return HandleQueryError(cmd, err, msgUserNotFound)
	}

	opts, err := OutputOptions(cmd)
	if err != nil {
		return err
	}

	w := outWriter(cmd)
	if isText(cmd) && cmd.Bool("titles") {
		fmt.Fprintln(w, "User details:")
	}
	return output.SpitRecord(w, user.Raw(), opts)
}

func UserCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "user",
		Usage:     "show a cached user by id",
		UsageText: "postctl user <id>",
		ArgsUsage: "<id>",
		Action:    UserCommandAction,
		Meta:      meta,
	}).Build()
}
