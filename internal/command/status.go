// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/meta"
	"github.com/staranto/postctl/internal/output"
)

func StatusCommandAction(ctx context.Context, cmd *cli.Command) error {
	return SpitStatus(cmd, GetMeta(cmd))
}

// SpitStatus renders the cache summary for m.
func SpitStatus(cmd *cli.Command, m *meta.Meta) error {
	var path string
	if m.Store != nil {
		path = m.Store.Path
	}
	now := m.Now
	if now == nil {
		now = time.Now
	}
	opts, err := OutputOptions(cmd)
	if err != nil {
		return err
	}
	st := output.NewStatus(path, snapshot(m), now())
	return output.SpitStatus(outWriter(cmd), st, opts)
}

func StatusCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "status",
		Usage:     "show cache location, contents and age",
		UsageText: "postctl status",
		Action:    StatusCommandAction,
		Meta:      meta,
	}).Build()
}
