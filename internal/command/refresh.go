// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/meta"
	"github.com/staranto/postctl/internal/refresh"
	"github.com/staranto/postctl/internal/remote"
)

func RefreshCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	if m.Store == nil {
		if err := LoadSnapshot(cmd, m); err != nil {
			return err
		}
	}

	client := remote.NewClient(cmd.String("base-url"), cmd.Duration("timeout"))
	log.Debugf("refreshing from %s into %s", client.BaseURL, m.Store.Path)

	w := outWriter(cmd)
	if isText(cmd) {
		fmt.Fprintln(w, msgFetchStarted)
	}

	snap, err := refresh.Run(ctx, client, m.Store, m.Snapshot, m.Now)
	if err != nil {
		fmt.Fprintln(errWriter(cmd), msgFetchFailed)
		return err
	}

	if isText(cmd) {
		fmt.Fprintf(w, msgFetchSucceeded, snap.LastUpdated)
		return nil
	}
	return SpitStatus(cmd, m)
}

func RefreshCommandBuilder(cmd *cli.Command, meta *meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "refresh",
		Usage:     "fetch posts and users from the API into the cache",
		UsageText: "postctl refresh",
		Action:    RefreshCommandAction,
		Meta:      meta,
	}).Build()
}
