// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/cache"
	"github.com/staranto/postctl/internal/config"
	"github.com/staranto/postctl/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the postctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be a flag, so ignore it if it
	// appears to be one.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}

	m := &meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Now:     time.Now,
	}

	app := &cli.Command{
		Name:      "postctl",
		Usage:     "cache and query blog posts and users from a REST API",
		UsageText: "postctl [global options] <command> [argument]",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "postctl version info",
				HideDefault: true,
			},
		}, NewGlobalFlags(ns, cfg.Source)...),
		Metadata: map[string]any{
			"meta": m,
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, LoadSnapshot(c, m)
		},
		Action: UsageCommandAction,
	}

	app.Commands = append(app.Commands,
		RefreshCommandBuilder(app, m),
		PostCommandBuilder(app, m),
		UserCommandBuilder(app, m),
		ListPostsCommandBuilder(app, m),
		FilterPostsCommandBuilder(app, m),
		StatusCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range append(app.Commands, app) {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// LoadSnapshot reads the cache named by --cache into m. A corrupt cache file
// is reported and treated as empty so that refresh can replace it.
func LoadSnapshot(cmd *cli.Command, m *meta.Meta) error {
	m.Store = cache.New(cmd.String("cache"))

	snap, err := m.Store.Load()
	if err != nil {
		if !errors.Is(err, cache.ErrCorrupt) {
			return err
		}
		fmt.Fprintf(errWriter(cmd), "Warning: %v\nTreating the cache as empty. Run: postctl refresh\n", err)
	}
	m.Snapshot = &snap
	return nil
}
