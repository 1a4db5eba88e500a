// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/postctl/internal/attrs"
	"github.com/staranto/postctl/internal/filters"
	"github.com/staranto/postctl/internal/meta"
	"github.com/staranto/postctl/internal/output"
	"github.com/staranto/postctl/internal/query"
	"github.com/staranto/postctl/internal/state"
)

// Messages printed for outcomes that are not failures.
const (
	msgCacheEmpty     = "No data available. Run: postctl refresh"
	msgPostNotFound   = "Post not found."
	msgUserNotFound   = "User not found."
	msgNoUserPosts    = "No posts found for this user."
	msgFetchFailed    = "Failed to fetch API data."
	msgFetchStarted   = "Fetching data from API..."
	msgFetchSucceeded = "Data fetched successfully. Last updated: %s\n"
)

// GetMeta returns the meta.Meta stored in the command's Metadata, searching
// up through the parents. If missing it returns an empty Meta with an empty
// snapshot.
func GetMeta(cmd *cli.Command) *meta.Meta {
	if cmd != nil {
		for _, c := range cmd.Lineage() {
			if m, ok := c.Metadata["meta"].(*meta.Meta); ok && m != nil {
				return m
			}
		}
	}
	return &meta.Meta{Snapshot: &state.Snapshot{}}
}

// snapshot returns the loaded snapshot, or an empty one if the root Before
// hook has not run.
func snapshot(m *meta.Meta) state.Snapshot {
	if m.Snapshot == nil {
		return state.Snapshot{}
	}
	return *m.Snapshot
}

// OutputOptions collects the rendering flags, including the --attrs
// selection.
func OutputOptions(cmd *cli.Command) (output.Options, error) {
	al, err := attrs.Parse("", cmd.String("attrs"))
	if err != nil {
		return output.Options{}, fmt.Errorf("--attrs: %w", err)
	}
	log.Debugf("attrs: %v", al.String())

	return output.Options{
		Format: cmd.String("output"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
		Attrs:  al,
	}, nil
}

// PostFilters turns --filter into a query predicate. No filter means no
// predicate.
func PostFilters(cmd *cli.Command) ([]query.Predicate, error) {
	fs, err := filters.BuildFilters(cmd.String("filter"))
	if err != nil {
		return nil, err
	}
	if len(fs) == 0 {
		return nil, nil
	}
	return []query.Predicate{filters.Keep[state.Post](fs)}, nil
}

func isText(cmd *cli.Command) bool {
	f := cmd.String("output")
	return f == "" || f == output.FormatText
}

func outWriter(cmd *cli.Command) io.Writer {
	if r := cmd.Root(); r != nil && r.Writer != nil {
		return r.Writer
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if r := cmd.Root(); r != nil && r.ErrWriter != nil {
		return r.ErrWriter
	}
	return os.Stderr
}

// HandleQueryError prints the message for informational query outcomes and
// returns nil for them. Anything else, including an invalid argument, is
// returned so the process exits non-zero.
func HandleQueryError(cmd *cli.Command, err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, query.ErrCacheEmpty):
		fmt.Fprintln(outWriter(cmd), msgCacheEmpty)
		return nil
	case errors.Is(err, query.ErrNotFound):
		log.Debugf("%v", err)
		fmt.Fprintln(outWriter(cmd), notFound)
		return nil
	default:
		return err
	}
}

// CommandBuilder constructs a cli.Command for the postctl subcommands using a
// consistent pattern. The global flags live on the root and are inherited.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	ArgsUsage string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      *meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		ArgsUsage: cb.ArgsUsage,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: cb.Flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			m := GetMeta(c)
			if len(m.Args) > 1 {
				log.Debugf("Executing action for %v", m.Args[1:])
			}
			return cb.Action(ctx, c)
		},
	}
}
