// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package refresh replaces the cached snapshot with fresh upstream data, or
// leaves it alone entirely.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"golang.org/x/sync/errgroup"

	"github.com/staranto/postctl/internal/remote"
	"github.com/staranto/postctl/internal/state"
)

// ErrFetchFailed is returned, joined with each fetch's reason, when either
// collection could not be retrieved.
var ErrFetchFailed = errors.New("failed to fetch API data")

// Source supplies both collections.
type Source interface {
	Posts(ctx context.Context) remote.Result[[]state.Post]
	Users(ctx context.Context) remote.Result[[]state.User]
}

// Saver persists a snapshot.
type Saver interface {
	Save(state.Snapshot) error
}

// Run fetches posts and users concurrently and waits for both. Only when both
// succeed is the new snapshot saved and then copied into *snap. On any
// failure *snap and the saved file are left exactly as they were.
func Run(ctx context.Context, src Source, saver Saver, snap *state.Snapshot, now func() time.Time) (state.Snapshot, error) {
	if now == nil {
		now = time.Now
	}

	var (
		posts remote.Result[[]state.Post]
		users remote.Result[[]state.User]
		g     errgroup.Group
	)

	log.Debug("fetching posts and users")
	g.Go(func() error {
		posts = src.Posts(ctx)
		return posts.Err
	})
	g.Go(func() error {
		users = src.Users(ctx)
		return users.Err
	})

	// The group has no context, so a failed fetch never cancels the other.
	if g.Wait() != nil {
		err := ErrFetchFailed
		if !posts.OK() {
			err = errors.Join(err, fmt.Errorf("posts: %w", posts.Err))
		}
		if !users.OK() {
			err = errors.Join(err, fmt.Errorf("users: %w", users.Err))
		}
		log.Error(ErrFetchFailed.Error())
		return *snap, err
	}

	next := state.Snapshot{
		Posts:       posts.Value,
		Users:       users.Value,
		LastUpdated: state.NewTimestamp(now()),
	}.Normalize()

	if err := saver.Save(next); err != nil {
		log.WithError(err).Error("failed to save cache")
		return *snap, fmt.Errorf("failed to save cache: %w", err)
	}

	*snap = next
	log.Infof("cached %d posts and %d users at %s", len(next.Posts), len(next.Users), next.LastUpdated)
	return next, nil
}
