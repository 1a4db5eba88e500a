// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"time"

	"github.com/staranto/postctl/internal/cache"
	"github.com/staranto/postctl/internal/config"
	"github.com/staranto/postctl/internal/state"
)

// Meta is the per-invocation session shared by every command. Store and
// Snapshot are filled in once the global flags have been parsed.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Store   *cache.Store
	// Snapshot is the in-memory cache. Queries read it and refresh replaces
	// it.
	Snapshot *state.Snapshot
	Now      func() time.Time
}
