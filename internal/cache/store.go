// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/postctl/internal/cacheutil"
	"github.com/staranto/postctl/internal/state"
)

// ErrCorrupt is returned by Load, wrapped, when the cache file exists but
// cannot be decoded. The returned snapshot is empty and usable.
var ErrCorrupt = errors.New("cache file is corrupt")

// Store reads and writes the snapshot at a fixed path.
type Store struct {
	Path string
}

// New returns a Store for path. An empty path resolves through
// cacheutil.File.
func New(path string) *Store {
	return &Store{Path: cacheutil.File(path)}
}

// Load reads the snapshot. A missing file yields an empty snapshot and no
// error.
func (s *Store) Load() (state.Snapshot, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debugf("no cache file at %s", s.Path)
			return state.Snapshot{}.Normalize(), nil
		}
		return state.Snapshot{}.Normalize(), fmt.Errorf("failed to read cache: %w", err)
	}

	// An empty file is what a crashed non-atomic writer leaves behind. Treat
	// it the same as a missing one.
	if len(bytes.TrimSpace(b)) == 0 {
		log.Warnf("cache file %s is empty", s.Path)
		return state.Snapshot{}.Normalize(), nil
	}

	var snap state.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.WithError(err).Warnf("ignoring corrupt cache file %s", s.Path)
		return state.Snapshot{}.Normalize(), fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}

	log.Debugf("loaded %d posts and %d users from %s", len(snap.Posts), len(snap.Users), s.Path)
	return snap.Normalize(), nil
}

// Save overwrites the cache file with snap, pretty-printed.
func (s *Store) Save(snap state.Snapshot) error {
	b, err := json.MarshalIndent(snap.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	b = append(b, '\n')

	if err := cacheutil.WriteAtomic(s.Path, b, os.FileMode(0o644)); err != nil { //nolint:mnd
		return err
	}
	return nil
}
