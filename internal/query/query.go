// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package query answers read-only questions about a cached snapshot.
package query

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/staranto/postctl/internal/state"
)

// DefaultLimit is the list-posts page size when none is given.
const DefaultLimit = 10

// Each outcome stays distinguishable so the caller can print the right
// message for it.
var (
	ErrCacheEmpty      = errors.New("no data available")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// ParseID parses a record id. Surrounding whitespace is ignored.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer id", ErrInvalidArgument, s)
	}
	return id, nil
}

// ParseLimit parses a list-posts limit. An empty string means DefaultLimit.
func ParseLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit %q must be a non-negative integer", ErrInvalidArgument, s)
	}
	return n, nil
}

// Predicate narrows a post listing. Every predicate must accept a post for it
// to be kept.
type Predicate func(state.Post) bool

func keepAll(p state.Post, keep []Predicate) bool {
	for _, k := range keep {
		if k != nil && !k(p) {
			return false
		}
	}
	return true
}

// ListPosts returns up to limit posts in cache order along with the
// effective limit. Predicates are applied before the limit.
func ListPosts(snap state.Snapshot, limit string, keep ...Predicate) ([]state.Post, int, error) {
	n, err := ParseLimit(limit)
	if err != nil {
		return nil, 0, err
	}
	if !snap.HasPosts() {
		return nil, n, ErrCacheEmpty
	}

	posts := snap.Posts
	if len(keep) > 0 {
		posts = []state.Post{}
		for _, p := range snap.Posts {
			if keepAll(p, keep) {
				posts = append(posts, p)
			}
		}
	}

	if n > len(posts) {
		return posts, n, nil
	}
	return posts[:n], n, nil
}

// FilterPostsByUser returns every post owned by userID. The argument is
// coerced to a number before comparing, so "5", " 5" and "5.0" all match
// userId 5. No matches is an empty slice, not an error.
func FilterPostsByUser(snap state.Snapshot, userID string, keep ...Predicate) ([]state.Post, error) {
	if !snap.HasPosts() {
		return nil, ErrCacheEmpty
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(userID), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %q is not a user id", ErrInvalidArgument, userID)
	}

	matched := []state.Post{}
	for _, p := range snap.Posts {
		if float64(p.UserID) == f && keepAll(p, keep) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GetPostByID returns the first post whose id equals id.
func GetPostByID(snap state.Snapshot, id string) (state.Post, error) {
	if !snap.HasPosts() {
		return state.Post{}, ErrCacheEmpty
	}
	pid, err := ParseID(id)
	if err != nil {
		return state.Post{}, err
	}
	for _, p := range snap.Posts {
		if p.ID == pid {
			return p, nil
		}
	}
	return state.Post{}, fmt.Errorf("post %d: %w", pid, ErrNotFound)
}

// GetUserByID returns the first user whose id equals id.
func GetUserByID(snap state.Snapshot, id string) (state.User, error) {
	if !snap.HasUsers() {
		return state.User{}, ErrCacheEmpty
	}
	uid, err := ParseID(id)
	if err != nil {
		return state.User{}, err
	}
	for _, u := range snap.Users {
		if u.ID == uid {
			return u, nil
		}
	}
	return state.User{}, fmt.Errorf("user %d: %w", uid, ErrNotFound)
}
