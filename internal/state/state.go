// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// TimestampLayout matches the ISO-8601 form written by JavaScript's
// Date.toISOString, so cache files stay interchangeable.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Post is a single blog post as served by the posts collection.
type Post struct {
	ID     int    `json:"id" yaml:"id"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

// User is an opaque user record. ID, Name and Email are lifted out of the raw
// object for lookups and display; the raw bytes are what get persisted, so
// fields this program knows nothing about survive a save/load cycle.
type User struct {
	ID    int
	Name  string
	Email string

	raw json.RawMessage
}

// NewUser builds a User with a minimal raw record.
func NewUser(id int, name, email string) User {
	raw, _ := json.Marshal(struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}{id, name, email})
	return User{ID: id, Name: name, Email: email, raw: raw}
}

// UnmarshalJSON keeps the raw record and extracts the well-known fields.
func (u *User) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("invalid user record")
	}

	r := gjson.ParseBytes(b)
	if !r.IsObject() {
		return fmt.Errorf("user record is not an object: %s", b)
	}
	u.ID = int(r.Get("id").Int())
	u.Name = r.Get("name").String()
	u.Email = r.Get("email").String()
	u.raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON writes the record back exactly as it was received.
func (u User) MarshalJSON() ([]byte, error) {
	if len(u.raw) == 0 {
		return NewUser(u.ID, u.Name, u.Email).raw, nil
	}
	return u.raw, nil
}

// Raw returns the record as received from upstream.
func (u User) Raw() json.RawMessage {
	b, _ := u.MarshalJSON()
	return b
}

// Get returns an arbitrary field of the raw record using gjson path syntax,
// e.g. "address.city".
func (u User) Get(path string) gjson.Result {
	return gjson.GetBytes(u.Raw(), path)
}

// Timestamp is the snapshot's last-updated marker.
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC at millisecond precision, which is all the
// persisted form can carry.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("lastUpdated is not a string: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("lastUpdated is not an ISO-8601 timestamp: %w", err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Snapshot is everything the cache file holds. It is only ever replaced as a
// whole.
type Snapshot struct {
	Posts       []Post     `json:"posts"`
	Users       []User     `json:"users"`
	LastUpdated *Timestamp `json:"lastUpdated"`
}

// HasPosts reports whether any posts are cached.
func (s Snapshot) HasPosts() bool { return len(s.Posts) > 0 }

// HasUsers reports whether any users are cached.
func (s Snapshot) HasUsers() bool { return len(s.Users) > 0 }

// Empty is true for a snapshot that has never been refreshed.
func (s Snapshot) Empty() bool {
	return !s.HasPosts() && !s.HasUsers() && s.LastUpdated == nil
}

// Normalize replaces nil collections with empty ones so they serialize as []
// rather than null.
func (s Snapshot) Normalize() Snapshot {
	if s.Posts == nil {
		s.Posts = []Post{}
	}
	if s.Users == nil {
		s.Users = []User{}
	}
	return s
}
