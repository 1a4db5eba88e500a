// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/postctl/internal/state"
)

func sampleSnapshot(t *testing.T) state.Snapshot {
	t.Helper()

	var users []state.User
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz","company":{"name":"Romaguera-Crona"}},
		{"id":2,"name":"Ervin Howell","email":"Shanna@melissa.tv"}
	]`), &users))

	return state.Snapshot{
		Posts: []state.Post{
			{ID: 1, UserID: 1, Title: "first", Body: "body one"},
			{ID: 2, UserID: 2, Title: "second", Body: "body two"},
		},
		Users:       users,
		LastUpdated: state.NewTimestamp(time.Date(2025, 6, 1, 12, 30, 0, 250e6, time.UTC)),
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))

	snap, err := s.Load()
	require.NoError(t, err)
	assert.True(t, snap.Empty())
	assert.NotNil(t, snap.Posts)
	assert.NotNil(t, snap.Users)
	assert.Nil(t, snap.LastUpdated)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache.json"))
	want := sampleSnapshot(t)

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Posts, got.Posts)
	require.Len(t, got.Users, len(want.Users))
	for i := range want.Users {
		assert.Equal(t, want.Users[i].ID, got.Users[i].ID)
		assert.JSONEq(t, string(want.Users[i].Raw()), string(got.Users[i].Raw()))
	}
	require.NotNil(t, got.LastUpdated)
	assert.True(t, want.LastUpdated.Equal(got.LastUpdated.Time))
}

func TestSave_FileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	s := New(path)
	require.NoError(t, s.Save(sampleSnapshot(t)))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &top))
	assert.Len(t, top, 3)
	assert.Contains(t, top, "posts")
	assert.Contains(t, top, "users")
	assert.Equal(t, `"2025-06-01T12:30:00.250Z"`, string(top["lastUpdated"]))

	// Pretty-printed with two-space indentation.
	assert.True(t, strings.HasPrefix(string(b), "{\n  \"posts\": [\n    {\n      \"id\": 1,"))
	// Unknown user fields are carried through.
	assert.Contains(t, string(b), "Romaguera-Crona")
}

func TestSave_EmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, New(path).Save(state.Snapshot{}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts":[],"users":[],"lastUpdated":null}`, string(b))
}

func TestLoad_Tolerance(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   error
		wantPosts int
		wantUsers int
	}{
		{
			name:    "empty file",
			content: "  \n",
		},
		{
			name:    "malformed json",
			content: `{"posts": [`,
			wantErr: ErrCorrupt,
		},
		{
			name:    "wrong types",
			content: `{"posts": "nope", "users": [], "lastUpdated": null}`,
			wantErr: ErrCorrupt,
		},
		{
			name:      "missing fields",
			content:   `{"posts": [{"id": 1, "userId": 1, "title": "t", "body": "b"}]}`,
			wantPosts: 1,
		},
		{
			name:      "null collections",
			content:   `{"posts": null, "users": [{"id": 4}], "lastUpdated": null}`,
			wantUsers: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cache.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			snap, err := New(path).Load()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, snap.Posts, tt.wantPosts)
			assert.Len(t, snap.Users, tt.wantUsers)
			assert.NotNil(t, snap.Posts)
			assert.NotNil(t, snap.Users)
		})
	}
}

func TestLoad_CorruptFileRecoveredBySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	s := New(path)

	_, err := s.Load()
	require.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, s.Save(sampleSnapshot(t)))
	snap, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, snap.Posts, 2)
}
