// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient(t *testing.T) {
	c := NewClient("", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)

	c = NewClient("http://example.test/api/", 5*time.Second)
	assert.Equal(t, "http://example.test/api", c.BaseURL)
	assert.Equal(t, 5*time.Second, c.HTTP.Timeout)
}

func TestClient_PostsAndUsers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[{"id":1,"userId":5,"title":"A","body":"a"},{"id":2,"userId":5,"title":"B","body":"b"}]`))
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":5,"name":"Chelsey Dietrich","email":"Lucio_Hettinger@annie.ca","phone":"(254)954-1289"}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	posts := c.Posts(context.Background())
	require.True(t, posts.OK(), "%v", posts.Err)
	require.Len(t, posts.Value, 2)
	assert.Equal(t, "B", posts.Value[1].Title)
	assert.Equal(t, 5, posts.Value[0].UserID)

	users := c.Users(context.Background())
	require.True(t, users.OK(), "%v", users.Err)
	require.Len(t, users.Value, 1)
	assert.Equal(t, "Chelsey Dietrich", users.Value[0].Name)
	assert.Equal(t, "(254)954-1289", users.Value[0].Get("phone").String())
}

func TestFetch_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		users  bool
		check  func(*testing.T, error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusNotFound, se.StatusCode)
				assert.Contains(t, err.Error(), "404")
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `[]`,
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
			},
		},
		{
			name:   "empty body",
			status: http.StatusOK,
			body:   ``,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyBody) },
		},
		{
			name:   "null body",
			status: http.StatusOK,
			body:   "null\n",
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmptyBody) },
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>oops</html>`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrDecode) },
		},
		{
			name:   "wrong shape",
			status: http.StatusOK,
			body:   `{"id":1}`,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrDecode) },
		},
		{
			name:   "users that are not objects",
			status: http.StatusOK,
			body:   `[1, "x", null, true]`,
			users:  true,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrDecode) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)
			c := NewClient(srv.URL, time.Second)

			if tt.users {
				res := c.Users(context.Background())
				assert.False(t, res.OK())
				assert.Nil(t, res.Value)
				tt.check(t, res.Err)
				return
			}

			res := c.Posts(context.Background())
			assert.False(t, res.OK())
			assert.Nil(t, res.Value)
			tt.check(t, res.Err)
		})
	}
}

func TestFetch_EmptyArrayIsData(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)
	res := NewClient(srv.URL, time.Second).Posts(context.Background())
	assert.True(t, res.OK())
	assert.Empty(t, res.Value)
}

func TestFetch_NetworkError(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)
	url := srv.URL
	srv.Close()

	res := NewClient(url, time.Second).Users(context.Background())
	assert.False(t, res.OK())
	assert.Contains(t, res.Err.Error(), "failed to execute request")
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res := NewClient(srv.URL, 50*time.Millisecond).Posts(context.Background())
	assert.False(t, res.OK())
	assert.Contains(t, res.Err.Error(), "failed to execute request")
}

func TestIsFalsy(t *testing.T) {
	for _, b := range []string{"", "  ", "null", "false", "0", `""`} {
		assert.True(t, isFalsy([]byte(b)), b)
	}
	for _, b := range []string{"[]", "{}", "1", "true", `"x"`} {
		assert.False(t, isFalsy([]byte(b)), b)
	}
}
