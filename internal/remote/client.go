// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/postctl/internal/state"
)

// DefaultBaseURL serves the posts and users collections.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// Client fetches collections from the upstream API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client for baseURL. A zero timeout means no limit.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Posts fetches the posts collection.
func (c *Client) Posts(ctx context.Context) Result[[]state.Post] {
	return Fetch[[]state.Post](ctx, c, c.BaseURL+"/posts")
}

// Users fetches the users collection.
func (c *Client) Users(ctx context.Context) Result[[]state.User] {
	return Fetch[[]state.User](ctx, c, c.BaseURL+"/users")
}

// Fetch issues a single GET to url and decodes the JSON body into T. Every
// failure is logged and returned as the Result's reason.
func Fetch[T any](ctx context.Context, c *Client, url string) Result[T] {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Errorf("Error: %v", err)
		return fail[T](fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("GET %s", url)
	resp, err := httpClient.Do(req)
	if err != nil {
		log.Errorf("Error: %v", err)
		return fail[T](fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("Invalid Response: %d", resp.StatusCode)
		return fail[T](&StatusError{URL: url, StatusCode: resp.StatusCode})
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		log.Errorf("Error: %v", err)
		return fail[T](fmt.Errorf("failed to read response: %w", err))
	}

	if isFalsy(doc.Bytes()) {
		log.Errorf("Empty Data: %s", url)
		return fail[T](fmt.Errorf("%w: %s", ErrEmptyBody, url))
	}

	var v T
	if err := json.Unmarshal(doc.Bytes(), &v); err != nil {
		log.Errorf("Error: %v", err)
		return fail[T](fmt.Errorf("%w from %s: %v", ErrDecode, url, err))
	}

	log.Debugf("fetched %d bytes from %s", doc.Len(), url)
	return ok(v)
}

// isFalsy reports whether body is empty or a JSON value with no content.
// Empty arrays and objects are real payloads.
func isFalsy(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}
