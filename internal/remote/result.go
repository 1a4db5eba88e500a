// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel reasons carried by a failed Result.
var (
	ErrEmptyBody = errors.New("empty response body")
	ErrDecode    = errors.New("failed to decode response")
)

// StatusError is the reason for a Result whose response was not 2xx.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("invalid response: %d %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Result is either a decoded payload or the reason there is none. Fetch never
// returns anything else, so callers have exactly one branch to handle.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result carries a payload.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}
