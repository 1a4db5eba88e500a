// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/staranto/postctl/internal/state"
)

// Status summarizes the cache for the status command.
type Status struct {
	Path        string  `json:"path" yaml:"path"`
	Posts       int     `json:"posts" yaml:"posts"`
	Users       int     `json:"users" yaml:"users"`
	LastUpdated *string `json:"lastUpdated" yaml:"lastUpdated"`
	Age         string  `json:"age,omitempty" yaml:"age,omitempty"`
}

// NewStatus builds a Status for snap as of now.
func NewStatus(path string, snap state.Snapshot, now time.Time) Status {
	s := Status{
		Path:  path,
		Posts: len(snap.Posts),
		Users: len(snap.Users),
	}
	if snap.LastUpdated != nil {
		ts := snap.LastUpdated.String()
		s.LastUpdated = &ts
		s.Age = humanize.RelTime(snap.LastUpdated.Time, now, "ago", "from now")
	}
	return s
}

// SpitStatus renders s.
func SpitStatus(w io.Writer, s Status, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = w.Write(b)
		return err
	}

	updated := "never"
	if s.LastUpdated != nil {
		updated = fmt.Sprintf("%s (%s)", *s.LastUpdated, s.Age)
	}
	TableWriter(w, []string{"Key", "Value"}, [][]string{
		{"cache", s.Path},
		{"posts", strconv.Itoa(s.Posts)},
		{"users", strconv.Itoa(s.Users)},
		{"updated", updated},
	}, opts)
	return nil
}
