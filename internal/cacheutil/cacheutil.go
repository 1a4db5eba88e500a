// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
)

// DefaultFileName is the cache file used when nothing else is configured. It
// lives in the working directory.
const DefaultFileName = "cache.json"

var (
	createTempFile = os.CreateTemp
	renameFile     = os.Rename
)

// File resolves the cache file path.
// Precedence:
//  1. override, if non-empty (flag or config value)
//  2. POSTCTL_CACHE_FILE, if set and non-empty
//  3. DefaultFileName in the working directory
func File(override string) string {
	if override != "" {
		return override
	}
	if c, ok := os.LookupEnv("POSTCTL_CACHE_FILE"); ok && c != "" {
		return c
	}
	return DefaultFileName
}

// EnsureDir creates the directory that will hold path.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// WriteAtomic writes data to a temp file next to path and renames it into
// place, so readers never see a truncated file.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	tmp, err := createTempFile(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warnf("failed to remove temp file %s", tmpPath)
		}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to set cache permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := renameFile(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace cache file: %w", err)
	}

	log.Debugf("wrote %d bytes to %s", len(data), path)
	return nil
}
