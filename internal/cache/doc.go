// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache persists the state snapshot to a single JSON file and reads
// it back at startup.
package cache
