// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders posts, user records, usage examples and cache status
// as text tables, JSON or YAML.
package output
