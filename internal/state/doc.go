// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package state holds the cached snapshot of posts and users that every
// command reads from and that refresh replaces wholesale.
package state
