// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires the HTTP routes to their handlers using Go 1.22+
// method patterns.
package router
