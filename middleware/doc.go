// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package middleware provides request logging, CORS, and the JSON
// request/response helpers shared by every handler.
package middleware
