// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Diddle is a lightweight scheduling-poll service in the spirit of
// when2meet. An author creates a poll with a set of date or date-time
// choices and shares a link; voters mark which choices work for them
// without creating an account. Manage codes returned at creation and
// vote time are the only credentials in the system.
//
// The server speaks JSON over HTTP and persists to SQLite or
// PostgreSQL depending on configuration. Run it with:
//
//	diddle -p 3324 -t sqlite -d file:diddle.db
//
// See the cliparse package for the full set of flags and environment
// variables, including the optional SMTP notification settings.
package main
