// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates and validates the opaque tokens that stand in for
authentication.

Two token families exist:

  - Identifiers (poll, choice, vote): UUIDv4 strings. Globally unique,
    safe to expose in URLs.
  - Manage codes (poll management, vote-session retraction): 192-bit
    random values in unpadded URL-safe base64. These are bearer
    capabilities; whoever holds one may exercise the rights it grants.

Both families have a fixed recognizable syntax so that handlers can reject
malformed input with a client error before touching the store.
*/
package auth
