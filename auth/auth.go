// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidID   = errors.New("invalid identifier format")
	ErrInvalidCode = errors.New("invalid manage code format")
)

// manageCodeLen is the encoded length of a 24-byte code after
// unpadded URL-safe base64.
const manageCodeLen = 32

// GenerateID creates a new opaque identifier for a poll, choice, or vote.
func GenerateID() string {
	return uuid.NewString()
}

// ValidateIDFormat reports whether s is syntactically a valid identifier.
// Used to fast-reject malformed input before any database lookup.
func ValidateIDFormat(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GenerateManageCode creates a random bearer code for a poll or a
// vote-session. 24 bytes = 192 bits of entropy.
func GenerateManageCode() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate manage code: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateCodeFormat reports whether s is syntactically a valid manage code:
// fixed length, URL-safe base64 alphabet, no padding.
func ValidateCodeFormat(s string) bool {
	if len(s) != manageCodeLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
