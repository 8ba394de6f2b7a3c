// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"fmt"
	"time"
)

// ValidationError is a recoverable rejection of user input. It carries a
// human-readable message and is never treated as a system fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidatePollInfo checks the shared poll-info fields used by both the
// create and update paths.
func ValidatePollInfo(title, description, authorName, authorEmail string) error {
	if title == "" {
		return validationErrorf("title is required")
	}
	if len(title) > TitleMaxLength {
		return validationErrorf("title must be %d characters or fewer", TitleMaxLength)
	}
	if len(description) > DescriptionMaxLength {
		return validationErrorf("description must be %d characters or fewer", DescriptionMaxLength)
	}
	if authorName == "" {
		return validationErrorf("author name is required")
	}
	if len(authorName) > AuthorNameMaxLength {
		return validationErrorf("author name must be %d characters or fewer", AuthorNameMaxLength)
	}
	if len(authorEmail) > AuthorEmailMaxLength {
		return validationErrorf("author email must be %d characters or fewer", AuthorEmailMaxLength)
	}
	return nil
}

// ValidateVoterName checks a voter's display name. Names are not unique;
// they are the whole of a voter's identity.
func ValidateVoterName(name string) error {
	if name == "" {
		return validationErrorf("voter name is required")
	}
	if len(name) > VoterNameMaxLength {
		return validationErrorf("voter name must be %d characters or fewer", VoterNameMaxLength)
	}
	return nil
}

// Accepted datetime layouts for choice windows. Times are naive: no
// timezone conversion happens on parse, storage, or comparison.
const (
	datetimeLayout = "2006-01-02T15:04"
	dateOnlyLayout = "2006-01-02"
)

// ParseChoiceWindow validates and parses a proposed time window.
//
// Either bound may be date-only; a date-only start defaults to 00:00 and a
// date-only end to 23:59, which is how whole-day entries are expressed.
// A window with start equal to end is legal (a point-in-time choice);
// start after end is a ValidationError.
func ParseChoiceWindow(start, end string) (time.Time, time.Time, error) {
	var zero time.Time

	if start == "" {
		return zero, zero, validationErrorf("start datetime is required")
	}
	if end == "" {
		return zero, zero, validationErrorf("end datetime is required")
	}

	startT, err := parseWindowBound(start, 0, 0)
	if err != nil {
		return zero, zero, validationErrorf("invalid start datetime: %q", start)
	}
	endT, err := parseWindowBound(end, 23, 59)
	if err != nil {
		return zero, zero, validationErrorf("invalid end datetime: %q", end)
	}

	if startT.After(endT) {
		return zero, zero, validationErrorf("start datetime must not be after end datetime")
	}

	return startT, endT, nil
}

func parseWindowBound(s string, defaultHour, defaultMinute int) (time.Time, error) {
	if t, err := time.Parse(datetimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Duration(defaultHour)*time.Hour + time.Duration(defaultMinute)*time.Minute), nil
}
