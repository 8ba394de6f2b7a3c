// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Poll: the schedulable event, owning its Choices
  - Choice: one proposed time window, owning its Votes
  - Vote: one voter's binary availability for one choice

Datetimes are naive throughout: values are stored and compared exactly as
entered, with no timezone normalization.

# Validation

ValidationError is the structured rejection for bad user input. Field
limits (title 100, description 1000, author name/email 100, voter name
100) live here so the create and update paths cannot drift apart.
ParseChoiceWindow implements the time-choice rules: empty bounds and
start-after-end are rejected, equal bounds are an allowed instant, and
date-only bounds default to 00:00 / 23:59.
*/
package models
