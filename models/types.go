// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Field length limits, shared by create and update paths.
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 1000
	AuthorNameMaxLength  = 100
	AuthorEmailMaxLength = 100
	VoterNameMaxLength   = 100
)

// Request types

type CreatePollRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	IsWholeDay  bool   `json:"is_whole_day"`
}

type UpdatePollInfoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
	IsWholeDay  bool   `json:"is_whole_day"`
}

type AddChoiceRequest struct {
	StartDatetime string `json:"start_datetime"`
	EndDatetime   string `json:"end_datetime"`
}

type SubmitVoteRequest struct {
	VoterName string   `json:"voter_name"`
	ChoiceIDs []string `json:"choice_ids"` // choices marked available; the rest default to 0
}

type LookupPollsRequest struct {
	ManageCodes []string `json:"manage_codes"`
}

// Response types

type CreatePollResponse struct {
	PollID     string `json:"poll_id"`
	ManageCode string `json:"manage_code"`
}

type AddChoiceResponse struct {
	ChoiceID string `json:"choice_id"`
}

type SubmitVoteResponse struct {
	VoteCode string `json:"vote_code"`
	Message  string `json:"message"`
}

type DeleteVoteResponse struct {
	VoterName string `json:"voter_name"`
}

// PollSummary is one entry in the "my polls" listing.
type PollSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	ManageCode string    `json:"manage_code"`
	PubDate    time.Time `json:"pub_date"`
	CreatedAgo string    `json:"created_ago"`
}

type LookupPollsResponse struct {
	Polls []PollSummary `json:"polls"`
}

// PollView is the public read model: the poll aggregate plus the derived
// availability matrix. Selections is keyed voter name, then choice id; a
// missing cell means that name never voted on that choice, which renders
// differently from an explicit 0.
type PollView struct {
	Poll             Poll                      `json:"poll"`
	VoterNames       []string                  `json:"voter_names"`
	Selections       map[string]map[string]int `json:"selections"`
	ManageableVoters []string                  `json:"manageable_voters"`
}

// ManagedPollResponse is the organizer's view, which also carries the
// share and manage links.
type ManagedPollResponse struct {
	Poll      Poll   `json:"poll"`
	ShareURL  string `json:"share_url"`
	ManageURL string `json:"manage_url"`
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail *string   `json:"author_email,omitempty"`
	PubDate     time.Time `json:"pub_date"`
	ManageCode  string    `json:"-"` // never exposed on the public read path
	IsWholeDay  bool      `json:"is_whole_day"`
	Choices     []Choice  `json:"choices"`
}

type Choice struct {
	ID            string    `json:"id"`
	PollID        string    `json:"poll_id"`
	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`
	Votes         []Vote    `json:"votes"`
}

// SingleDay reports whether the choice starts and ends on the same
// calendar day.
func (c Choice) SingleDay() bool {
	ys, ms, ds := c.StartDatetime.Date()
	ye, me, de := c.EndDatetime.Date()
	return ys == ye && ms == me && ds == de
}

// Instant reports whether the choice is a point in time rather than a range.
func (c Choice) Instant() bool {
	return c.StartDatetime.Equal(c.EndDatetime)
}

type Vote struct {
	ID         string `json:"id"`
	PollID     string `json:"poll_id"`
	ChoiceID   string `json:"choice_id"`
	VoterName  string `json:"voter_name"`
	Value      int    `json:"value"` // 0 unavailable, 1 available
	ManageCode string `json:"-"`     // vote-session code, never exposed in JSON
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
