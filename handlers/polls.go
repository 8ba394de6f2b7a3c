// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/mailer"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/store"
)

type PollHandler struct {
	store  *store.Store
	cfg    cliparse.Config
	mailer *mailer.Mailer
}

func NewPollHandler(s *store.Store, cfg cliparse.Config, m *mailer.Mailer) *PollHandler {
	return &PollHandler{store: s, cfg: cfg, mailer: m}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidatePollInfo(req.Title, req.Description, req.AuthorName, req.AuthorEmail); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	poll, err := h.store.CreatePoll(store.CreatePollParams{
		Title:       req.Title,
		Description: req.Description,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IsWholeDay:  req.IsWholeDay,
	})
	if err != nil {
		slog.Error("failed to create poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	// Fire-and-forget: a lost notification never fails the creation.
	go h.mailer.PollCreated(poll.ID)

	slog.Info("poll created", "poll_id", poll.ID, "author", poll.AuthorName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:     poll.ID,
		ManageCode: poll.ManageCode,
	})
}

// GetPoll handles GET /polls/{id}
// Returns the poll with sorted choices and the derived availability view.
// Vote-session codes presented in X-Vote-Codes mark their voter names as
// self-manageable for this client.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if !auth.ValidateIDFormat(pollID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	poll, err := h.store.GetPoll(pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	manageable, err := h.store.VoterNamesByCodes(pollID, voteCodesFromHeader(r))
	if err != nil {
		slog.Error("failed to resolve vote codes", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, BuildPollView(poll, manageable))
}

// LookupPolls handles POST /polls/lookup
// Bulk-fetches the polls behind a set of manage codes, so a browser
// holding several codes can list "my polls".
func (h *PollHandler) LookupPolls(w http.ResponseWriter, r *http.Request) {
	var req models.LookupPollsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Malformed codes cannot resolve; drop them without touching the store.
	codes := []string{}
	for _, code := range req.ManageCodes {
		if auth.ValidateCodeFormat(code) {
			codes = append(codes, code)
		}
	}

	polls, err := h.store.GetPollsByCodes(codes)
	if err != nil {
		slog.Error("failed to look up polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	summaries := []models.PollSummary{}
	for _, poll := range polls {
		summaries = append(summaries, models.PollSummary{
			ID:         poll.ID,
			Title:      poll.Title,
			AuthorName: poll.AuthorName,
			ManageCode: poll.ManageCode,
			PubDate:    poll.PubDate,
			CreatedAgo: humanize.Time(poll.PubDate),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.LookupPollsResponse{Polls: summaries})
}

// voteCodesFromHeader extracts well-formed vote-session codes from the
// X-Vote-Codes header (comma-separated).
func voteCodesFromHeader(r *http.Request) []string {
	header := r.Header.Get("X-Vote-Codes")
	if header == "" {
		return nil
	}

	codes := []string{}
	for _, part := range strings.Split(header, ",") {
		code := strings.TrimSpace(part)
		if auth.ValidateCodeFormat(code) {
			codes = append(codes, code)
		}
	}
	return codes
}
