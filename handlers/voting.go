// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/mailer"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/store"
)

type VotingHandler struct {
	store  *store.Store
	cfg    cliparse.Config
	mailer *mailer.Mailer
}

func NewVotingHandler(s *store.Store, cfg cliparse.Config, m *mailer.Mailer) *VotingHandler {
	return &VotingHandler{store: s, cfg: cfg, mailer: m}
}

// SubmitVote handles POST /polls/{id}/votes
// The request lists only the choices marked available; every other
// choice in the poll gets an explicit 0 row. The response carries the
// vote-session code the voter needs to retract later.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if !auth.ValidateIDFormat(pollID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateVoterName(req.VoterName); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	selected := make(map[string]bool, len(req.ChoiceIDs))
	for _, choiceID := range req.ChoiceIDs {
		if !auth.ValidateIDFormat(choiceID) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice id: "+choiceID)
			return
		}
		selected[choiceID] = true
	}

	voteCode, err := h.store.SubmitVote(pollID, req.VoterName, selected)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.Is(err, store.ErrNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		case errors.Is(err, store.ErrDuplicateSubmission):
			middleware.ErrorResponse(w, http.StatusConflict, "This name has already voted on this poll")
		case errors.As(err, &verr):
			middleware.ErrorResponse(w, http.StatusBadRequest, verr.Message)
		default:
			slog.Error("failed to submit vote", "error", err, "poll_id", pollID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		}
		return
	}

	go h.mailer.VoterParticipated(pollID, req.VoterName)

	slog.Info("vote submitted", "poll_id", pollID, "voter", req.VoterName)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteCode: voteCode,
		Message:  "Vote submitted",
	})
}

// DeleteVote handles DELETE /votes/{code}
// Retracts an entire vote-session: every row carrying the code goes at
// once. The owning voter name is echoed back as a prefill hint for
// re-voting; nothing else is retained server-side.
func (h *VotingHandler) DeleteVote(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid vote code")
		return
	}

	voterName, err := h.store.DeleteVoteSession(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete vote session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete vote")
		return
	}

	slog.Info("vote session deleted", "voter", voterName)

	middleware.JSONResponse(w, http.StatusOK, models.DeleteVoteResponse{
		VoterName: voterName,
	})
}
