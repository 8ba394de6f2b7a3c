// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/store"
)

// ManageHandler serves every operation gated by a poll manage code. The
// code is the whole of the organizer's identity: no session, no account.
type ManageHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewManageHandler(s *store.Store, cfg cliparse.Config) *ManageHandler {
	return &ManageHandler{store: s, cfg: cfg}
}

// GetPoll handles GET /manage/{code}
func (h *ManageHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return
	}

	poll, err := h.store.GetPollByCode(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to load poll by code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ManagedPollResponse{
		Poll:      *poll,
		ShareURL:  h.cfg.BaseURL + "/poll/" + poll.ID,
		ManageURL: h.cfg.BaseURL + "/manage/" + poll.ManageCode,
	})
}

// UpdateInfo handles PUT /manage/{code}
func (h *ManageHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return
	}

	var req models.UpdatePollInfoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidatePollInfo(req.Title, req.Description, req.AuthorName, req.AuthorEmail); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.store.UpdatePollInfo(code, store.PollInfoParams{
		Title:       req.Title,
		Description: req.Description,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		IsWholeDay:  req.IsWholeDay,
	})
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to update poll info", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll info updated", "manage_code_prefix", code[:8])

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Poll info updated",
	})
}

// AddChoice handles POST /manage/{code}/choices
func (h *ManageHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	start, end, err := models.ParseChoiceWindow(req.StartDatetime, req.EndDatetime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	choice, err := h.store.AddChoice(code, start, end)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to add choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add choice")
		return
	}

	slog.Info("choice added", "poll_id", choice.PollID, "choice_id", choice.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{
		ChoiceID: choice.ID,
	})
}

// DeleteChoice handles DELETE /manage/{code}/choices/{choiceID}
// The manage code must resolve to the poll that owns the choice.
func (h *ManageHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return
	}
	choiceID := r.PathValue("choiceID")
	if !auth.ValidateIDFormat(choiceID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice id")
		return
	}

	poll, err := h.store.GetPollByCode(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to load poll by code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	owned := false
	for _, choice := range poll.Choices {
		if choice.ID == choiceID {
			owned = true
			break
		}
	}
	if !owned {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	if err := h.store.DeleteChoice(choiceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
			return
		}
		slog.Error("failed to delete choice", "error", err, "choice_id", choiceID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete choice")
		return
	}

	slog.Info("choice deleted", "poll_id", poll.ID, "choice_id", choiceID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Choice deleted",
	})
}

// DeletePoll handles DELETE /manage/{code}
// Removes the poll and, with it, every choice and vote it owns.
func (h *ManageHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if !auth.ValidateCodeFormat(code) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid manage code")
		return
	}

	err := h.store.DeletePoll(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "manage_code_prefix", code[:8])

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Poll deleted",
	})
}
