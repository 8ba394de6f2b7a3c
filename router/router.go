// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/handlers"
	"github.com/danielhkuo/diddle/mailer"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/store"
)

func NewRouter(s *store.Store, cfg cliparse.Config, m *mailer.Mailer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(s, cfg, m)
	manageHandler := handlers.NewManageHandler(s, cfg)
	votingHandler := handlers.NewVotingHandler(s, cfg, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public poll operations
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/lookup", middleware.WithLogging(pollHandler.LookupPolls))

	// Voting
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("DELETE /votes/{code}", middleware.WithLogging(votingHandler.DeleteVote))

	// Organizer operations (gated by manage code)
	mux.HandleFunc("GET /manage/{code}", middleware.WithLogging(manageHandler.GetPoll))
	mux.HandleFunc("PUT /manage/{code}", middleware.WithLogging(manageHandler.UpdateInfo))
	mux.HandleFunc("POST /manage/{code}/choices", middleware.WithLogging(manageHandler.AddChoice))
	mux.HandleFunc("DELETE /manage/{code}/choices/{choiceID}", middleware.WithLogging(manageHandler.DeleteChoice))
	mux.HandleFunc("DELETE /manage/{code}", middleware.WithLogging(manageHandler.DeletePoll))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("diddle API v1"))
	})

	return mux
}
