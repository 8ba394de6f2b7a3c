// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/mailer"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/store"
	"github.com/danielhkuo/diddle/testutil"
)

func newTestVotingHandler(t *testing.T) (*VotingHandler, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	st := store.NewStore(conn)
	cfg := testutil.GetTestConfig()
	m := mailer.NewMailer(cliparse.EmailConfig{}, cfg.BaseURL, st)
	return NewVotingHandler(st, cfg, m), conn
}

func TestSubmitVote(t *testing.T) {
	handler, conn := newTestVotingHandler(t)

	pollID, _ := testutil.CreateTestPoll(t, conn)
	choice1 := testutil.AddTestChoice(t, conn, pollID, "2026-09-08T09:00", "2026-09-08T10:00")
	choice2 := testutil.AddTestChoice(t, conn, pollID, "2026-09-10T14:00", "2026-09-10T16:00")
	choice3 := testutil.AddTestChoice(t, conn, pollID, "2026-09-12T14:00", "2026-09-12T16:00")

	tests := []struct {
		name           string
		pollID         string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.SubmitVoteResponse)
	}{
		{
			name:   "valid vote",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				VoterName: "Alice",
				ChoiceIDs: []string{choice1, choice3},
			},
			expectedStatus: 201,
			checkResponse: func(t *testing.T, resp *models.SubmitVoteResponse) {
				if !auth.ValidateCodeFormat(resp.VoteCode) {
					t.Errorf("Expected a well-formed vote_code, got %q", resp.VoteCode)
				}

				// Every choice got a row, including the unselected one
				rows := map[string]int{}
				result, err := conn.Query("SELECT choice_id, value FROM votes WHERE poll_id = $1 AND voter_name = 'Alice'", pollID)
				if err != nil {
					t.Fatalf("Failed to query votes: %v", err)
				}
				defer result.Close()
				for result.Next() {
					var choiceID string
					var value int
					if err := result.Scan(&choiceID, &value); err != nil {
						t.Fatalf("Failed to scan vote: %v", err)
					}
					rows[choiceID] = value
				}
				if len(rows) != 3 {
					t.Fatalf("Expected 3 vote rows, got %d", len(rows))
				}
				if rows[choice1] != 1 || rows[choice2] != 0 || rows[choice3] != 1 {
					t.Errorf("Unexpected vote values: %v", rows)
				}
			},
		},
		{
			name:   "no availability at all is still a vote",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				VoterName: "Bob",
				ChoiceIDs: []string{},
			},
			expectedStatus: 201,
			checkResponse: func(t *testing.T, resp *models.SubmitVoteResponse) {
				var count int
				err := conn.QueryRow("SELECT COUNT(*) FROM votes WHERE poll_id = $1 AND voter_name = 'Bob' AND value = 0", pollID).Scan(&count)
				if err != nil {
					t.Fatalf("Failed to count votes: %v", err)
				}
				if count != 3 {
					t.Errorf("Expected 3 zero-value rows for Bob, got %d", count)
				}
			},
		},
		{
			name:   "duplicate voter name",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				VoterName: "Alice",
				ChoiceIDs: []string{choice2},
			},
			expectedStatus: 409,
		},
		{
			name:   "empty voter name",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				ChoiceIDs: []string{choice1},
			},
			expectedStatus: 400,
		},
		{
			name:   "malformed choice id",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				VoterName: "Carol",
				ChoiceIDs: []string{"not-a-uuid"},
			},
			expectedStatus: 400,
		},
		{
			name:   "choice from another poll",
			pollID: pollID,
			requestBody: models.SubmitVoteRequest{
				VoterName: "Carol",
				ChoiceIDs: []string{auth.GenerateID()},
			},
			expectedStatus: 400,
		},
		{
			name:   "unknown poll",
			pollID: auth.GenerateID(),
			requestBody: models.SubmitVoteRequest{
				VoterName: "Carol",
				ChoiceIDs: []string{choice1},
			},
			expectedStatus: 404,
		},
		{
			name:           "malformed poll id",
			pollID:         "not-a-uuid",
			requestBody:    models.SubmitVoteRequest{VoterName: "Carol"},
			expectedStatus: 400,
		},
		{
			name:           "invalid JSON",
			pollID:         pollID,
			requestBody:    "not json",
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/polls/"+tt.pollID+"/votes", tt.requestBody, nil)
			req.SetPathValue("id", tt.pollID)
			w := httptest.NewRecorder()

			handler.SubmitVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == 201 && tt.checkResponse != nil {
				var resp models.SubmitVoteResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestDuplicateVoteLeavesOriginalIntact(t *testing.T) {
	handler, conn := newTestVotingHandler(t)

	pollID, _ := testutil.CreateTestPoll(t, conn)
	choice1 := testutil.AddTestChoice(t, conn, pollID, "2026-09-08T09:00", "2026-09-08T10:00")
	choice2 := testutil.AddTestChoice(t, conn, pollID, "2026-09-10T14:00", "2026-09-10T16:00")

	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.SubmitVoteRequest{
		VoterName: "Alice",
		ChoiceIDs: []string{choice1},
	}, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)
	testutil.AssertStatus(t, w, 201)

	// A second submission under the same name flips nothing
	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.SubmitVoteRequest{
		VoterName: "Alice",
		ChoiceIDs: []string{choice2},
	}, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	handler.SubmitVote(w, req)
	testutil.AssertStatus(t, w, 409)

	var value int
	err := conn.QueryRow("SELECT value FROM votes WHERE poll_id = $1 AND choice_id = $2 AND voter_name = 'Alice'", pollID, choice1).Scan(&value)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if value != 1 {
		t.Errorf("Original vote value changed, got %d", value)
	}
}

func TestDeleteVote(t *testing.T) {
	handler, conn := newTestVotingHandler(t)

	pollID, _ := testutil.CreateTestPoll(t, conn)
	choice1 := testutil.AddTestChoice(t, conn, pollID, "2026-09-08T09:00", "2026-09-08T10:00")
	choice2 := testutil.AddTestChoice(t, conn, pollID, "2026-09-10T14:00", "2026-09-10T16:00")

	voteCode := testutil.SubmitTestVote(t, conn, pollID, "Alice", map[string]int{choice1: 1, choice2: 0})
	bobCode := testutil.SubmitTestVote(t, conn, pollID, "Bob", map[string]int{choice1: 0, choice2: 1})

	tests := []struct {
		name           string
		code           string
		expectedStatus int
		expectedVoter  string
	}{
		{"malformed code", "short", 400, ""},
		{"unknown code", unknownCode(), 404, ""},
		{"valid delete", voteCode, 200, "Alice"},
		{"already deleted", voteCode, 404, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/votes/"+tt.code, nil, nil)
			req.SetPathValue("code", tt.code)
			w := httptest.NewRecorder()

			handler.DeleteVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == 200 {
				var resp models.DeleteVoteResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.VoterName != tt.expectedVoter {
					t.Errorf("Expected voter_name %q, got %q", tt.expectedVoter, resp.VoterName)
				}
			}
		})
	}

	// Alice's whole session is gone, Bob's survives
	var aliceCount, bobCount int
	if err := conn.QueryRow("SELECT COUNT(*) FROM votes WHERE voter_name = 'Alice'").Scan(&aliceCount); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if err := conn.QueryRow("SELECT COUNT(*) FROM votes WHERE manage_code = $1", bobCode).Scan(&bobCount); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if aliceCount != 0 {
		t.Errorf("Expected Alice's votes gone, found %d", aliceCount)
	}
	if bobCount != 2 {
		t.Errorf("Expected Bob's 2 votes intact, found %d", bobCount)
	}
}

func TestRetractThenRevote(t *testing.T) {
	handler, conn := newTestVotingHandler(t)

	pollID, _ := testutil.CreateTestPoll(t, conn)
	choice1 := testutil.AddTestChoice(t, conn, pollID, "2026-09-08T09:00", "2026-09-08T10:00")

	voteCode := testutil.SubmitTestVote(t, conn, pollID, "Alice", map[string]int{choice1: 0})

	req := testutil.MakeRequest("DELETE", "/votes/"+voteCode, nil, nil)
	req.SetPathValue("code", voteCode)
	w := httptest.NewRecorder()
	handler.DeleteVote(w, req)
	testutil.AssertStatus(t, w, 200)

	// The name is free again
	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/votes", models.SubmitVoteRequest{
		VoterName: "Alice",
		ChoiceIDs: []string{choice1},
	}, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	handler.SubmitVote(w, req)
	testutil.AssertStatus(t, w, 201)

	var value int
	err := conn.QueryRow("SELECT value FROM votes WHERE poll_id = $1 AND choice_id = $2 AND voter_name = 'Alice'", pollID, choice1).Scan(&value)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if value != 1 {
		t.Errorf("Expected the re-vote value 1, got %d", value)
	}
}
