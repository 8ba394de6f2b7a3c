// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/diddle/auth"
	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
)

// GetTestConfig returns a config suitable for handler tests. Email is
// left unconfigured so notification paths stay inert.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3324,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		BaseURL:      "http://localhost:3324",
	}
}

// SetupTestDB opens a fresh in-memory sqlite database and runs the full
// migration history against it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// One connection pins every statement to the same in-memory DB.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := db.Migrate(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return conn
}

// ParseTime parses a test datetime in the wire layout.
func ParseTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		t.Fatalf("Bad test datetime %q: %v", s, err)
	}
	return parsed
}

// CreateTestPoll inserts a poll row directly and returns its ID and
// manage code.
func CreateTestPoll(t *testing.T, conn *sql.DB) (pollID, manageCode string) {
	t.Helper()

	pollID = auth.GenerateID()
	manageCode, err := auth.GenerateManageCode()
	if err != nil {
		t.Fatalf("Failed to generate manage code: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO polls (id, title, description, author_name, author_email, pub_date, manage_code, is_whole_day)
		VALUES ($1, 'Test Poll', 'A test poll', 'TestUser', NULL, $2, $3, FALSE)
	`, pollID, time.Now(), manageCode)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, manageCode
}

// AddTestChoice inserts a choice row and returns its ID.
func AddTestChoice(t *testing.T, conn *sql.DB, pollID, start, end string) string {
	t.Helper()

	choiceID := auth.GenerateID()
	_, err := conn.Exec(`
		INSERT INTO choices (id, poll_id, start_datetime, end_datetime)
		VALUES ($1, $2, $3, $4)
	`, choiceID, pollID, ParseTime(t, start), ParseTime(t, end))
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// SubmitTestVote inserts one vote row per entry in values, all sharing a
// fresh vote-session code, and returns that code.
func SubmitTestVote(t *testing.T, conn *sql.DB, pollID, voterName string, values map[string]int) string {
	t.Helper()

	voteCode, err := auth.GenerateManageCode()
	if err != nil {
		t.Fatalf("Failed to generate vote code: %v", err)
	}

	for choiceID, value := range values {
		_, err := conn.Exec(`
			INSERT INTO votes (id, poll_id, choice_id, voter_name, value, manage_code)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, auth.GenerateID(), pollID, choiceID, voterName, value, voteCode)
		if err != nil {
			t.Fatalf("Failed to create test vote: %v", err)
		}
	}

	return voteCode
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
