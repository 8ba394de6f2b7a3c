// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/models"
	"github.com/danielhkuo/diddle/store"
)

// pollFetcher is the slice of the store the mailer needs. Notifications
// re-fetch the poll themselves so they never depend on state captured
// before the triggering operation committed.
type pollFetcher interface {
	GetPoll(id string) (*models.Poll, error)
}

// Mailer sends organizer notifications. Every method swallows its own
// failures: a notification can be lost, but it can never fail the core
// operation that triggered it.
type Mailer struct {
	cfg     cliparse.EmailConfig
	baseURL string
	polls   pollFetcher

	// send is swappable for tests.
	send func(subject, body, recipient string) error
}

func NewMailer(cfg cliparse.EmailConfig, baseURL string, s *store.Store) *Mailer {
	m := &Mailer{cfg: cfg, baseURL: baseURL, polls: s}
	m.send = m.sendSMTP
	return m
}

// Enabled reports whether outbound email is configured at all.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled
}

// PollCreated notifies the organizer that their poll now exists, with
// the manage link. No-ops silently when email is disabled, the poll is
// gone, or the poll has no author email.
func (m *Mailer) PollCreated(pollID string) {
	poll, ok := m.fetch(pollID)
	if !ok {
		return
	}

	subject := fmt.Sprintf("You created a new diddle %q", poll.Title)
	body := fmt.Sprintf("Manage your diddle at %s/manage/%s\n"+
		"You will be notified by email when someone participates.",
		m.baseURL, poll.ManageCode)

	if err := m.send(subject, body, *poll.AuthorEmail); err != nil {
		slog.Error("failed to send poll created email", "error", err, "poll_id", pollID)
	}
}

// VoterParticipated notifies the organizer that a voter submitted their
// availability. Same no-op rules as PollCreated.
func (m *Mailer) VoterParticipated(pollID, voterName string) {
	poll, ok := m.fetch(pollID)
	if !ok {
		return
	}

	subject := fmt.Sprintf("%s participated in your poll %q", voterName, poll.Title)
	body := fmt.Sprintf("%s participated in your diddle %q.\n\n"+
		"View the results at %s/poll/%s\n"+
		"Manage your diddle at %s/manage/%s\n"+
		"You will be notified by email when someone participates.",
		voterName, poll.Title, m.baseURL, poll.ID, m.baseURL, poll.ManageCode)

	if err := m.send(subject, body, *poll.AuthorEmail); err != nil {
		slog.Error("failed to send participation email", "error", err, "poll_id", pollID)
	}
}

func (m *Mailer) fetch(pollID string) (*models.Poll, bool) {
	if !m.cfg.Enabled {
		return nil, false
	}

	poll, err := m.polls.GetPoll(pollID)
	if err != nil {
		// The poll may legitimately be gone by the time the
		// notification runs.
		slog.Warn("notification skipped, poll not loadable", "error", err, "poll_id", pollID)
		return nil, false
	}
	if poll.AuthorEmail == nil {
		return nil, false
	}
	return poll, true
}

func (m *Mailer) sendSMTP(subject, body, recipient string) error {
	msg := buildMessage(m.cfg.From, recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	return smtp.SendMail(addr, auth, m.cfg.From, []string{recipient}, msg)
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
