// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"golang.org/x/exp/maps"

	"github.com/danielhkuo/diddle/models"
)

// SelectionKey addresses one cell of the availability matrix.
type SelectionKey struct {
	VoterName string
	ChoiceID  string
}

// Selections flattens a hydrated poll into its (voter, choice) → value
// matrix. A key that is absent means the name never voted on that choice;
// with dense submissions this only happens for choices added after the
// voter's submission.
func Selections(poll *models.Poll) map[SelectionKey]int {
	selections := make(map[SelectionKey]int)
	for _, choice := range poll.Choices {
		for _, vote := range choice.Votes {
			selections[SelectionKey{VoterName: vote.VoterName, ChoiceID: choice.ID}] = vote.Value
		}
	}
	return selections
}

// VoterNames returns the distinct names that voted on the poll, sorted
// alphabetically. Identity is the bare name string, so two submissions
// under the same name merge into one row.
func VoterNames(poll *models.Poll) []string {
	seen := make(map[string]bool)
	for _, choice := range poll.Choices {
		for _, vote := range choice.Votes {
			seen[vote.VoterName] = true
		}
	}

	names := maps.Keys(seen)
	sort.Strings(names)
	return names
}

// BuildPollView assembles the public read model for one poll.
// manageable holds the voter names the current client proved ownership
// of by presenting their vote-session codes.
func BuildPollView(poll *models.Poll, manageable map[string]bool) models.PollView {
	byVoter := make(map[string]map[string]int)
	for key, value := range Selections(poll) {
		row := byVoter[key.VoterName]
		if row == nil {
			row = make(map[string]int)
			byVoter[key.VoterName] = row
		}
		row[key.ChoiceID] = value
	}

	manageableNames := []string{}
	for _, name := range VoterNames(poll) {
		if manageable[name] {
			manageableNames = append(manageableNames, name)
		}
	}

	return models.PollView{
		Poll:             *poll,
		VoterNames:       VoterNames(poll),
		Selections:       byVoter,
		ManageableVoters: manageableNames,
	}
}
