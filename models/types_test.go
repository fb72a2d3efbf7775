// Copyright (c) 2025 magurofly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// current_vote must vanish from anonymous status payloads; its presence
// is what tells the client the read was authenticated.
func TestVoteStatusCurrentVoteOmitted(t *testing.T) {
	anonymous, err := json.Marshal(VoteStatus{Score: 3, ScoresByRating: map[string]int64{}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(anonymous), "current_vote") {
		t.Errorf("anonymous payload contains current_vote: %s", anonymous)
	}

	authenticated, err := json.Marshal(VoteStatus{Score: 3, ScoresByRating: map[string]int64{}, CurrentVote: VoteNone})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(authenticated), `"current_vote":"none"`) {
		t.Errorf("authenticated payload missing current_vote: %s", authenticated)
	}
}
