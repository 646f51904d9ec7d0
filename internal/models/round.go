package models

import (
	"time"
)

// Round holds the active challenge's transient state
type Round struct {
	// BoardIndex is the index of the picked question in the board
	BoardIndex int `json:"board_index"`

	// Number is the ordinal of this round within the match, starting at 1
	Number int `json:"number"`

	// StartedAt anchors the countdown; every client derives remaining time
	// from this timestamp rather than a server push. Zero until answering opens.
	StartedAt time.Time `json:"started_at"`

	// Submissions are appended independently by each answering client;
	// a given player id appears at most once
	Submissions []*Submission `json:"submissions"`
}

// Submission is one player's answer for a round
type Submission struct {
	// PlayerID identifies the submitting player
	PlayerID string `json:"player_id"`

	// Answer is the raw submitted text
	Answer string `json:"answer"`

	// SubmittedAt is when the answer was written
	SubmittedAt time.Time `json:"submitted_at"`

	// Correct is set during grading at reveal
	Correct bool `json:"correct"`

	// Awarded is the signed point delta applied to the player's score
	Awarded int `json:"awarded"`

	// ResponseMillis is the elapsed time from round start to submission
	ResponseMillis int64 `json:"response_millis"`
}

// Submission returns the submission for the given player id, or nil.
func (r *Round) Submission(playerID string) *Submission {
	for _, s := range r.Submissions {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}
