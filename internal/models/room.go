package models

import (
	"time"
)

// Phase represents the current stage of a room's state machine
type Phase string

const (
	// PhaseLobby indicates a room is waiting for players to join
	PhaseLobby Phase = "lobby"

	// PhasePicking indicates the current picker is choosing a question
	PhasePicking Phase = "picking"

	// PhaseWagering indicates players are committing wagers before the question is revealed
	PhaseWagering Phase = "wagering"

	// PhaseAnswering indicates the round timer is running and answers are open
	PhaseAnswering Phase = "answering"

	// PhaseReveal indicates the round has been graded and results are shown
	PhaseReveal Phase = "reveal"

	// PhaseEnded indicates the match is over
	PhaseEnded Phase = "ended"
)

// Mode selects the scoring variant for a room
type Mode string

const (
	// ModeClassic awards points by submission order multipliers
	ModeClassic Mode = "classic"

	// ModeQuick awards points by privately committed wagers
	ModeQuick Mode = "quick"
)

// Room is the single shared document representing one match. The whole
// document is replicated to every participant on each write; whichever
// write lands last in the store wins entirely.
type Room struct {
	// Code is the short human-shareable identifier; immutable
	Code string `json:"code"`

	// Phase is the current stage of the state machine
	Phase Phase `json:"phase"`

	// Mode is the scoring variant
	Mode Mode `json:"mode"`

	// HostID points at the player allowed to drive host-only transitions.
	// It always references players[0].
	HostID string `json:"host_id"`

	// PickerID points at the player allowed to pick the next question
	PickerID string `json:"picker_id"`

	// Players in join order; players[0] is the host
	Players []*Player `json:"players"`

	// Board is the challenge list; content immutable, Used flags mutable
	Board []*BoardItem `json:"board"`

	// CurrentRound holds the active challenge, if any
	CurrentRound *Round `json:"current_round,omitempty"`

	// RoundsPlayed counts completed picks; used to key per-round timers
	RoundsPlayed int `json:"rounds_played"`

	// RoundSeconds is the fixed answering duration every client counts
	// down from, anchored on the round's started_at
	RoundSeconds int `json:"round_seconds"`

	// CreatedAt is when the room was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the room was last written
	UpdatedAt time.Time `json:"updated_at"`
}

// Player returns the player record with the given id, or nil.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerBySessionToken returns the player record holding the given
// session token, or nil.
func (r *Room) PlayerBySessionToken(token string) *Player {
	if token == "" {
		return nil
	}
	for _, p := range r.Players {
		if p.SessionToken == token {
			return p
		}
	}
	return nil
}

// UnusedIndexes returns the board indexes that have not been played yet.
func (r *Room) UnusedIndexes() []int {
	var indexes []int
	for i, item := range r.Board {
		if !item.Used {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// AllAnswered reports whether every player has a submission this round.
func (r *Room) AllAnswered() bool {
	if r.CurrentRound == nil {
		return false
	}
	for _, p := range r.Players {
		if !p.HasAnswered {
			return false
		}
	}
	return true
}

// AllWagered reports whether every player has committed a wager this round.
func (r *Room) AllWagered() bool {
	for _, p := range r.Players {
		if p.Wager == 0 {
			return false
		}
	}
	return true
}
