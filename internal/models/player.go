package models

// Player represents one participant's record inside a room document
type Player struct {
	// ID is the identity-provider value, stable across reloads on one device
	ID string `json:"id"`

	// Name is the display name; may be empty pending entry
	Name string `json:"name"`

	// SessionToken is an opaque value embedded in shareable links so the
	// player can reclaim this seat from a different device
	SessionToken string `json:"session_token"`

	// IsBot marks a simulated participant driven by the host client
	IsBot bool `json:"is_bot"`

	// Score is the running match score
	Score int `json:"score"`

	// HasAnswered is reset at the start of every round
	HasAnswered bool `json:"has_answered"`

	// Wager is the value committed for the current round; 0 means none
	Wager int `json:"wager,omitempty"`

	// WagersUsed lists values already spent this match (quick mode)
	WagersUsed []int `json:"wagers_used,omitempty"`

	// Stats are running per-match statistics
	Stats PlayerStats `json:"stats"`
}

// PlayerStats tracks running statistics updated at each reveal
type PlayerStats struct {
	// RoundsWon counts rounds where this player answered correctly first
	RoundsWon int `json:"rounds_won"`

	// Correct counts correctly graded submissions
	Correct int `json:"correct"`

	// BestResponseMillis is the fastest correct response time, 0 if none
	BestResponseMillis int64 `json:"best_response_millis"`
}
