// Package countdown derives round timing from the persisted start
// timestamp. No client receives a server push; each one recomputes the
// remaining time locally on a one-second tick.
package countdown

import (
	"time"

	"github.com/quizden/quizden/internal/models"
)

// Remaining returns the time left in a round of the given duration,
// clamped to zero.
func Remaining(startedAt time.Time, duration time.Duration, now time.Time) time.Duration {
	remaining := duration - now.Sub(startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// RoomRemaining returns the time left in the room's current round, or
// zero when no round is running.
func RoomRemaining(room *models.Room, now time.Time) time.Duration {
	if room == nil || room.Phase != models.PhaseAnswering || room.CurrentRound == nil {
		return 0
	}
	duration := time.Duration(room.RoundSeconds) * time.Second
	return Remaining(room.CurrentRound.StartedAt, duration, now)
}
