package engine

import (
	"sort"
	"time"

	"github.com/quizden/quizden/internal/grading"
	"github.com/quizden/quizden/internal/models"
)

// This file is the pure transition core: each function takes the caller's
// copy of the room document and either mutates it into the next document
// and returns true, or leaves it untouched and returns false. Nothing here
// reads the clock or touches the store; the service layer owns both.
//
// Rejection is deliberately silent. Guards re-derive legality from the
// document itself, so a transition built from a stale cached view simply
// does not apply.

// startGame moves lobby → picking. Host-only, requires at least two
// player records.
func startGame(room *models.Room, actorID string) bool {
	if room.Phase != models.PhaseLobby || room.HostID != actorID {
		return false
	}
	if len(room.Players) < 2 {
		return false
	}

	for _, p := range room.Players {
		p.HasAnswered = false
	}

	// First picker defaults to the host
	if room.PickerID == "" || room.Player(room.PickerID) == nil {
		room.PickerID = room.HostID
	}

	room.Phase = models.PhasePicking
	return true
}

// pickQuestion selects an unused challenge. Picker-only. Classic mode
// opens answering immediately; quick mode holds the question hidden while
// players commit wagers.
func pickQuestion(room *models.Room, actorID string, index int, now time.Time) bool {
	if room.Phase != models.PhasePicking || room.PickerID != actorID {
		return false
	}
	if index < 0 || index >= len(room.Board) || room.Board[index].Used {
		return false
	}

	for _, p := range room.Players {
		p.HasAnswered = false
		p.Wager = 0
	}

	room.CurrentRound = &models.Round{
		BoardIndex:  index,
		Number:      room.RoundsPlayed + 1,
		Submissions: []*models.Submission{},
	}

	if room.Mode == models.ModeQuick {
		room.Phase = models.PhaseWagering
	} else {
		room.CurrentRound.StartedAt = now
		room.Phase = models.PhaseAnswering
	}
	return true
}

// placeWager commits a point value for the current round. Once every
// player has committed, answering opens.
func placeWager(room *models.Room, actorID string, value int, now time.Time) bool {
	if room.Phase != models.PhaseWagering || room.CurrentRound == nil {
		return false
	}

	player := room.Player(actorID)
	if player == nil || player.Wager != 0 {
		return false
	}
	if !grading.ValidWager(value, player.WagersUsed) {
		return false
	}

	player.Wager = value

	openAnsweringIfAllWagered(room, now)
	return true
}

// openAnsweringIfAllWagered moves wagering → answering once every player
// holds a commitment, anchoring the countdown. The final commit usually
// completes the set, but the departure of the last uncommitted player
// completes it too.
func openAnsweringIfAllWagered(room *models.Room, now time.Time) bool {
	if room.Phase != models.PhaseWagering || room.CurrentRound == nil || !room.AllWagered() {
		return false
	}

	room.CurrentRound.StartedAt = now
	room.Phase = models.PhaseAnswering
	return true
}

// revertToPicking abandons a wagering phase and returns to picking,
// discarding the pending round and all commitments. Picker-only.
func revertToPicking(room *models.Room, actorID string) bool {
	if room.Phase != models.PhaseWagering || room.PickerID != actorID {
		return false
	}

	for _, p := range room.Players {
		p.Wager = 0
	}
	room.CurrentRound = nil
	room.Phase = models.PhasePicking
	return true
}

// submitAnswer appends the player's submission. A player id appears at
// most once per round; the second write of the same player is rejected,
// which is what makes delayed duplicate bot actions harmless.
func submitAnswer(room *models.Room, actorID, answer string, now time.Time) bool {
	if room.Phase != models.PhaseAnswering || room.CurrentRound == nil {
		return false
	}

	player := room.Player(actorID)
	if player == nil || player.HasAnswered {
		return false
	}
	if room.CurrentRound.Submission(actorID) != nil {
		return false
	}

	room.CurrentRound.Submissions = append(room.CurrentRound.Submissions, &models.Submission{
		PlayerID:       actorID,
		Answer:         answer,
		SubmittedAt:    now,
		ResponseMillis: now.Sub(room.CurrentRound.StartedAt).Milliseconds(),
	})
	player.HasAnswered = true
	return true
}

// gradeRound moves answering → reveal: grades every submission, applies
// point awards, marks the challenge used, and advances the picker to the
// first correct answerer. Calling it with a round already revealed is a
// no-op, which resolves the race between the timer on multiple clients.
func gradeRound(room *models.Room) bool {
	if room.Phase != models.PhaseAnswering || room.CurrentRound == nil {
		return false
	}

	round := room.CurrentRound
	question := room.Board[round.BoardIndex].Question

	// Grade correctness first, then award in submission order
	correct := make([]*models.Submission, 0, len(round.Submissions))
	for _, sub := range round.Submissions {
		sub.Correct = grading.IsCorrect(sub.Answer, question.Answer, question.Alternates)
		sub.Awarded = 0
		if sub.Correct {
			correct = append(correct, sub)
		}
	}

	sort.SliceStable(correct, func(i, j int) bool {
		return correct[i].SubmittedAt.Before(correct[j].SubmittedAt)
	})

	if room.Mode == models.ModeQuick {
		gradeWagers(room, round)
	} else {
		for position, sub := range correct {
			sub.Awarded = grading.AwardPoints(question.Value, position)
		}
	}

	// Apply awards and running stats
	for _, sub := range round.Submissions {
		player := room.Player(sub.PlayerID)
		if player == nil {
			continue
		}
		player.Score += sub.Awarded
		if sub.Correct {
			player.Stats.Correct++
			if player.Stats.BestResponseMillis == 0 || sub.ResponseMillis < player.Stats.BestResponseMillis {
				player.Stats.BestResponseMillis = sub.ResponseMillis
			}
		}
	}

	// The fastest correct answerer picks next; otherwise the picker keeps
	// the role
	if len(correct) > 0 {
		if winner := room.Player(correct[0].PlayerID); winner != nil {
			winner.Stats.RoundsWon++
			room.PickerID = winner.ID
		}
	}

	room.Board[round.BoardIndex].Used = true
	room.RoundsPlayed++
	room.Phase = models.PhaseReveal
	return true
}

// gradeWagers settles quick-mode commitments: a correct answer earns the
// committed value, an incorrect or missing answer loses it. Either way
// the value is spent for the rest of the match.
func gradeWagers(room *models.Room, round *models.Round) {
	for _, player := range room.Players {
		if player.Wager == 0 {
			continue
		}

		sub := round.Submission(player.ID)
		if sub != nil {
			sub.Awarded = grading.WagerDelta(player.Wager, sub.Correct)
		} else {
			// Ran out the clock: the commitment is lost
			player.Score -= player.Wager
		}
		player.WagersUsed = append(player.WagersUsed, player.Wager)
	}
}

// advanceRound moves reveal → picking, or reveal → ended when every
// challenge is used. Host-only.
func advanceRound(room *models.Room, actorID string) bool {
	if room.Phase != models.PhaseReveal || room.HostID != actorID {
		return false
	}

	room.CurrentRound = nil
	for _, p := range room.Players {
		p.Wager = 0
	}

	if len(room.UnusedIndexes()) == 0 {
		room.Phase = models.PhaseEnded
	} else {
		room.Phase = models.PhasePicking
	}
	return true
}

// endRoom force-ends the match from any phase. Host-only.
func endRoom(room *models.Room, actorID string) bool {
	if room.Phase == models.PhaseEnded || room.HostID != actorID {
		return false
	}

	room.CurrentRound = nil
	room.Phase = models.PhaseEnded
	return true
}

// playAgain returns an ended room to the lobby with a fresh board, zeroed
// scores and stats, keeping the player records. Host-only.
func playAgain(room *models.Room, actorID string, board []*models.BoardItem) bool {
	if room.Phase != models.PhaseEnded || room.HostID != actorID {
		return false
	}

	for _, p := range room.Players {
		p.Score = 0
		p.HasAnswered = false
		p.Wager = 0
		p.WagersUsed = nil
		p.Stats = models.PlayerStats{}
	}

	room.Board = board
	room.CurrentRound = nil
	room.RoundsPlayed = 0
	room.PickerID = room.HostID
	room.Phase = models.PhaseLobby
	return true
}

// removePlayer deletes a player record and repairs any role pointer that
// referenced it. Returns false if the player is not in the room.
func removePlayer(room *models.Room, playerID string) bool {
	index := -1
	for i, p := range room.Players {
		if p.ID == playerID {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	room.Players = append(room.Players[:index], room.Players[index+1:]...)
	if len(room.Players) == 0 {
		return true
	}

	// players[0] is always the host
	if room.HostID == playerID {
		room.HostID = room.Players[0].ID
	}
	if room.PickerID == playerID {
		room.PickerID = room.HostID
	}
	return true
}
