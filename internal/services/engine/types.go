package engine

import (
	"time"

	"github.com/quizden/quizden/internal/common/clock"
	"github.com/quizden/quizden/internal/common/random"
	"github.com/quizden/quizden/internal/common/uuid"
	"github.com/quizden/quizden/internal/models"
	"github.com/quizden/quizden/internal/questions"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
)

// Config holds configuration for the room engine
type Config struct {
	// Maximum number of player records per room
	MaxPlayers int

	// Length of generated room codes
	CodeLength int

	// Fixed duration of the answering phase
	RoundDuration time.Duration

	// Repository dependencies
	RoomRepo roomRepo.Repository

	// Collaborator supplying the challenge board
	Questions questions.Provider

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Random        *random.Source
}

// CreateRoomInput contains parameters for creating a new room
type CreateRoomInput struct {
	// HostID is the identity-provider value of the creating player
	HostID string

	// HostName is the display name of the creating player
	HostName string

	// Mode selects the scoring variant; defaults to classic
	Mode models.Mode

	// Category filters the question bank; empty means any
	Category string
}

// CreateRoomOutput contains the result of creating a room
type CreateRoomOutput struct {
	// Room is the inserted document
	Room *models.Room

	// SessionToken is the host's reconnection token
	SessionToken string
}

// JoinRoomInput contains parameters for joining a room
type JoinRoomInput struct {
	// Code is the room to join
	Code string

	// PlayerID is the identity-provider value of the joining player
	PlayerID string

	// PlayerName is the display name of the joining player
	PlayerName string
}

// JoinRoomOutput contains the result of joining a room
type JoinRoomOutput struct {
	Room *models.Room

	// SessionToken is the joining player's reconnection token
	SessionToken string
}

// LeaveRoomInput contains parameters for leaving a room
type LeaveRoomInput struct {
	Code     string
	PlayerID string
}

// LeaveRoomOutput contains the result of leaving a room
type LeaveRoomOutput struct {
	// Applied indicates the player record was removed
	Applied bool

	// RoomDeleted indicates the last record was removed and the document
	// deleted with it
	RoomDeleted bool

	Room *models.Room
}

// AddBotInput contains parameters for adding a simulated player
type AddBotInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string

	// BotName is the display name for the bot
	BotName string
}

// AddBotOutput contains the result of adding a bot
type AddBotOutput struct {
	Applied bool
	Room    *models.Room

	// BotID is the generated id of the new bot record
	BotID string
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string
}

// StartGameOutput contains the result of starting a game
type StartGameOutput struct {
	Applied bool
	Room    *models.Room
}

// PickQuestionInput contains parameters for picking a question
type PickQuestionInput struct {
	Code string

	// PlayerID is the acting player; must be the current picker
	PlayerID string

	// BoardIndex is the chosen challenge; must be unused
	BoardIndex int
}

// PickQuestionOutput contains the result of picking a question
type PickQuestionOutput struct {
	Applied bool
	Room    *models.Room
}

// PlaceWagerInput contains parameters for committing a wager
type PlaceWagerInput struct {
	Code     string
	PlayerID string

	// Value is the point value to commit; each value is usable once per
	// player across the match
	Value int
}

// PlaceWagerOutput contains the result of committing a wager
type PlaceWagerOutput struct {
	Applied bool
	Room    *models.Room
}

// RevertToPickingInput contains parameters for reverting to picking
type RevertToPickingInput struct {
	Code string

	// PlayerID is the acting player; must be the current picker
	PlayerID string
}

// RevertToPickingOutput contains the result of reverting to picking
type RevertToPickingOutput struct {
	Applied bool
	Room    *models.Room
}

// SubmitAnswerInput contains parameters for submitting an answer
type SubmitAnswerInput struct {
	Code     string
	PlayerID string

	// Answer is the raw submitted text
	Answer string
}

// SubmitAnswerOutput contains the result of submitting an answer
type SubmitAnswerOutput struct {
	Applied bool
	Room    *models.Room
}

// FinishRoundInput contains parameters for finishing a round
type FinishRoundInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string
}

// FinishRoundOutput contains the result of finishing a round
type FinishRoundOutput struct {
	Applied bool
	Room    *models.Room
}

// AdvanceRoundInput contains parameters for advancing past a reveal
type AdvanceRoundInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string
}

// AdvanceRoundOutput contains the result of advancing past a reveal
type AdvanceRoundOutput struct {
	Applied bool
	Room    *models.Room
}

// EndRoomInput contains parameters for force-ending a match
type EndRoomInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string
}

// EndRoomOutput contains the result of force-ending a match
type EndRoomOutput struct {
	Applied bool
	Room    *models.Room
}

// PlayAgainInput contains parameters for restarting an ended match
type PlayAgainInput struct {
	Code string

	// PlayerID is the acting player; must be the host
	PlayerID string

	// Category filters the rebuilt board; empty keeps the default bank
	Category string
}

// PlayAgainOutput contains the result of restarting a match
type PlayAgainOutput struct {
	Applied bool
	Room    *models.Room
}
