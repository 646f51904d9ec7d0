package bots

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizden/quizden/internal/common/random"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
	"github.com/quizden/quizden/internal/services/engine"
)

// Actions is the slice of the room engine bots exercise; a bot performs
// the same class of write a human client would, nothing more
type Actions interface {
	PickQuestion(ctx context.Context, input *engine.PickQuestionInput) (*engine.PickQuestionOutput, error)
	PlaceWager(ctx context.Context, input *engine.PlaceWagerInput) (*engine.PlaceWagerOutput, error)
	SubmitAnswer(ctx context.Context, input *engine.SubmitAnswerInput) (*engine.SubmitAnswerOutput, error)
	AdvanceRound(ctx context.Context, input *engine.AdvanceRoundInput) (*engine.AdvanceRoundOutput, error)
}

// Config holds configuration for the bot driver
type Config struct {
	// Engine issues the same writes a human client would
	Engine Actions

	// RoomRepo re-fetches the document before each bot action so a
	// delayed write can abort if the round already moved on
	RoomRepo roomRepo.Repository

	// Random draws every delay independently to avoid thundering-herd
	// writes
	Random *random.Source

	// Delay bounds; zero values take the defaults below
	PickDelayMin    time.Duration
	PickDelayMax    time.Duration
	AnswerDelayMin  time.Duration
	AnswerDelayMax  time.Duration
	WagerDelayMin   time.Duration
	WagerDelayMax   time.Duration
	AdvanceDelay    time.Duration

	// CorrectChance is the probability a bot answers correctly
	CorrectChance float64

	Log zerolog.Logger
}

// Defaults for bot behavior
const (
	defaultPickDelayMin   = 1 * time.Second
	defaultPickDelayMax   = 3 * time.Second
	defaultAnswerDelayMin = 2 * time.Second
	defaultAnswerDelayMax = 10 * time.Second
	defaultWagerDelayMin  = 1 * time.Second
	defaultWagerDelayMax  = 4 * time.Second
	defaultAdvanceDelay   = 3 * time.Second
	defaultCorrectChance  = 0.7
)

// fallbackWrongAnswer is used when the board offers no other answer text
// to misquote
const fallbackWrongAnswer = "no idea"
