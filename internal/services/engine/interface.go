package engine

import "context"

// Service defines the interface for room operations. Every operation
// follows the same shape: read the latest room document, compute the next
// document locally, and write it back whole. Guarded transitions attempted
// by a non-authorized role or against an unexpected phase are silent
// no-ops reported through the output's Applied flag, never errors.
type Service interface {
	// CreateRoom creates a new room with the caller as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom adds a player record to a lobby-phase room
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes a player record, deleting the room if it was the last
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// AddBot appends a simulated player to a lobby-phase room
	AddBot(ctx context.Context, input *AddBotInput) (*AddBotOutput, error)

	// StartGame moves lobby → picking
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// PickQuestion moves picking → answering (classic) or picking → wagering (quick)
	PickQuestion(ctx context.Context, input *PickQuestionInput) (*PickQuestionOutput, error)

	// PlaceWager commits a point value for the current round (quick mode)
	PlaceWager(ctx context.Context, input *PlaceWagerInput) (*PlaceWagerOutput, error)

	// RevertToPicking moves wagering back to picking, discarding commitments
	RevertToPicking(ctx context.Context, input *RevertToPickingInput) (*RevertToPickingOutput, error)

	// SubmitAnswer appends the player's submission for the current round
	SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error)

	// FinishRound moves answering → reveal, grading every submission
	FinishRound(ctx context.Context, input *FinishRoundInput) (*FinishRoundOutput, error)

	// AdvanceRound moves reveal → picking, or reveal → ended when the board
	// is exhausted
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// EndRoom force-ends the match from any phase
	EndRoom(ctx context.Context, input *EndRoomInput) (*EndRoomOutput, error)

	// PlayAgain rebuilds the board and returns an ended room to the lobby
	PlayAgain(ctx context.Context, input *PlayAgainInput) (*PlayAgainOutput, error)
}
