package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quizden/quizden/internal/models"
	"github.com/quizden/quizden/internal/questions"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
)

// Define errors
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrGameInProgress = errors.New("game already in progress")
	ErrRoomFull       = errors.New("room is at maximum capacity")
	ErrEmptyBoard     = errors.New("question bank returned no challenges")
)

// createRetries bounds the attempts to claim a fresh room code when a
// generated code collides with a live room.
const createRetries = 5

// service implements the Service interface
type service struct {
	config *Config
}

// New creates a new room engine service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.RoomRepo == nil {
		return nil, errors.New("room repository cannot be nil")
	}
	if cfg.Questions == nil {
		return nil, errors.New("questions provider cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}
	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.MaxPlayers == 0 {
		cfg.MaxPlayers = 8
	}
	if cfg.CodeLength == 0 {
		cfg.CodeLength = 4
	}
	if cfg.RoundDuration == 0 {
		cfg.RoundDuration = 30 * time.Second
	}

	return &service{
		config: cfg,
	}, nil
}

// CreateRoom creates a new room document with the caller as host
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.HostID == "" {
		return nil, errors.New("input and host ID cannot be empty")
	}

	mode := input.Mode
	if mode == "" {
		mode = models.ModeClassic
	}

	board, err := s.fetchBoard(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	sessionToken := s.config.UUIDGenerator.NewUUID()
	now := s.config.Clock.Now()

	room := &models.Room{
		Phase:  models.PhaseLobby,
		Mode:   mode,
		HostID: input.HostID,
		Players: []*models.Player{
			{
				ID:           input.HostID,
				Name:         input.HostName,
				SessionToken: sessionToken,
			},
		},
		Board:        board,
		PickerID:     input.HostID,
		RoundSeconds: int(s.config.RoundDuration.Seconds()),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Retry on code collision; a live room keeps its code until deleted
	for attempt := 0; attempt < createRetries; attempt++ {
		room.Code = s.config.Random.RoomCode(s.config.CodeLength)

		err = s.config.RoomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{Room: room})
		if err == nil {
			return &CreateRoomOutput{
				Room:         room,
				SessionToken: sessionToken,
			}, nil
		}
		if !errors.Is(err, roomRepo.ErrCodeTaken) {
			return nil, s.storeError(room.Code, err)
		}
	}

	return nil, fmt.Errorf("failed to claim a room code after %d attempts", createRetries)
}

// JoinRoom adds a player record to a lobby-phase room. Joining a missing
// room or one past the lobby is a surfaced error, not a silent no-op, so
// the caller can clear its persisted code.
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	// Already seated: resume rather than duplicate the record
	if existing := room.Player(input.PlayerID); existing != nil {
		return &JoinRoomOutput{
			Room:         room,
			SessionToken: existing.SessionToken,
		}, nil
	}

	if room.Phase != models.PhaseLobby {
		return nil, ErrGameInProgress
	}
	if len(room.Players) >= s.config.MaxPlayers {
		return nil, ErrRoomFull
	}

	sessionToken := s.config.UUIDGenerator.NewUUID()
	room.Players = append(room.Players, &models.Player{
		ID:           input.PlayerID,
		Name:         input.PlayerName,
		SessionToken: sessionToken,
	})

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &JoinRoomOutput{
		Room:         room,
		SessionToken: sessionToken,
	}, nil
}

// LeaveRoom removes a player record. Removing the last record deletes the
// room document; otherwise any role pointer referencing the departing
// player is reassigned.
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !removePlayer(room, input.PlayerID) {
		return &LeaveRoomOutput{Applied: false}, nil
	}

	if len(room.Players) == 0 {
		if err := s.config.RoomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{Code: input.Code}); err != nil {
			return nil, s.storeError(input.Code, err)
		}
		return &LeaveRoomOutput{Applied: true, RoomDeleted: true}, nil
	}

	// The departure may have been the last unanswered or uncommitted player
	switch {
	case room.Phase == models.PhaseAnswering && room.AllAnswered():
		gradeRound(room)
	case room.Phase == models.PhaseWagering:
		openAnsweringIfAllWagered(room, s.config.Clock.Now())
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &LeaveRoomOutput{Applied: true, Room: room}, nil
}

// AddBot appends a simulated player record. Host-only, lobby-only.
func (s *service) AddBot(ctx context.Context, input *AddBotInput) (*AddBotOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if room.Phase != models.PhaseLobby || room.HostID != input.PlayerID {
		return &AddBotOutput{Applied: false}, nil
	}
	if len(room.Players) >= s.config.MaxPlayers {
		return &AddBotOutput{Applied: false}, nil
	}

	botID := s.config.UUIDGenerator.NewUUID()
	room.Players = append(room.Players, &models.Player{
		ID:           botID,
		Name:         input.BotName,
		SessionToken: s.config.UUIDGenerator.NewUUID(),
		IsBot:        true,
	})

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &AddBotOutput{Applied: true, Room: room, BotID: botID}, nil
}

// StartGame moves lobby → picking
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !startGame(room, input.PlayerID) {
		return &StartGameOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &StartGameOutput{Applied: true, Room: room}, nil
}

// PickQuestion selects an unused challenge and opens the round
func (s *service) PickQuestion(ctx context.Context, input *PickQuestionInput) (*PickQuestionOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !pickQuestion(room, input.PlayerID, input.BoardIndex, s.config.Clock.Now()) {
		return &PickQuestionOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &PickQuestionOutput{Applied: true, Room: room}, nil
}

// PlaceWager commits a point value for the current round
func (s *service) PlaceWager(ctx context.Context, input *PlaceWagerInput) (*PlaceWagerOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !placeWager(room, input.PlayerID, input.Value, s.config.Clock.Now()) {
		return &PlaceWagerOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &PlaceWagerOutput{Applied: true, Room: room}, nil
}

// RevertToPicking abandons wagering and returns to picking
func (s *service) RevertToPicking(ctx context.Context, input *RevertToPickingInput) (*RevertToPickingOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !revertToPicking(room, input.PlayerID) {
		return &RevertToPickingOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &RevertToPickingOutput{Applied: true, Room: room}, nil
}

// SubmitAnswer appends the player's submission. When the last active
// player answers, the round is graded in the same write rather than
// waiting out the timer.
func (s *service) SubmitAnswer(ctx context.Context, input *SubmitAnswerInput) (*SubmitAnswerOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !submitAnswer(room, input.PlayerID, input.Answer, s.config.Clock.Now()) {
		return &SubmitAnswerOutput{Applied: false}, nil
	}

	if room.AllAnswered() {
		gradeRound(room)
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &SubmitAnswerOutput{Applied: true, Room: room}, nil
}

// FinishRound moves answering → reveal. Host-only: the host client is the
// one authorized to drive the timer's terminal action. More than one
// client can race to this write; a round already revealed is a no-op.
func (s *service) FinishRound(ctx context.Context, input *FinishRoundInput) (*FinishRoundOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if room.HostID != input.PlayerID || !gradeRound(room) {
		return &FinishRoundOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &FinishRoundOutput{Applied: true, Room: room}, nil
}

// AdvanceRound moves reveal → picking, or reveal → ended on exhaustion
func (s *service) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !advanceRound(room, input.PlayerID) {
		return &AdvanceRoundOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &AdvanceRoundOutput{Applied: true, Room: room}, nil
}

// EndRoom force-ends the match from any phase
func (s *service) EndRoom(ctx context.Context, input *EndRoomInput) (*EndRoomOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if !endRoom(room, input.PlayerID) {
		return &EndRoomOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &EndRoomOutput{Applied: true, Room: room}, nil
}

// PlayAgain rebuilds the board and returns an ended room to the lobby
func (s *service) PlayAgain(ctx context.Context, input *PlayAgainInput) (*PlayAgainOutput, error) {
	if input == nil || input.Code == "" || input.PlayerID == "" {
		return nil, errors.New("input, code and player ID cannot be empty")
	}

	room, err := s.getRoom(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	// Fetch the fresh board before checking the guard so the transition
	// itself stays pure
	board, err := s.fetchBoard(ctx, input.Category)
	if err != nil {
		return nil, err
	}

	if !playAgain(room, input.PlayerID, board) {
		return &PlayAgainOutput{Applied: false}, nil
	}

	if err := s.save(ctx, room); err != nil {
		return nil, err
	}

	return &PlayAgainOutput{Applied: true, Room: room}, nil
}

// getRoom fetches the latest document, mapping the repository's not-found
// to the engine's
func (s *service) getRoom(ctx context.Context, code string) (*models.Room, error) {
	room, err := s.config.RoomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, s.storeError(code, err)
	}
	return room, nil
}

// save stamps the document and writes it back whole
func (s *service) save(ctx context.Context, room *models.Room) error {
	room.UpdatedAt = s.config.Clock.Now()

	if err := s.config.RoomRepo.SaveRoom(ctx, &roomRepo.SaveRoomInput{Room: room}); err != nil {
		return s.storeError(room.Code, err)
	}
	return nil
}

// storeError folds every store failure into a single user-visible error
// per room; callers surface the string and may manually retry
func (s *service) storeError(code string, err error) error {
	return fmt.Errorf("room %s: %w", code, err)
}

// fetchBoard pulls an ordered challenge list from the collaborator
func (s *service) fetchBoard(ctx context.Context, category string) ([]*models.BoardItem, error) {
	out, err := s.config.Questions.Questions(ctx, &questions.QuestionsInput{Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch question bank: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, ErrEmptyBoard
	}

	board := make([]*models.BoardItem, 0, len(out.Questions))
	for _, q := range out.Questions {
		board = append(board, &models.BoardItem{Question: q})
	}
	return board, nil
}
