package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/quizden/quizden/internal/common/clock/mocks"
	"github.com/quizden/quizden/internal/common/random"
	uuidMocks "github.com/quizden/quizden/internal/common/uuid/mocks"
	"github.com/quizden/quizden/internal/models"
	"github.com/quizden/quizden/internal/questions"
	questionMocks "github.com/quizden/quizden/internal/questions/mocks"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
	roomMocks "github.com/quizden/quizden/internal/repositories/room/mocks"
)

type EngineServiceTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockRoomRepo  *roomMocks.MockRepository
	mockQuestions *questionMocks.MockProvider
	mockClock     *clockMocks.MockClock
	mockUUID      *uuidMocks.MockUUID
	engine        Service
	ctx           context.Context

	// Test data
	testTime   time.Time
	testCode   string
	testHostID string
}

func (s *EngineServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoomRepo = roomMocks.NewMockRepository(s.mockCtrl)
	s.mockQuestions = questionMocks.NewMockProvider(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	s.testCode = "WXYZ"
	s.testHostID = "host-id"

	engine, err := New(&Config{
		MaxPlayers:    3,
		CodeLength:    4,
		RoundDuration: 30 * time.Second,
		RoomRepo:      s.mockRoomRepo,
		Questions:     s.mockQuestions,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Random:        random.New(&random.Config{Seed: 1}),
	})
	s.Require().NoError(err)
	s.engine = engine
}

func (s *EngineServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestEngineServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EngineServiceTestSuite))
}

func (s *EngineServiceTestSuite) expectedRoom(phase models.Phase) *models.Room {
	return &models.Room{
		Code:     s.testCode,
		Phase:    phase,
		Mode:     models.ModeClassic,
		HostID:   s.testHostID,
		PickerID: s.testHostID,
		Players: []*models.Player{
			{ID: s.testHostID, Name: "Hana", SessionToken: "tok-host"},
			{ID: "p2", Name: "Ben", SessionToken: "tok-p2"},
		},
		Board: []*models.BoardItem{
			{Question: models.Question{Prompt: "q1", Answer: "Jupiter", Value: 100}},
			{Question: models.Question{Prompt: "q2", Answer: "Oxygen", Value: 200}},
		},
		RoundSeconds: 30,
		CreatedAt:    s.testTime,
		UpdatedAt:    s.testTime,
	}
}

func (s *EngineServiceTestSuite) expectGetRoom(room *models.Room) {
	s.mockRoomRepo.EXPECT().
		GetRoom(s.ctx, &roomRepo.GetRoomInput{Code: s.testCode}).
		Return(room, nil)
}

func (s *EngineServiceTestSuite) expectSave() {
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockRoomRepo.EXPECT().
		SaveRoom(s.ctx, gomock.Any()).
		Return(nil)
}

func (s *EngineServiceTestSuite) testBank() *questions.QuestionsOutput {
	return &questions.QuestionsOutput{
		Questions: []models.Question{
			{Prompt: "q1", Answer: "Jupiter", Value: 100},
			{Prompt: "q2", Answer: "Oxygen", Value: 200},
		},
	}
}

func (s *EngineServiceTestSuite) TestNewValidation() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{})
	s.Error(err)

	// Zero limits take defaults
	engine, err := New(&Config{
		RoomRepo:      s.mockRoomRepo,
		Questions:     s.mockQuestions,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Random:        random.New(&random.Config{Seed: 1}),
	})
	s.NoError(err)
	s.NotNil(engine)
}

func (s *EngineServiceTestSuite) TestCreateRoom() {
	s.mockQuestions.EXPECT().
		Questions(s.ctx, &questions.QuestionsInput{Category: "general"}).
		Return(s.testBank(), nil)
	s.mockUUID.EXPECT().NewUUID().Return("tok-host")
	s.mockClock.EXPECT().Now().Return(s.testTime)

	var created *models.Room
	s.mockRoomRepo.EXPECT().
		CreateRoom(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *roomRepo.CreateRoomInput) error {
			created = input.Room
			return nil
		})

	output, err := s.engine.CreateRoom(s.ctx, &CreateRoomInput{
		HostID:   s.testHostID,
		HostName: "Hana",
		Category: "general",
	})
	s.Require().NoError(err)
	s.Require().NotNil(output)

	s.Equal("tok-host", output.SessionToken)
	s.Require().NotNil(created)
	s.Len(created.Code, 4)
	s.Equal(models.PhaseLobby, created.Phase)
	s.Equal(models.ModeClassic, created.Mode, "mode defaults to classic")
	s.Equal(s.testHostID, created.HostID)
	s.Equal(s.testHostID, created.PickerID)
	s.Require().Len(created.Players, 1)
	s.Equal("tok-host", created.Players[0].SessionToken)
	s.Len(created.Board, 2)
	s.Equal(30, created.RoundSeconds)
}

func (s *EngineServiceTestSuite) TestCreateRoomRetriesOnCodeCollision() {
	s.mockQuestions.EXPECT().
		Questions(s.ctx, gomock.Any()).
		Return(s.testBank(), nil)
	s.mockUUID.EXPECT().NewUUID().Return("tok-host")
	s.mockClock.EXPECT().Now().Return(s.testTime)

	first := s.mockRoomRepo.EXPECT().
		CreateRoom(s.ctx, gomock.Any()).
		Return(roomRepo.ErrCodeTaken)
	s.mockRoomRepo.EXPECT().
		CreateRoom(s.ctx, gomock.Any()).
		Return(nil).
		After(first)

	output, err := s.engine.CreateRoom(s.ctx, &CreateRoomInput{
		HostID:   s.testHostID,
		HostName: "Hana",
	})
	s.Require().NoError(err)
	s.NotNil(output.Room)
}

func (s *EngineServiceTestSuite) TestCreateRoomEmptyBank() {
	s.mockQuestions.EXPECT().
		Questions(s.ctx, gomock.Any()).
		Return(&questions.QuestionsOutput{}, nil)

	_, err := s.engine.CreateRoom(s.ctx, &CreateRoomInput{
		HostID: s.testHostID,
	})
	s.Require().ErrorIs(err, ErrEmptyBoard)
}

func (s *EngineServiceTestSuite) TestJoinRoom() {
	room := s.expectedRoom(models.PhaseLobby)
	room.Players = room.Players[:1]
	s.expectGetRoom(room)
	s.mockUUID.EXPECT().NewUUID().Return("tok-new")
	s.expectSave()

	output, err := s.engine.JoinRoom(s.ctx, &JoinRoomInput{
		Code:       s.testCode,
		PlayerID:   "p2",
		PlayerName: "Ben",
	})
	s.Require().NoError(err)
	s.Equal("tok-new", output.SessionToken)
	s.Require().Len(output.Room.Players, 2)
	s.Equal("Ben", output.Room.Players[1].Name)
}

func (s *EngineServiceTestSuite) TestJoinRoomResumesExistingSeat() {
	// No save: a resume is a read
	s.expectGetRoom(s.expectedRoom(models.PhaseAnswering))

	output, err := s.engine.JoinRoom(s.ctx, &JoinRoomInput{
		Code:     s.testCode,
		PlayerID: "p2",
	})
	s.Require().NoError(err)
	s.Equal("tok-p2", output.SessionToken, "existing token is reissued")
	s.Len(output.Room.Players, 2)
}

func (s *EngineServiceTestSuite) TestJoinRoomErrors() {
	s.Run("not found", func() {
		s.mockRoomRepo.EXPECT().
			GetRoom(s.ctx, gomock.Any()).
			Return(nil, roomRepo.ErrRoomNotFound)

		_, err := s.engine.JoinRoom(s.ctx, &JoinRoomInput{Code: "NOPE", PlayerID: "p9"})
		s.Require().ErrorIs(err, ErrRoomNotFound)
	})

	s.Run("in progress", func() {
		s.expectGetRoom(s.expectedRoom(models.PhaseAnswering))

		_, err := s.engine.JoinRoom(s.ctx, &JoinRoomInput{Code: s.testCode, PlayerID: "p9"})
		s.Require().ErrorIs(err, ErrGameInProgress)
	})

	s.Run("full", func() {
		room := s.expectedRoom(models.PhaseLobby)
		room.Players = append(room.Players, &models.Player{ID: "p3"})
		s.expectGetRoom(room)

		_, err := s.engine.JoinRoom(s.ctx, &JoinRoomInput{Code: s.testCode, PlayerID: "p9"})
		s.Require().ErrorIs(err, ErrRoomFull)
	})
}

func (s *EngineServiceTestSuite) TestLeaveRoomDeletesEmptyRoom() {
	room := s.expectedRoom(models.PhaseLobby)
	room.Players = room.Players[:1]
	s.expectGetRoom(room)
	s.mockRoomRepo.EXPECT().
		DeleteRoom(s.ctx, &roomRepo.DeleteRoomInput{Code: s.testCode}).
		Return(nil)

	output, err := s.engine.LeaveRoom(s.ctx, &LeaveRoomInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.True(output.RoomDeleted)
}

func (s *EngineServiceTestSuite) TestLeaveRoomCompletesRound() {
	// p2 already answered; the host leaving makes the round complete
	room := s.expectedRoom(models.PhaseAnswering)
	room.CurrentRound = &models.Round{
		BoardIndex: 0,
		Number:     1,
		StartedAt:  s.testTime,
		Submissions: []*models.Submission{
			{PlayerID: "p2", Answer: "jupiter", SubmittedAt: s.testTime},
		},
	}
	room.Players[1].HasAnswered = true
	s.expectGetRoom(room)
	s.expectSave()

	output, err := s.engine.LeaveRoom(s.ctx, &LeaveRoomInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseReveal, output.Room.Phase)
	s.Equal(100, output.Room.Player("p2").Score)
}

func (s *EngineServiceTestSuite) TestLeaveRoomOpensAnsweringWhenLastUnwageredLeaves() {
	// Host and p2 committed; p3 leaving completes the wager set, so the
	// same write opens answering instead of stalling the phase
	room := s.expectedRoom(models.PhaseWagering)
	room.Mode = models.ModeQuick
	room.CurrentRound = &models.Round{BoardIndex: 0, Number: 1}
	room.Players = append(room.Players, &models.Player{ID: "p3", Name: "Cleo"})
	room.Players[0].Wager = 5
	room.Players[1].Wager = 3
	s.expectGetRoom(room)
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectSave()

	output, err := s.engine.LeaveRoom(s.ctx, &LeaveRoomInput{
		Code:     s.testCode,
		PlayerID: "p3",
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseAnswering, output.Room.Phase)
	s.True(output.Room.CurrentRound.StartedAt.Equal(s.testTime))
}

func (s *EngineServiceTestSuite) TestLeaveRoomUnknownPlayer() {
	s.expectGetRoom(s.expectedRoom(models.PhaseLobby))

	output, err := s.engine.LeaveRoom(s.ctx, &LeaveRoomInput{
		Code:     s.testCode,
		PlayerID: "ghost",
	})
	s.Require().NoError(err)
	s.False(output.Applied)
}

func (s *EngineServiceTestSuite) TestAddBot() {
	s.expectGetRoom(s.expectedRoom(models.PhaseLobby))
	s.mockUUID.EXPECT().NewUUID().Return("bot-id")
	s.mockUUID.EXPECT().NewUUID().Return("tok-bot")
	s.expectSave()

	output, err := s.engine.AddBot(s.ctx, &AddBotInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
		BotName:  "Robo",
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal("bot-id", output.BotID)
	s.Require().Len(output.Room.Players, 3)
	s.True(output.Room.Players[2].IsBot)
}

func (s *EngineServiceTestSuite) TestAddBotRejectedWithoutSave() {
	s.Run("non-host", func() {
		s.expectGetRoom(s.expectedRoom(models.PhaseLobby))

		output, err := s.engine.AddBot(s.ctx, &AddBotInput{
			Code:     s.testCode,
			PlayerID: "p2",
			BotName:  "Robo",
		})
		s.Require().NoError(err)
		s.False(output.Applied)
	})

	s.Run("full room", func() {
		room := s.expectedRoom(models.PhaseLobby)
		room.Players = append(room.Players, &models.Player{ID: "p3"})
		s.expectGetRoom(room)

		output, err := s.engine.AddBot(s.ctx, &AddBotInput{
			Code:     s.testCode,
			PlayerID: s.testHostID,
			BotName:  "Robo",
		})
		s.Require().NoError(err)
		s.False(output.Applied)
	})
}

func (s *EngineServiceTestSuite) TestStartGame() {
	s.expectGetRoom(s.expectedRoom(models.PhaseLobby))
	s.expectSave()

	output, err := s.engine.StartGame(s.ctx, &StartGameInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhasePicking, output.Room.Phase)
}

func (s *EngineServiceTestSuite) TestStartGameNonHostNoSave() {
	s.expectGetRoom(s.expectedRoom(models.PhaseLobby))

	output, err := s.engine.StartGame(s.ctx, &StartGameInput{
		Code:     s.testCode,
		PlayerID: "p2",
	})
	s.Require().NoError(err)
	s.False(output.Applied)
	s.Nil(output.Room)
}

func (s *EngineServiceTestSuite) TestPickQuestion() {
	s.expectGetRoom(s.expectedRoom(models.PhasePicking))
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.expectSave()

	output, err := s.engine.PickQuestion(s.ctx, &PickQuestionInput{
		Code:       s.testCode,
		PlayerID:   s.testHostID,
		BoardIndex: 1,
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseAnswering, output.Room.Phase)
	s.Equal(1, output.Room.CurrentRound.BoardIndex)
}

func (s *EngineServiceTestSuite) TestSubmitAnswerGradesWhenAllAnswered() {
	room := s.expectedRoom(models.PhaseAnswering)
	room.CurrentRound = &models.Round{
		BoardIndex: 0,
		Number:     1,
		StartedAt:  s.testTime,
		Submissions: []*models.Submission{
			{PlayerID: s.testHostID, Answer: "jupiter", SubmittedAt: s.testTime.Add(time.Second)},
		},
	}
	room.Players[0].HasAnswered = true
	s.expectGetRoom(room)
	s.mockClock.EXPECT().Now().Return(s.testTime.Add(3 * time.Second))
	s.expectSave()

	output, err := s.engine.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Code:     s.testCode,
		PlayerID: "p2",
		Answer:   "jupiter",
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseReveal, output.Room.Phase, "last answer grades without waiting for the timer")
	s.Equal(100, output.Room.Player(s.testHostID).Score)
	s.Equal(75, output.Room.Player("p2").Score)
}

func (s *EngineServiceTestSuite) TestSubmitAnswerNonParticipantNoSave() {
	room := s.expectedRoom(models.PhaseAnswering)
	room.CurrentRound = &models.Round{BoardIndex: 0, Number: 1, StartedAt: s.testTime}
	s.expectGetRoom(room)
	s.mockClock.EXPECT().Now().Return(s.testTime)

	output, err := s.engine.SubmitAnswer(s.ctx, &SubmitAnswerInput{
		Code:     s.testCode,
		PlayerID: "ghost",
		Answer:   "jupiter",
	})
	s.Require().NoError(err)
	s.False(output.Applied)
}

func (s *EngineServiceTestSuite) TestFinishRound() {
	room := s.expectedRoom(models.PhaseAnswering)
	room.CurrentRound = &models.Round{BoardIndex: 0, Number: 1, StartedAt: s.testTime}
	s.expectGetRoom(room)
	s.expectSave()

	output, err := s.engine.FinishRound(s.ctx, &FinishRoundInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseReveal, output.Room.Phase)
}

func (s *EngineServiceTestSuite) TestFinishRoundRaceLoserIsNoOp() {
	// The round already revealed: a second terminal write applies nothing
	room := s.expectedRoom(models.PhaseReveal)
	room.CurrentRound = &models.Round{BoardIndex: 0, Number: 1, StartedAt: s.testTime}
	s.expectGetRoom(room)

	output, err := s.engine.FinishRound(s.ctx, &FinishRoundInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().NoError(err)
	s.False(output.Applied)
}

func (s *EngineServiceTestSuite) TestFinishRoundNonHostNoSave() {
	room := s.expectedRoom(models.PhaseAnswering)
	room.CurrentRound = &models.Round{BoardIndex: 0, Number: 1, StartedAt: s.testTime}
	s.expectGetRoom(room)

	output, err := s.engine.FinishRound(s.ctx, &FinishRoundInput{
		Code:     s.testCode,
		PlayerID: "p2",
	})
	s.Require().NoError(err)
	s.False(output.Applied)
}

func (s *EngineServiceTestSuite) TestPlayAgain() {
	room := s.expectedRoom(models.PhaseEnded)
	room.Players[1].Score = 450
	s.expectGetRoom(room)
	s.mockQuestions.EXPECT().
		Questions(s.ctx, &questions.QuestionsInput{Category: "movies"}).
		Return(s.testBank(), nil)
	s.expectSave()

	output, err := s.engine.PlayAgain(s.ctx, &PlayAgainInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
		Category: "movies",
	})
	s.Require().NoError(err)
	s.True(output.Applied)
	s.Equal(models.PhaseLobby, output.Room.Phase)
	s.Zero(output.Room.Player("p2").Score)
}

func (s *EngineServiceTestSuite) TestStoreFailureSurfacesRoomCode() {
	s.mockRoomRepo.EXPECT().
		GetRoom(s.ctx, gomock.Any()).
		Return(nil, errors.New("connection refused"))

	_, err := s.engine.StartGame(s.ctx, &StartGameInput{
		Code:     s.testCode,
		PlayerID: s.testHostID,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), s.testCode)
}
