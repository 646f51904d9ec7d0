// Package bots drives simulated players on the host client's behalf. A
// bot is a passive observer of the same document feed as every human
// client, distinguished only by the is_bot flag on its player record; it
// holds no private channel or elevated privilege.
package bots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quizden/quizden/internal/grading"
	"github.com/quizden/quizden/internal/models"
	roomRepo "github.com/quizden/quizden/internal/repositories/room"
	"github.com/quizden/quizden/internal/services/engine"
)

// Driver schedules cancellable delayed bot actions keyed by room, phase
// and round identity. When the feed shows the phase or round has already
// advanced, pending tasks for the stale key are cancelled rather than
// left to leak across rounds.
type Driver struct {
	config *Config

	mu      sync.Mutex
	pending map[string]*time.Timer
	done    map[string]bool
}

// task pairs a randomized delay with the action to run when it elapses
type task struct {
	delay time.Duration
	run   func(ctx context.Context)
}

// NewDriver creates a new bot driver
func NewDriver(cfg *Config) (*Driver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Engine == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if cfg.RoomRepo == nil {
		return nil, errors.New("room repository cannot be nil")
	}
	if cfg.Random == nil {
		return nil, errors.New("random source cannot be nil")
	}

	if cfg.PickDelayMin == 0 {
		cfg.PickDelayMin = defaultPickDelayMin
	}
	if cfg.PickDelayMax == 0 {
		cfg.PickDelayMax = defaultPickDelayMax
	}
	if cfg.AnswerDelayMin == 0 {
		cfg.AnswerDelayMin = defaultAnswerDelayMin
	}
	if cfg.AnswerDelayMax == 0 {
		cfg.AnswerDelayMax = defaultAnswerDelayMax
	}
	if cfg.WagerDelayMin == 0 {
		cfg.WagerDelayMin = defaultWagerDelayMin
	}
	if cfg.WagerDelayMax == 0 {
		cfg.WagerDelayMax = defaultWagerDelayMax
	}
	if cfg.AdvanceDelay == 0 {
		cfg.AdvanceDelay = defaultAdvanceDelay
	}
	if cfg.CorrectChance == 0 {
		cfg.CorrectChance = defaultCorrectChance
	}

	return &Driver{
		config:  cfg,
		pending: make(map[string]*time.Timer),
		done:    make(map[string]bool),
	}, nil
}

// Watch consumes room snapshots until the context is cancelled or the
// updates channel closes. Run it on the host client only, so no bot ever
// writes concurrently with itself from two places.
func (d *Driver) Watch(ctx context.Context, updates <-chan *models.Room) {
	defer d.cancelAll()

	for {
		select {
		case room, ok := <-updates:
			if !ok {
				return
			}
			d.Observe(ctx, room)
		case <-ctx.Done():
			return
		}
	}
}

// Observe reconciles the scheduled bot actions against one snapshot:
// actions the new phase/round no longer wants are cancelled, and missing
// ones are armed with fresh independent delays.
func (d *Driver) Observe(ctx context.Context, room *models.Room) {
	desired := d.desiredTasks(room)

	d.mu.Lock()
	defer d.mu.Unlock()

	// A room back in the lobby or ended sits between matches. Play again
	// resets the round numbering, so the finished match's done keys must go
	// or the replayed match's early rounds would be treated as acted on.
	if room != nil && (room.Phase == models.PhaseLobby || room.Phase == models.PhaseEnded) {
		d.forgetRoomLocked(room.Code)
	}

	for key, timer := range d.pending {
		if _, ok := desired[key]; !ok {
			timer.Stop()
			delete(d.pending, key)
		}
	}

	for key, t := range desired {
		if _, ok := d.pending[key]; ok {
			continue
		}
		if d.done[key] {
			continue
		}

		key := key
		run := t.run
		d.pending[key] = time.AfterFunc(t.delay, func() {
			d.mu.Lock()
			delete(d.pending, key)
			d.done[key] = true
			d.mu.Unlock()

			run(ctx)
		})
	}
}

// desiredTasks derives the full set of bot actions this snapshot calls for
func (d *Driver) desiredTasks(room *models.Room) map[string]task {
	tasks := make(map[string]task)
	if room == nil || room.Code == "" {
		return tasks
	}

	code := room.Code
	roundNumber := 0
	if room.CurrentRound != nil {
		roundNumber = room.CurrentRound.Number
	}

	switch room.Phase {
	case models.PhasePicking:
		picker := room.Player(room.PickerID)
		if picker != nil && picker.IsBot {
			key := taskKey(code, room.Phase, room.RoundsPlayed, picker.ID)
			tasks[key] = task{
				delay: d.config.Random.DurationBetween(d.config.PickDelayMin, d.config.PickDelayMax),
				run:   func(ctx context.Context) { d.pick(ctx, code, picker.ID) },
			}
		}

	case models.PhaseWagering:
		for _, p := range room.Players {
			if !p.IsBot || p.Wager != 0 {
				continue
			}
			botID := p.ID
			key := taskKey(code, room.Phase, roundNumber, botID)
			tasks[key] = task{
				delay: d.config.Random.DurationBetween(d.config.WagerDelayMin, d.config.WagerDelayMax),
				run:   func(ctx context.Context) { d.wager(ctx, code, botID) },
			}
		}

	case models.PhaseAnswering:
		for _, p := range room.Players {
			if !p.IsBot || p.HasAnswered {
				continue
			}
			botID := p.ID
			key := taskKey(code, room.Phase, roundNumber, botID)
			tasks[key] = task{
				delay: d.config.Random.DurationBetween(d.config.AnswerDelayMin, d.config.AnswerDelayMax),
				run:   func(ctx context.Context) { d.answer(ctx, code, botID) },
			}
		}

	case models.PhaseReveal:
		host := room.Player(room.HostID)
		if host != nil && host.IsBot {
			key := taskKey(code, room.Phase, roundNumber, host.ID)
			tasks[key] = task{
				delay: d.config.AdvanceDelay,
				run:   func(ctx context.Context) { d.advance(ctx, code, host.ID) },
			}
		}
	}

	return tasks
}

// pick selects a uniformly random unused challenge, exactly as a human
// picker would
func (d *Driver) pick(ctx context.Context, code, botID string) {
	room, ok := d.refetch(ctx, code)
	if !ok {
		return
	}
	if room.Phase != models.PhasePicking || room.PickerID != botID {
		return
	}

	unused := room.UnusedIndexes()
	if len(unused) == 0 {
		return
	}
	index := unused[d.config.Random.Intn(len(unused))]

	out, err := d.config.Engine.PickQuestion(ctx, &engine.PickQuestionInput{
		Code:       code,
		PlayerID:   botID,
		BoardIndex: index,
	})
	if err != nil {
		d.config.Log.Error().Err(err).Str("room", code).Msg("bot pick failed")
		return
	}
	if out.Applied {
		d.config.Log.Debug().Str("room", code).Str("bot", botID).Int("index", index).Msg("bot picked a question")
	}
}

// wager commits a random value the bot has not spent yet
func (d *Driver) wager(ctx context.Context, code, botID string) {
	room, ok := d.refetch(ctx, code)
	if !ok {
		return
	}
	if room.Phase != models.PhaseWagering {
		return
	}
	bot := room.Player(botID)
	if bot == nil || bot.Wager != 0 {
		return
	}

	var available []int
	for v := grading.MinWager; v <= grading.MaxWager; v++ {
		if grading.ValidWager(v, bot.WagersUsed) {
			available = append(available, v)
		}
	}
	if len(available) == 0 {
		return
	}

	value := available[d.config.Random.Intn(len(available))]
	if _, err := d.config.Engine.PlaceWager(ctx, &engine.PlaceWagerInput{
		Code:     code,
		PlayerID: botID,
		Value:    value,
	}); err != nil {
		d.config.Log.Error().Err(err).Str("room", code).Msg("bot wager failed")
	}
}

// answer synthesizes a submission that is correct with a fixed
// probability, reusing the accepted answer text or misquoting another
// board item. The re-fetch above is the guard against a bot acting twice
// after a delayed write; the engine's one-submission-per-player rule
// backstops it.
func (d *Driver) answer(ctx context.Context, code, botID string) {
	room, ok := d.refetch(ctx, code)
	if !ok {
		return
	}
	if room.Phase != models.PhaseAnswering || room.CurrentRound == nil {
		return
	}
	bot := room.Player(botID)
	if bot == nil || bot.HasAnswered {
		return
	}
	if room.CurrentRound.Submission(botID) != nil {
		return
	}

	question := room.Board[room.CurrentRound.BoardIndex].Question

	var text string
	if d.config.Random.Chance(d.config.CorrectChance) {
		text = question.Answer
	} else {
		text = d.wrongAnswer(room, room.CurrentRound.BoardIndex)
	}

	out, err := d.config.Engine.SubmitAnswer(ctx, &engine.SubmitAnswerInput{
		Code:     code,
		PlayerID: botID,
		Answer:   text,
	})
	if err != nil {
		d.config.Log.Error().Err(err).Str("room", code).Msg("bot answer failed")
		return
	}
	if out.Applied {
		d.config.Log.Debug().Str("room", code).Str("bot", botID).Msg("bot answered")
	}
}

// advance moves the round on exactly as a human host would
func (d *Driver) advance(ctx context.Context, code, hostID string) {
	room, ok := d.refetch(ctx, code)
	if !ok {
		return
	}
	if room.Phase != models.PhaseReveal || room.HostID != hostID {
		return
	}

	if _, err := d.config.Engine.AdvanceRound(ctx, &engine.AdvanceRoundInput{
		Code:     code,
		PlayerID: hostID,
	}); err != nil {
		d.config.Log.Error().Err(err).Str("room", code).Msg("bot advance failed")
	}
}

// wrongAnswer picks a random other board answer to submit
func (d *Driver) wrongAnswer(room *models.Room, currentIndex int) string {
	var options []string
	for i, item := range room.Board {
		if i == currentIndex {
			continue
		}
		options = append(options, item.Question.Answer)
	}
	if len(options) == 0 {
		return fallbackWrongAnswer
	}
	return options[d.config.Random.Intn(len(options))]
}

// refetch loads the latest document before acting; a room that vanished
// cancels the action
func (d *Driver) refetch(ctx context.Context, code string) (*models.Room, bool) {
	room, err := d.config.RoomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: code})
	if err != nil {
		if !errors.Is(err, roomRepo.ErrRoomNotFound) {
			d.config.Log.Error().Err(err).Str("room", code).Msg("bot re-fetch failed")
		}
		return nil, false
	}
	return room, true
}

// forgetRoomLocked drops the done markers for one room; callers hold d.mu
func (d *Driver) forgetRoomLocked(code string) {
	prefix := code + "|"
	for key := range d.done {
		if strings.HasPrefix(key, prefix) {
			delete(d.done, key)
		}
	}
}

// cancelAll stops every pending timer, used on shutdown
func (d *Driver) cancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}

func taskKey(code string, phase models.Phase, round int, playerID string) string {
	return fmt.Sprintf("%s|%s|%d|%s", code, phase, round, playerID)
}
