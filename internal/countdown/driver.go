package countdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/quizden/quizden/internal/common/clock"
	"github.com/quizden/quizden/internal/models"
	"github.com/quizden/quizden/internal/services/engine"
)

// RoundFinisher is the slice of the room engine the driver needs
type RoundFinisher interface {
	FinishRound(ctx context.Context, input *engine.FinishRoundInput) (*engine.FinishRoundOutput, error)
}

// Driver runs the host client's side of the timer: it watches the room
// feed, counts the current round down on a local tick, and issues the
// answering → reveal write exactly once when the countdown reaches zero.
// Other clients may race it to the same write; the engine treats a round
// already revealed as a no-op.
type Driver struct {
	config *Config

	// fired maps a room code to the key of the last round instance whose
	// terminal write succeeded. Keys carry the round's start timestamp, not
	// just its number: play again resets the numbering, so number alone
	// would silence the replayed match's rounds.
	mu    sync.Mutex
	fired map[string]string
}

// Config holds configuration for the countdown driver
type Config struct {
	// Engine issues the terminal write
	Engine RoundFinisher

	// Clock drives the local tick
	Clock clock.Clock

	// TickInterval defaults to one second
	TickInterval time.Duration

	Log zerolog.Logger
}

// NewDriver creates a new countdown driver
func NewDriver(cfg *Config) (*Driver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Engine == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Second
	}

	return &Driver{
		config: cfg,
		fired:  make(map[string]string),
	}, nil
}

// Watch consumes room snapshots and ticks until the context is cancelled
// or the updates channel closes. It is meant to be run by the host client
// only; it acts as the room's current host.
func (d *Driver) Watch(ctx context.Context, updates <-chan *models.Room) {
	ticker := time.NewTicker(d.config.TickInterval)
	defer ticker.Stop()

	var current *models.Room

	for {
		select {
		case room, ok := <-updates:
			if !ok {
				return
			}
			current = room
		case <-ticker.C:
			d.tick(ctx, current)
		case <-ctx.Done():
			return
		}
	}
}

// tick fires the terminal write when the current round has run out
func (d *Driver) tick(ctx context.Context, room *models.Room) {
	if room == nil || room.Phase != models.PhaseAnswering || room.CurrentRound == nil {
		return
	}
	if RoomRemaining(room, d.config.Clock.Now()) > 0 {
		return
	}

	key := roundKey(room.CurrentRound)

	d.mu.Lock()
	fired := d.fired[room.Code] == key
	d.mu.Unlock()
	if fired {
		return
	}

	out, err := d.config.Engine.FinishRound(ctx, &engine.FinishRoundInput{
		Code:     room.Code,
		PlayerID: room.HostID,
	})
	if err != nil {
		// Left unmarked so the next tick retries
		d.config.Log.Error().Err(err).Str("room", room.Code).Msg("failed to finish round on timeout")
		return
	}

	d.mu.Lock()
	d.fired[room.Code] = key
	d.mu.Unlock()

	if out.Applied {
		d.config.Log.Info().Str("room", room.Code).Int("round", room.CurrentRound.Number).Msg("round timed out")
	}
}

// roundKey identifies one concrete round instance by number and start
// timestamp; a repicked or replayed round gets a fresh timestamp
func roundKey(round *models.Round) string {
	return fmt.Sprintf("%d|%d", round.Number, round.StartedAt.UnixNano())
}
