package random

import (
	"math/rand"
	"sync"
	"time"
)

// codeAlphabet avoids characters players confuse when typing a room code.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Source provides the randomized values the engine and bots need: room
// codes, delays, coin flips and index picks.
type Source struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Source {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Source{
		random: rand.New(rand.NewSource(seed)),
	}
}

// RoomCode generates a short human-typable room code of the given length.
func (s *Source) RoomCode(length int) string {
	if length < 1 {
		length = 4
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := make([]byte, length)
	for i := range code {
		code[i] = codeAlphabet[s.random.Intn(len(codeAlphabet))]
	}
	return string(code)
}

// Intn returns a uniform value in [0, n).
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Intn(n)
}

// DurationBetween returns a uniform duration in [min, max].
func (s *Source) DurationBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + time.Duration(s.random.Int63n(int64(max-min)+1))
}

// Chance returns true with the given probability in [0, 1].
func (s *Source) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.random.Float64() < p
}
