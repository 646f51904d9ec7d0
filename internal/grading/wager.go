package grading

// Wager pool bounds for quick mode. Each player may commit each value at
// most once across the match.
const (
	MinWager = 1
	MaxWager = 10
)

// ValidWager reports whether the value is inside the wager pool and has
// not already been spent by the player this match.
func ValidWager(value int, used []int) bool {
	if value < MinWager || value > MaxWager {
		return false
	}
	for _, u := range used {
		if u == value {
			return false
		}
	}
	return true
}

// WagerDelta returns the signed score change for a wagered answer: a
// correct answer earns the committed value, an incorrect answer loses it.
func WagerDelta(wager int, correct bool) int {
	if correct {
		return wager
	}
	return -wager
}
