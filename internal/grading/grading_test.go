package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases and trims", input: "  JUPITER  ", expected: "jupiter"},
		{name: "strips leading the", input: "The Nile", expected: "nile"},
		{name: "strips leading a", input: "a mousetrap", expected: "mousetrap"},
		{name: "strips leading an", input: "An Apple", expected: "apple"},
		{name: "strips only one article", input: "the the end", expected: "the end"},
		{name: "keeps article mid-string", input: "war of the worlds", expected: "war of the worlds"},
		{name: "strips punctuation", input: "don't stop!", expected: "dont stop"},
		{name: "collapses whitespace", input: "new   york    city", expected: "new york city"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"  The  Quick,  Brown Fox!  ",
		"an answer",
		"already normalized",
		"",
		"a",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize(normalize(%q))", input)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"gumbo", "gambol", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b), "distance(%q, %q)", tt.a, tt.b)
	}
}

func TestIsCorrectExactAndAlternates(t *testing.T) {
	assert.True(t, IsCorrect("Jupiter", "Jupiter", nil))
	assert.True(t, IsCorrect("  the jupiter ", "Jupiter", nil))
	assert.True(t, IsCorrect("da vinci", "Leonardo da Vinci", []string{"da Vinci", "Leonardo"}))
	assert.False(t, IsCorrect("Saturn", "Jupiter", nil))
	assert.False(t, IsCorrect("", "Jupiter", nil))
}

func TestIsCorrectDistanceBoundary(t *testing.T) {
	// Accepted answer normalizes to "leonardo da vinci": 17 runes, so the
	// tolerance is floor(0.2 * 17) = 3 edits.
	answer := "Leonardo da Vinci"

	assert.True(t, IsCorrect("leonardo da vinci", answer, nil), "distance 0")
	assert.True(t, IsCorrect("leonardo da vinc", answer, nil), "distance 1")
	assert.True(t, IsCorrect("leonardo da vi", answer, nil), "distance 3, at the boundary")
	assert.False(t, IsCorrect("leonardo da v", answer, nil), "distance 4, past the boundary")
}

func TestIsCorrectShortAnswerGetsNoTolerance(t *testing.T) {
	// "2" normalizes to length 1: floor(0.2 * 1) = 0, exact match only
	assert.True(t, IsCorrect("2", "2", nil))
	assert.False(t, IsCorrect("3", "2", nil))
}

func TestAwardPoints(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		position int
		expected int
	}{
		{name: "first gets full value", base: 300, position: 0, expected: 300},
		{name: "second gets 75%", base: 300, position: 1, expected: 225},
		{name: "third gets half", base: 300, position: 2, expected: 150},
		{name: "fourth gets a quarter", base: 300, position: 3, expected: 75},
		{name: "fifth also gets a quarter", base: 300, position: 4, expected: 75},
		{name: "rounds to nearest", base: 250, position: 1, expected: 188},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AwardPoints(tt.base, tt.position))
		})
	}
}

func TestValidWager(t *testing.T) {
	assert.True(t, ValidWager(1, nil))
	assert.True(t, ValidWager(10, nil))
	assert.False(t, ValidWager(0, nil))
	assert.False(t, ValidWager(11, nil))
	assert.False(t, ValidWager(5, []int{5}), "each value usable once per match")
	assert.True(t, ValidWager(6, []int{5}))
}

func TestWagerDelta(t *testing.T) {
	assert.Equal(t, 7, WagerDelta(7, true))
	assert.Equal(t, -7, WagerDelta(7, false))
}
