// Package grading holds the pure scoring and answer-matching functions.
// Nothing here touches the room document or the store; the engine calls
// these with values taken from its locally cached document.
package grading

import (
	"math"
)

// distanceTolerance is the fraction of the accepted answer's length that a
// submission may deviate by and still be graded correct.
const distanceTolerance = 0.2

// Multipliers applied to the base value by correct-submission order.
var orderMultipliers = []float64{1.0, 0.75, 0.5, 0.25}

// IsCorrect reports whether a submitted answer matches the accepted answer
// or any accepted alternate. A match is exact on normalized forms, or
// within a Levenshtein distance of floor(0.2 × length of the accepted form).
func IsCorrect(submitted, answer string, alternates []string) bool {
	normalized := Normalize(submitted)
	if normalized == "" {
		return false
	}

	accepted := make([]string, 0, len(alternates)+1)
	accepted = append(accepted, answer)
	accepted = append(accepted, alternates...)

	for _, a := range accepted {
		target := Normalize(a)
		if target == "" {
			continue
		}
		if normalized == target {
			return true
		}
		tolerance := int(math.Floor(distanceTolerance * float64(len([]rune(target)))))
		if tolerance > 0 && Levenshtein(normalized, target) <= tolerance {
			return true
		}
	}
	return false
}

// Levenshtein computes the edit distance between two strings using the
// standard O(n·m) dynamic-programming table.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// OrderMultiplier returns the score multiplier for the nth correct
// submission (0-based), sorted ascending by submission time.
func OrderMultiplier(position int) float64 {
	if position < 0 {
		return 0
	}
	if position >= len(orderMultipliers) {
		return orderMultipliers[len(orderMultipliers)-1]
	}
	return orderMultipliers[position]
}

// AwardPoints computes the points for a correct submission at the given
// order position, rounded to the nearest integer. Incorrect submissions
// earn 0 and should not be passed here.
func AwardPoints(baseValue, position int) int {
	return int(math.Round(float64(baseValue) * OrderMultiplier(position)))
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
