package questions

//go:generate mockgen -package=mocks -destination=mocks/mock_provider.go github.com/quizden/quizden/internal/questions Provider

import (
	"context"

	"github.com/quizden/quizden/internal/models"
)

// Provider supplies an ordered challenge list for a category. The content
// pipeline behind it (fetching, caching) is outside the engine; the engine
// only requires each item to expose a prompt, one canonical answer,
// zero-or-more accepted alternates, and a point value.
type Provider interface {
	Questions(ctx context.Context, input *QuestionsInput) (*QuestionsOutput, error)
}

// QuestionsInput contains parameters for fetching a question list
type QuestionsInput struct {
	// Category filters the bank; empty means any
	Category string
}

// QuestionsOutput contains the fetched question list
type QuestionsOutput struct {
	Questions []models.Question
}
