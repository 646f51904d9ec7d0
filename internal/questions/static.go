package questions

import (
	"context"
	"errors"
	"strings"

	"github.com/quizden/quizden/internal/models"
)

// ErrNoQuestions is returned when a category has no questions
var ErrNoQuestions = errors.New("no questions for category")

// staticProvider serves a fixed in-memory bank, used by the host runner
// and in tests
type staticProvider struct {
	banks map[string][]models.Question
}

// StaticConfig holds configuration for the static provider
type StaticConfig struct {
	// Banks maps lowercase category names to question lists. Nil uses the
	// built-in general-knowledge bank.
	Banks map[string][]models.Question
}

// NewStatic creates a provider over a fixed question bank
func NewStatic(cfg *StaticConfig) *staticProvider {
	banks := defaultBanks
	if cfg != nil && cfg.Banks != nil {
		banks = cfg.Banks
	}
	return &staticProvider{
		banks: banks,
	}
}

// Questions returns the ordered list for a category
func (p *staticProvider) Questions(_ context.Context, input *QuestionsInput) (*QuestionsOutput, error) {
	category := "general"
	if input != nil && input.Category != "" {
		category = strings.ToLower(input.Category)
	}

	bank, ok := p.banks[category]
	if !ok || len(bank) == 0 {
		return nil, ErrNoQuestions
	}

	// Copy so callers cannot mutate the bank
	out := make([]models.Question, len(bank))
	copy(out, bank)

	return &QuestionsOutput{Questions: out}, nil
}

var defaultBanks = map[string][]models.Question{
	"general": {
		{Prompt: "What is the largest planet in the solar system?", Answer: "Jupiter", Value: 100},
		{Prompt: "Which element has the chemical symbol O?", Answer: "Oxygen", Value: 100},
		{Prompt: "What is the capital of Australia?", Answer: "Canberra", Value: 200},
		{Prompt: "Who painted the Mona Lisa?", Answer: "Leonardo da Vinci", Alternates: []string{"da Vinci", "Leonardo"}, Value: 200},
		{Prompt: "What is the longest river in the world?", Answer: "The Nile", Alternates: []string{"Nile River"}, Value: 300},
		{Prompt: "In which year did the Berlin Wall fall?", Answer: "1989", Value: 300},
		{Prompt: "What is the smallest prime number?", Answer: "2", Alternates: []string{"two"}, Value: 100},
		{Prompt: "Which country invented paper?", Answer: "China", Value: 200},
		{Prompt: "What gas do plants absorb from the atmosphere?", Answer: "Carbon dioxide", Alternates: []string{"CO2"}, Value: 100},
		{Prompt: "Who wrote 'Pride and Prejudice'?", Answer: "Jane Austen", Alternates: []string{"Austen"}, Value: 300},
	},
	"movies": {
		{Prompt: "Who directed 'Jaws'?", Answer: "Steven Spielberg", Alternates: []string{"Spielberg"}, Value: 100},
		{Prompt: "Which 1999 film features the line 'I see dead people'?", Answer: "The Sixth Sense", Value: 200},
		{Prompt: "What is the highest-grossing film of all time unadjusted for inflation?", Answer: "Avatar", Value: 300},
		{Prompt: "Which actor played Jack Dawson in 'Titanic'?", Answer: "Leonardo DiCaprio", Alternates: []string{"DiCaprio"}, Value: 100},
		{Prompt: "In 'The Matrix', which pill does Neo take?", Answer: "The red pill", Alternates: []string{"red"}, Value: 200},
		{Prompt: "Which film won Best Picture at the 2020 Oscars?", Answer: "Parasite", Value: 300},
	},
}
