package models

// Question is one challenge item supplied by the question-bank collaborator
type Question struct {
	// Prompt is the text shown to players
	Prompt string `json:"prompt"`

	// Answer is the canonical accepted answer
	Answer string `json:"answer"`

	// Alternates are additional accepted answers
	Alternates []string `json:"alternates,omitempty"`

	// Value is the base point value (classic mode)
	Value int `json:"value"`
}

// BoardItem wraps a question with its once-only used flag
type BoardItem struct {
	Question Question `json:"question"`

	// Used is set when the round is graded; a used item is never re-selected
	Used bool `json:"used"`
}
