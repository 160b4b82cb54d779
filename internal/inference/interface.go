package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	ExplainMistake(ctx context.Context, params ExplainMistakeRequest) (ExplainMistakeResponse, error)
}

// ExplainMistakeRequest describes a wrongly answered drill task
type ExplainMistakeRequest struct {
	Pronoun  string `json:"pronoun"`
	Verb     string `json:"verb"`
	Tense    string `json:"tense"`
	Form     string `json:"form"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
}

// ExplainMistakeResponse is a short explanation for the learner
type ExplainMistakeResponse struct {
	Explanation string `json:"explanation"`
	Rule        string `json:"rule"`
}

const (
	DefaultMaxRetryAttempts = 3
)
