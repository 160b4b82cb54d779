package server

import "github.com/at-ishikawa/verbdrill/internal/practice"

type GetOptionsRequest struct{}

type GetOptionsResponse struct {
	Verbs            []string `json:"verbs"`
	DefaultVerbCount int      `json:"default_verb_count"`
	Pronouns         []string `json:"pronouns"`
	Tenses           []string `json:"tenses"`
	Forms            []string `json:"forms"`
}

// StartRoundRequest selects what the round samples from. Empty fields use the server defaults.
type StartRoundRequest struct {
	SessionID string   `json:"session_id" validate:"omitempty,max=64"`
	VerbCount int      `json:"verb_count" validate:"gte=0"`
	Pronouns  []string `json:"pronouns" validate:"dive,oneof=I i you we they he she it"`
	Tenses    []string `json:"tenses" validate:"dive,tense"`
	Forms     []string `json:"forms" validate:"dive,oneof=affirmative negative question"`
}

type TaskMessage struct {
	Pronoun string `json:"pronoun"`
	Verb    string `json:"verb"`
	Tense   string `json:"tense"`
	Form    string `json:"form"`
}

func newTaskMessage(task practice.Task) TaskMessage {
	return TaskMessage{
		Pronoun: string(task.Pronoun),
		Verb:    task.Verb,
		Tense:   string(task.Tense),
		Form:    string(task.Form),
	}
}

type StartRoundResponse struct {
	RoundID   string      `json:"round_id"`
	SessionID string      `json:"session_id"`
	Task      TaskMessage `json:"task"`
	Prompt    string      `json:"prompt"`
}

type SubmitAnswerRequest struct {
	RoundID string `json:"round_id" validate:"required"`
	Answer  string `json:"answer"`
}

type SubmitAnswerResponse struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Given    string `json:"given"`
}
