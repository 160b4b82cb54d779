// Package practice generates conjugation tasks and grades answers.
package practice

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

// Task is one practice prompt.
type Task struct {
	Pronoun conjugation.Pronoun `json:"pronoun" yaml:"pronoun"`
	Verb    string              `json:"verb" yaml:"verb"`
	Tense   conjugation.Tense   `json:"tense" yaml:"tense"`
	Form    conjugation.Form    `json:"form" yaml:"form"`
}

// String renders the prompt shown to the learner, such as "She, work, Present Simple, affirmative".
func (t Task) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", t.Pronoun.Display(), t.Verb, t.Tense, t.Form)
}

// Rand is the randomness source used for sampling. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var (
	ErrEmptySelection = errors.New("empty selection")
)

// GenerateTask samples one element of each set uniformly.
// Every set must be non-empty; nothing is sampled otherwise.
func GenerateTask(
	pronouns []conjugation.Pronoun,
	verbs []string,
	tenses []conjugation.Tense,
	forms []conjugation.Form,
	rng Rand,
) (Task, error) {
	switch {
	case len(pronouns) == 0:
		return Task{}, fmt.Errorf("%w: no pronouns", ErrEmptySelection)
	case len(verbs) == 0:
		return Task{}, fmt.Errorf("%w: no verbs", ErrEmptySelection)
	case len(tenses) == 0:
		return Task{}, fmt.Errorf("%w: no tenses", ErrEmptySelection)
	case len(forms) == 0:
		return Task{}, fmt.Errorf("%w: no forms", ErrEmptySelection)
	}

	return Task{
		Pronoun: pronouns[rng.Intn(len(pronouns))],
		Verb:    verbs[rng.Intn(len(verbs))],
		Tense:   tenses[rng.Intn(len(tenses))],
		Form:    forms[rng.Intn(len(forms))],
	}, nil
}

// ComputeAnswer returns the expected answer of a task. The same task always yields the same answer.
func ComputeAnswer(lexicon *conjugation.Lexicon, task Task) (string, error) {
	answer, err := lexicon.Construct(task.Pronoun, task.Verb, task.Tense, task.Form)
	if err != nil {
		return "", fmt.Errorf("lexicon.Construct(%s) > %w", task, err)
	}
	return answer, nil
}
