package conjugation

import (
	"errors"
	"fmt"
	"strings"
)

// Tense is one of the six tenses practiced by the trainer.
type Tense string

const (
	TensePresentSimple     Tense = "Present Simple"
	TensePastSimple        Tense = "Past Simple"
	TenseFutureSimple      Tense = "Future Simple"
	TensePresentContinuous Tense = "Present Continuous"
	TensePastContinuous    Tense = "Past Continuous"
	TenseFutureContinuous  Tense = "Future Continuous"
)

var (
	ErrUnknownTense = errors.New("unknown tense")
)

var allTenses = []Tense{
	TensePresentSimple,
	TensePastSimple,
	TenseFutureSimple,
	TensePresentContinuous,
	TensePastContinuous,
	TenseFutureContinuous,
}

// Tenses returns every supported tense in display order
func Tenses() []Tense {
	return append([]Tense(nil), allTenses...)
}

// ParseTense accepts a display name ("Past Continuous") as well as
// kebab or snake case ("past-continuous", "past_continuous").
func ParseTense(s string) (Tense, error) {
	key := tenseKey(s)
	for _, t := range allTenses {
		if tenseKey(string(t)) == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTense, s)
}

func tenseKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// IsContinuous reports whether the tense is built with a "to be" auxiliary and the -ing form.
func (t Tense) IsContinuous() bool {
	switch t {
	case TensePresentContinuous, TensePastContinuous, TenseFutureContinuous:
		return true
	}
	return false
}

func (t Tense) IsValid() bool {
	for _, v := range allTenses {
		if v == t {
			return true
		}
	}
	return false
}

// Slug returns the kebab case name used by command line flags
func (t Tense) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), " ", "-")
}
