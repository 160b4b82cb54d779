package practice

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

// RoundState is the state of a practice round.
type RoundState int

const (
	RoundStateAwaitingAnswer RoundState = iota
	RoundStateGraded
)

func (s RoundState) String() string {
	switch s {
	case RoundStateAwaitingAnswer:
		return "awaiting_answer"
	case RoundStateGraded:
		return "graded"
	default:
		return fmt.Sprintf("RoundState(%d)", int(s))
	}
}

var (
	ErrAlreadyGraded = errors.New("round is already graded")
)

// Result is the outcome of a graded round.
type Result struct {
	Correct  bool
	Expected string
	Given    string
}

// Round is a task with its expected answer. It accepts exactly one answer.
type Round struct {
	task   Task
	answer string
	state  RoundState
	result Result
}

func NewRound(task Task, answer string) *Round {
	return &Round{
		task:   task,
		answer: answer,
		state:  RoundStateAwaitingAnswer,
	}
}

func (r *Round) Task() Task {
	return r.task
}

func (r *Round) Answer() string {
	return r.answer
}

func (r *Round) State() RoundState {
	return r.state
}

// Result returns the grading result and whether the round has been graded.
func (r *Round) Result() (Result, bool) {
	return r.result, r.state == RoundStateGraded
}

// Submit grades the user's text and moves the round to RoundStateGraded.
func (r *Round) Submit(text string) (Result, error) {
	if r.state == RoundStateGraded {
		return r.result, ErrAlreadyGraded
	}
	r.result = Result{
		Correct:  GradeAnswer(text, r.answer),
		Expected: r.answer,
		Given:    text,
	}
	r.state = RoundStateGraded
	return r.result, nil
}

// Trainer starts rounds from a catalog and settings.
// A Trainer belongs to a single session and is not safe for concurrent use.
type Trainer struct {
	lexicon  *conjugation.Lexicon
	settings Settings
	verbs    []string
	rng      Rand
}

func NewTrainer(lexicon *conjugation.Lexicon, settings Settings, rng Rand) (*Trainer, error) {
	if err := settings.Validate(lexicon); err != nil {
		return nil, fmt.Errorf("settings.Validate() > %w", err)
	}
	verbs, err := lexicon.FirstN(settings.VerbCount)
	if err != nil {
		return nil, fmt.Errorf("lexicon.FirstN(%d) > %w", settings.VerbCount, err)
	}
	return &Trainer{
		lexicon:  lexicon,
		settings: settings,
		verbs:    verbs,
		rng:      rng,
	}, nil
}

// NextRound generates a fresh task. Nothing is carried over from the previous round.
func (t *Trainer) NextRound() (*Round, error) {
	task, err := GenerateTask(t.settings.Pronouns, t.verbs, t.settings.Tenses, t.settings.Forms, t.rng)
	if err != nil {
		return nil, fmt.Errorf("GenerateTask() > %w", err)
	}
	answer, err := ComputeAnswer(t.lexicon, task)
	if err != nil {
		return nil, err
	}
	return NewRound(task, answer), nil
}

func (t *Trainer) Settings() Settings {
	return t.settings
}

func (t *Trainer) Lexicon() *conjugation.Lexicon {
	return t.lexicon
}
