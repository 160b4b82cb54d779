// Package learning records graded practice rounds and reads them back.
package learning

import (
	"time"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
	"github.com/at-ishikawa/verbdrill/internal/practice"
)

// Attempt is one graded round of a practice session.
type Attempt struct {
	ID             int64     `db:"id" yaml:"id"`
	SessionID      string    `db:"session_id" yaml:"session_id"`
	Pronoun        string    `db:"pronoun" yaml:"pronoun"`
	Verb           string    `db:"verb" yaml:"verb"`
	Tense          string    `db:"tense" yaml:"tense"`
	Form           string    `db:"form" yaml:"form"`
	Expected       string    `db:"expected" yaml:"expected"`
	Given          string    `db:"given" yaml:"given"`
	Correct        bool      `db:"correct" yaml:"correct"`
	ResponseTimeMs int64     `db:"response_time_ms" yaml:"response_time_ms"`
	AnsweredAt     time.Time `db:"answered_at" yaml:"answered_at"`
	CreatedAt      time.Time `db:"created_at" yaml:"created_at,omitempty"`
}

// NewAttempt builds the record of a graded round.
// answeredAt is kept at millisecond precision, the precision of the answered_at column.
func NewAttempt(sessionID string, task practice.Task, result practice.Result, responseTime time.Duration, answeredAt time.Time) Attempt {
	return Attempt{
		SessionID:      sessionID,
		Pronoun:        string(task.Pronoun),
		Verb:           task.Verb,
		Tense:          string(task.Tense),
		Form:           string(task.Form),
		Expected:       result.Expected,
		Given:          result.Given,
		Correct:        result.Correct,
		ResponseTimeMs: responseTime.Milliseconds(),
		AnsweredAt:     answeredAt.Truncate(time.Millisecond),
	}
}

func (a Attempt) Task() practice.Task {
	return practice.Task{
		Pronoun: conjugation.Pronoun(a.Pronoun),
		Verb:    a.Verb,
		Tense:   conjugation.Tense(a.Tense),
		Form:    conjugation.Form(a.Form),
	}
}
