package learning

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning

// AttemptRepository defines operations for managing practice attempts.
type AttemptRepository interface {
	FindAll(ctx context.Context) ([]Attempt, error)
	FindBySession(ctx context.Context, sessionID string) ([]Attempt, error)
	FindSince(ctx context.Context, since time.Time) ([]Attempt, error)
	Create(ctx context.Context, attempt *Attempt) error
}

// DBAttemptRepository implements AttemptRepository using MySQL.
type DBAttemptRepository struct {
	db *sqlx.DB
}

// NewDBAttemptRepository creates a new DBAttemptRepository.
func NewDBAttemptRepository(db *sqlx.DB) *DBAttemptRepository {
	return &DBAttemptRepository{db: db}
}

// FindAll returns all attempts in the order they were answered.
func (r *DBAttemptRepository) FindAll(ctx context.Context) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts, "SELECT * FROM practice_attempts ORDER BY answered_at, id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(practice_attempts) > %w", err)
	}
	return attempts, nil
}

// FindBySession returns the attempts of one practice session.
func (r *DBAttemptRepository) FindBySession(ctx context.Context, sessionID string) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT * FROM practice_attempts WHERE session_id = ? ORDER BY answered_at, id",
		sessionID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(practice_attempts by session) > %w", err)
	}
	return attempts, nil
}

// FindSince returns the attempts answered at or after since.
func (r *DBAttemptRepository) FindSince(ctx context.Context, since time.Time) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT * FROM practice_attempts WHERE answered_at >= ? ORDER BY answered_at, id",
		since); err != nil {
		return nil, fmt.Errorf("db.SelectContext(practice_attempts since) > %w", err)
	}
	return attempts, nil
}

// Create inserts a new attempt and sets its ID.
func (r *DBAttemptRepository) Create(ctx context.Context, attempt *Attempt) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO practice_attempts (session_id, pronoun, verb, tense, form, expected, given, correct, response_time_ms, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.SessionID, attempt.Pronoun, attempt.Verb, attempt.Tense, attempt.Form,
		attempt.Expected, attempt.Given, attempt.Correct, attempt.ResponseTimeMs, attempt.AnsweredAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert practice_attempt) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	attempt.ID = id
	return nil
}
