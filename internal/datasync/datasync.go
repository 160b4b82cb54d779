// Package datasync copies practice history between the YAML files and the database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/verbdrill/internal/learning"
)

// SyncResult tracks counts of a sync.
type SyncResult struct {
	New     int
	Skipped int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun bool
}

// Syncer copies attempts from one repository to another.
type Syncer struct {
	source learning.AttemptRepository
	target learning.AttemptRepository
	writer io.Writer
}

func NewSyncer(source, target learning.AttemptRepository, writer io.Writer) *Syncer {
	return &Syncer{
		source: source,
		target: target,
		writer: writer,
	}
}

// attemptKey identifies the same answer in both stores. IDs are assigned per store and are not compared.
type attemptKey struct {
	sessionID  string
	pronoun    string
	verb       string
	tense      string
	form       string
	answeredAt time.Time
}

func keyOf(a learning.Attempt) attemptKey {
	return attemptKey{
		sessionID:  a.SessionID,
		pronoun:    a.Pronoun,
		verb:       a.Verb,
		tense:      a.Tense,
		form:       a.Form,
		answeredAt: a.AnsweredAt.UTC().Truncate(time.Millisecond),
	}
}

// Sync creates every source attempt missing from the target.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	attempts, err := s.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.FindAll() > %w", err)
	}

	var result SyncResult
	existingBySession := make(map[string]map[attemptKey]bool)
	for _, attempt := range attempts {
		existing, ok := existingBySession[attempt.SessionID]
		if !ok {
			targetAttempts, err := s.target.FindBySession(ctx, attempt.SessionID)
			if err != nil {
				return nil, fmt.Errorf("target.FindBySession(%s) > %w", attempt.SessionID, err)
			}
			existing = make(map[attemptKey]bool, len(targetAttempts))
			for _, a := range targetAttempts {
				existing[keyOf(a)] = true
			}
			existingBySession[attempt.SessionID] = existing
		}

		key := keyOf(attempt)
		if existing[key] {
			result.Skipped++
			continue
		}

		if !opts.DryRun {
			copied := attempt
			copied.ID = 0
			copied.CreatedAt = time.Time{}
			copied.AnsweredAt = attempt.AnsweredAt.Truncate(time.Millisecond)
			if err := s.target.Create(ctx, &copied); err != nil {
				return nil, fmt.Errorf("target.Create() > %w", err)
			}
		}
		existing[key] = true
		_, _ = fmt.Fprintf(s.writer, "  [NEW]  %s %s (%s)\n", attempt.SessionID, attempt.Task(), attempt.AnsweredAt.Format(time.RFC3339))
		result.New++
	}
	return &result, nil
}
