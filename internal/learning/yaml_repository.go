package learning

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLAttemptRepository stores attempts in one YAML file per session.
type YAMLAttemptRepository struct {
	directory string
	mu        sync.Mutex
}

// NewYAMLAttemptRepository creates a new YAMLAttemptRepository.
func NewYAMLAttemptRepository(directory string) *YAMLAttemptRepository {
	return &YAMLAttemptRepository{directory: directory}
}

// FindAll reads every session file and returns attempts in the order they were answered.
func (r *YAMLAttemptRepository) FindAll(ctx context.Context) ([]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []Attempt
	err := filepath.WalkDir(r.directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		attempts, err := readAttempts(path)
		if err != nil {
			return err
		}
		result = append(result, attempts...)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filepath.WalkDir(%s) > %w", r.directory, err)
	}

	sortAttempts(result)
	return result, nil
}

// FindBySession returns the attempts of one practice session.
func (r *YAMLAttemptRepository) FindBySession(_ context.Context, sessionID string) ([]Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts, err := readAttempts(r.sessionPath(sessionID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortAttempts(attempts)
	return attempts, nil
}

// FindSince returns the attempts answered at or after since.
func (r *YAMLAttemptRepository) FindSince(ctx context.Context, since time.Time) ([]Attempt, error) {
	attempts, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(attempts, func(a Attempt) bool {
		return a.AnsweredAt.Before(since)
	}), nil
}

// Create appends an attempt to its session file. IDs are sequential within a session.
func (r *YAMLAttemptRepository) Create(_ context.Context, attempt *Attempt) error {
	if attempt.SessionID == "" {
		return errors.New("attempt has no session ID")
	}
	if strings.ContainsAny(attempt.SessionID, `/\`) {
		return fmt.Errorf("invalid session ID %q", attempt.SessionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.sessionPath(attempt.SessionID)
	attempts, err := readAttempts(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	attempt.ID = int64(len(attempts) + 1)
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	attempts = append(attempts, *attempt)

	if err := os.MkdirAll(r.directory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", r.directory, err)
	}
	return writeAttempts(path, attempts)
}

func (r *YAMLAttemptRepository) sessionPath(sessionID string) string {
	return filepath.Join(r.directory, sessionID+".yml")
}

func isYAMLFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yml" || ext == ".yaml"
}

func readAttempts(path string) ([]Attempt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var attempts []Attempt
	if err := yaml.NewDecoder(f).Decode(&attempts); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("yaml.NewDecoder(%s).Decode() > %w", path, err)
	}
	return attempts, nil
}

func writeAttempts(path string, attempts []Attempt) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(attempts); err != nil {
		return fmt.Errorf("yaml.NewEncoder(%s).Encode() > %w", path, err)
	}
	return encoder.Close()
}

func sortAttempts(attempts []Attempt) {
	slices.SortStableFunc(attempts, func(a, b Attempt) int {
		if c := a.AnsweredAt.Compare(b.AnsweredAt); c != 0 {
			return c
		}
		if c := strings.Compare(a.SessionID, b.SessionID); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
