package datasync

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/verbdrill/internal/learning"
	mock_learning "github.com/at-ishikawa/verbdrill/internal/mocks/learning"
	"github.com/at-ishikawa/verbdrill/internal/practice"
)

func testAttempts() []learning.Attempt {
	answeredAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []learning.Attempt{
		{ID: 1, SessionID: "s1", Pronoun: "she", Verb: "work", Tense: "Present Simple", Form: "affirmative", Expected: "She works", Given: "She works", Correct: true, AnsweredAt: answeredAt},
		{ID: 2, SessionID: "s1", Pronoun: "I", Verb: "go", Tense: "Past Simple", Form: "negative", Expected: "I didn't go", Given: "I didn't went", AnsweredAt: answeredAt.Add(time.Minute)},
		{ID: 1, SessionID: "s2", Pronoun: "they", Verb: "write", Tense: "Future Simple", Form: "question", Expected: "Will they write?", Given: "Will they write?", Correct: true, AnsweredAt: answeredAt.Add(time.Hour)},
	}
}

func TestSyncer_Sync(t *testing.T) {
	tests := []struct {
		name            string
		opts            SyncOptions
		setupMocks      func(source, target *mock_learning.MockAttemptRepository)
		want            *SyncResult
		wantOutput      []string
		wantErrorString string
	}{
		{
			name: "copies missing attempts",
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				attempts := testAttempts()
				source.EXPECT().FindAll(gomock.Any()).Return(attempts, nil)

				inTarget := attempts[0]
				inTarget.ID = 10
				inTarget.AnsweredAt = inTarget.AnsweredAt.In(time.FixedZone("JST", 9*60*60))
				target.EXPECT().FindBySession(gomock.Any(), "s1").Return([]learning.Attempt{inTarget}, nil)
				target.EXPECT().FindBySession(gomock.Any(), "s2").Return(nil, nil)

				target.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *learning.Attempt) error {
					assert.Zero(t, a.ID)
					assert.Equal(t, "go", a.Verb)
					return nil
				})
				target.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *learning.Attempt) error {
					assert.Zero(t, a.ID)
					assert.Equal(t, "write", a.Verb)
					return nil
				})
			},
			want:       &SyncResult{New: 2, Skipped: 1},
			wantOutput: []string{"[NEW]  s1 I, go, Past Simple, negative", "[NEW]  s2 They, write, Future Simple, question"},
		},
		{
			name: "recorded attempt matches the millisecond row of the database",
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				task := testAttempts()[0].Task()
				recorded := learning.NewAttempt("s1", task, practice.Result{Correct: true, Expected: "She works", Given: "She works"},
					time.Second, time.Date(2025, 3, 1, 10, 0, 5, 123567891, time.UTC))
				source.EXPECT().FindAll(gomock.Any()).Return([]learning.Attempt{recorded}, nil)

				stored := recorded
				stored.ID = 7
				stored.AnsweredAt = time.Date(2025, 3, 1, 10, 0, 5, 123000000, time.UTC)
				target.EXPECT().FindBySession(gomock.Any(), "s1").Return([]learning.Attempt{stored}, nil)
			},
			want: &SyncResult{Skipped: 1},
		},
		{
			name: "copies are written at millisecond precision",
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				attempt := testAttempts()[0]
				attempt.AnsweredAt = time.Date(2025, 3, 1, 10, 0, 5, 123567891, time.UTC)
				source.EXPECT().FindAll(gomock.Any()).Return([]learning.Attempt{attempt}, nil)
				target.EXPECT().FindBySession(gomock.Any(), "s1").Return(nil, nil)
				target.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a *learning.Attempt) error {
					assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 5, 123000000, time.UTC), a.AnsweredAt)
					return nil
				})
			},
			want: &SyncResult{New: 1},
		},
		{
			name: "dry run does not write",
			opts: SyncOptions{DryRun: true},
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				source.EXPECT().FindAll(gomock.Any()).Return(testAttempts(), nil)
				target.EXPECT().FindBySession(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
			},
			want: &SyncResult{New: 3},
		},
		{
			name: "source fails",
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				source.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("permission denied"))
			},
			wantErrorString: "source.FindAll() > permission denied",
		},
		{
			name: "target fails",
			setupMocks: func(source, target *mock_learning.MockAttemptRepository) {
				source.EXPECT().FindAll(gomock.Any()).Return(testAttempts(), nil)
				target.EXPECT().FindBySession(gomock.Any(), "s1").Return(nil, nil)
				target.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("duplicate entry"))
			},
			wantErrorString: "target.Create() > duplicate entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mock_learning.NewMockAttemptRepository(ctrl)
			target := mock_learning.NewMockAttemptRepository(ctrl)
			tt.setupMocks(source, target)

			var output bytes.Buffer
			got, err := NewSyncer(source, target, &output).Sync(context.Background(), tt.opts)
			if tt.wantErrorString != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrorString, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, want := range tt.wantOutput {
				assert.Contains(t, output.String(), want)
			}
		})
	}
}

func TestSyncer_Sync_YAMLToYAML(t *testing.T) {
	ctx := context.Background()
	source := learning.NewYAMLAttemptRepository(t.TempDir())
	target := learning.NewYAMLAttemptRepository(t.TempDir())
	for _, a := range testAttempts() {
		a.ID = 0
		require.NoError(t, source.Create(ctx, &a))
	}

	syncer := NewSyncer(source, target, &bytes.Buffer{})
	got, err := syncer.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{New: 3}, got)

	got, err = syncer.Sync(ctx, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, &SyncResult{Skipped: 3}, got)

	copied, err := target.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, copied, 3)
}
