package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/config"
	"github.com/at-ishikawa/verbdrill/internal/conjugation"
	"github.com/at-ishikawa/verbdrill/internal/learning"
	"github.com/at-ishikawa/verbdrill/internal/practice"
	"github.com/at-ishikawa/verbdrill/internal/testutil"
)

func TestNewDrillCommand_RunE(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()
	clearAPIEnv(t)

	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	output, err := executeCommand(t, newDrillCommand(), "she works\nShe work\nquit\n",
		"--verbs", "1", "--pronoun", "she", "--tense", "present-simple", "--form", "affirmative", "--seed", "42")
	require.NoError(t, err)

	assert.Contains(t, output, "Task: She, work, Present Simple, affirmative")
	assert.Contains(t, output, "Well done!")
	assert.Contains(t, output, "Correct answer: She works")
	assert.Contains(t, output, "Practice session ended. Score: 1/2 (50.0%)")

	attempts, err := learning.NewYAMLAttemptRepository(filepath.Join(tmpDir, "history")).FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Correct)
	assert.False(t, attempts[1].Correct)
	assert.Equal(t, attempts[0].SessionID, attempts[1].SessionID)
}

func TestNewDrillCommand_RunE_Errors(t *testing.T) {
	clearAPIEnv(t)

	tests := []struct {
		name              string
		config            func(t *testing.T) string
		args              []string
		wantErrorContains string
	}{
		{
			name:              "broken config",
			config:            setupBrokenConfigFile,
			wantErrorContains: "configuration",
		},
		{
			name: "unknown tense",
			config: func(t *testing.T) string {
				return testutil.SetupTestConfig(t, t.TempDir())
			},
			args:              []string{"--tense", "present-perfect"},
			wantErrorContains: "unknown tense",
		},
		{
			name: "too many verbs",
			config: func(t *testing.T) string {
				return testutil.SetupTestConfig(t, t.TempDir())
			},
			args:              []string{"--verbs", "1000"},
			wantErrorContains: "verb count out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setConfigFile(t, tt.config(t))

			_, err := executeCommand(t, newDrillCommand(), "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrorContains)
		})
	}
}

func TestDrillSettings(t *testing.T) {
	practiceConfig := config.PracticeConfig{
		VerbCount: 5,
		Pronouns:  []string{"he"},
		Tenses:    []string{"Past Simple"},
	}

	tests := []struct {
		name  string
		flags drillFlags
		want  practice.Settings
	}{
		{
			name:  "configuration only",
			flags: drillFlags{},
			want: practice.Settings{
				VerbCount: 5,
				Pronouns:  []conjugation.Pronoun{conjugation.PronounHe},
				Tenses:    []conjugation.Tense{conjugation.TensePastSimple},
				Forms:     conjugation.Forms(),
			},
		},
		{
			name:  "flags override",
			flags: drillFlags{verbCount: 2, pronouns: []string{"they", "I"}, forms: []string{"question"}},
			want: practice.Settings{
				VerbCount: 2,
				Pronouns:  []conjugation.Pronoun{conjugation.PronounThey, conjugation.PronounI},
				Tenses:    []conjugation.Tense{conjugation.TensePastSimple},
				Forms:     []conjugation.Form{conjugation.FormQuestion},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := drillSettings(practiceConfig, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
