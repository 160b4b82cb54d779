// Package testutil provides shared test helpers for creating config files and history fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/learning"
)

// SetupTestConfig creates a minimal config file and all required directories for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"history", "dictionaries", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`practice:
  verb_count: 3
history:
  backend: yaml
  directory: %s
dictionaries:
  rapidapi:
    cache_directory: %s
outputs:
  report_directory: %s
`,
		filepath.Join(tmpDir, "history"),
		filepath.Join(tmpDir, "dictionaries"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key for tests
// that require API key validation to pass.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CreateHistory records attempts into the YAML history under historyDir.
func CreateHistory(t *testing.T, historyDir string, attempts ...learning.Attempt) {
	t.Helper()

	repository := learning.NewYAMLAttemptRepository(historyDir)
	for i := range attempts {
		require.NoError(t, repository.Create(context.Background(), &attempts[i]))
	}
}
