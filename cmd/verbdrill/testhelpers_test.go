package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// setConfigFile sets the package-level configFile and restores it after the test.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// clearAPIEnv keeps credentials of the environment out of command tests.
func clearAPIEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"RAPID_API_HOST", "RAPID_API_KEY", "OPENAI_API_KEY", "OPENAI_MODEL", "DB_PASSWORD"} {
		t.Setenv(name, "")
	}
}

// executeCommand runs cmd with args and input, and returns what it printed.
func executeCommand(t *testing.T, cmd *cobra.Command, input string, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}
