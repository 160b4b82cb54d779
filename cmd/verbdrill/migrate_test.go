package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/verbdrill/internal/datasync"
)

func TestNewMigrateCommand(t *testing.T) {
	cmd := newMigrateCommand()

	assert.Equal(t, "migrate", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewMigrateCommand_RunE_InvalidConfig(t *testing.T) {
	setConfigFile(t, setupBrokenConfigFile(t))

	_, err := executeCommand(t, newMigrateCommand(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration")
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := newHistoryCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
		assert.NotNil(t, sub.Flags().Lookup("dry-run"))
	}
	assert.ElementsMatch(t, []string{"import", "export"}, names)
}

func TestPrintSyncSummary(t *testing.T) {
	var out bytes.Buffer
	printSyncSummary(&out, &datasync.SyncResult{New: 2, Skipped: 1}, true)

	assert.Contains(t, out.String(), "(dry-run mode, no changes made)")
	assert.Contains(t, out.String(), "Attempts:  2 new, 1 skipped")
}
