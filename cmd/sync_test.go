package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Missing required configuration fails the run up front, before any
// client is built or any network call attempted.
func TestSyncCommandMissingConfig(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "")
	t.Setenv("JIRA_EMAIL", "bot@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")

	rootCmd.SetArgs([]string{"sync"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_BASE_URL")
}

func TestSyncCommandMissingSheetConfig(t *testing.T) {
	t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net")
	t.Setenv("JIRA_EMAIL", "bot@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")
	t.Setenv("GOOGLE_SHEET_ID", "")

	rootCmd.SetArgs([]string{"sync"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_SHEET_ID")
}
