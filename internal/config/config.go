// Package config provides centralized configuration management for the
// application. Settings come from environment variables, are loaded
// once at startup into an explicit structure, and are validated before
// any network or file I/O happens.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultJQL fetches every issue, newest first, matching the order
	// the CSV export tool uses.
	DefaultJQL = "order by created DESC"

	// DefaultTab is the spreadsheet tab written when none is configured.
	DefaultTab = "Tickets"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira   JiraConfig
	Sheets SheetsConfig
}

// JiraConfig holds Jira API specific configuration.
type JiraConfig struct {
	BaseURL  string
	Email    string
	APIToken string
	JQL      string
}

// SheetsConfig holds Google Sheets destination configuration. Exactly
// one of CredentialsFile and CredentialsJSON is needed: a path to a
// service-account key file, or the key content itself (the form CI
// secrets usually take).
type SheetsConfig struct {
	SpreadsheetID   string
	Tab             string
	CredentialsFile string
	CredentialsJSON string
}

// LoadConfig initializes and loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("jira.base_url", "JIRA_BASE_URL")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.api_token", "JIRA_API_TOKEN")
	v.BindEnv("jira.jql", "JIRA_JQL")
	v.BindEnv("sheets.spreadsheet_id", "GOOGLE_SHEET_ID")
	v.BindEnv("sheets.tab", "GOOGLE_SHEET_TAB")
	v.BindEnv("sheets.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("sheets.credentials_json", "GOOGLE_SERVICE_ACCOUNT_JSON")

	v.SetDefault("jira.jql", DefaultJQL)
	v.SetDefault("sheets.tab", DefaultTab)

	config := &Config{
		Jira: JiraConfig{
			BaseURL:  strings.TrimRight(v.GetString("jira.base_url"), "/"),
			Email:    v.GetString("jira.email"),
			APIToken: v.GetString("jira.api_token"),
			JQL:      v.GetString("jira.jql"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   v.GetString("sheets.spreadsheet_id"),
			Tab:             v.GetString("sheets.tab"),
			CredentialsFile: v.GetString("sheets.credentials_file"),
			CredentialsJSON: v.GetString("sheets.credentials_json"),
		},
	}

	return config, nil
}

// ValidateJiraConfig ensures every setting the Jira fetch needs is present.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_BASE_URL")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.APIToken == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

// ValidateSheetsConfig ensures every setting the spreadsheet write needs
// is present.
func ValidateSheetsConfig(config *Config) error {
	var missingVars []string

	if config.Sheets.SpreadsheetID == "" {
		missingVars = append(missingVars, "GOOGLE_SHEET_ID")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	if config.Sheets.CredentialsFile == "" && config.Sheets.CredentialsJSON == "" {
		return fmt.Errorf("set GOOGLE_APPLICATION_CREDENTIALS (key file path) or GOOGLE_SERVICE_ACCOUNT_JSON (key content)")
	}

	return nil
}
