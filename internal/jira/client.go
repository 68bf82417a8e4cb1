// Package jira fetches issues from the Jira REST API and maps them onto
// the canonical ticket schema.
package jira

import (
	"context"
	"fmt"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"github.com/trivago/tgo/tcontainer"

	"github.com/starbem/ticketsync/internal/config"
	"github.com/starbem/ticketsync/internal/logging"
	"github.com/starbem/ticketsync/internal/schema"
	"github.com/starbem/ticketsync/pkg/models"
)

// searchPageSize is the page size requested from the search endpoint.
const searchPageSize = 100

// apiTimestampLayout is how the REST API renders timestamps.
const apiTimestampLayout = "2006-01-02T15:04:05.999-0700"

// Custom field display names this schema resolves. Custom field ids are
// instance-specific (customfield_NNNNN), so they are looked up by name
// through the field-list endpoint instead of being hardcoded.
const (
	teamFieldName    = "Team Name"
	sprintFieldName  = "Sprint"
	productFieldName = "Produto"
)

// Client handles interactions with the Jira API.
type Client struct {
	client *jira.Client
}

// NewClient creates a Jira client authenticated with basic auth
// (account email + API token). The config must have passed
// ValidateJiraConfig.
func NewClient(cfg config.JiraConfig) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: cfg.Email,
		Password: cfg.APIToken,
	}

	client, err := jira.NewClient(tp.Client(), cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	logging.Debug("jira client initialized",
		"base_url", cfg.BaseURL,
		"email", cfg.Email,
		"token", logging.MaskSensitive(cfg.APIToken))

	return &Client{client: client}, nil
}

// ProgressFunc is called after each fetched page with the number of
// issues retrieved so far and the server-reported total.
type ProgressFunc func(fetched, total int)

// SearchAll retrieves every issue matching jql, following pagination
// until the server reports no more results, and maps each issue onto
// the canonical schema. The full result set is accumulated before this
// returns; any page failing aborts the whole fetch so callers never see
// a partial dataset.
func (c *Client) SearchAll(ctx context.Context, jql string, progress ProgressFunc) ([]models.Ticket, error) {
	fieldNames, err := c.customFieldNames(ctx)
	if err != nil {
		return nil, err
	}

	var issues []jira.Issue
	for startAt := 0; ; {
		opts := &jira.SearchOptions{StartAt: startAt, MaxResults: searchPageSize}
		page, resp, err := c.client.Issue.SearchWithContext(ctx, jql, opts)
		if err != nil {
			return nil, fmt.Errorf("jira search failed at offset %d: %w", startAt, err)
		}
		issues = append(issues, page...)
		startAt += len(page)
		if progress != nil {
			progress(startAt, resp.Total)
		}
		if len(page) == 0 || startAt >= resp.Total {
			break
		}
	}

	logging.Info("fetched jira issues", "count", len(issues))

	tickets := make([]models.Ticket, 0, len(issues))
	for _, issue := range issues {
		tickets = append(tickets, mapIssue(issue, fieldNames))
	}
	return tickets, nil
}

// customFieldNames maps field ids to display names so custom fields can
// be located by the name an operator sees in the Jira UI.
func (c *Client) customFieldNames(ctx context.Context) (map[string]string, error) {
	fields, _, err := c.client.Field.GetListWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jira fields: %w", err)
	}
	names := make(map[string]string, len(fields))
	for _, f := range fields {
		names[f.ID] = f.Name
	}
	return names, nil
}

// mapIssue projects one API issue onto the canonical ticket. Missing
// optional fields become empty strings, the same rule the CSV
// normalizer applies, so both flows emit column-identical output for
// the same logical ticket.
func mapIssue(issue jira.Issue, fieldNames map[string]string) models.Ticket {
	f := issue.Fields
	if f == nil {
		f = &jira.IssueFields{}
	}

	t := models.Ticket{
		Summary:     strings.TrimSpace(f.Summary),
		IssueKey:    issue.Key,
		IssueID:     issue.ID,
		IssueType:   f.Type.Name,
		Created:     formatTimestamp(f.Created),
		Updated:     formatTimestamp(f.Updated),
		Resolved:    formatTimestamp(f.Resolutiondate),
		DueDate:     formatDate(f.Duedate),
		ProjectKey:  f.Project.Key,
		ProjectName: f.Project.Name,
	}

	if f.Status != nil {
		t.Status = f.Status.Name
		t.StatusCategory = f.Status.StatusCategory.Name
	}
	if f.Resolution != nil {
		t.Resolution = f.Resolution.Name
	}
	if f.Priority != nil {
		t.Priority = f.Priority.Name
	}
	if f.Assignee != nil {
		t.Assignee = userName(f.Assignee)
	}
	if f.Reporter != nil {
		t.Reporter = userName(f.Reporter)
	}
	if f.Sprint != nil {
		t.Sprint = f.Sprint.Name
	}

	applyUnknownFields(&t, f.Unknowns, fieldNames)
	return t
}

// applyUnknownFields resolves values the typed client does not model:
// the status-category change date and the instance's custom fields.
func applyUnknownFields(t *models.Ticket, unknowns tcontainer.MarshalMap, fieldNames map[string]string) {
	if raw, ok := unknowns["statuscategorychangedate"].(string); ok {
		t.StatusCategoryChanged = formatRawTimestamp(raw)
	}

	for id, value := range unknowns {
		if !strings.HasPrefix(id, "customfield_") || value == nil {
			continue
		}
		switch fieldNames[id] {
		case teamFieldName:
			t.TeamName = objectName(value)
		case sprintFieldName:
			if t.Sprint == "" {
				t.Sprint = sprintName(value)
			}
		case productFieldName:
			t.Product = objectValue(value)
		}
	}
}

func userName(u *jira.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.EmailAddress
}

// objectName extracts a readable name from the loosely typed shapes the
// API uses for custom field values.
func objectName(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}:
		for _, key := range []string{"name", "value"} {
			if s, ok := val[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// objectValue is objectName with the lookup order select-list custom
// fields use ("value" before "name").
func objectValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}:
		for _, key := range []string{"value", "name"} {
			if s, ok := val[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// sprintName handles the sprint custom field, which arrives as a list
// (a ticket can have been in several sprints; the first entry wins).
func sprintName(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		return objectName(val[0])
	case map[string]interface{}:
		return objectName(val)
	}
	return ""
}

func formatTimestamp(t jira.Time) string {
	tt := time.Time(t)
	if tt.IsZero() {
		return ""
	}
	return tt.Format(schema.ISODateTime)
}

func formatDate(d jira.Date) string {
	dd := time.Time(d)
	if dd.IsZero() {
		return ""
	}
	return dd.Format(schema.ISODate)
}

// formatRawTimestamp renders an API timestamp string canonically.
// Unparseable values become empty, the same row-level isolation rule
// the normalizer applies.
func formatRawTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(apiTimestampLayout, raw)
	if err != nil {
		logging.Warn("unparseable api timestamp, emitting empty", "value", raw)
		return ""
	}
	return t.Format(schema.ISODateTime)
}
