// Package models defines data structures shared across the application.
package models

// Ticket is the canonical representation of a single tracked issue.
// Both input flows (raw CSV export and REST API) map into this struct,
// and every sink renders it with the same column set and order, so a
// downstream report can bind to any output interchangeably.
//
// Date fields hold already-normalized values: "2006-01-02 15:04:05" for
// timestamps, "2006-01-02" for date-only values, and empty string when
// the source has no value.
type Ticket struct {
	// Summary is the ticket's title text
	Summary string

	// IssueKey is the stable external identifier (e.g., "ST-123")
	IssueKey string

	// IssueID is the tracker's internal id for the issue
	IssueID string

	// IssueType is the issue type label (e.g., "Bug", "Story")
	IssueType string

	// Status is the workflow status label
	Status string

	// StatusCategory is the coarse status bucket ("To Do", "In Progress", "Done")
	StatusCategory string

	// Resolution is the resolution label, empty while unresolved
	Resolution string

	// Priority is the priority label, empty when unset
	Priority string

	// Assignee is the assignee's display name, empty when unassigned
	Assignee string

	// Reporter is the reporter's display name
	Reporter string

	// TeamName is the owning team, resolved from a custom field
	TeamName string

	// Created is when the ticket was created
	Created string

	// Updated is when the ticket was last updated
	Updated string

	// Resolved is when the ticket was resolved, empty while open
	Resolved string

	// DueDate is the due date, date-only
	DueDate string

	// StatusCategoryChanged is when the ticket last moved between
	// status categories
	StatusCategoryChanged string

	// ProjectKey is the key of the project the ticket belongs to
	ProjectKey string

	// ProjectName is the display name of the project
	ProjectName string

	// Sprint is the sprint name, empty for unplanned tickets
	Sprint string

	// Product is the "Custom field (Produto)" value, empty when unset
	Product string
}
