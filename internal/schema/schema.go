// Package schema defines the canonical ticket table: the fixed column
// set shared by every sink, the Ticket-to-row projection, and the date
// normalization rules both input flows apply.
package schema

import (
	"github.com/starbem/ticketsync/pkg/models"
)

// Columns is the canonical column set, in the exact order every sink
// must emit it. External reports bind to these names and positions;
// changing either breaks every downstream consumer.
var Columns = []string{
	"Summary",
	"Issue key",
	"Issue id",
	"Issue Type",
	"Status",
	"Status Category",
	"Resolution",
	"Priority",
	"Assignee",
	"Reporter",
	"Team Name",
	"Created",
	"Updated",
	"Resolved",
	"Due date",
	"Status Category Changed",
	"Project key",
	"Project name",
	"Sprint",
	"Custom field (Produto)",
}

// DateColumns names the canonical columns that hold date values and
// must go through export-date normalization.
var DateColumns = map[string]bool{
	"Created":                 true,
	"Updated":                 true,
	"Resolved":                true,
	"Due date":                true,
	"Status Category Changed": true,
}

// keyColumn is the position of "Issue key" within Columns.
const keyColumn = 1

// Header returns a fresh copy of the canonical column names, safe for
// callers to hand to a sink.
func Header() []string {
	return append([]string(nil), Columns...)
}

// Row projects a ticket onto the canonical column order. The result is
// always exactly len(Columns) values; missing optional fields are empty
// strings, never omitted.
func Row(t models.Ticket) []string {
	return []string{
		t.Summary,
		t.IssueKey,
		t.IssueID,
		t.IssueType,
		t.Status,
		t.StatusCategory,
		t.Resolution,
		t.Priority,
		t.Assignee,
		t.Reporter,
		t.TeamName,
		t.Created,
		t.Updated,
		t.Resolved,
		t.DueDate,
		t.StatusCategoryChanged,
		t.ProjectKey,
		t.ProjectName,
		t.Sprint,
		t.Product,
	}
}

// KeyReport summarizes issue-key data quality for one produced dataset.
// The issue key is expected to be present and unique; violations are
// reported to the operator instead of silently ignored.
type KeyReport struct {
	// Missing counts rows with an empty issue key
	Missing int

	// Duplicates counts rows whose issue key already appeared earlier
	// in the dataset
	Duplicates int
}

// Clean reports whether the dataset had no key problems.
func (r KeyReport) Clean() bool {
	return r.Missing == 0 && r.Duplicates == 0
}

// CheckKeys inspects canonical rows and reports missing and duplicate
// issue keys.
func CheckKeys(rows [][]string) KeyReport {
	var report KeyReport
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if len(row) <= keyColumn {
			report.Missing++
			continue
		}
		key := row[keyColumn]
		if key == "" {
			report.Missing++
			continue
		}
		if seen[key] {
			report.Duplicates++
			continue
		}
		seen[key] = true
	}
	return report
}
