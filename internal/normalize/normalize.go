// Package normalize rewrites a raw Jira CSV export into the canonical
// ticket table: project the known columns, drop everything else,
// normalize dates, preserve row order.
package normalize

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/starbem/ticketsync/internal/logging"
	"github.com/starbem/ticketsync/internal/schema"
	"github.com/starbem/ticketsync/internal/sink"
)

// requiredColumns are the raw export headers that must be present; the
// export is unusable without them. Every other canonical column is
// optional and projects to empty when its raw column is absent.
var requiredColumns = []string{"Summary", "Issue key"}

// sprintColumn is special-cased: exports repeat it once per sprint a
// ticket has been in, and the first non-empty occurrence wins.
const sprintColumn = "Sprint"

// Stats reports what a normalization run did.
type Stats struct {
	// Rows is the number of data rows written (header excluded)
	Rows int

	// BadDates counts date values that failed to parse and were
	// emitted as empty fields
	BadDates int

	// Keys summarizes issue-key data quality
	Keys schema.KeyReport
}

// File reads the raw export at inputPath and writes the canonical table
// through dst. One row in produces one row out, in input order; a bad
// date value empties that field and the run continues. A missing
// required column or any I/O failure aborts before the sink is touched.
func File(ctx context.Context, inputPath string, dst sink.Sink) (Stats, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return Stats{}, fmt.Errorf("input file %s is empty: no header row", inputPath)
	}
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read header row: %w", err)
	}

	// First occurrence wins for duplicated headers, except Sprint which
	// keeps every position.
	nameToIdx := make(map[string]int, len(header))
	var sprintIdx []int
	for i, name := range header {
		if _, ok := nameToIdx[name]; !ok {
			nameToIdx[name] = i
		}
		if name == sprintColumn {
			sprintIdx = append(sprintIdx, i)
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := nameToIdx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Stats{}, fmt.Errorf("input file %s does not match the export schema: missing column(s) %v", inputPath, missing)
	}

	var stats Stats
	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Stats{}, fmt.Errorf("failed to read input row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, projectRow(record, nameToIdx, sprintIdx, &stats))
	}
	stats.Rows = len(rows)
	stats.Keys = schema.CheckKeys(rows)

	if stats.BadDates > 0 {
		logging.Warn("unparseable date values emitted as empty",
			"count", stats.BadDates)
	}
	if !stats.Keys.Clean() {
		logging.Warn("issue key problems in input data",
			"missing", stats.Keys.Missing,
			"duplicates", stats.Keys.Duplicates)
	}

	if err := dst.Flush(ctx, schema.Header(), rows); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// projectRow maps one raw record onto the canonical column order. Raw
// columns outside the canonical set are dropped; canonical columns
// without a raw counterpart (or beyond a short record's end) are empty.
func projectRow(record []string, nameToIdx map[string]int, sprintIdx []int, stats *Stats) []string {
	row := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		if col == sprintColumn {
			row = append(row, firstSprint(record, sprintIdx))
			continue
		}

		val := ""
		if idx, ok := nameToIdx[col]; ok && idx < len(record) {
			val = record[idx]
		}
		if schema.DateColumns[col] {
			iso, ok := schema.NormalizeExportDate(val)
			if !ok {
				stats.BadDates++
			}
			val = iso
		}
		row = append(row, val)
	}
	return row
}

func firstSprint(record []string, sprintIdx []int) string {
	for _, idx := range sprintIdx {
		if idx >= len(record) {
			continue
		}
		if val := strings.TrimSpace(record[idx]); val != "" {
			return val
		}
	}
	return ""
}
