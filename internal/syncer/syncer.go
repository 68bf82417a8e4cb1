// Package syncer drives one full-refresh run: fetch the complete
// dataset, then overwrite the destination.
package syncer

import (
	"context"
	"fmt"

	"github.com/starbem/ticketsync/internal/logging"
	"github.com/starbem/ticketsync/internal/schema"
	"github.com/starbem/ticketsync/internal/sink"
	"github.com/starbem/ticketsync/pkg/models"
)

// Source yields the complete ticket dataset for one run. A Source must
// either return every matching ticket or an error, never a partial set.
type Source interface {
	Fetch(ctx context.Context) ([]models.Ticket, error)
}

// Run fetches the full dataset from src and flushes it through dst.
// Ordering is the core guarantee: the sink is only touched once a
// complete dataset exists, so a failed fetch leaves the destination
// exactly as it was. Returns the number of data rows written.
//
// Runs are idempotent for an unchanged source. They are not safe to
// overlap: two concurrent runs against the same destination interleave
// clears and writes unpredictably, so schedule them apart.
func Run(ctx context.Context, src Source, dst sink.Sink) (int, error) {
	tickets, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch failed, destination untouched: %w", err)
	}

	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, schema.Row(t))
	}

	if report := schema.CheckKeys(rows); !report.Clean() {
		logging.Warn("issue key problems in fetched dataset",
			"missing", report.Missing,
			"duplicates", report.Duplicates)
	}

	if err := dst.Flush(ctx, schema.Header(), rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
