// Package sink writes a canonical header-plus-rows table to a
// destination with full-refresh semantics: each Flush replaces the
// destination's entire content, never merges into it.
package sink

import "context"

// Sink is a tabular destination. Implementations must replace whatever
// the destination held before with exactly header followed by rows.
//
// Flushing is not concurrency-safe across processes: two simultaneous
// runs against the same destination interleave unpredictably. Operators
// serialize runs externally (e.g., a non-overlapping schedule).
type Sink interface {
	Flush(ctx context.Context, header []string, rows [][]string) error
}
