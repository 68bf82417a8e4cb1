package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starbem/ticketsync/internal/config"
	"github.com/starbem/ticketsync/internal/logging"
	"github.com/starbem/ticketsync/internal/normalize"
	"github.com/starbem/ticketsync/internal/sink"
)

// normalizeCmd rewrites a raw Jira CSV export into the canonical schema.
var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Rewrite a raw Jira CSV export into the canonical schema",
	Long: `Rewrite a raw Jira CSV export into the canonical ticket schema.

Only the canonical columns are kept; everything else in the export is
dropped. Date values are parsed from the export tool's locale formats
(English and Portuguese month names) and rewritten as ISO dates. A date
value that cannot be parsed is emitted empty and counted, and the run
continues: one bad field never aborts the file.

The destination format follows the output extension (.csv or .xlsx).
CSV output is written atomically: a failed run never leaves a
half-written file behind. Zero input rows produce a header-only output.

Example:
  ticketsync normalize -i "Jira - Jira.csv.csv" -o jira_tickets_clean.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := cmd.Flags().GetString("input")
		if err != nil {
			return err
		}
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if input == "" {
			return fmt.Errorf("input flag is required")
		}
		if output == "" {
			return fmt.Errorf("output flag is required")
		}

		dst, err := sinkForPath(output)
		if err != nil {
			return err
		}

		stats, err := normalize.File(cmd.Context(), input, dst)
		if err != nil {
			return err
		}

		logging.Info("normalization complete",
			"rows", stats.Rows,
			"unparseable_dates", stats.BadDates,
			"output", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringP("input", "i", "", "Raw Jira CSV export to read")
	normalizeCmd.Flags().StringP("output", "o", "", "Destination file (.csv or .xlsx)")
}

// sinkForPath picks a local file sink from the destination extension.
func sinkForPath(path string) (sink.Sink, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return sink.NewCSVFile(path), nil
	case ".xlsx":
		return sink.NewXLSXFile(path, config.DefaultTab), nil
	default:
		return nil, fmt.Errorf("unsupported output extension %q: use .csv or .xlsx", filepath.Ext(path))
	}
}
