package cmd

import (
	"context"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/starbem/ticketsync/internal/config"
	"github.com/starbem/ticketsync/internal/jira"
	"github.com/starbem/ticketsync/internal/logging"
	"github.com/starbem/ticketsync/internal/sheets"
	"github.com/starbem/ticketsync/internal/sink"
	"github.com/starbem/ticketsync/internal/syncer"
	"github.com/starbem/ticketsync/pkg/models"
)

// syncCmd fetches issues from Jira and full-refreshes the destination.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Full-refresh a spreadsheet tab with issues fetched from Jira",
	Long: `Fetch every issue matching the configured JQL filter and overwrite the
destination with the canonical ticket table.

The fetch paginates until the server reports no more results, and the
destination is only touched after the complete dataset is in hand: a
fetch or auth failure leaves the destination exactly as it was. The
write itself is a full refresh (clear, then header + rows in one
batch); formatting or manual edits in the destination tab do not
survive a run.

There are no internal retries. If the write fails partway the tab may
be left cleared or partial; rerun the sync to recover. Runs are
idempotent for an unchanged Jira dataset, but two overlapping runs
against the same destination interleave unpredictably - schedule them
so they never overlap.

Configuration comes from the environment (or a .env file):
  JIRA_BASE_URL, JIRA_EMAIL, JIRA_API_TOKEN    required
  JIRA_JQL                                     default "order by created DESC"
  GOOGLE_SHEET_ID                              required for the sheet sink
  GOOGLE_SHEET_TAB                             default "Tickets"
  GOOGLE_APPLICATION_CREDENTIALS               service-account key file, or
  GOOGLE_SERVICE_ACCOUNT_JSON                  inline key content

With --output the table is written to a local .csv or .xlsx file
instead of the spreadsheet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := config.ValidateJiraConfig(cfg); err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		var dst sink.Sink
		if output != "" {
			dst, err = sinkForPath(output)
			if err != nil {
				return err
			}
		} else {
			if err := config.ValidateSheetsConfig(cfg); err != nil {
				return err
			}
			dst, err = sheets.NewSheet(cmd.Context(), cfg.Sheets)
			if err != nil {
				return err
			}
		}

		client, err := jira.NewClient(cfg.Jira)
		if err != nil {
			return err
		}

		logging.Info("starting sync", "jql", cfg.Jira.JQL)

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("fetching issues"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
		src := jiraSource{
			client: client,
			jql:    cfg.Jira.JQL,
			progress: func(fetched, total int) {
				if total > 0 {
					bar.ChangeMax(total)
				}
				bar.Set(fetched)
			},
		}

		count, err := syncer.Run(cmd.Context(), src, dst)
		bar.Finish()
		if err != nil {
			return err
		}

		logging.Info("sync complete", "rows", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringP("output", "o", "", "Write to a local .csv or .xlsx file instead of the spreadsheet")
}

// jiraSource adapts the Jira client to the syncer's Source interface.
type jiraSource struct {
	client   *jira.Client
	jql      string
	progress jira.ProgressFunc
}

func (s jiraSource) Fetch(ctx context.Context) ([]models.Ticket, error) {
	return s.client.SearchAll(ctx, s.jql, s.progress)
}
