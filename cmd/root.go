// Package cmd provides the command-line interface for the ticketsync tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ticketsync",
	Short: "ticketsync publishes Jira tickets as a fixed-schema table",
	Long: `Ticketsync maintains one canonical ticket table for dashboards and BI
reports, fed in two ways:

  normalize   rewrites a raw Jira CSV export into the canonical schema
  sync        fetches issues from the Jira API and full-refreshes a
              Google Sheets tab (or a local file) with the same schema

Both flows emit the identical column set and order, so a report can
bind to either output interchangeably.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
