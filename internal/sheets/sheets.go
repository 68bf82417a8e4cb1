// Package sheets writes the canonical ticket table to one tab of a
// Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/starbem/ticketsync/internal/config"
	"github.com/starbem/ticketsync/internal/logging"
)

// Sheet is a tabular sink backed by a spreadsheet tab. Flush performs a
// full refresh: clear the tab's columns, then write header + rows in a
// single batch update. Formatting and out-of-band edits in the tab do
// not survive a run.
type Sheet struct {
	svc           *sheets.Service
	spreadsheetID string
	tab           string
}

// NewSheet builds an authenticated sheet sink from config. The config
// must have passed ValidateSheetsConfig.
func NewSheet(ctx context.Context, cfg config.SheetsConfig) (*Sheet, error) {
	creds, err := credentials(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := sheets.NewService(ctx, option.WithTokenSource(creds.TokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Sheet{svc: svc, spreadsheetID: cfg.SpreadsheetID, tab: cfg.Tab}, nil
}

// credentials loads the service-account key, preferring a key file path
// over inline key content.
func credentials(ctx context.Context, cfg config.SheetsConfig) (*google.Credentials, error) {
	data := []byte(cfg.CredentialsJSON)
	if cfg.CredentialsFile != "" {
		var err error
		data, err = os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key file: %w", err)
		}
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}
	return creds, nil
}

// Flush replaces the tab's content with header + rows.
//
// The clear and the update are two API calls; if the update fails the
// tab may be left cleared or partially written. There are no internal
// retries: rerunning the whole sync is the recovery path.
func (s *Sheet) Flush(ctx context.Context, header []string, rows [][]string) error {
	clearRange := fmt.Sprintf("'%s'!A:%s", s.tab, columnName(len(header)))
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", s.tab, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toCells(header))
	for _, row := range rows {
		values = append(values, toCells(row))
	}
	body := &sheets.ValueRange{Values: values}

	writeRange := fmt.Sprintf("'%s'!A1", s.tab)
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %d rows to tab %q: %w", len(rows), s.tab, err)
	}

	logging.Info("updated spreadsheet tab",
		"tab", s.tab,
		"rows", len(rows))
	return nil
}

// columnName converts a 1-based column count to its A1-notation letter
// (the schema fits well within a single letter).
func columnName(n int) string {
	if n < 1 || n > 26 {
		return "Z"
	}
	return string(rune('A' + n - 1))
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
