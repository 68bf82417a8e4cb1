package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starbem/ticketsync/internal/schema"
	"github.com/starbem/ticketsync/internal/sink"
)

func TestSinkForPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    interface{}
		wantErr bool
	}{
		{name: "csv", path: "out.csv", want: &sink.CSVFile{}},
		{name: "csv uppercase", path: "OUT.CSV", want: &sink.CSVFile{}},
		{name: "xlsx", path: "out.xlsx", want: &sink.XLSXFile{}},
		{name: "unknown extension", path: "out.parquet", wantErr: true},
		{name: "no extension", path: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sinkForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestNormalizeCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	output := filepath.Join(dir, "clean.csv")

	raw := "Issue key,Summary,Status,Created,Watchers\n" +
		"ST-1,Login broken,Done,10/Dec/25 8:43 AM,3\n"
	require.NoError(t, os.WriteFile(input, []byte(raw), 0644))

	rootCmd.SetArgs([]string{"normalize", "-i", input, "-o", output})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, schema.Columns, records[0])
	assert.Len(t, records[1], len(schema.Columns))
}

func TestNormalizeCommandRequiresFlags(t *testing.T) {
	// Flag values persist on the command between executions in the same
	// process; reset them so this run really has no input.
	require.NoError(t, normalizeCmd.Flags().Set("input", ""))
	require.NoError(t, normalizeCmd.Flags().Set("output", ""))

	rootCmd.SetArgs([]string{"normalize"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}
