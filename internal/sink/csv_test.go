package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{"Summary", "Issue key", "Status"}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVFileFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := NewCSVFile(path)

	rows := [][]string{
		{"Login broken", "ST-1", "Done"},
		{"Slow search, very", "ST-2", "To Do"},
	}
	require.NoError(t, s.Flush(context.Background(), testHeader, rows))

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, testHeader, records[0])
	assert.Equal(t, rows[0], records[1])
	assert.Equal(t, rows[1], records[2])
}

func TestCSVFileFlushHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, NewCSVFile(path).Flush(context.Background(), testHeader, nil))

	records := readAll(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, testHeader, records[0])
}

// Flushing again fully replaces the previous content: no leftover rows
// from a larger earlier dataset.
func TestCSVFileFlushIsFullRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := NewCSVFile(path)

	big := [][]string{
		{"a", "ST-1", "Done"},
		{"b", "ST-2", "Done"},
		{"c", "ST-3", "Done"},
	}
	require.NoError(t, s.Flush(context.Background(), testHeader, big))

	small := [][]string{{"d", "ST-4", "To Do"}}
	require.NoError(t, s.Flush(context.Background(), testHeader, small))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, small[0], records[1])
}

func TestCSVFileFlushFailureLeavesNoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing-subdir")
	path := filepath.Join(dir, "out.csv")

	err := NewCSVFile(path).Flush(context.Background(), testHeader, nil)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCSVFileFlushLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, NewCSVFile(path).Flush(context.Background(), testHeader, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}
