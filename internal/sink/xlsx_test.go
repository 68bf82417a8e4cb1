package sink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSXFileFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	s := NewXLSXFile(path, "Tickets")

	rows := [][]string{
		{"Login broken", "ST-1", "Done"},
		{"Slow search", "ST-2", "To Do"},
	}
	require.NoError(t, s.Flush(context.Background(), testHeader, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Only our tab, no default Sheet1 left behind.
	assert.Equal(t, []string{"Tickets"}, f.GetSheetList())

	got, err := f.GetRows("Tickets")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, testHeader, got[0])
	assert.Equal(t, rows[0], got[1])
	assert.Equal(t, rows[1], got[2])
}

func TestXLSXFileFlushHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, NewXLSXFile(path, "Tickets").Flush(context.Background(), testHeader, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Tickets")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testHeader, got[0])
}
