package excel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func exportFixture(t *testing.T) []byte {
	t.Helper()

	data := NewSliceDataSource(
		"Tasks",
		[]string{"Description", "List", "Responsible"},
		[][]any{
			{"Buy milk", "Groceries", "u1"},
			{"Walk the dog", "Chores", "u2"},
		},
	).WithColumnWidths(50, 30, 25)

	notes := NewSliceDataSource("Notes", nil, [][]any{
		{"INSTRUCTIONS"},
		{"Fill in one record per row."},
	}).WithTitleRow()

	exporter := NewExporter(DefaultExportOptions(), DefaultStyleOptions())
	out, err := exporter.Export(context.Background(), data, notes)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	return out
}

func TestExporter_RoundTrip(t *testing.T) {
	t.Parallel()

	out := exportFixture(t)

	wb, err := OpenBuffer(out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	sheet, err := wb.Sheet("Tasks")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sheet.Close() })

	var rows [][]string
	for sheet.Next() {
		cols, err := sheet.Columns()
		require.NoError(t, err)
		rows = append(rows, cols)
	}
	require.NoError(t, sheet.Err())

	require.Len(t, rows, 3)
	require.Equal(t, []string{"Description", "List", "Responsible"}, rows[0])
	require.Equal(t, []string{"Buy milk", "Groceries", "u1"}, rows[1])
}

func TestExporter_HeaderlessSheet(t *testing.T) {
	t.Parallel()

	out := exportFixture(t)

	wb, err := OpenBuffer(out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	sheet, err := wb.Sheet("Notes")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sheet.Close() })

	require.True(t, sheet.Next())
	require.Equal(t, 1, sheet.Index())
	cols, err := sheet.Columns()
	require.NoError(t, err)
	require.Equal(t, []string{"INSTRUCTIONS"}, cols)
}

func TestWorkbook_SheetNotFound(t *testing.T) {
	t.Parallel()

	wb, err := OpenBuffer(exportFixture(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	_, err = wb.Sheet("Routines")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSheetNotFound))
}

func TestExporter_NoSources(t *testing.T) {
	t.Parallel()

	exporter := NewExporter(DefaultExportOptions(), DefaultStyleOptions())
	_, err := exporter.Export(context.Background())
	require.Error(t, err)
}
