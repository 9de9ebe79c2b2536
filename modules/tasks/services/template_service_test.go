package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/pkg/excel"
)

func readSheet(t *testing.T, data []byte, name string) [][]string {
	t.Helper()
	wb, err := excel.OpenBuffer(data)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	sheet, err := wb.Sheet(name)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sheet.Close() })

	var rows [][]string
	for sheet.Next() {
		cols, err := sheet.Columns()
		require.NoError(t, err)
		rows = append(rows, cols)
	}
	require.NoError(t, sheet.Err())
	return rows
}

func TestGenerate_TaskTemplateLayout(t *testing.T) {
	t.Parallel()

	data, err := NewTemplateService().Generate(context.Background(), importentry.KindTasks, serviceRefs())
	require.NoError(t, err)

	rows := readSheet(t, data, "Tasks")
	require.Len(t, rows, 4, "header plus three example rows")
	require.Equal(t, importentry.KindTasks.Headers(), rows[0])
	require.Len(t, rows[0], 6)
}

func TestGenerate_RoutineTemplateCoversAdvancedTypes(t *testing.T) {
	t.Parallel()

	data, err := NewTemplateService().Generate(context.Background(), importentry.KindRoutines, serviceRefs())
	require.NoError(t, err)

	rows := readSheet(t, data, "Routines")
	require.Len(t, rows, 6, "header plus five example rows")
	require.Len(t, rows[0], 14)

	var types []string
	for _, row := range rows[1:] {
		types = append(types, row[importentry.ColRecurrenceType])
	}
	require.Contains(t, types, "biweekly")
	require.Contains(t, types, "monthly_weekday")
}

func TestGenerate_InstructionsEnumerateReferences(t *testing.T) {
	t.Parallel()

	data, err := NewTemplateService().Generate(context.Background(), importentry.KindTasks, serviceRefs())
	require.NoError(t, err)

	var text strings.Builder
	for _, row := range readSheet(t, data, "Instructions") {
		for _, cell := range row {
			text.WriteString(cell)
			text.WriteString("\n")
		}
	}
	out := text.String()

	require.Contains(t, out, "1 — Groceries (Home)")
	require.Contains(t, out, "2 — Work (Office)")
	require.Contains(t, out, "u1 — João Silva")
	require.Contains(t, out, "u5 — Carlos Silva")
}
