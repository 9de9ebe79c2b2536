package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/pkg/excel"
)

// TemplateService builds the two-sheet import template: a data sheet
// with example rows and an instructions sheet that enumerates every
// list and user the importer may reference.
type TemplateService struct {
	exporter *excel.Exporter
}

func NewTemplateService() *TemplateService {
	return &TemplateService{
		exporter: excel.NewExporter(excel.DefaultExportOptions(), excel.DefaultStyleOptions()),
	}
}

func (s *TemplateService) Generate(ctx context.Context, kind importentry.Kind, refs *importentry.ReferenceSet) ([]byte, error) {
	data := excel.NewSliceDataSource(kind.SheetName(), kind.Headers(), exampleRows(kind)).
		WithColumnWidths(kind.ColumnWidths()...)
	instructions := excel.NewSliceDataSource("Instructions", nil, instructionRows(kind, refs)).
		WithColumnWidths(100).
		WithTitleRow()

	return s.exporter.Export(ctx, data, instructions)
}

func exampleRows(kind importentry.Kind) [][]any {
	if kind == importentry.KindTasks {
		return [][]any{
			{"Buy groceries for the week", "Groceries", "João Silva", "2024-12-31", "false", "Use the shared card"},
			{"Send the monthly report", "Work", "Maria Santos", "2024-12-15", "true", ""},
			{"Schedule dentist appointment", "Personal", "Pedro Costa", "2024-11-30", "false", "Morning preferred"},
		}
	}
	// One example per basic type plus one of each advanced shape.
	return [][]any{
		{"Check the mailbox", "Personal", "Pedro Costa", "daily", "1", "", "2024-01-01", "", "true", "", "", "", "", ""},
		{"Team standup notes", "Work", "Ana Oliveira", "weekly", "1", "1,2,3,4,5", "2024-01-01", "2024-12-31", "true", "Weekdays only", "", "", "", ""},
		{"Pay the rent", "Personal", "Carlos Silva", "monthly", "1", "", "2024-01-01", "", "true", "", "", "", "", ""},
		{"Deep-clean the kitchen", "Chores", "Ana Oliveira", "biweekly", "1", "", "2024-01-01", "", "true", "Every other Wednesday", "2", "3", "", ""},
		{"Review the budget", "Work", "Ana Oliveira", "monthly_weekday", "1", "", "2024-01-01", "", "true", "First Monday of the month", "", "", "1", "1"},
	}
}

func instructionRows(kind importentry.Kind, refs *importentry.ReferenceSet) [][]any {
	line := func(s string) []any { return []any{s} }
	blank := []any{}

	rows := [][]any{
		line(fmt.Sprintf("IMPORT INSTRUCTIONS — %s", kind.SheetName())),
		blank,
		line("Required fields:"),
		line("- Description: what the record is about (column 1)."),
		line("- List: the list name or its numeric ID (column 2, see the listing below)."),
		line("- Responsible: the user name or ID (column 3, see the listing below)."),
	}

	if kind == importentry.KindRoutines {
		rows = append(rows,
			line("- Recurrence type: one of daily, weekly, monthly, yearly, biweekly, triweekly, quadweekly, monthly_weekday."),
			line("- Start date: YYYY-MM-DD."),
			blank,
			line("Optional fields:"),
			line("- Recurrence interval: positive number, defaults to 1."),
			line("- Recurrence days: comma-separated weekdays 0-6, weekly type only."),
			line("- End date: YYYY-MM-DD."),
			line("- Persistent: true/false, defaults to true."),
			line("- Note: free text."),
			blank,
			line("Advanced recurrence fields:"),
			line("- Weekly interval: cycle length for biweekly (2), triweekly (3), quadweekly (4); filled in automatically when empty."),
			line("- Selected weekday: 0-6, required for biweekly, triweekly and quadweekly."),
			line("- Monthly ordinal: 1-4 or -1 for last, required for monthly_weekday."),
			line("- Monthly weekday: 0-6, required for monthly_weekday."),
		)
	} else {
		rows = append(rows,
			blank,
			line("Optional fields:"),
			line("- Deadline: YYYY-MM-DD."),
			line("- Completed: true/false, defaults to false."),
			line("- Note: free text."),
		)
	}

	rows = append(rows, blank, line("Available lists:"))
	listIDs := make([]int, 0, len(refs.Lists))
	for id := range refs.Lists {
		listIDs = append(listIDs, id)
	}
	slices.Sort(listIDs)
	for _, id := range listIDs {
		list := refs.Lists[id]
		project := refs.ProjectName(list.ProjectID)
		if project == "" {
			project = "no project"
		}
		rows = append(rows, line(fmt.Sprintf("- %d — %s (%s)", id, list.Name, project)))
	}

	rows = append(rows, blank, line("Available users:"))
	userIDs := make([]string, 0, len(refs.Users))
	for id := range refs.Users {
		userIDs = append(userIDs, id)
	}
	slices.Sort(userIDs)
	for _, id := range userIDs {
		rows = append(rows, line(fmt.Sprintf("- %s — %s", id, refs.Users[id])))
	}

	rows = append(rows,
		blank,
		line("Notes:"),
		line("- Lists and users accept either the name or the ID shown above."),
		line("- Dates must use the YYYY-MM-DD format."),
		line("- Remove the example rows before uploading."),
		line("- Rows missing required fields are rejected and nothing is imported."),
	)
	return rows
}
