// Package importentry holds the domain model of the spreadsheet import:
// record kinds with their positional column layouts, the read-only
// reference snapshot rows are resolved against, the normalized record
// ready for insertion, and the coded per-row errors.
package importentry

import "fmt"

// Kind selects between the two import profiles. It decides the data
// sheet name, the column layout, the validation rule set and the
// destination collection.
type Kind string

const (
	KindTasks    Kind = "tasks"
	KindRoutines Kind = "routines"
)

func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindTasks, KindRoutines:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("unknown import kind %q (expected tasks|routines)", raw)
	}
}

func (k Kind) SheetName() string {
	if k == KindRoutines {
		return "Routines"
	}
	return "Tasks"
}

// Collection names the backing-store destination for the kind.
func (k Kind) Collection() string {
	if k == KindRoutines {
		return "routine_tasks"
	}
	return "tasks"
}

// Column positions are fixed per kind; header text is never interpreted.
const (
	ColContent = iota
	ColListID
	ColUserID
)

// Task layout, columns 4-6.
const (
	ColTaskDate = iota + 3
	ColTaskCompleted
	ColTaskNote
)

// Routine layout, columns 4-14.
const (
	ColRecurrenceType = iota + 3
	ColRecurrenceInterval
	ColRecurrenceDays
	ColStartDate
	ColEndDate
	ColPersistent
	ColRoutineNote
	ColWeeklyInterval
	ColSelectedWeekday
	ColMonthlyOrdinal
	ColMonthlyWeekday
)

func (k Kind) ColumnCount() int {
	if k == KindRoutines {
		return 14
	}
	return 6
}

func (k Kind) Headers() []string {
	if k == KindRoutines {
		return []string{
			"Routine description",
			"List (name or ID)",
			"Responsible (name or ID)",
			"Recurrence type",
			"Recurrence interval",
			"Recurrence days",
			"Start date (YYYY-MM-DD)",
			"End date (YYYY-MM-DD)",
			"Persistent",
			"Note",
			"Weekly interval",
			"Selected weekday",
			"Monthly ordinal",
			"Monthly weekday",
		}
	}
	return []string{
		"Task description",
		"List (name or ID)",
		"Responsible (name or ID)",
		"Deadline (YYYY-MM-DD)",
		"Completed",
		"Note",
	}
}

func (k Kind) ColumnWidths() []float64 {
	if k == KindRoutines {
		return []float64{50, 30, 25, 20, 20, 20, 20, 20, 15, 40, 20, 20, 20, 20}
	}
	return []float64{50, 30, 25, 20, 15, 40}
}
