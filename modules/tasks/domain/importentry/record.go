package importentry

// ValidatedRecord is a row that has passed every applicable check and is
// ready for insertion. Row is the 1-based source row carried for error
// reporting only; Fields never includes it.
type ValidatedRecord struct {
	Row int

	Content string
	ListID  int
	UserID  string
	Note    string

	// Task fields.
	Date      string
	Completed bool

	// Routine fields.
	RecurrenceType     RecurrenceType
	RecurrenceInterval int
	RecurrenceDays     []int
	StartDate          string
	EndDate            string
	Persistent         bool
	WeeklyInterval     int
	SelectedWeekday    int
	MonthlyOrdinal     int
	MonthlyWeekday     int
}

// Fields builds the insert mapping for the backing store. Optional
// fields are omitted when absent rather than sent as nulls, and gated
// recurrence fields are only included for the types that use them.
func (r *ValidatedRecord) Fields(kind Kind) map[string]any {
	fields := map[string]any{
		"content":      r.Content,
		"task_list_id": r.ListID,
		"usuario_id":   r.UserID,
	}
	if r.Note != "" {
		fields["note"] = r.Note
	}

	if kind == KindTasks {
		fields["completed"] = r.Completed
		if r.Date != "" {
			fields["date"] = r.Date
		}
		return fields
	}

	fields["recurrence_type"] = string(r.RecurrenceType)
	fields["recurrence_interval"] = r.RecurrenceInterval
	fields["start_date"] = r.StartDate
	fields["persistent"] = r.Persistent
	if r.EndDate != "" {
		fields["end_date"] = r.EndDate
	}
	if r.RecurrenceType == RecurrenceWeekly && len(r.RecurrenceDays) > 0 {
		fields["recurrence_days"] = r.RecurrenceDays
	}
	if r.RecurrenceType.WeeklyFamily() {
		fields["weekly_interval"] = r.WeeklyInterval
		fields["selected_weekday"] = r.SelectedWeekday
	}
	if r.RecurrenceType == RecurrenceMonthlyWeekday {
		fields["monthly_ordinal"] = r.MonthlyOrdinal
		fields["monthly_weekday"] = r.MonthlyWeekday
	}
	return fields
}
