package importentry

import (
	"fmt"

	"github.com/taskdock/importer/pkg/serrors"
)

// Row validation error kinds. Each rejected row carries exactly one of
// these; the scan never stops at a bad row.
var (
	ErrDescriptionRequired   = serrors.NewError("IMPORT_DESCRIPTION_REQUIRED", "description is required", "Import.DescriptionRequired")
	ErrListRequired          = serrors.NewError("IMPORT_LIST_REQUIRED", "list is required", "Import.ListRequired")
	ErrResponsibleRequired   = serrors.NewError("IMPORT_RESPONSIBLE_REQUIRED", "responsible user is required", "Import.ResponsibleRequired")
	ErrRecurrenceRequired    = serrors.NewError("IMPORT_RECURRENCE_REQUIRED", "recurrence type is required", "Import.RecurrenceRequired")
	ErrRecurrenceInvalid     = serrors.NewError("IMPORT_RECURRENCE_INVALID", "invalid recurrence type", "Import.RecurrenceInvalid")
	ErrStartDateRequired     = serrors.NewError("IMPORT_START_DATE_REQUIRED", "start date is required", "Import.StartDateRequired")
	ErrWeekdayRequired       = serrors.NewError("IMPORT_WEEKDAY_REQUIRED", "selected weekday is required for this recurrence type", "Import.WeekdayRequired")
	ErrMonthlyFieldsRequired = serrors.NewError("IMPORT_MONTHLY_FIELDS_REQUIRED", "monthly ordinal and monthly weekday are required for monthly_weekday", "Import.MonthlyFieldsRequired")
	ErrListNotFound          = serrors.NewError("IMPORT_LIST_NOT_FOUND", "list not found", "Import.ListNotFound")
	ErrUserNotFound          = serrors.NewError("IMPORT_USER_NOT_FOUND", "user not found", "Import.UserNotFound")
	ErrUserNoAccess          = serrors.NewError("IMPORT_USER_NO_ACCESS", "user has no access to list", "Import.UserNoAccess")
	ErrDateFormat            = serrors.NewError("IMPORT_DATE_FORMAT", "deadline must be a date in YYYY-MM-DD format", "Import.DateFormatInvalid")
	ErrStartDateFormat       = serrors.NewError("IMPORT_START_DATE_FORMAT", "start date must be a date in YYYY-MM-DD format", "Import.StartDateFormatInvalid")
	ErrEndDateFormat         = serrors.NewError("IMPORT_END_DATE_FORMAT", "end date must be a date in YYYY-MM-DD format", "Import.EndDateFormatInvalid")
)

// RowError pairs a validation error with its 1-based source row.
type RowError struct {
	Row int
	Err *serrors.BaseError
}

func NewRowError(row int, err *serrors.BaseError) RowError {
	return RowError{Row: row, Err: err}
}

func (e RowError) Message() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Err.Message)
}

func (e RowError) Code() string {
	return e.Err.Code
}
