package importing

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/pkg/serrors"
)

const isoDate = "2006-01-02"

// Truthy/falsy token sets for the lenient boolean columns. Anything
// outside the set falls back to the column default instead of erroring,
// unlike dates which fail hard; that asymmetry is inherited behavior.
var (
	completedTruthy = []string{"true", "1", "sim", "concluída", "yes"}
	persistentFalsy = []string{"false", "0", "não", "nao", "no"}
)

// Validator applies the per-kind rule set to one raw row at a time,
// producing either a normalized record or a single row error. Checks
// run in a fixed order and the first failure wins; a bad row never
// stops the scan of subsequent rows.
type Validator struct {
	kind importentry.Kind
	refs *importentry.ReferenceSet
}

func NewValidator(kind importentry.Kind, refs *importentry.ReferenceSet) *Validator {
	return &Validator{kind: kind, refs: refs}
}

func reject(row int, err *serrors.BaseError) (*importentry.ValidatedRecord, *importentry.RowError) {
	e := importentry.NewRowError(row, err)
	return nil, &e
}

func (v *Validator) Validate(row RawRow) (*importentry.ValidatedRecord, *importentry.RowError) {
	content := row.Cell(importentry.ColContent)
	if content == "" {
		return reject(row.Index, importentry.ErrDescriptionRequired)
	}

	listRaw := row.Cell(importentry.ColListID)
	if listRaw == "" {
		return reject(row.Index, importentry.ErrListRequired)
	}

	userRaw := row.Cell(importentry.ColUserID)
	if userRaw == "" {
		return reject(row.Index, importentry.ErrResponsibleRequired)
	}

	var recType importentry.RecurrenceType
	if v.kind == importentry.KindRoutines {
		recRaw := row.Cell(importentry.ColRecurrenceType)
		if recRaw == "" {
			return reject(row.Index, importentry.ErrRecurrenceRequired)
		}
		recType = importentry.RecurrenceType(recRaw)
		if !recType.Valid() {
			return reject(row.Index, importentry.ErrRecurrenceInvalid.
				WithMessage("invalid recurrence type %q (allowed: %s)", recRaw, allowedRecurrenceTypes()).
				WithTemplateData(map[string]string{"value": recRaw}))
		}

		if row.Cell(importentry.ColStartDate) == "" {
			return reject(row.Index, importentry.ErrStartDateRequired)
		}

		if recType.WeeklyFamily() && row.Cell(importentry.ColSelectedWeekday) == "" {
			return reject(row.Index, importentry.ErrWeekdayRequired)
		}

		if recType == importentry.RecurrenceMonthlyWeekday {
			if row.Cell(importentry.ColMonthlyOrdinal) == "" || row.Cell(importentry.ColMonthlyWeekday) == "" {
				return reject(row.Index, importentry.ErrMonthlyFieldsRequired)
			}
		}
	}

	listID, ok := v.refs.ResolveList(listRaw)
	if !ok {
		return reject(row.Index, importentry.ErrListNotFound.
			WithMessage("list %q not found", listRaw).
			WithTemplateData(map[string]string{"list": listRaw}))
	}

	userID, ok := v.refs.ResolveUser(userRaw)
	if !ok {
		return reject(row.Index, importentry.ErrUserNotFound.
			WithMessage("user %q not found", userRaw).
			WithTemplateData(map[string]string{"user": userRaw}))
	}

	if !v.refs.HasAccess(listID, userID) {
		userName := v.refs.Users[userID]
		listName := v.refs.Lists[listID].Name
		return reject(row.Index, importentry.ErrUserNoAccess.
			WithMessage("user %q has no access to list %q", userName, listName).
			WithTemplateData(map[string]string{"user": userName, "list": listName}))
	}

	rec := &importentry.ValidatedRecord{
		Row:     row.Index,
		Content: content,
		ListID:  listID,
		UserID:  userID,
	}

	if v.kind == importentry.KindTasks {
		rec.Note = row.Cell(importentry.ColTaskNote)
		if raw := row.Cell(importentry.ColTaskDate); raw != "" {
			date, ok := normalizeDate(raw)
			if !ok {
				return reject(row.Index, importentry.ErrDateFormat)
			}
			rec.Date = date
		}
		rec.Completed = isTruthy(row.Cell(importentry.ColTaskCompleted))
		return rec, nil
	}

	rec.Note = row.Cell(importentry.ColRoutineNote)
	rec.RecurrenceType = recType
	rec.RecurrenceInterval = parseIntDefault(row.Cell(importentry.ColRecurrenceInterval), 1)

	start, ok := normalizeDate(row.Cell(importentry.ColStartDate))
	if !ok {
		return reject(row.Index, importentry.ErrStartDateFormat)
	}
	rec.StartDate = start

	if raw := row.Cell(importentry.ColEndDate); raw != "" {
		end, ok := normalizeDate(raw)
		if !ok {
			return reject(row.Index, importentry.ErrEndDateFormat)
		}
		rec.EndDate = end
	}

	rec.Persistent = isPersistent(row.Cell(importentry.ColPersistent))

	if recType == importentry.RecurrenceWeekly {
		rec.RecurrenceDays = parseRecurrenceDays(row.Cell(importentry.ColRecurrenceDays))
	}

	if recType.WeeklyFamily() {
		rec.SelectedWeekday = parseIntDefault(row.Cell(importentry.ColSelectedWeekday), 0)
		if raw := row.Cell(importentry.ColWeeklyInterval); raw == "" {
			rec.WeeklyInterval = recType.DefaultWeeklyInterval()
		} else {
			rec.WeeklyInterval = parseIntDefault(raw, recType.DefaultWeeklyInterval())
		}
	}

	if recType == importentry.RecurrenceMonthlyWeekday {
		rec.MonthlyOrdinal = parseIntDefault(row.Cell(importentry.ColMonthlyOrdinal), 0)
		rec.MonthlyWeekday = parseIntDefault(row.Cell(importentry.ColMonthlyWeekday), 0)
	}

	return rec, nil
}

func allowedRecurrenceTypes() string {
	names := make([]string, len(importentry.RecurrenceTypes))
	for i, t := range importentry.RecurrenceTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// normalizeDate accepts either an exact YYYY-MM-DD string or a native
// Excel date serial and normalizes both to YYYY-MM-DD. Anything else is
// a hard format error. Re-normalizing an already-normalized value is a
// no-op.
func normalizeDate(raw string) (string, bool) {
	if t, err := time.Parse(isoDate, raw); err == nil {
		return t.Format(isoDate), true
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format(isoDate), true
}

// isTruthy implements the lenient completed flag: absent and anything
// outside the truthy set are false, never an error.
func isTruthy(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, token := range completedTruthy {
		if lowered == token {
			return true
		}
	}
	return false
}

// isPersistent defaults to true; only a falsy-set token turns it off.
func isPersistent(raw string) bool {
	lowered := strings.ToLower(raw)
	for _, token := range persistentFalsy {
		if lowered == token {
			return false
		}
	}
	return true
}

// parseIntDefault mirrors the leniency of the source system's integer
// parsing: a leading signed integer is taken when present, everything
// else yields the default without erroring.
func parseIntDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	if n, ok := leadingInt(raw); ok {
		return n
	}
	return def
}

func leadingInt(s string) (int, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, false
	}
	n, err := strconv.Atoi(s[:j])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseRecurrenceDays splits a comma-delimited weekday list, silently
// dropping non-numeric or out-of-range tokens and duplicates. An empty
// result means the field is absent, which is allowed for weekly.
func parseRecurrenceDays(raw string) []int {
	if raw == "" {
		return nil
	}
	var days []int
	seen := map[int]struct{}{}
	for _, token := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	return days
}
