package importentry

// RecurrenceType enumerates how often a routine repeats.
type RecurrenceType string

const (
	RecurrenceDaily          RecurrenceType = "daily"
	RecurrenceWeekly         RecurrenceType = "weekly"
	RecurrenceMonthly        RecurrenceType = "monthly"
	RecurrenceYearly         RecurrenceType = "yearly"
	RecurrenceBiweekly       RecurrenceType = "biweekly"
	RecurrenceTriweekly      RecurrenceType = "triweekly"
	RecurrenceQuadweekly     RecurrenceType = "quadweekly"
	RecurrenceMonthlyWeekday RecurrenceType = "monthly_weekday"
)

// RecurrenceTypes lists every accepted value in documentation order.
var RecurrenceTypes = []RecurrenceType{
	RecurrenceDaily,
	RecurrenceWeekly,
	RecurrenceMonthly,
	RecurrenceYearly,
	RecurrenceBiweekly,
	RecurrenceTriweekly,
	RecurrenceQuadweekly,
	RecurrenceMonthlyWeekday,
}

func (t RecurrenceType) Valid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly,
		RecurrenceBiweekly, RecurrenceTriweekly, RecurrenceQuadweekly, RecurrenceMonthlyWeekday:
		return true
	}
	return false
}

// WeeklyFamily reports whether the type repeats on a single weekday over
// a multi-week cycle and therefore requires a selected weekday.
func (t RecurrenceType) WeeklyFamily() bool {
	switch t {
	case RecurrenceBiweekly, RecurrenceTriweekly, RecurrenceQuadweekly:
		return true
	}
	return false
}

// DefaultWeeklyInterval returns the cycle length implied by the type: 2
// for biweekly, 3 for triweekly, 4 for quadweekly, 0 otherwise.
func (t RecurrenceType) DefaultWeeklyInterval() int {
	switch t {
	case RecurrenceBiweekly:
		return 2
	case RecurrenceTriweekly:
		return 3
	case RecurrenceQuadweekly:
		return 4
	}
	return 0
}
