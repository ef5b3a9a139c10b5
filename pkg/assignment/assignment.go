package assignment

import "time"

// Assignment is one ledger row: a single occurrence of a chore assigned to a
// child for a specific week. For a chore with frequency N, a week holds rows
// with OccurrenceNumber 1..N.
type Assignment struct {
	Id      int
	ChildId int
	ChoreId int
	// ChoreName is a read-time copy joined from the chore template; it is not stored.
	ChoreName string
	// WeekStartDate is always the Monday of the week the assignment belongs to.
	WeekStartDate    time.Time
	OccurrenceNumber int
	IsCompleted      bool
	CompletionDate   *time.Time
}

// WeekStart normalizes any date to the Monday of its week, at midnight UTC.
func WeekStart(date time.Time) time.Time {
	date = date.UTC()
	delta := (int(date.Weekday()) - int(time.Monday) + 7) % 7
	monday := date.AddDate(0, 0, -delta)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates a timestamp to its calendar date, at midnight UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
