package chore

// ChoreTemplate is a reusable definition of a task with a weekly recurrence
// count. It is not itself an assignment; the assignment generator expands it
// into FrequencyPerWeek occurrences for a given child and week.
type ChoreTemplate struct {
	Id          int
	Name        string
	Description string
	// FrequencyPerWeek is how many times per week the chore should be done. Always >= 1.
	FrequencyPerWeek int
}
