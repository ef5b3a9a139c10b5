package stats

import "time"

// WeeklySummary aggregates a child's assignments for one week and prorates
// the weekly allowance by the share of completed occurrences.
type WeeklySummary struct {
	ChildId              int
	ChildName            string
	WeekStartDate        time.Time
	TotalAssignments     int
	CompletedAssignments int
	WeeklyAllowance      float64
	EarnedAllowance      float64
}
