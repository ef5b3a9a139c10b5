package child

// Child is a family member chores can be assigned to. Each child belongs to
// exactly one user; all lookups are scoped by the owning user's id.
type Child struct {
	Id              int
	Name            string
	WeeklyAllowance float64
}
