package domain

// DefaultEstimateMin is assumed for tasks with no duration estimate.
const DefaultEstimateMin = 30

// Task is a pending item read from the external workspace. The scheduler
// never mutates tasks; scores are computed per run and kept outside the
// task itself.
type Task struct {
	ID           string
	Title        string
	Completed    bool
	EstimatedMin int
	Priority     Priority
	ResourceID   string
}

// Estimate returns the task's estimated duration in minutes, falling
// back to DefaultEstimateMin when unset.
func (t Task) Estimate() int {
	if t.EstimatedMin <= 0 {
		return DefaultEstimateMin
	}
	return t.EstimatedMin
}
