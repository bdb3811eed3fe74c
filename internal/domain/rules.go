package domain

import "time"

// TimeBlock is a recurring availability window within a rule set.
// A block with a ResourceID only accepts tasks carrying the same
// association; an empty ResourceID leaves the block open to any task.
type TimeBlock struct {
	ID         string
	Day        BlockDay
	Start      TimeOfDay
	End        TimeOfDay
	Enabled    bool
	ResourceID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the block's interval is well-formed.
// Blocks that fail this check are skipped during slot generation,
// never treated as fatal.
func (b TimeBlock) Valid() bool {
	return b.Start < b.End
}

// SchedulingRules holds the tunable parameters and availability
// configuration for one scheduling scope.
type SchedulingRules struct {
	// Duration caps, minutes. A task whose estimate exceeds
	// LongTaskThresholdMin is capped at MaxLongTaskDurationMin,
	// otherwise at MaxTaskDurationMin.
	MaxTaskDurationMin     int
	MaxLongTaskDurationMin int
	LongTaskThresholdMin   int

	// Scoring weights: relative influence of priority vs. estimated
	// duration. RandomnessFactor is the half-width of the uniform
	// perturbation added to every score.
	PriorityWeight   float64
	TimeWeight       float64
	RandomnessFactor float64

	// Days eligible for scheduling. A day absent or false is never
	// scheduled into.
	WorkingDays map[Weekday]bool

	Blocks []TimeBlock
}

// DefaultRules returns the out-of-the-box configuration: weekday
// scheduling, 2h cap (3h for tasks estimated over 2h), priority-leaning
// weights, and a small randomness factor for variety between runs.
func DefaultRules() SchedulingRules {
	return SchedulingRules{
		MaxTaskDurationMin:     120,
		MaxLongTaskDurationMin: 180,
		LongTaskThresholdMin:   120,
		PriorityWeight:         0.7,
		TimeWeight:             0.3,
		RandomnessFactor:       0.05,
		WorkingDays: map[Weekday]bool{
			Monday: true, Tuesday: true, Wednesday: true,
			Thursday: true, Friday: true,
			Saturday: false, Sunday: false,
		},
	}
}

// EnabledBlocks returns the enabled, well-formed blocks.
func (r SchedulingRules) EnabledBlocks() []TimeBlock {
	var out []TimeBlock
	for _, b := range r.Blocks {
		if b.Enabled && b.Valid() {
			out = append(out, b)
		}
	}
	return out
}

// ResourceIDs collects the distinct resource associations carried by
// enabled blocks, in first-seen order.
func (r SchedulingRules) ResourceIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range r.Blocks {
		if !b.Enabled || b.ResourceID == "" || seen[b.ResourceID] {
			continue
		}
		seen[b.ResourceID] = true
		out = append(out, b.ResourceID)
	}
	return out
}
