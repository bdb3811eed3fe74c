package domain

import "time"

// PlacedEvent is one scheduled placement produced by the allocator.
// IDs are synthesized per run; the external calendar assigns its own
// durable identity at upload time. Split placements share a TaskID and
// are numbered via Part.
type PlacedEvent struct {
	ID          string
	TaskID      string
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	Category    string // derived from priority, used for calendar coloring
	Partial     bool   // truncated below the requested duration
	Part        int    // 1-based part number for split tasks; 0 otherwise
}

// DurationMin returns the placement length in minutes.
func (e PlacedEvent) DurationMin() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}

// CategoryFor maps a task priority to the calendar category tag.
func CategoryFor(p Priority) string {
	switch p {
	case PriorityHigh:
		return "urgent"
	case PriorityMedium:
		return "focus"
	default:
		return "routine"
	}
}
