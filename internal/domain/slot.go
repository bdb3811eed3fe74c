package domain

import "time"

// TimeSlot is a concrete free interval on a calendar day, derived from a
// time block after subtracting booked events. Slots exist only for the
// duration of one scheduling run.
type TimeSlot struct {
	Day        time.Time // date at midnight in the scheduling location
	Start      TimeOfDay
	End        TimeOfDay
	ResourceID string // inherited from the originating block; "" = open
}

// DurationMin returns the slot length in minutes.
func (s TimeSlot) DurationMin() int {
	return s.End.Sub(s.Start)
}

// StartAt returns the absolute start instant of the slot.
func (s TimeSlot) StartAt() time.Time {
	return s.Day.Add(time.Duration(s.Start) * time.Minute)
}

// Accepts reports whether a task may be placed in this slot. Unscoped
// slots accept any task; scoped slots require a matching association.
func (s TimeSlot) Accepts(t Task) bool {
	return s.ResourceID == "" || s.ResourceID == t.ResourceID
}

// Before orders slots chronologically: by day, then start time.
func (s TimeSlot) Before(o TimeSlot) bool {
	if !s.Day.Equal(o.Day) {
		return s.Day.Before(o.Day)
	}
	return s.Start < o.Start
}
