package domain

import "time"

// BookedEvent is an already-committed calendar event that slot
// generation must schedule around.
type BookedEvent struct {
	ID    string
	Start time.Time
	End   time.Time
}
