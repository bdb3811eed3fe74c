package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// TaskSource lists pending tasks from the external workspace.
// An empty resourceIDs filter means "all incomplete tasks".
type TaskSource interface {
	ListIncompleteTasks(ctx context.Context, resourceIDs []string) ([]domain.Task, error)
}

// EventSource lists booked events from the external calendar for a
// half-open window [start, end).
type EventSource interface {
	ListEvents(ctx context.Context, start, end time.Time) ([]domain.BookedEvent, error)
}

// EventSink writes placements to the external calendar, which assigns
// durable identity to each created event.
type EventSink interface {
	CreateEvent(ctx context.Context, ev domain.PlacedEvent) (domain.BookedEvent, error)
}

// PreviewRequest asks for a fresh scheduling run over a date window.
type PreviewRequest struct {
	Scope     domain.BlockScope
	StartDate time.Time // date at midnight in the scheduling location
	DaysAhead int       // window is [StartDate, StartDate+DaysAhead], inclusive; default 6 (one week)
}

// PreviewResponse carries the proposed placements plus the
// placed-vs-requested tally for "nothing fit" diagnostics.
type PreviewResponse struct {
	Events    []domain.PlacedEvent
	Requested int
	Placed    int
	SlotCount int
	Start     time.Time
	End       time.Time
}

// UploadFailure records one event the calendar rejected.
type UploadFailure struct {
	EventID string
	Title   string
	Reason  string
}

// UploadResponse tallies the per-event outcomes of an upload. A partial
// upload is an expected, reportable result, not a batch error.
type UploadResponse struct {
	Created  int
	Failures []UploadFailure
}

// ScheduleService orchestrates one scheduling run: rules, pending
// tasks, and booked events in; placements out. Each preview recomputes
// from scratch; nothing is persisted between calls.
type ScheduleService interface {
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	Upload(ctx context.Context, events []domain.PlacedEvent) (*UploadResponse, error)
}

// RulesService manages scheduling rules and time blocks per scope.
type RulesService interface {
	// GetRules loads a scope's rules. The live-week scope is created
	// with defaults on first access; missing templates are an error.
	GetRules(ctx context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error)
	UpdateRules(ctx context.Context, scope domain.BlockScope, rules domain.SchedulingRules) error
	ListScopes(ctx context.Context) ([]domain.BlockScope, error)

	AddBlock(ctx context.Context, scope domain.BlockScope, b domain.TimeBlock) error
	RemoveBlock(ctx context.Context, blockID string) error
	SetBlockEnabled(ctx context.Context, blockID string, enabled bool) error
}
