package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/scheduler"
)

const defaultDaysAhead = 6 // one inclusive week

type scheduleService struct {
	rules    repository.RuleSetRepo
	tasks    TaskSource
	events   EventSource
	sink     EventSink
	rng      *rand.Rand
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewScheduleService wires the scheduling facade. The random source
// feeds score perturbation; pass a seeded source for deterministic
// runs (tests) or nil for a time-seeded one.
func NewScheduleService(
	rules repository.RuleSetRepo,
	tasks TaskSource,
	events EventSource,
	sink EventSink,
	rng *rand.Rand,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ScheduleService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		rules:    rules,
		tasks:    tasks,
		events:   events,
		sink:     sink,
		rng:      rng,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Preview runs one full scheduling pass: load rules, fetch tasks and
// booked events, then score, generate slots, and allocate. Collaborator
// fetch failures abort the run; nothing is written anywhere.
//
// Task fetching deliberately widens rather than returning an empty
// preview: when the enabled blocks carry resource associations but the
// filtered fetch matches nothing, the fetch is retried unfiltered. A
// partially configured rule set still produces a usable plan.
func (s *scheduleService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	started := time.Now()
	resp, err := s.preview(ctx, req)
	event := UseCaseEvent{
		Name:      "schedule_preview",
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
	}
	if resp != nil {
		event.Fields = map[string]any{
			"requested": resp.Requested,
			"placed":    resp.Placed,
			"slots":     resp.SlotCount,
		}
	}
	s.observer.ObserveUseCase(ctx, event)
	return resp, err
}

func (s *scheduleService) preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	rules, err := s.loadRules(ctx, req.Scope)
	if err != nil {
		return nil, err
	}

	daysAhead := req.DaysAhead
	if daysAhead <= 0 {
		daysAhead = defaultDaysAhead
	}
	start := req.StartDate
	end := start.AddDate(0, 0, daysAhead)

	tasks, err := s.fetchTasks(ctx, rules)
	if err != nil {
		return nil, fmt.Errorf("fetching pending tasks: %w", err)
	}

	booked, err := s.events.ListEvents(ctx, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("fetching booked events: %w", err)
	}

	ranked := scheduler.RankTasks(tasks, *rules, s.rng)
	slots := scheduler.GenerateSlots(start, end, *rules, booked, s.logger)
	result := scheduler.Allocate(ranked, slots, *rules)

	return &PreviewResponse{
		Events:    result.Events,
		Requested: result.Requested,
		Placed:    result.Placed,
		SlotCount: len(slots),
		Start:     start,
		End:       end,
	}, nil
}

// Upload pushes placements to the calendar one create-call at a time,
// tallying per-event outcomes. One failure never aborts the batch.
func (s *scheduleService) Upload(ctx context.Context, events []domain.PlacedEvent) (*UploadResponse, error) {
	started := time.Now()
	resp := &UploadResponse{}
	for _, ev := range events {
		if _, err := s.sink.CreateEvent(ctx, ev); err != nil {
			s.logger.Warn("event upload failed", "event_id", ev.ID, "title", ev.Title, "error", err)
			resp.Failures = append(resp.Failures, UploadFailure{
				EventID: ev.ID,
				Title:   ev.Title,
				Reason:  err.Error(),
			})
			continue
		}
		resp.Created++
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "schedule_upload",
		Duration:  time.Since(started),
		Success:   len(resp.Failures) == 0,
		StartedAt: started,
		Fields: map[string]any{
			"created": resp.Created,
			"failed":  len(resp.Failures),
		},
	})
	return resp, nil
}

// loadRules resolves the scope's rule set. A missing live-week scope
// falls back to defaults; a missing template is a caller mistake.
func (s *scheduleService) loadRules(ctx context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error) {
	rules, err := s.rules.GetRules(ctx, scope)
	if err == nil {
		return rules, nil
	}
	if errors.Is(err, repository.ErrNotFound) && scope.Kind == domain.ScopeWeek {
		defaults := domain.DefaultRules()
		return &defaults, nil
	}
	return nil, fmt.Errorf("loading rules: %w", err)
}

func (s *scheduleService) fetchTasks(ctx context.Context, rules *domain.SchedulingRules) ([]domain.Task, error) {
	resourceIDs := rules.ResourceIDs()
	tasks, err := s.tasks.ListIncompleteTasks(ctx, resourceIDs)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 && len(resourceIDs) > 0 {
		s.logger.Info("no tasks matched resource filter, widening to all incomplete tasks",
			"resources", resourceIDs)
		return s.tasks.ListIncompleteTasks(ctx, nil)
	}
	return tasks, nil
}
