package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRuleRepo is an in-memory RuleSetRepo keyed by scope.
type fakeRuleRepo struct {
	rules map[string]*domain.SchedulingRules
	saves int
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*domain.SchedulingRules)}
}

func scopeKey(scope domain.BlockScope) string {
	return string(scope.Kind) + "/" + scope.Name
}

func (f *fakeRuleRepo) GetRules(_ context.Context, scope domain.BlockScope) (*domain.SchedulingRules, error) {
	r, ok := f.rules[scopeKey(scope)]
	if !ok {
		return nil, fmt.Errorf("rule set %s/%s: %w", scope.Kind, scope.Name, repository.ErrNotFound)
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRuleRepo) SaveRules(_ context.Context, scope domain.BlockScope, rules domain.SchedulingRules) error {
	f.saves++
	f.rules[scopeKey(scope)] = &rules
	return nil
}

func (f *fakeRuleRepo) ListScopes(context.Context) ([]domain.BlockScope, error) {
	return nil, nil
}

func (f *fakeRuleRepo) AddBlock(_ context.Context, scope domain.BlockScope, b domain.TimeBlock) error {
	r, ok := f.rules[scopeKey(scope)]
	if !ok {
		return fmt.Errorf("rule set %s/%s: %w", scope.Kind, scope.Name, repository.ErrNotFound)
	}
	r.Blocks = append(r.Blocks, b)
	return nil
}

func (f *fakeRuleRepo) UpdateBlock(context.Context, domain.TimeBlock) error { return nil }

func (f *fakeRuleRepo) SetBlockEnabled(context.Context, string, bool) error { return nil }

func (f *fakeRuleRepo) DeleteBlock(context.Context, string) error { return nil }

// fakeTaskSource records the resource filters it was called with and
// serves canned responses in order.
type fakeTaskSource struct {
	responses [][]domain.Task
	err       error
	filters   [][]string
}

func (f *fakeTaskSource) ListIncompleteTasks(_ context.Context, resourceIDs []string) ([]domain.Task, error) {
	f.filters = append(f.filters, resourceIDs)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

type fakeEventSource struct {
	events     []domain.BookedEvent
	err        error
	start, end time.Time
}

func (f *fakeEventSource) ListEvents(_ context.Context, start, end time.Time) ([]domain.BookedEvent, error) {
	f.start, f.end = start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

type fakeSink struct {
	created []domain.PlacedEvent
	failFor map[string]error
}

func (f *fakeSink) CreateEvent(_ context.Context, ev domain.PlacedEvent) (domain.BookedEvent, error) {
	if err, ok := f.failFor[ev.ID]; ok {
		return domain.BookedEvent{}, err
	}
	f.created = append(f.created, ev)
	return domain.BookedEvent{ID: "cal-" + ev.ID, Start: ev.Start, End: ev.End}, nil
}

type capturingObserver struct {
	events []UseCaseEvent
}

func (c *capturingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	c.events = append(c.events, event)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// monday is a fixed Monday used as the scheduling window start.
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newTestService(repo repository.RuleSetRepo, tasks TaskSource, events EventSource, sink EventSink, obs ...UseCaseObserver) ScheduleService {
	rng := rand.New(rand.NewSource(1))
	return NewScheduleService(repo, tasks, events, sink, rng, discardLogger(), obs...)
}

func TestPreview_PlacesTasksOnEmptyCalendar(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))

	tasks := &fakeTaskSource{responses: [][]domain.Task{{
		{ID: "t1", Title: "Write report", EstimatedMin: 60, Priority: domain.PriorityHigh},
		{ID: "t2", Title: "Review notes", EstimatedMin: 30, Priority: domain.PriorityLow},
	}}}
	events := &fakeEventSource{}

	svc := newTestService(repo, tasks, events, &fakeSink{})
	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Placed)
	assert.Len(t, resp.Events, 2)
	assert.Greater(t, resp.SlotCount, 0)
	assert.Equal(t, monday, resp.Start)
	assert.Equal(t, monday.AddDate(0, 0, 6), resp.End)

	for _, ev := range resp.Events {
		assert.False(t, ev.Start.Before(monday))
		assert.True(t, ev.End.Before(monday.AddDate(0, 0, 7)))
	}
}

func TestPreview_ListsEventsForInclusiveWindow(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
	events := &fakeEventSource{}

	svc := newTestService(repo, &fakeTaskSource{}, events, &fakeSink{})
	_, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
		DaysAhead: 2,
	})
	require.NoError(t, err)

	// The last window day is included, so the calendar read extends one
	// day past it.
	assert.Equal(t, monday, events.start)
	assert.Equal(t, monday.AddDate(0, 0, 3), events.end)
}

func TestPreview_MissingWeekScopeFallsBackToDefaults(t *testing.T) {
	repo := newFakeRuleRepo() // nothing saved
	tasks := &fakeTaskSource{responses: [][]domain.Task{{
		{ID: "t1", Title: "Task", EstimatedMin: 30},
	}}}

	svc := newTestService(repo, tasks, &fakeEventSource{}, &fakeSink{})
	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Placed)
	// The fallback is read-only: nothing gets persisted during preview.
	assert.Equal(t, 0, repo.saves)
}

func TestPreview_MissingTemplateScopeFails(t *testing.T) {
	svc := newTestService(newFakeRuleRepo(), &fakeTaskSource{}, &fakeEventSource{}, &fakeSink{})

	_, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.TemplateScope("nope"),
		StartDate: monday,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPreview_WidensTaskFetchWhenFilterMatchesNothing(t *testing.T) {
	repo := newFakeRuleRepo()
	rules := domain.DefaultRules()
	rules.Blocks = []domain.TimeBlock{{
		ID:         "b1",
		Day:        domain.BlockDayWeekday,
		Start:      domain.MustTimeOfDay("09:00"),
		End:        domain.MustTimeOfDay("17:00"),
		Enabled:    true,
		ResourceID: "proj-x",
	}}
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), rules))

	tasks := &fakeTaskSource{responses: [][]domain.Task{
		{}, // filtered fetch: nothing
		{{ID: "t1", Title: "Task", EstimatedMin: 30}},
	}}

	svc := newTestService(repo, tasks, &fakeEventSource{}, &fakeSink{})
	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.NoError(t, err)

	require.Len(t, tasks.filters, 2)
	assert.Equal(t, []string{"proj-x"}, tasks.filters[0])
	assert.Nil(t, tasks.filters[1])
	assert.Equal(t, 1, resp.Requested)
}

func TestPreview_NoWideningWithoutResourceFilter(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
	tasks := &fakeTaskSource{}

	svc := newTestService(repo, tasks, &fakeEventSource{}, &fakeSink{})
	resp, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.NoError(t, err)
	assert.Len(t, tasks.filters, 1)
	assert.Equal(t, 0, resp.Requested)
}

func TestPreview_TaskSourceFailureAborts(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
	tasks := &fakeTaskSource{err: errors.New("workspace down")}

	svc := newTestService(repo, tasks, &fakeEventSource{}, &fakeSink{})
	_, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching pending tasks")
}

func TestPreview_EventSourceFailureAborts(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
	events := &fakeEventSource{err: errors.New("calendar down")}

	svc := newTestService(repo, &fakeTaskSource{}, events, &fakeSink{})
	_, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching booked events")
}

func TestPreview_DeterministicWithSeededSource(t *testing.T) {
	run := func() *PreviewResponse {
		repo := newFakeRuleRepo()
		require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
		tasks := &fakeTaskSource{responses: [][]domain.Task{{
			{ID: "t1", Title: "A", EstimatedMin: 45, Priority: domain.PriorityMedium},
			{ID: "t2", Title: "B", EstimatedMin: 90, Priority: domain.PriorityHigh},
			{ID: "t3", Title: "C", EstimatedMin: 30},
		}}}
		svc := newTestService(repo, tasks, &fakeEventSource{}, &fakeSink{})
		resp, err := svc.Preview(context.Background(), PreviewRequest{
			Scope:     domain.LiveWeekScope(),
			StartDate: monday,
		})
		require.NoError(t, err)
		return resp
	}

	first, second := run(), run()
	require.Len(t, second.Events, len(first.Events))
	for i := range first.Events {
		assert.Equal(t, first.Events[i].TaskID, second.Events[i].TaskID)
		assert.Equal(t, first.Events[i].Start, second.Events[i].Start)
		assert.Equal(t, first.Events[i].End, second.Events[i].End)
	}
}

func TestPreview_NotifiesObserver(t *testing.T) {
	repo := newFakeRuleRepo()
	require.NoError(t, repo.SaveRules(context.Background(), domain.LiveWeekScope(), domain.DefaultRules()))
	obs := &capturingObserver{}

	svc := newTestService(repo, &fakeTaskSource{}, &fakeEventSource{}, &fakeSink{}, obs)
	_, err := svc.Preview(context.Background(), PreviewRequest{
		Scope:     domain.LiveWeekScope(),
		StartDate: monday,
	})
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "schedule_preview", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Contains(t, obs.events[0].Fields, "slots")
}

func TestUpload_TalliesPerEventOutcomes(t *testing.T) {
	sink := &fakeSink{failFor: map[string]error{
		"ev-2": errors.New("calendar rejected event: status 422"),
	}}
	svc := newTestService(newFakeRuleRepo(), &fakeTaskSource{}, &fakeEventSource{}, sink)

	events := []domain.PlacedEvent{
		{ID: "ev-1", Title: "First", Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
		{ID: "ev-2", Title: "Second", Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		{ID: "ev-3", Title: "Third", Start: monday.Add(11 * time.Hour), End: monday.Add(12 * time.Hour)},
	}
	resp, err := svc.Upload(context.Background(), events)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Created)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "ev-2", resp.Failures[0].EventID)
	assert.Equal(t, "Second", resp.Failures[0].Title)
	assert.Contains(t, resp.Failures[0].Reason, "422")
	assert.Len(t, sink.created, 2)
}

func TestUpload_EmptyBatch(t *testing.T) {
	sink := &fakeSink{}
	svc := newTestService(newFakeRuleRepo(), &fakeTaskSource{}, &fakeEventSource{}, sink)

	resp, err := svc.Upload(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Empty(t, resp.Failures)
}
