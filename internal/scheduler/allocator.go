package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tempo/internal/domain"
)

const (
	// GranularityMin is the scheduling granularity: required durations
	// round up to this and placements land on these boundaries.
	GranularityMin = 15

	// maxSplitPartMin caps each part of a split task regardless of the
	// remaining slot capacity. Fixed heuristic carried over from the
	// product behavior; revisit only with product sign-off.
	maxSplitPartMin = 60
)

// Result is the outcome of one allocation run. Requested counts every
// task handed to the allocator; Placed counts tasks that received at
// least one placement. The gap is the diagnostic for "nothing fit".
type Result struct {
	Events    []domain.PlacedEvent
	Requested int
	Placed    int
}

// Allocate walks the ranked tasks and places each into the free slots,
// consuming the pool as it goes. The input slice is copied; callers may
// reuse their slots across calls.
//
// Placement strategy per task, in order:
//  1. earliest single candidate slot large enough for the full
//     (capped, granularity-rounded) duration;
//  2. if the duration exceeds 60 min, split across slots, largest slot
//     first, each part capped at min(slot, 60, remaining);
//  3. otherwise a partial placement into the largest candidate slot of
//     at least 15 min, consuming it entirely;
//  4. no candidates at all: the task is skipped silently.
func Allocate(ranked []ScoredTask, slots []domain.TimeSlot, rules domain.SchedulingRules) Result {
	pool := make([]domain.TimeSlot, len(slots))
	copy(pool, slots)

	res := Result{Requested: len(ranked)}
	for _, st := range ranked {
		events := placeTask(st.Task, &pool, rules)
		if len(events) > 0 {
			res.Placed++
			res.Events = append(res.Events, events...)
		}
	}
	return res
}

// RequiredDuration returns the minutes the allocator will try to place
// for a task: the estimate capped by the long-task rules, rounded up to
// the scheduling granularity.
func RequiredDuration(t domain.Task, rules domain.SchedulingRules) int {
	est := t.Estimate()
	capMin := rules.MaxTaskDurationMin
	if rules.LongTaskThresholdMin > 0 && est > rules.LongTaskThresholdMin {
		capMin = rules.MaxLongTaskDurationMin
	}
	if capMin > 0 && est > capMin {
		est = capMin
	}
	return roundUpToGranularity(est)
}

func placeTask(t domain.Task, pool *[]domain.TimeSlot, rules domain.SchedulingRules) []domain.PlacedEvent {
	required := RequiredDuration(t, rules)
	candidates := candidateIndexes(t, *pool)
	if len(candidates) == 0 {
		return nil
	}

	// Single-slot placement: earliest candidate that fits the whole task.
	for _, idx := range candidates {
		slot := (*pool)[idx]
		if slot.DurationMin() >= required {
			ev := buildEvent(t, newEventID(), slot, required, 0, false)
			consume(pool, idx, required)
			return []domain.PlacedEvent{ev}
		}
	}

	if required > maxSplitPartMin {
		return placeSplit(t, required, pool)
	}
	return placePartial(t, required, pool)
}

// placeSplit spreads the task across slots, taking the largest remaining
// candidate each round. Parts are capped at maxSplitPartMin and floored
// to the scheduling granularity. Each part consumes its slot entirely,
// even when the cap places less than the slot holds; a 90-minute slot
// therefore yields a single 60-minute part.
func placeSplit(t domain.Task, required int, pool *[]domain.TimeSlot) []domain.PlacedEvent {
	baseID := newEventID()
	remaining := required
	var events []domain.PlacedEvent

	for remaining > 0 {
		idx := largestCandidate(t, *pool)
		if idx < 0 {
			break
		}
		slot := (*pool)[idx]
		part := minInt(slot.DurationMin(), maxSplitPartMin, remaining)
		part = part / GranularityMin * GranularityMin
		if part < GranularityMin {
			break
		}

		ev := buildEvent(t, fmt.Sprintf("%s-part%d", baseID, len(events)+1), slot, part, len(events)+1, false)
		events = append(events, ev)
		*pool = append((*pool)[:idx], (*pool)[idx+1:]...)
		remaining -= part
	}
	return events
}

// placePartial truncates the task into the largest candidate slot,
// consuming the slot entirely. The placement may end off-granularity
// when the slot itself does.
func placePartial(t domain.Task, required int, pool *[]domain.TimeSlot) []domain.PlacedEvent {
	idx := largestCandidate(t, *pool)
	if idx < 0 {
		return nil
	}
	slot := (*pool)[idx]
	if slot.DurationMin() < MinSlotMin {
		return nil
	}

	ev := buildEvent(t, newEventID(), slot, slot.DurationMin(), 0, true)
	consume(pool, idx, slot.DurationMin())
	return []domain.PlacedEvent{ev}
}

// candidateIndexes returns pool indexes of slots the task may use,
// sorted chronologically.
func candidateIndexes(t domain.Task, pool []domain.TimeSlot) []int {
	var idxs []int
	for i, s := range pool {
		if s.Accepts(t) {
			idxs = append(idxs, i)
		}
	}
	for i := 1; i < len(idxs); i++ {
		for j := i; j > 0 && pool[idxs[j]].Before(pool[idxs[j-1]]); j-- {
			idxs[j], idxs[j-1] = idxs[j-1], idxs[j]
		}
	}
	return idxs
}

// largestCandidate returns the pool index of the biggest slot the task
// may use, ties broken by discovery order. Returns -1 when none remain.
func largestCandidate(t domain.Task, pool []domain.TimeSlot) int {
	best := -1
	for i, s := range pool {
		if !s.Accepts(t) {
			continue
		}
		if best < 0 || s.DurationMin() > pool[best].DurationMin() {
			best = i
		}
	}
	return best
}

// consume shrinks the slot at idx by minutes from its start, removing it
// from the pool when fully used.
func consume(pool *[]domain.TimeSlot, idx, minutes int) {
	slot := (*pool)[idx]
	newStart := slot.Start + domain.TimeOfDay(minutes)
	if newStart >= slot.End {
		*pool = append((*pool)[:idx], (*pool)[idx+1:]...)
		return
	}
	slot.Start = newStart
	(*pool)[idx] = slot
}

func buildEvent(t domain.Task, id string, slot domain.TimeSlot, minutes, part int, partial bool) domain.PlacedEvent {
	start := slot.StartAt()
	title := t.Title
	switch {
	case part > 0:
		title = fmt.Sprintf("%s (part %d)", t.Title, part)
	case partial:
		title = fmt.Sprintf("%s (partial)", t.Title)
	}

	desc := fmt.Sprintf("Scheduled by tempo | task:%s | priority:%s", t.ID, priorityLabel(t.Priority))
	if partial {
		desc += " | partial placement"
	}

	return domain.PlacedEvent{
		ID:          id,
		TaskID:      t.ID,
		Title:       title,
		Start:       start,
		End:         start.Add(time.Duration(minutes) * time.Minute),
		Description: desc,
		Category:    domain.CategoryFor(t.Priority),
		Partial:     partial,
		Part:        part,
	}
}

func priorityLabel(p domain.Priority) string {
	if p == "" {
		return string(domain.PriorityLow)
	}
	return string(p)
}

func newEventID() string {
	return uuid.NewString()
}

func roundUpToGranularity(minutes int) int {
	if minutes <= 0 {
		return GranularityMin
	}
	rem := minutes % GranularityMin
	if rem == 0 {
		return minutes
	}
	return minutes + GranularityMin - rem
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
