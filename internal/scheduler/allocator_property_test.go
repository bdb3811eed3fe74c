package scheduler

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/tempo/internal/domain"
)

// TestAllocate_Invariants property-tests the allocator over randomized
// pools: placements stay inside their source slots' total capacity,
// respect duration caps, never pair a task with a foreign resource, and
// keep the 15-minute granularity (partial placements excepted).
func TestAllocate_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	resources := []string{"", "", "A", "B"}

	for trial := 0; trial < 200; trial++ {
		rules := domain.DefaultRules()
		rules.RandomnessFactor = 0

		numSlots := rng.Intn(6) + 1
		slots := make([]domain.TimeSlot, numSlots)
		totalCapacity := 0
		for i := range slots {
			start := 8*60 + rng.Intn(8)*60
			length := (rng.Intn(16) + 1) * 15 // 15m-4h
			if start+length > 22*60 {
				length = 22*60 - start
			}
			slots[i] = domain.TimeSlot{
				Day:        day.AddDate(0, 0, rng.Intn(5)),
				Start:      domain.TimeOfDay(start),
				End:        domain.TimeOfDay(start + length),
				ResourceID: resources[rng.Intn(len(resources))],
			}
			totalCapacity += length
		}

		numTasks := rng.Intn(8) + 1
		tasks := make([]domain.Task, numTasks)
		for i := range tasks {
			tasks[i] = domain.Task{
				ID:           fmt.Sprintf("t-%d-%d", trial, i),
				Title:        "Task",
				EstimatedMin: rng.Intn(300) + 1,
				Priority:     []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}[rng.Intn(3)],
				ResourceID:   resources[rng.Intn(len(resources))],
			}
		}

		byID := make(map[string]domain.Task, len(tasks))
		for _, task := range tasks {
			byID[task.ID] = task
		}

		res := Allocate(RankTasks(tasks, rules, rng), slots, rules)

		totalPlaced := 0
		for _, ev := range res.Events {
			totalPlaced += ev.DurationMin()
		}
		assert.LessOrEqual(t, totalPlaced, totalCapacity,
			"trial %d: placed %d min into %d min of capacity", trial, totalPlaced, totalCapacity)

		assert.LessOrEqual(t, res.Placed, res.Requested, "trial %d", trial)

		perTask := make(map[string]int)
		for _, ev := range res.Events {
			perTask[ev.TaskID] += ev.DurationMin()

			assert.Positive(t, ev.DurationMin(), "trial %d: empty placement", trial)
			if !ev.Partial {
				assert.Zero(t, ev.DurationMin()%GranularityMin,
					"trial %d: off-granularity placement %s", trial, ev.ID)
			}
			if ev.Part > 0 {
				assert.LessOrEqual(t, ev.DurationMin(), maxSplitPartMin,
					"trial %d: split part exceeds cap", trial)
			}
		}

		for taskID, placedMin := range perTask {
			assert.LessOrEqual(t, placedMin, RequiredDuration(byID[taskID], rules),
				"trial %d: task %s over-allocated", trial, taskID)
		}

		// Resource matching: replay each placement against the original
		// pool; it must fit some slot the task was allowed to use.
		for _, ev := range res.Events {
			task := byID[ev.TaskID]
			matched := false
			for _, s := range slots {
				if !s.Accepts(task) {
					continue
				}
				slotStart := s.StartAt()
				slotEnd := slotStart.Add(time.Duration(s.DurationMin()) * time.Minute)
				if !ev.Start.Before(slotStart) && !ev.End.After(slotEnd) {
					matched = true
					break
				}
			}
			assert.True(t, matched,
				"trial %d: placement %s lies outside every slot its task may use", trial, ev.ID)
		}
	}
}

// TestAllocate_NoOverlapWithinPool verifies that two placements never
// overlap when every slot is distinct, since the pool is consumed as
// placements happen.
func TestAllocate_NoOverlapWithinPool(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	for trial := 0; trial < 100; trial++ {
		rules := domain.DefaultRules()
		rules.RandomnessFactor = 0

		// Non-overlapping slots: consecutive hours on one day.
		numSlots := rng.Intn(5) + 2
		slots := make([]domain.TimeSlot, numSlots)
		for i := range slots {
			start := (8 + i*2) * 60
			slots[i] = domain.TimeSlot{
				Day:   day,
				Start: domain.TimeOfDay(start),
				End:   domain.TimeOfDay(start + 60 + rng.Intn(4)*15),
			}
		}

		numTasks := rng.Intn(6) + 1
		tasks := make([]domain.Task, numTasks)
		for i := range tasks {
			tasks[i] = domain.Task{
				ID:           fmt.Sprintf("t-%d-%d", trial, i),
				EstimatedMin: (rng.Intn(10) + 1) * 15,
			}
		}

		res := Allocate(RankTasks(tasks, rules, rng), slots, rules)

		for i, a := range res.Events {
			for j, b := range res.Events {
				if i >= j {
					continue
				}
				overlaps := a.Start.Before(b.End) && a.End.After(b.Start)
				assert.False(t, overlaps,
					"trial %d: placements %s and %s overlap", trial, a.ID, b.ID)
			}
		}
	}
}
