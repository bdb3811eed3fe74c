package scheduler

import (
	"math/rand"
	"sort"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ScoredTask pairs a task with its per-run score. Higher scores are
// scheduled earlier.
type ScoredTask struct {
	Task  domain.Task
	Score float64
}

// ScoreTask computes a task's scheduling score from its priority and
// estimated duration, plus a bounded random perturbation:
//
//	score = priorityWeight * (1/priorityOrdinal)
//	      + timeWeight * (1/max(estimate, 1))
//	      + uniform(-randomnessFactor, +randomnessFactor)
//
// The randomness breaks ties between equivalent tasks across repeated
// runs. A nil rng disables the perturbation, which tests rely on.
func ScoreTask(t domain.Task, rules domain.SchedulingRules, rng *rand.Rand) float64 {
	est := t.Estimate()
	if est < 1 {
		est = 1
	}
	score := rules.PriorityWeight*(1/float64(t.Priority.Ordinal())) +
		rules.TimeWeight*(1/float64(est))
	if rng != nil && rules.RandomnessFactor > 0 {
		score += (rng.Float64()*2 - 1) * rules.RandomnessFactor
	}
	return score
}

// RankTasks scores the eligible (incomplete) tasks and returns them in
// allocation order: descending score, ties broken by task ID so the
// ordering is deterministic given identical random draws.
func RankTasks(tasks []domain.Task, rules domain.SchedulingRules, rng *rand.Rand) []ScoredTask {
	scored := make([]ScoredTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		scored = append(scored, ScoredTask{Task: t, Score: ScoreTask(t, rules, rng)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Task.ID < scored[j].Task.ID
	})
	return scored
}
