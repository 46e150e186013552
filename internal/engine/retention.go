package engine

import (
	"container/heap"

	"github.com/meltforce/liftplan/internal/models"
)

// retentionScore ranks how much an accessory deserves to survive trimming:
// its fatigue cost, plus two per primary muscle no main lift covers, minus a
// penalty per primary muscle other accessories already cover more than once.
func retentionScore(ex models.Exercise, mains, accessories []models.WorkoutExercise) float64 {
	score := float64(ex.FatigueCost)

	for _, m := range ex.PrimaryMuscles {
		coveredByMain := false
		for _, main := range mains {
			if main.Exercise.HasPrimaryMuscle(m) {
				coveredByMain = true
				break
			}
		}
		if !coveredByMain {
			score += 2
		}

		covered := 0
		for _, acc := range accessories {
			if acc.Exercise.ID == ex.ID {
				continue
			}
			if acc.Exercise.HasPrimaryMuscle(m) {
				covered++
			}
		}
		if covered > 1 {
			score -= float64(covered - 1)
		}
	}
	return score
}

// retentionItem is one accessory in the trim queue.
type retentionItem struct {
	id    string
	score float64
}

// retentionQueue is a min-heap over retention score; the next pop is the
// accessory least worth keeping. Ties break on ID to keep removal order
// well-defined.
type retentionQueue []retentionItem

func (q retentionQueue) Len() int { return len(q) }

func (q retentionQueue) Less(i, j int) bool {
	if q[i].score != q[j].score {
		return q[i].score < q[j].score
	}
	return q[i].id < q[j].id
}

func (q retentionQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *retentionQueue) Push(x any) { *q = append(*q, x.(retentionItem)) }

func (q *retentionQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// buildRetentionQueue scores every accessory against the current selection.
func buildRetentionQueue(mains, accessories []models.WorkoutExercise) *retentionQueue {
	q := make(retentionQueue, 0, len(accessories))
	for _, acc := range accessories {
		q = append(q, retentionItem{
			id:    acc.Exercise.ID,
			score: retentionScore(acc.Exercise, mains, accessories),
		})
	}
	heap.Init(&q)
	return &q
}

// popLowestRetention returns the ID of the least-retainable accessory.
func popLowestRetention(mains, accessories []models.WorkoutExercise) (string, bool) {
	if len(accessories) == 0 {
		return "", false
	}
	q := buildRetentionQueue(mains, accessories)
	item := heap.Pop(q).(retentionItem)
	return item.id, true
}
