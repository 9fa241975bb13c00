package tracing

import (
	"sync"

	"github.com/sarchlab/chemevo/sim"
)

// AverageTimeTracer keeps the mean and the longest duration of the tasks
// that pass its filter. Tasks that never end are not counted.
type AverageTimeTracer struct {
	clock  sim.TimeTeller
	filter TaskFilter

	mu      sync.Mutex
	started map[string]float64
	count   uint64
	mean    float64
	longest float64
	slowest string
}

// NewAverageTimeTracer creates an AverageTimeTracer that reads time from
// clock.
func NewAverageTimeTracer(
	clock sim.TimeTeller,
	filter TaskFilter,
) *AverageTimeTracer {
	return &AverageTimeTracer{
		clock:   clock,
		filter:  filter,
		started: make(map[string]float64),
	}
}

// AverageTime returns the mean duration of the ended tasks.
func (t *AverageTimeTracer) AverageTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.mean
}

// TotalCount returns the number of ended tasks.
func (t *AverageTimeTracer) TotalCount() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.count
}

// LongestTime returns the duration and the ID of the slowest ended task.
func (t *AverageTimeTracer) LongestTime() (float64, string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.longest, t.slowest
}

// StartTask notes when a matching task starts.
func (t *AverageTimeTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	now := t.clock.CurrentTime()

	t.mu.Lock()
	t.started[task.ID] = now
	t.mu.Unlock()
}

// StepTask is ignored.
func (t *AverageTimeTracer) StepTask(Task) {}

// EndTask folds the duration of the task into the mean.
func (t *AverageTimeTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start, ok := t.started[task.ID]
	if !ok {
		return
	}

	delete(t.started, task.ID)

	d := t.clock.CurrentTime() - start
	t.count++
	t.mean += (d - t.mean) / float64(t.count)

	if t.count == 1 || d > t.longest {
		t.longest = d
		t.slowest = task.ID
	}
}
