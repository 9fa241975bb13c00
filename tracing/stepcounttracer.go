package tracing

import "sync"

// StepCountTracer counts the steps added to the tasks that pass its filter.
// On the zones phase of a multizone step the steps are the names of the
// zones stepped, so the counts tell how often each zone advanced.
type StepCountTracer struct {
	filter TaskFilter

	mu    sync.Mutex
	open  map[string]map[string]bool
	names []string
	steps map[string]uint64
	tasks map[string]uint64
}

// NewStepCountTracer creates a StepCountTracer.
func NewStepCountTracer(filter TaskFilter) *StepCountTracer {
	return &StepCountTracer{
		filter: filter,
		open:   make(map[string]map[string]bool),
		steps:  make(map[string]uint64),
		tasks:  make(map[string]uint64),
	}
}

// StepNames returns the step names in the order they were first seen.
func (t *StepCountTracer) StepNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]string(nil), t.names...)
}

// StepCount returns how many times a step was added.
func (t *StepCountTracer) StepCount(name string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.steps[name]
}

// TaskCount returns how many tasks had the step at least once.
func (t *StepCountTracer) TaskCount(name string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.tasks[name]
}

// StartTask opens a matching task.
func (t *StepCountTracer) StartTask(task Task) {
	if !t.filter(task) {
		return
	}

	t.mu.Lock()
	t.open[task.ID] = make(map[string]bool)
	t.mu.Unlock()
}

// StepTask counts the steps of an open task.
func (t *StepCountTracer) StepTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seen, ok := t.open[task.ID]
	if !ok {
		return
	}

	for _, step := range task.Steps {
		if _, known := t.steps[step.What]; !known {
			t.names = append(t.names, step.What)
		}

		t.steps[step.What]++

		if !seen[step.What] {
			seen[step.What] = true
			t.tasks[step.What]++
		}
	}
}

// EndTask closes the task.
func (t *StepCountTracer) EndTask(task Task) {
	t.mu.Lock()
	delete(t.open, task.ID)
	t.mu.Unlock()
}
