package tracing

// A TaskStep represents a milestone in the processing of task
type TaskStep struct {
	Time float64 `json:"time"`
	What string  `json:"what"`
}

// A Task is a piece of work done by a domain, such as one timestep of a
// multizone model or one phase of that timestep.
type Task struct {
	ID        string      `json:"id"`
	ParentID  string      `json:"parent_id"`
	Kind      string      `json:"kind"`
	What      string      `json:"what"`
	Where     string      `json:"where"`
	StartTime float64     `json:"start_time"`
	EndTime   float64     `json:"end_time"`
	Steps     []TaskStep  `json:"steps"`
	Detail    interface{} `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// KindIs returns a filter that keeps the tasks of a kind.
func KindIs(kind string) TaskFilter {
	return func(t Task) bool {
		return t.Kind == kind
	}
}

// WhatIs returns a filter that keeps the tasks doing what.
func WhatIs(what string) TaskFilter {
	return func(t Task) bool {
		return t.What == what
	}
}
