package datarecording

import (
	"os"
	"strings"
	"time"
)

// RunInfoTable is the table that describes the run itself.
const RunInfoTable = "run_info"

// RunInfo is one property of a run.
type RunInfo struct {
	Property string
	Value    string
}

const timeFormat = "2006-01-02 15:04:05.000000000"

// RunRecorder records when and how a run was started and ended.
type RunRecorder struct {
	recorder DataRecorder
	entries  []RunInfo
}

// NewRunRecorder creates the run info table in recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunInfoTable, RunInfo{})

	return &RunRecorder{recorder: recorder}
}

// Start records the start time, command line and working directory.
func (e *RunRecorder) Start() {
	e.Set("Start Time", time.Now().Format(timeFormat))
	e.Set("Command", strings.Join(os.Args, " "))

	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	e.Set("Working Directory", cwd)
}

// Set records an extra property, such as the run ID or the random seed.
func (e *RunRecorder) Set(property, value string) {
	e.entries = append(e.entries, RunInfo{Property: property, Value: value})
}

// End writes the recorded properties along with the end time.
func (e *RunRecorder) End() {
	e.Set("End Time", time.Now().Format(timeFormat))

	for _, entry := range e.entries {
		e.recorder.InsertData(RunInfoTable, entry)
	}

	e.entries = nil

	e.recorder.Flush()
}
