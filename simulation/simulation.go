// Package simulation wires a model to the database it writes to, the
// monitor and the tracers.
package simulation

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/sarchlab/chemevo/datarecording"
	"github.com/sarchlab/chemevo/monitoring"
	"github.com/sarchlab/chemevo/multizone"
	"github.com/sarchlab/chemevo/output"
	"github.com/sarchlab/chemevo/tracing"
	"github.com/sarchlab/chemevo/zone"
)

// ErrAlreadyRun is returned when a simulation is asked to run a second model.
var ErrAlreadyRun = errors.New("simulation: a model has already run")

// Phases are the parts of a multizone step that are timed.
var Phases = []string{"migrate", "spawn", "recycle", "zones"}

// A Simulation runs one model and keeps the services around it.
type Simulation struct {
	id         string
	outputPath string
	ran        bool

	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	sink         *output.RecorderSink
	monitor      *monitoring.Monitor
	clock        *tracing.WallClock
	visTracer    *tracing.DBTracer

	phaseTiming bool
	phaseTimes  map[string]*tracing.TotalTimeTracer
	stepTimes   *tracing.AverageTimeTracer
	zoneSteps   *tracing.StepCountTracer
}

// ID returns the ID of the run, which tags every output row.
func (s *Simulation) ID() string {
	return s.id
}

// OutputPath returns the database file.
func (s *Simulation) OutputPath() string {
	return s.outputPath
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetSink returns the sink the model writes to.
func (s *Simulation) GetSink() output.Sink {
	return s.sink
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// GetVisTracer returns the tracer that records tasks, if any.
func (s *Simulation) GetVisTracer() *tracing.DBTracer {
	return s.visTracer
}

// SetRunInfo records an extra property of the run, such as the seed.
func (s *Simulation) SetRunInfo(property, value string) {
	s.runRecorder.Set(property, value)
}

// RunZone sets up a single zone and runs it to its last output time.
func (s *Simulation) RunZone(z *zone.Zone, outputTimes []float64) error {
	if err := s.begin(); err != nil {
		return err
	}

	if err := z.Setup(outputTimes); err != nil {
		return err
	}

	s.runRecorder.Start()
	s.runRecorder.Set("Run ID", s.id)
	s.runRecorder.Set("Model", "zone "+z.Name())

	if s.monitor != nil {
		s.monitor.WatchZone(z, totalSteps(z))
	}

	err := z.Run(s.sink)
	s.end(err)

	return err
}

// RunMultizone sets up a multizone model and runs it to its last output time.
func (s *Simulation) RunMultizone(
	m *multizone.Multizone,
	outputTimes []float64,
) error {
	if err := s.begin(); err != nil {
		return err
	}

	if err := m.Setup(outputTimes); err != nil {
		return err
	}

	s.runRecorder.Start()
	s.runRecorder.Set("Run ID", s.id)
	s.runRecorder.Set("Model", "multizone "+m.Name())
	s.runRecorder.Set("Zones", strconv.Itoa(len(m.Zones())))

	if s.visTracer != nil {
		tracing.CollectTrace(m, s.visTracer)
	}

	if s.phaseTiming {
		s.collectPhaseTimes(m)
	}

	if s.monitor != nil {
		s.monitor.WatchMultizone(m, totalSteps(m.Zones()[0]))
	}

	err := m.Run(s.sink)
	s.end(err)

	if s.phaseTiming {
		s.logPhaseTimes()
	}

	return err
}

func (s *Simulation) begin() error {
	if s.ran {
		return ErrAlreadyRun
	}

	s.ran = true

	return nil
}

func (s *Simulation) end(err error) {
	if err != nil {
		s.runRecorder.Set("Error", err.Error())
	}

	s.runRecorder.End()
}

func totalSteps(z *zone.Zone) uint64 {
	return uint64(z.LastOutputTime()/z.Dt()) + 1
}

func (s *Simulation) collectPhaseTimes(m *multizone.Multizone) {
	s.phaseTimes = make(map[string]*tracing.TotalTimeTracer)

	for _, phase := range Phases {
		t := tracing.NewTotalTimeTracer(s.clock, tracing.WhatIs(phase))
		tracing.CollectTrace(m, t)
		s.phaseTimes[phase] = t
	}

	s.stepTimes = tracing.NewAverageTimeTracer(s.clock, tracing.KindIs("step"))
	tracing.CollectTrace(m, s.stepTimes)

	s.zoneSteps = tracing.NewStepCountTracer(tracing.WhatIs("zones"))
	tracing.CollectTrace(m, s.zoneSteps)
}

// PhaseTimes returns the seconds spent in each phase of the multizone steps.
// It is empty unless phase timing is on.
func (s *Simulation) PhaseTimes() map[string]float64 {
	times := make(map[string]float64, len(s.phaseTimes))
	for phase, t := range s.phaseTimes {
		times[phase] = t.TotalTime()
	}

	return times
}

// AverageStepTime returns the mean wall time of a multizone step in seconds,
// and the number of steps it was taken over. It is zero unless phase timing
// is on.
func (s *Simulation) AverageStepTime() (float64, uint64) {
	if s.stepTimes == nil {
		return 0, 0
	}

	return s.stepTimes.AverageTime(), s.stepTimes.TotalCount()
}

// ZonesStepped returns how many times each zone was stepped. It is empty
// unless phase timing is on.
func (s *Simulation) ZonesStepped() map[string]uint64 {
	counts := make(map[string]uint64)
	if s.zoneSteps == nil {
		return counts
	}

	for _, name := range s.zoneSteps.StepNames() {
		counts[name] = s.zoneSteps.StepCount(name)
	}

	return counts
}

func (s *Simulation) logPhaseTimes() {
	for _, phase := range Phases {
		t := s.phaseTimes[phase]
		log.Printf("%-8s %10.3fs over %d steps",
			phase, t.TotalTime(), t.TotalCount())
	}

	mean, n := s.AverageStepTime()
	longest, slowest := s.stepTimes.LongestTime()
	log.Printf("step     %10.6fs on average over %d steps, slowest %s %.6fs",
		mean, n, slowest, longest)

	for _, name := range s.zoneSteps.StepNames() {
		log.Printf("zone %s stepped %d times", name, s.zoneSteps.StepCount(name))
	}
}

// Terminate writes what is left and closes the database.
func (s *Simulation) Terminate() error {
	if s.visTracer != nil {
		s.visTracer.Terminate()
	}

	if err := s.dataRecorder.Close(); err != nil {
		return fmt.Errorf("simulation %s: %w", s.id, err)
	}

	return nil
}
