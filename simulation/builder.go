package simulation

import (
	"github.com/sarchlab/chemevo/datarecording"
	"github.com/sarchlab/chemevo/monitoring"
	"github.com/sarchlab/chemevo/output"
	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	openBrowser    bool
	traceTasks     bool
	phaseTiming    bool
	outputFileName string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
// The ".sqlite3" extension is added.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitor in a browser once the server starts.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

// WithTaskTracing records every step and phase of multizone runs in the
// trace table.
func (b Builder) WithTaskTracing() Builder {
	b.traceTasks = true
	return b
}

// WithPhaseTiming measures the wall time spent in each phase of a multizone
// step and logs it at the end of the run.
func (b Builder) WithPhaseTiming() Builder {
	b.phaseTiming = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.monitorOn && b.openBrowser {
		panic("browser cannot be opened when monitoring is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:          sim.NewRunID(),
		clock:       tracing.NewWallClock(),
		phaseTiming: b.phaseTiming,
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "chemevo_" + s.id
	}
	s.outputPath = outputPath + ".sqlite3"

	s.dataRecorder = datarecording.New(outputPath)
	s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)
	s.sink = output.NewRecorderSink(s.dataRecorder, s.id)

	if b.traceTasks {
		s.visTracer = tracing.NewDBTracer(s.clock, s.dataRecorder)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.WithBrowser(b.openBrowser)
		s.monitor.StartServer()
	}

	return s
}
