package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/chemevo/config"
	"github.com/sarchlab/chemevo/simulation"
)

type runOptions struct {
	output      string
	port        int
	noMonitor   bool
	browser     bool
	traceTasks  bool
	phaseTiming bool
	multizone   bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <run file>",
		Short: "Run the model described by a run file.",
		Long: `Run the model described by a run file. A run file with one ` +
			`zone runs that zone alone unless --multizone is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := root.loadRun(args[0])
			if err != nil {
				return err
			}

			path, err := opts.run(r, args[0])
			if err != nil {
				return err
			}

			cmd.Printf("Results written to %s\n", path)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "",
		"output database, without the .sqlite3 extension")
	flags.IntVar(&opts.port, "port", 0, "port of the monitoring server")
	flags.BoolVar(&opts.noMonitor, "no-monitor", false,
		"do not start the monitoring server")
	flags.BoolVar(&opts.browser, "browser", false,
		"open the monitor in a browser")
	flags.BoolVar(&opts.traceTasks, "trace", false,
		"record the phases of every multizone step")
	flags.BoolVar(&opts.phaseTiming, "phase-timing", false,
		"log the time spent in each phase of the multizone steps")
	flags.BoolVar(&opts.multizone, "multizone", false,
		"run a single zone as a multizone model")

	return cmd
}

// apply lets the command line override the run file.
func (o *runOptions) apply(r *config.Run) {
	if o.output != "" {
		r.Output = o.output
	}

	if o.port != 0 {
		r.Monitor.Enabled = true
		r.Monitor.Port = o.port
	}

	if o.noMonitor {
		r.Monitor.Enabled = false
		r.Monitor.Port = 0
	}
}

func (o *runOptions) builder(r *config.Run) simulation.Builder {
	b := simulation.MakeBuilder().WithOutputFileName(r.Output)

	if !r.Monitor.Enabled {
		b = b.WithoutMonitoring()
	} else {
		b = b.WithMonitorPort(r.Monitor.Port)
		if o.browser {
			b = b.WithBrowser()
		}
	}

	if o.traceTasks {
		b = b.WithTaskTracing()
	}

	if o.phaseTiming {
		b = b.WithPhaseTiming()
	}

	return b
}

// run builds and runs the model of r and returns the database it wrote.
func (o *runOptions) run(r *config.Run, runFile string) (string, error) {
	o.apply(r)

	times, err := r.Times()
	if err != nil {
		return "", err
	}

	s := o.builder(r).Build()
	s.SetRunInfo("Run File", runFile)
	s.SetRunInfo("Seed", fmt.Sprintf("%#x", r.Seed))

	if len(r.Zones) == 1 && !o.multizone {
		err = o.runZone(s, r, times)
	} else {
		err = o.runMultizone(s, r, times)
	}

	if termErr := s.Terminate(); err == nil {
		err = termErr
	}

	return s.OutputPath(), err
}

func (o *runOptions) runZone(
	s *simulation.Simulation,
	r *config.Run,
	times []float64,
) error {
	z, err := r.BuildZone(0)
	if err != nil {
		return err
	}

	if r.Verbose {
		log.Printf("running zone %s to t = %g Gyr", z.Name(), times[len(times)-1])
	}

	return s.RunZone(z, times)
}

func (o *runOptions) runMultizone(
	s *simulation.Simulation,
	r *config.Run,
	times []float64,
) error {
	m, err := r.BuildMultizone()
	if err != nil {
		return err
	}

	if r.Verbose {
		log.Printf("running %d zones of %s to t = %g Gyr",
			len(m.Zones()), m.Name(), times[len(times)-1])
	}

	return s.RunMultizone(m, times)
}
