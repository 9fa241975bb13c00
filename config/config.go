// Package config reads run files. A run file is YAML and describes the
// zones of a model, their stars, gas and elements, how they exchange gas and
// stars, and when the model is written out.
package config

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Run is the content of a run file.
type Run struct {
	Name        string      `yaml:"name"`
	Timestep    float64     `yaml:"timestep"`
	OutputTimes OutputTimes `yaml:"output_times"`
	Output      string      `yaml:"output"`
	Seed        uint64      `yaml:"seed"`

	TracersPerZone int    `yaml:"tracers_per_zone"`
	MaxTracers     int    `yaml:"max_tracers"`
	Strategy       string `yaml:"strategy"`
	Verbose        bool   `yaml:"verbose"`

	Monitor    Monitor    `yaml:"monitor"`
	Population Population `yaml:"population"`
	Bins       []float64  `yaml:"bins"`
	Elements   []Element  `yaml:"elements"`
	Zones      []Zone     `yaml:"zones"`
	Migration  Migration  `yaml:"migration"`
}

// OutputTimes lists the times to write, either one by one or as a range
// from Start to Stop inclusive.
type OutputTimes struct {
	Times []float64 `yaml:"times"`
	Start float64   `yaml:"start"`
	Stop  float64   `yaml:"stop"`
	Step  float64   `yaml:"step"`
}

// Monitor configures the monitoring server.
type Monitor struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Population describes the stars formed in a zone.
type Population struct {
	IMF       string  `yaml:"imf"`
	LowerMass float64 `yaml:"lower_mass"`
	UpperMass float64 `yaml:"upper_mass"`
	PostMS    float64 `yaml:"post_ms"`
	Recycling string  `yaml:"recycling"`
	R0        float64 `yaml:"r0"`
}

// Func is a function of time. Exactly one of its forms is set.
type Func struct {
	Constant    *float64     `yaml:"constant"`
	Exponential *Exponential `yaml:"exponential"`
	Times       []float64    `yaml:"times"`
	Values      []float64    `yaml:"values"`
}

// Exponential is Amplitude·exp(-t/Timescale), multiplied by t if Delayed.
type Exponential struct {
	Amplitude float64 `yaml:"amplitude"`
	Timescale float64 `yaml:"timescale"`
	Delayed   bool    `yaml:"delayed"`
}

// Evolution describes how the gas of a zone evolves. Mode is "infall",
// "sfr" or "gas" and selects which of IFR, SFR and Gas is given.
//
// Eta is the mass loading factor and Enhancement the outflow metallicity
// relative to the gas. Both may be left out.
type Evolution struct {
	Mode        string  `yaml:"mode"`
	IFR         *Func   `yaml:"ifr"`
	SFR         *Func   `yaml:"sfr"`
	Gas         *Func   `yaml:"gas"`
	TauStar     *Func   `yaml:"tau_star"`
	Eta         *Func   `yaml:"eta"`
	Enhancement *Func   `yaml:"enhancement"`
	InitialGas  float64 `yaml:"initial_gas"`
}

// CCSNe is a core collapse yield, constant or tabulated against Z.
type CCSNe struct {
	Constant *float64  `yaml:"constant"`
	Z        []float64 `yaml:"z"`
	Yields   []float64 `yaml:"yields"`
}

// AGB is an AGB yield grid. Yields[i][j] is for Masses[i] and
// Metallicities[j].
type AGB struct {
	Masses        []float64   `yaml:"masses"`
	Metallicities []float64   `yaml:"metallicities"`
	Yields        [][]float64 `yaml:"yields"`
}

// DTD is a type Ia delay time distribution. Kind is "powerlaw" or
// "exponential".
type DTD struct {
	Kind      string  `yaml:"kind"`
	Index     float64 `yaml:"index"`
	Timescale float64 `yaml:"timescale"`
	MinDelay  float64 `yaml:"min_delay"`
}

// SNeIa is a type Ia yield and its delay time distribution.
type SNeIa struct {
	Yield float64 `yaml:"yield"`
	DTD   DTD     `yaml:"dtd"`
}

// Element is an element tracked by every zone.
type Element struct {
	Symbol      string  `yaml:"symbol"`
	Solar       float64 `yaml:"solar"`
	CCSNe       CCSNe   `yaml:"ccsne"`
	AGB         *AGB    `yaml:"agb"`
	SNeIa       *SNeIa  `yaml:"snia"`
	InfallZ     *Func   `yaml:"infall_z"`
	InitialMass float64 `yaml:"initial_mass"`
	Escape      Escape  `yaml:"escape"`
}

// Escape gives, per channel, the fraction of newly produced mass that leaves
// a zone without mixing into its gas.
type Escape struct {
	CCSNe float64 `yaml:"ccsne"`
	SNeIa float64 `yaml:"snia"`
	AGB   float64 `yaml:"agb"`
}

// Zone is one zone. Population fields that are set replace those of the run
// population.
type Zone struct {
	Name       string      `yaml:"name"`
	Population *Population `yaml:"population"`
	Evolution  Evolution   `yaml:"evolution"`
}

// Migration holds the per-timestep migration probabilities between zones.
type Migration struct {
	Gas     [][]float64 `yaml:"gas"`
	Tracers [][]float64 `yaml:"tracers"`
}

// Default returns the settings a run file starts from.
func Default() Run {
	return Run{
		Name:           "chemevo",
		Timestep:       0.01,
		TracersPerZone: 1,
		Strategy:       "cohort",
		Seed:           0x5eed,
		Population: Population{
			IMF:       "kroupa",
			LowerMass: 0.08,
			UpperMass: 100,
			PostMS:    0.1,
			Recycling: "continuous",
			R0:        0.4,
		},
	}
}

// Load reads a run file.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return r, nil
}

// Parse reads a run file from data. Unknown keys are errors.
func Parse(data []byte) (*Run, error) {
	r := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &r, nil
}

// Marshal writes r back as YAML.
func (r *Run) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Times returns the output times.
func (r *Run) Times() ([]float64, error) {
	o := r.OutputTimes
	if len(o.Times) > 0 {
		return append([]float64(nil), o.Times...), nil
	}

	if o.Step <= 0 || o.Stop < o.Start {
		return nil, fmt.Errorf("%w: output times need a positive step "+
			"and stop >= start", ErrInvalidConfig)
	}

	n := int(math.Round((o.Stop-o.Start)/o.Step)) + 1
	times := make([]float64, n)
	for i := range times {
		times[i] = o.Start + float64(i)*o.Step
	}

	return times, nil
}

// Validate checks what can be checked without building the model.
func (r *Run) Validate() error {
	if r.Timestep <= 0 {
		return fmt.Errorf("%w: timestep %g", ErrInvalidConfig, r.Timestep)
	}

	if len(r.Zones) == 0 {
		return fmt.Errorf("%w: no zones", ErrInvalidConfig)
	}

	if len(r.Elements) == 0 {
		return fmt.Errorf("%w: no elements", ErrInvalidConfig)
	}

	if _, err := r.Times(); err != nil {
		return err
	}

	names := make(map[string]bool)
	for _, z := range r.Zones {
		if z.Name == "" {
			return fmt.Errorf("%w: zone without a name", ErrInvalidConfig)
		}

		if names[z.Name] {
			return fmt.Errorf("%w: zone %s appears twice",
				ErrInvalidConfig, z.Name)
		}

		names[z.Name] = true
	}

	if r.Monitor.Port != 0 && !r.Monitor.Enabled {
		return fmt.Errorf("%w: monitor port set with monitoring disabled",
			ErrInvalidConfig)
	}

	return nil
}
