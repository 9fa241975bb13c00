// Package multizone evolves several zones on one clock. Gas moves between
// zones following a migration matrix, and the stars each zone forms are
// discretized into tracer particles that migrate too and return their mass
// to whichever zone they are in.
package multizone

import (
	"fmt"
	"log"

	"github.com/sarchlab/chemevo/sim"
	"github.com/sarchlab/chemevo/zone"
)

// DefaultSeed seeds the tracer migration when no seed is given.
const DefaultSeed uint64 = 0x5eed

var (
	// HookPosMigrate is invoked after gas and tracers have migrated.
	HookPosMigrate = &sim.HookPos{Name: "Multizone Migrate"}

	// HookPosSpawn is invoked after the tracers of a timestep are created.
	HookPosSpawn = &sim.HookPos{Name: "Multizone Spawn"}

	// HookPosRecycle is invoked after the returned mass is computed. The
	// detail is the []zone.Returned of every zone.
	HookPosRecycle = &sim.HookPos{Name: "Multizone Recycle"}

	// HookPosGlobalStep is invoked after every zone has advanced.
	HookPosGlobalStep = &sim.HookPos{Name: "Multizone Global Step"}
)

// Multizone is a set of zones evolving together.
type Multizone struct {
	*sim.HookableBase

	name   string
	zones  []*zone.Zone
	matrix MigrationMatrix

	tracersPerZone int
	maxTracers     int
	seed           uint64
	strategy       Strategy
	migrator       Migrator
	verbose        bool

	pool       *TracerPool
	bookkeeper bookkeeper
	ready      bool
}

// An Option configures a Multizone.
type Option func(*Multizone)

// WithName names the run.
func WithName(name string) Option {
	return func(m *Multizone) { m.name = name }
}

// WithTracersPerZone sets how many tracers each zone forms per timestep.
func WithTracersPerZone(k int) Option {
	return func(m *Multizone) { m.tracersPerZone = k }
}

// WithMaxTracers bounds the tracer pool. By default it fits the whole run.
func WithMaxTracers(n int) Option {
	return func(m *Multizone) { m.maxTracers = n }
}

// WithSeed seeds the default tracer migrator.
func WithSeed(seed uint64) Option {
	return func(m *Multizone) { m.seed = seed }
}

// WithStrategy selects how tracer recycling is summed.
func WithStrategy(s Strategy) Option {
	return func(m *Multizone) { m.strategy = s }
}

// WithMigrator replaces the default matrix migrator for tracers.
func WithMigrator(migrator Migrator) Option {
	return func(m *Multizone) { m.migrator = migrator }
}

// WithVerbose logs progress while finalizing.
func WithVerbose(verbose bool) Option {
	return func(m *Multizone) { m.verbose = verbose }
}

// New creates a multizone run over zones, which must not be set up yet.
func New(zones []*zone.Zone, matrix MigrationMatrix, opts ...Option) *Multizone {
	m := &Multizone{
		HookableBase:   sim.NewHookableBase(),
		name:           "multizone",
		zones:          zones,
		matrix:         matrix,
		tracersPerZone: 1,
		seed:           DefaultSeed,
		strategy:       Cohort,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Name returns the name of the run.
func (m *Multizone) Name() string {
	return m.name
}

// CurrentTime returns the shared time of the zones.
func (m *Multizone) CurrentTime() sim.Gyr {
	return m.zones[0].CurrentTime()
}

// Zones returns the zones in order.
func (m *Multizone) Zones() []*zone.Zone {
	return m.zones
}

// Tracers returns the tracer pool. It is nil before Setup.
func (m *Multizone) Tracers() *TracerPool {
	return m.pool
}

// TracersPerZone returns the number of tracers formed per zone and timestep.
func (m *Multizone) TracersPerZone() int {
	return m.tracersPerZone
}

// Setup checks that the zones can run together and sets every one of them up
// for outputTimes.
func (m *Multizone) Setup(outputTimes []float64) error {
	if m.ready {
		log.Panicf("multizone %s: setup twice", m.name)
	}

	if err := m.validate(); err != nil {
		return err
	}

	for _, z := range m.zones {
		if err := z.Setup(outputTimes); err != nil {
			return fmt.Errorf("multizone %s: %w", m.name, err)
		}
	}

	steps := m.zones[0].Tables().Len()
	capacity := len(m.zones) * m.tracersPerZone * steps
	if m.maxTracers == 0 {
		m.maxTracers = capacity
	}

	m.pool = NewTracerPool(capacity, m.maxTracers)
	m.bookkeeper = newBookkeeper(m.strategy, len(m.zones))

	if m.migrator == nil {
		m.migrator = NewMatrixMigrator(m.matrix.Tracers, m.seed)
	}

	m.ready = true

	return nil
}

func (m *Multizone) validate() error {
	if len(m.zones) == 0 {
		return ErrNoZones
	}

	if m.tracersPerZone <= 0 {
		return fmt.Errorf("%w: %d tracers per zone",
			ErrAllocation, m.tracersPerZone)
	}

	first := m.zones[0]
	names := make(map[string]bool)

	for i, z := range m.zones {
		if names[z.Name()] {
			return fmt.Errorf("%w: %q", ErrDuplicateZone, z.Name())
		}

		names[z.Name()] = true

		if z.Dt() != first.Dt() {
			return fmt.Errorf("%w: zone %d has dt=%g, zone 0 has dt=%g",
				ErrMismatchedTimestep, i, z.Dt(), first.Dt())
		}

		if !sameSymbols(z.Symbols(), first.Symbols()) {
			return fmt.Errorf("%w: zone %s tracks %v, zone %s tracks %v",
				ErrMismatchedElements,
				z.Name(), z.Symbols(), first.Name(), first.Symbols())
		}
	}

	return m.matrix.Validate(len(m.zones))
}

func sameSymbols(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// StellarMass returns the mass of the stars currently in zone i that has not
// yet been returned to the gas.
func (m *Multizone) StellarMass(i int) float64 {
	step := m.zones[0].Timestep()

	return m.bookkeeper.stellarMass(m.zones, m.pool, step, i)
}
