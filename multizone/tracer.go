package multizone

import "fmt"

// Tracer is a packet of stars formed in one zone at one timestep. Only
// ZoneCurrent changes once a tracer exists.
type Tracer struct {
	Mass           float64
	ZoneOrigin     int
	TimestepOrigin int
	ZoneCurrent    int
}

// TracerPool holds every tracer of a run in one slice. Tracers are referred
// to by their index, which never changes.
type TracerPool struct {
	tracers []Tracer
	limit   int
}

// NewTracerPool creates a pool that preallocates capacity tracers and never
// holds more than limit.
func NewTracerPool(capacity, limit int) *TracerPool {
	return &TracerPool{
		tracers: make([]Tracer, 0, min(capacity, limit)),
		limit:   limit,
	}
}

// Spawn adds a tracer and returns its index.
func (p *TracerPool) Spawn(t Tracer) (int, error) {
	if len(p.tracers) >= p.limit {
		return 0, fmt.Errorf("%w: limit of %d tracers", ErrAllocation, p.limit)
	}

	p.tracers = append(p.tracers, t)

	return len(p.tracers) - 1, nil
}

// Len returns the number of tracers.
func (p *TracerPool) Len() int {
	return len(p.tracers)
}

// At returns the tracer with index i.
func (p *TracerPool) At(i int) *Tracer {
	return &p.tracers[i]
}

// Limit returns the largest number of tracers the pool can hold.
func (p *TracerPool) Limit() int {
	return p.limit
}
