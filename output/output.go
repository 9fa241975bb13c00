// Package output defines what a run emits and where it goes. A Sink receives
// zone histories at each output time, the final metallicity distribution
// functions, and, for multizone runs, one record per tracer particle.
package output

// ElementHistory is the state of one element of a zone at an output time.
type ElementHistory struct {
	Symbol string
	Mass   float64
	Z      float64
	OnH    float64

	// Unretained is the mass produced during the last timestep that left
	// the zone without mixing into its gas.
	Unretained float64
}

// History is the state of a zone at an output time.
type History struct {
	Zone        string
	Time        float64
	GasMass     float64
	StellarMass float64
	SFR         float64
	IFR         float64
	OFR         float64
	Recycled    float64
	Elements    []ElementHistory
}

// Distribution is one normalized distribution of an MDF.
type Distribution struct {
	Label   string
	Density []float64
}

// MDF is the final stellar metallicity distribution function of a zone.
// Each distribution has len(Bins)-1 entries.
type MDF struct {
	Zone          string
	Bins          []float64
	Distributions []Distribution
}

// TracerRecord describes one star particle at the end of a multizone run.
type TracerRecord struct {
	FormationTime float64
	ZoneOrigin    int
	ZoneFinal     int
	Mass          float64

	// Z[i] is the abundance of Elements[i] in the gas the particle formed
	// from.
	Elements []string
	Z        []float64
}

// Sink receives the output of a run.
type Sink interface {
	WriteHistory(h History) error
	WriteMDF(m MDF) error
	WriteTracer(t TracerRecord) error
	Close() error
}
