package zone

// Returned is the mass given back to the gas of a zone by its stars during a
// timestep.
type Returned struct {
	Gas float64

	// Metals[i] is the returned mass of the i-th element of the zone.
	Metals []float64
}

// NewReturned returns an empty Returned for n elements.
func NewReturned(n int) Returned {
	return Returned{Metals: make([]float64, n)}
}

// Add accumulates o.
func (r *Returned) Add(o Returned) {
	r.Gas += o.Gas
	for i, m := range o.Metals {
		r.Metals[i] += m
	}
}
